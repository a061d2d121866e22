package router

import (
	"github.com/gin-gonic/gin"

	"salescoach.app/engine/internal/http/handler"
)

// ConversationRouter sets up the analysis trigger.
func ConversationRouter(rg *gin.RouterGroup, h *handler.AnalysisHandler) {
	rg.POST("/:id/analyze", h.Analyze)
}

// CoachingMessageRouter sets up the manager-facing message lifecycle routes.
func CoachingMessageRouter(rg *gin.RouterGroup, h *handler.CoachingMessageHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Edit)
	rg.POST("/:id/send", h.Send)
}

// ReplyRouter sets up the public token-gated rep endpoints.
func ReplyRouter(rg *gin.RouterGroup, h *handler.ReplyHandler) {
	rg.GET("", h.Open)
	rg.POST("", h.Reply)
}
