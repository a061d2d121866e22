package router

import (
	"github.com/gin-gonic/gin"

	"salescoach.app/engine/internal/coaching"
	"salescoach.app/engine/internal/http/handler"
)

func SetupRoutes(router *gin.Engine, services *coaching.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Rep-facing reply endpoints; the token in the link is the credential.
	replyHandler := handler.NewReplyHandler(services.Lifecycle())
	ReplyRouter(router.Group("/reply"), replyHandler)

	v1 := router.Group("/api/v1")
	{
		analysisHandler := handler.NewAnalysisHandler(services.Analysis())
		ConversationRouter(v1.Group("/conversations"), analysisHandler)

		messageHandler := handler.NewCoachingMessageHandler(services.Lifecycle())
		CoachingMessageRouter(v1.Group("/coaching-messages"), messageHandler)
	}
}
