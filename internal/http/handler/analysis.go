package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salescoach.app/engine/internal/coaching"
	"salescoach.app/engine/internal/http/dto"
	"salescoach.app/engine/internal/lock"
	"salescoach.app/engine/internal/scorer"
)

type AnalysisHandler struct {
	analysis coaching.AnalysisService
}

func NewAnalysisHandler(analysis coaching.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// Analyze scores a conversation and creates the coaching message draft.
// POST /api/v1/conversations/:id/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	var req dto.AnalyzeConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: manager_email is required"})
		return
	}

	msg, err := h.analysis.Analyze(ctx, conversationID, req.ManagerEmail)
	if err != nil {
		switch {
		case errors.Is(err, coaching.ErrInvalidConversation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		case errors.Is(err, coaching.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		case errors.Is(err, lock.ErrHeld):
			c.JSON(http.StatusConflict, gin.H{"error": "analysis already in progress for this conversation"})
		case errors.Is(err, scorer.ErrUpstream):
			slog.ErrorContext(ctx, "scoring model failed", "error", err, "conversation_id", conversationID)
			c.JSON(http.StatusBadGateway, gin.H{"error": "scoring model unavailable"})
		default:
			slog.ErrorContext(ctx, "failed to analyze conversation", "error", err, "conversation_id", conversationID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze conversation"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCoachingMessageResponse(msg))
}
