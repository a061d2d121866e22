package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salescoach.app/engine/internal/coaching"
	"salescoach.app/engine/internal/http/dto"
)

type CoachingMessageHandler struct {
	lifecycle coaching.LifecycleService
}

func NewCoachingMessageHandler(lifecycle coaching.LifecycleService) *CoachingMessageHandler {
	return &CoachingMessageHandler{lifecycle: lifecycle}
}

// Get returns a single coaching message.
// GET /api/v1/coaching-messages/:id
func (h *CoachingMessageHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	messageID, ok := messageIDParam(c)
	if !ok {
		return
	}

	msg, err := h.lifecycle.Get(ctx, messageID)
	if err != nil {
		if errors.Is(err, coaching.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coaching message not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to load coaching message", "error", err, "coaching_message_id", messageID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load coaching message"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCoachingMessageResponse(msg))
}

// List returns an account's coaching messages, newest first.
// GET /api/v1/coaching-messages?account_id=...&limit=...
func (h *CoachingMessageHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, err := strconv.ParseInt(c.Query("account_id"), 10, 64)
	if err != nil || accountID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}

	var limit int32
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = int32(parsed)
	}

	messages, err := h.lifecycle.List(ctx, accountID, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list coaching messages", "error", err, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coaching messages"})
		return
	}

	resp := dto.ListCoachingMessagesResponse{
		Messages: make([]dto.CoachingMessageResponse, len(messages)),
	}
	for i := range messages {
		resp.Messages[i] = *dto.ToCoachingMessageResponse(&messages[i])
	}

	c.JSON(http.StatusOK, resp)
}

// Edit overwrites the draft content before sending.
// PUT /api/v1/coaching-messages/:id
func (h *CoachingMessageHandler) Edit(c *gin.Context) {
	ctx := c.Request.Context()

	messageID, ok := messageIDParam(c)
	if !ok {
		return
	}

	var req dto.EditCoachingMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: content is required"})
		return
	}

	msg, err := h.lifecycle.Edit(ctx, messageID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, coaching.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "coaching message not found"})
		case errors.Is(err, coaching.ErrEditAfterSend):
			c.JSON(http.StatusConflict, gin.H{"error": "coaching message can no longer be edited"})
		default:
			slog.ErrorContext(ctx, "failed to edit coaching message", "error", err, "coaching_message_id", messageID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to edit coaching message"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCoachingMessageResponse(msg))
}

// Send emails the coaching message to the rep with its reply link.
// POST /api/v1/coaching-messages/:id/send
func (h *CoachingMessageHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	messageID, ok := messageIDParam(c)
	if !ok {
		return
	}

	msg, err := h.lifecycle.Send(ctx, messageID)
	if err != nil {
		switch {
		case errors.Is(err, coaching.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "coaching message not found"})
		case errors.Is(err, coaching.ErrNotSendable):
			c.JSON(http.StatusConflict, gin.H{"error": "coaching message is not in a sendable state"})
		default:
			slog.ErrorContext(ctx, "failed to send coaching message", "error", err, "coaching_message_id", messageID)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to deliver coaching message"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCoachingMessageResponse(msg))
}

func messageIDParam(c *gin.Context) (int64, bool) {
	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coaching message id"})
		return 0, false
	}
	return messageID, true
}
