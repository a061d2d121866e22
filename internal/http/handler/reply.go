package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"salescoach.app/engine/internal/coaching"
	"salescoach.app/engine/internal/http/dto"
	"salescoach.app/engine/internal/token"
)

// ReplyHandler serves the rep-facing endpoints. There is no authentication
// here: possession of the reply token is the credential.
type ReplyHandler struct {
	lifecycle coaching.LifecycleService
}

func NewReplyHandler(lifecycle coaching.LifecycleService) *ReplyHandler {
	return &ReplyHandler{lifecycle: lifecycle}
}

// Open resolves a reply link and records the read receipt.
// GET /reply?token=...
func (h *ReplyHandler) Open(c *gin.Context) {
	ctx := c.Request.Context()

	msg, err := h.lifecycle.Open(ctx, c.Query("token"))
	if err != nil {
		respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReadReceiptResponse(msg))
}

// Reply records the rep's one-shot response.
// POST /reply
func (h *ReplyHandler) Reply(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: token and response are required"})
		return
	}

	msg, err := h.lifecycle.Reply(ctx, req.Token, req.Response)
	if err != nil {
		if errors.Is(err, coaching.ErrDuplicateReply) {
			c.JSON(http.StatusConflict, gin.H{"error": "a response has already been recorded"})
			return
		}
		if errors.Is(err, coaching.ErrEmptyReply) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "response text is required"})
			return
		}
		respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReadReceiptResponse(msg))
}

func respondTokenError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, token.ErrEmptyToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
	case errors.Is(err, token.ErrTokenNotFound):
		// Unknown and revoked tokens are indistinguishable on purpose.
		c.JSON(http.StatusNotFound, gin.H{"error": "reply link is invalid"})
	default:
		slog.ErrorContext(ctx, "failed to resolve reply token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process reply"})
	}
}
