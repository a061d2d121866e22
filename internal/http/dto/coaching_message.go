package dto

import (
	"time"

	"salescoach.app/engine/internal/model"
)

type AnalyzeConversationRequest struct {
	ManagerEmail string `json:"manager_email" binding:"required,email,max=255"`
}

type EditCoachingMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=20000"`
}

type SubmitReplyRequest struct {
	Token    string `json:"token" binding:"required"`
	Response string `json:"response" binding:"required,min=1,max=10000"`
}

type CoachingMessageResponse struct {
	ID              int64      `json:"id,string"`
	AccountID       int64      `json:"account_id,string"`
	ConversationID  int64      `json:"conversation_id,string"`
	RepEmail        string     `json:"rep_email"`
	ManagerEmail    string     `json:"manager_email"`
	Methodology     string     `json:"methodology"`
	CoachingContent string     `json:"coaching_content"`
	Status          string     `json:"status"`
	GeneratedAt     time.Time  `json:"generated_at"`
	SentAt          *time.Time `json:"sent_at,omitempty"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	RepResponse     *string    `json:"rep_response,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	LastError       *string    `json:"last_error,omitempty"`
}

func ToCoachingMessageResponse(m *model.CoachingMessage) *CoachingMessageResponse {
	return &CoachingMessageResponse{
		ID:              m.ID,
		AccountID:       m.AccountID,
		ConversationID:  m.ConversationID,
		RepEmail:        m.RepEmail,
		ManagerEmail:    m.ManagerEmail,
		Methodology:     m.Methodology,
		CoachingContent: m.CoachingContent,
		Status:          string(m.Status),
		GeneratedAt:     m.GeneratedAt,
		SentAt:          m.SentAt,
		ReadAt:          m.ReadAt,
		RepResponse:     m.RepResponse,
		RespondedAt:     m.RespondedAt,
		LastError:       m.LastError,
	}
}

type ListCoachingMessagesResponse struct {
	Messages []CoachingMessageResponse `json:"messages"`
}

// ReadReceiptResponse is what the rep-facing reply page renders: the coaching
// content plus whether a response was already recorded.
type ReadReceiptResponse struct {
	CoachingContent string  `json:"coaching_content"`
	ManagerEmail    string  `json:"manager_email"`
	Methodology     string  `json:"methodology"`
	RepResponse     *string `json:"rep_response,omitempty"`
	Replied         bool    `json:"replied"`
}

func ToReadReceiptResponse(m *model.CoachingMessage) *ReadReceiptResponse {
	return &ReadReceiptResponse{
		CoachingContent: m.CoachingContent,
		ManagerEmail:    m.ManagerEmail,
		Methodology:     m.Methodology,
		RepResponse:     m.RepResponse,
		Replied:         m.HasReply(),
	}
}
