package model

import "time"

type CoachingMessageStatus string

const (
	// CoachingStatusGenerated is the pending bucket. The legacy dashboard also
	// filtered on an "approved" label that nothing ever transitioned into, so
	// it is collapsed into generated here.
	CoachingStatusGenerated CoachingMessageStatus = "generated"
	CoachingStatusSent      CoachingMessageStatus = "sent"
	CoachingStatusRead      CoachingMessageStatus = "read"
	CoachingStatusReplied   CoachingMessageStatus = "replied"
	CoachingStatusFailed    CoachingMessageStatus = "failed"
)

// CoachingMessage is the governed artifact sent from manager to rep. Created
// once per analysis run, editable while generated, and read-only once the rep
// has responded.
type CoachingMessage struct {
	ID              int64                 `json:"id"`
	AccountID       int64                 `json:"account_id"`
	ConversationID  int64                 `json:"conversation_id"`
	RepEmail        string                `json:"rep_email"`
	ManagerEmail    string                `json:"manager_email"`
	Methodology     string                `json:"methodology"`
	CoachingContent string                `json:"coaching_content"`
	Status          CoachingMessageStatus `json:"status"`
	GeneratedAt     time.Time             `json:"generated_at"`
	SentAt          *time.Time            `json:"sent_at,omitempty"`
	ReadAt          *time.Time            `json:"read_at,omitempty"`
	RepResponse     *string               `json:"rep_response,omitempty"`
	RespondedAt     *time.Time            `json:"responded_at,omitempty"`
	ReplyToken      *string               `json:"-"`
	LastError       *string               `json:"last_error,omitempty"`
}

// Editable reports whether the manager may still overwrite the content.
// No edit is allowed once a send has been attempted.
func (m *CoachingMessage) Editable() bool {
	return m.Status == CoachingStatusGenerated
}

// Sendable reports whether a send (or retry after failure) is allowed.
func (m *CoachingMessage) Sendable() bool {
	return m.Status == CoachingStatusGenerated || m.Status == CoachingStatusFailed
}

// HasReply reports whether the rep already responded. Replies are single-shot:
// a second submission is rejected, never overwritten.
func (m *CoachingMessage) HasReply() bool {
	return m.RepResponse != nil && *m.RepResponse != ""
}
