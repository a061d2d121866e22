package store

import (
	"context"
	"errors"
	"time"

	"salescoach.app/engine/internal/model"
)

var ErrNotFound = errors.New("not found")

type ConversationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Conversation, error)
	// UpdateScores overwrites the conversation's scorecard. Analysis runs are
	// last-write-wins; the redis guard in the coaching service keeps
	// concurrent runs off the same conversation.
	UpdateScores(ctx context.Context, id int64, scores *model.Scorecard, analyzedAt time.Time) error
}

type CoachingMessageStore interface {
	GetByID(ctx context.Context, id int64) (*model.CoachingMessage, error)
	GetByToken(ctx context.Context, token string) (*model.CoachingMessage, error)
	Create(ctx context.Context, msg *model.CoachingMessage) error
	ListByAccount(ctx context.Context, accountID int64, limit int32) ([]model.CoachingMessage, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	SetToken(ctx context.Context, id int64, token string) error
	ClearToken(ctx context.Context, id int64) error
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	MarkFailed(ctx context.Context, id int64, lastError string) error
	// MarkRead sets read_at on first open only; later opens are no-ops.
	MarkRead(ctx context.Context, id int64, readAt time.Time) error
	// SetReply atomically records the rep's response. Returns ErrDuplicate
	// when the message already has one.
	SetReply(ctx context.Context, id int64, response string, respondedAt time.Time) error
}

// ErrDuplicate is returned by SetReply when the single-shot reply guard
// trips.
var ErrDuplicate = errors.New("already recorded")
