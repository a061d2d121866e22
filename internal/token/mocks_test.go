package token_test

import (
	"context"
	"time"

	"salescoach.app/engine/internal/model"
)

type mockCoachingMessageStore struct {
	getByIDFn    func(ctx context.Context, id int64) (*model.CoachingMessage, error)
	getByTokenFn func(ctx context.Context, token string) (*model.CoachingMessage, error)
	setTokenFn   func(ctx context.Context, id int64, token string) error
	clearTokenFn func(ctx context.Context, id int64) error
}

func (m *mockCoachingMessageStore) GetByID(ctx context.Context, id int64) (*model.CoachingMessage, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCoachingMessageStore) GetByToken(ctx context.Context, token string) (*model.CoachingMessage, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockCoachingMessageStore) Create(context.Context, *model.CoachingMessage) error {
	return nil
}

func (m *mockCoachingMessageStore) ListByAccount(context.Context, int64, int32) ([]model.CoachingMessage, error) {
	return nil, nil
}

func (m *mockCoachingMessageStore) UpdateContent(context.Context, int64, string) error {
	return nil
}

func (m *mockCoachingMessageStore) SetToken(ctx context.Context, id int64, token string) error {
	if m.setTokenFn != nil {
		return m.setTokenFn(ctx, id, token)
	}
	return nil
}

func (m *mockCoachingMessageStore) ClearToken(ctx context.Context, id int64) error {
	if m.clearTokenFn != nil {
		return m.clearTokenFn(ctx, id)
	}
	return nil
}

func (m *mockCoachingMessageStore) MarkSent(context.Context, int64, time.Time) error {
	return nil
}

func (m *mockCoachingMessageStore) MarkFailed(context.Context, int64, string) error {
	return nil
}

func (m *mockCoachingMessageStore) MarkRead(context.Context, int64, time.Time) error {
	return nil
}

func (m *mockCoachingMessageStore) SetReply(context.Context, int64, string, time.Time) error {
	return nil
}
