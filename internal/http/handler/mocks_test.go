package handler_test

import (
	"context"

	"salescoach.app/engine/internal/model"
)

type mockAnalysisService struct {
	analyzeFn func(ctx context.Context, conversationID int64, managerEmail string) (*model.CoachingMessage, error)
}

func (m *mockAnalysisService) Analyze(ctx context.Context, conversationID int64, managerEmail string) (*model.CoachingMessage, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, conversationID, managerEmail)
	}
	return nil, nil
}

type mockLifecycleService struct {
	getFn   func(ctx context.Context, messageID int64) (*model.CoachingMessage, error)
	listFn  func(ctx context.Context, accountID int64, limit int32) ([]model.CoachingMessage, error)
	editFn  func(ctx context.Context, messageID int64, content string) (*model.CoachingMessage, error)
	sendFn  func(ctx context.Context, messageID int64) (*model.CoachingMessage, error)
	openFn  func(ctx context.Context, replyToken string) (*model.CoachingMessage, error)
	replyFn func(ctx context.Context, replyToken, replyText string) (*model.CoachingMessage, error)
}

func (m *mockLifecycleService) Get(ctx context.Context, messageID int64) (*model.CoachingMessage, error) {
	if m.getFn != nil {
		return m.getFn(ctx, messageID)
	}
	return nil, nil
}

func (m *mockLifecycleService) List(ctx context.Context, accountID int64, limit int32) ([]model.CoachingMessage, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID, limit)
	}
	return []model.CoachingMessage{}, nil
}

func (m *mockLifecycleService) Edit(ctx context.Context, messageID int64, content string) (*model.CoachingMessage, error) {
	if m.editFn != nil {
		return m.editFn(ctx, messageID, content)
	}
	return nil, nil
}

func (m *mockLifecycleService) Send(ctx context.Context, messageID int64) (*model.CoachingMessage, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, messageID)
	}
	return nil, nil
}

func (m *mockLifecycleService) Open(ctx context.Context, replyToken string) (*model.CoachingMessage, error) {
	if m.openFn != nil {
		return m.openFn(ctx, replyToken)
	}
	return nil, nil
}

func (m *mockLifecycleService) Reply(ctx context.Context, replyToken, replyText string) (*model.CoachingMessage, error) {
	if m.replyFn != nil {
		return m.replyFn(ctx, replyToken, replyText)
	}
	return nil, nil
}
