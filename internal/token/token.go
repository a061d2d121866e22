package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/store"
)

// ReplyTokenLength is the entropy in bytes behind each token (256 bits).
const ReplyTokenLength = 32

var (
	ErrEmptyToken    = errors.New("reply token is required")
	ErrTokenNotFound = errors.New("reply token not found")
)

// Service issues and resolves the single-use credentials that let a rep
// respond to a coaching message without authenticating into the app.
//
// Tokens currently never expire; the product has not defined a TTL, so the
// only way to invalidate one is Revoke.
type Service struct {
	messages store.CoachingMessageStore
}

func NewService(messages store.CoachingMessageStore) *Service {
	return &Service{messages: messages}
}

// Issue mints a fresh token for a message and stores it 1:1. Re-issuing
// replaces the previous token (a re-sent message must not revive old links).
func (s *Service) Issue(ctx context.Context, messageID int64) (string, error) {
	raw := make([]byte, ReplyTokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating reply token: %w", err)
	}
	tok := base64.URLEncoding.EncodeToString(raw)

	if err := s.messages.SetToken(ctx, messageID, tok); err != nil {
		return "", fmt.Errorf("storing reply token: %w", err)
	}

	slog.InfoContext(ctx, "reply token issued", "coaching_message_id", messageID)
	return tok, nil
}

// Resolve looks a message up by exact token match. An unknown token and a
// near-miss behave identically.
func (s *Service) Resolve(ctx context.Context, tok string) (*model.CoachingMessage, error) {
	if strings.TrimSpace(tok) == "" {
		return nil, ErrEmptyToken
	}

	msg, err := s.messages.GetByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("resolving reply token: %w", err)
	}
	return msg, nil
}

// Revoke clears a message's token, invalidating any outstanding link.
func (s *Service) Revoke(ctx context.Context, messageID int64) error {
	if err := s.messages.ClearToken(ctx, messageID); err != nil {
		return fmt.Errorf("revoking reply token: %w", err)
	}
	slog.InfoContext(ctx, "reply token revoked", "coaching_message_id", messageID)
	return nil
}
