package coaching

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"salescoach.app/engine/common/logger"
	"salescoach.app/engine/internal/mail"
	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/store"
	"salescoach.app/engine/internal/token"
)

// LifecycleService owns the coaching message state machine:
// generated -> sent -> read -> replied, with failed reachable from a send
// attempt. There is no un-send and no transition out of replied.
type LifecycleService interface {
	Get(ctx context.Context, messageID int64) (*model.CoachingMessage, error)
	List(ctx context.Context, accountID int64, limit int32) ([]model.CoachingMessage, error)
	Edit(ctx context.Context, messageID int64, content string) (*model.CoachingMessage, error)
	Send(ctx context.Context, messageID int64) (*model.CoachingMessage, error)
	Open(ctx context.Context, replyToken string) (*model.CoachingMessage, error)
	Reply(ctx context.Context, replyToken, replyText string) (*model.CoachingMessage, error)
}

// maxLastErrorLen bounds what a transport failure can write into last_error;
// some upstream providers echo entire request bodies back in error text.
const maxLastErrorLen = 500

type lifecycleService struct {
	messages     store.CoachingMessageStore
	tokens       *token.Service
	sender       mail.Sender
	replyBaseURL string
}

func NewLifecycleService(
	messages store.CoachingMessageStore,
	tokens *token.Service,
	sender mail.Sender,
	replyBaseURL string,
) LifecycleService {
	return &lifecycleService{
		messages:     messages,
		tokens:       tokens,
		sender:       sender,
		replyBaseURL: replyBaseURL,
	}
}

func (s *lifecycleService) Get(ctx context.Context, messageID int64) (*model.CoachingMessage, error) {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("loading coaching message: %w", err)
	}
	return msg, nil
}

func (s *lifecycleService) List(ctx context.Context, accountID int64, limit int32) ([]model.CoachingMessage, error) {
	return s.messages.ListByAccount(ctx, accountID, limit)
}

// Edit overwrites the draft content. Managers may edit any number of times,
// but only while the message is still in the generated bucket.
func (s *lifecycleService) Edit(ctx context.Context, messageID int64, content string) (*model.CoachingMessage, error) {
	msg, err := s.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !msg.Editable() {
		return nil, ErrEditAfterSend
	}

	if err := s.messages.UpdateContent(ctx, messageID, content); err != nil {
		return nil, fmt.Errorf("updating coaching content: %w", err)
	}

	msg.CoachingContent = content
	slog.InfoContext(ctx, "coaching message edited", "coaching_message_id", messageID)
	return msg, nil
}

// Send mints a reply token, hands the message to the email transport, and
// transitions to sent. A transport failure lands in failed with the error
// recorded; re-invoking Send retries.
func (s *lifecycleService) Send(ctx context.Context, messageID int64) (*model.CoachingMessage, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: logger.Ptr(messageID),
		Component: "engine.coaching.lifecycle",
	})

	msg, err := s.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !msg.Sendable() {
		return nil, ErrNotSendable
	}

	tok, err := s.tokens.Issue(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if err := s.sender.Send(ctx, s.buildEmail(msg, tok)); err != nil {
		reason := logger.Truncate(err.Error(), maxLastErrorLen)
		if markErr := s.messages.MarkFailed(ctx, messageID, reason); markErr != nil {
			slog.ErrorContext(ctx, "failed to record send failure", "error", markErr)
		}
		msg.Status = model.CoachingStatusFailed
		msg.LastError = &reason
		slog.WarnContext(ctx, "coaching message delivery failed", "error", err)
		return msg, fmt.Errorf("sending coaching message: %w", err)
	}

	sentAt := time.Now()
	if err := s.messages.MarkSent(ctx, messageID, sentAt); err != nil {
		return nil, fmt.Errorf("marking coaching message sent: %w", err)
	}

	msg.Status = model.CoachingStatusSent
	msg.SentAt = &sentAt
	msg.LastError = nil
	slog.InfoContext(ctx, "coaching message sent", "to", msg.RepEmail)
	return msg, nil
}

// Open resolves a reply link. The first open moves sent -> read; repeated
// opens are harmless and never touch readAt again.
func (s *lifecycleService) Open(ctx context.Context, replyToken string) (*model.CoachingMessage, error) {
	msg, err := s.tokens.Resolve(ctx, replyToken)
	if err != nil {
		return nil, err
	}

	if msg.ReadAt == nil && msg.Status == model.CoachingStatusSent {
		readAt := time.Now()
		if err := s.messages.MarkRead(ctx, msg.ID, readAt); err != nil {
			return nil, fmt.Errorf("marking coaching message read: %w", err)
		}
		msg.Status = model.CoachingStatusRead
		msg.ReadAt = &readAt
		slog.InfoContext(ctx, "coaching message read", "coaching_message_id", msg.ID)
	}

	return msg, nil
}

// Reply redeems the token: the rep's response is recorded exactly once and
// the message becomes terminal.
func (s *lifecycleService) Reply(ctx context.Context, replyToken, replyText string) (*model.CoachingMessage, error) {
	if strings.TrimSpace(replyText) == "" {
		return nil, ErrEmptyReply
	}

	msg, err := s.tokens.Resolve(ctx, replyToken)
	if err != nil {
		return nil, err
	}
	if msg.HasReply() {
		return nil, ErrDuplicateReply
	}

	respondedAt := time.Now()
	if err := s.messages.SetReply(ctx, msg.ID, replyText, respondedAt); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race against a concurrent submission; the stored
			// response wins.
			return nil, ErrDuplicateReply
		}
		return nil, fmt.Errorf("recording reply: %w", err)
	}

	msg.Status = model.CoachingStatusReplied
	msg.RepResponse = &replyText
	msg.RespondedAt = &respondedAt
	slog.InfoContext(ctx, "coaching message replied", "coaching_message_id", msg.ID)
	return msg, nil
}

func (s *lifecycleService) buildEmail(msg *model.CoachingMessage, tok string) mail.Request {
	replyURL := fmt.Sprintf("%s/reply?token=%s", strings.TrimRight(s.replyBaseURL, "/"), tok)

	text := msg.CoachingContent +
		"\n\nReply to your manager here (no login needed):\n" + replyURL + "\n"

	htmlBody := "<pre style=\"font-family:inherit;white-space:pre-wrap\">" +
		html.EscapeString(msg.CoachingContent) +
		"</pre><p><a href=\"" + replyURL + "\">Reply to your manager</a></p>"

	return mail.Request{
		To:      msg.RepEmail,
		Subject: "Coaching notes from your last call",
		Text:    text,
		HTML:    htmlBody,
		ReplyTo: msg.ManagerEmail,
		Headers: map[string]string{
			"X-Coaching-Message-Id": strconv.FormatInt(msg.ID, 10),
			"X-Reply-Token":         tok,
		},
	}
}
