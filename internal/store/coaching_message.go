package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"salescoach.app/engine/core/db"
	"salescoach.app/engine/internal/model"
)

type coachingMessageStore struct {
	q db.Querier
}

func newCoachingMessageStore(q db.Querier) CoachingMessageStore {
	return &coachingMessageStore{q: q}
}

const coachingMessageColumns = `id, account_id, conversation_id, rep_email, manager_email,
	methodology, coaching_content, status, generated_at, sent_at, read_at,
	rep_response, responded_at, reply_token, last_error`

func (s *coachingMessageStore) GetByID(ctx context.Context, id int64) (*model.CoachingMessage, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+coachingMessageColumns+` FROM coaching_messages WHERE id = $1`, id)
	return scanCoachingMessage(row)
}

func (s *coachingMessageStore) GetByToken(ctx context.Context, token string) (*model.CoachingMessage, error) {
	// Exact-match lookup only. The unique index makes this constant-behavior:
	// a near-miss token is indistinguishable from an unknown one.
	row := s.q.QueryRow(ctx,
		`SELECT `+coachingMessageColumns+` FROM coaching_messages WHERE reply_token = $1`, token)
	return scanCoachingMessage(row)
}

func (s *coachingMessageStore) Create(ctx context.Context, msg *model.CoachingMessage) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO coaching_messages (
			id, account_id, conversation_id, rep_email, manager_email,
			methodology, coaching_content, status, generated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		msg.ID, msg.AccountID, msg.ConversationID, msg.RepEmail, msg.ManagerEmail,
		msg.Methodology, msg.CoachingContent, msg.Status, msg.GeneratedAt)
	return err
}

func (s *coachingMessageStore) ListByAccount(ctx context.Context, accountID int64, limit int32) ([]model.CoachingMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.q.Query(ctx,
		`SELECT `+coachingMessageColumns+` FROM coaching_messages
		 WHERE account_id = $1 ORDER BY generated_at DESC LIMIT $2`,
		accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.CoachingMessage
	for rows.Next() {
		msg, err := scanCoachingMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *msg)
	}
	return msgs, rows.Err()
}

func (s *coachingMessageStore) UpdateContent(ctx context.Context, id int64, content string) error {
	return s.execOne(ctx,
		`UPDATE coaching_messages SET coaching_content = $2 WHERE id = $1`,
		id, content)
}

func (s *coachingMessageStore) SetToken(ctx context.Context, id int64, token string) error {
	return s.execOne(ctx,
		`UPDATE coaching_messages SET reply_token = $2 WHERE id = $1`,
		id, token)
}

func (s *coachingMessageStore) ClearToken(ctx context.Context, id int64) error {
	return s.execOne(ctx,
		`UPDATE coaching_messages SET reply_token = NULL WHERE id = $1`, id)
}

func (s *coachingMessageStore) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	return s.execOne(ctx,
		`UPDATE coaching_messages
		 SET status = $2, sent_at = $3, last_error = NULL
		 WHERE id = $1`,
		id, model.CoachingStatusSent, sentAt)
}

func (s *coachingMessageStore) MarkFailed(ctx context.Context, id int64, lastError string) error {
	return s.execOne(ctx,
		`UPDATE coaching_messages
		 SET status = $2, last_error = $3
		 WHERE id = $1`,
		id, model.CoachingStatusFailed, lastError)
}

func (s *coachingMessageStore) MarkRead(ctx context.Context, id int64, readAt time.Time) error {
	// Idempotent: only the first open sets read_at. A zero-row update here
	// means the message was already read, which is fine.
	_, err := s.q.Exec(ctx,
		`UPDATE coaching_messages
		 SET status = $2, read_at = $3
		 WHERE id = $1 AND read_at IS NULL`,
		id, model.CoachingStatusRead, readAt)
	return err
}

func (s *coachingMessageStore) SetReply(ctx context.Context, id int64, response string, respondedAt time.Time) error {
	// The reply guard lives in the WHERE clause so two concurrent
	// submissions cannot both pass it.
	tag, err := s.q.Exec(ctx,
		`UPDATE coaching_messages
		 SET rep_response = $2, responded_at = $3, status = $4
		 WHERE id = $1 AND (rep_response IS NULL OR rep_response = '')`,
		id, response, respondedAt, model.CoachingStatusReplied)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrDuplicate
	}
	return nil
}

func (s *coachingMessageStore) execOne(ctx context.Context, sql string, args ...any) error {
	tag, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCoachingMessage(row pgx.Row) (*model.CoachingMessage, error) {
	var msg model.CoachingMessage
	if err := row.Scan(
		&msg.ID,
		&msg.AccountID,
		&msg.ConversationID,
		&msg.RepEmail,
		&msg.ManagerEmail,
		&msg.Methodology,
		&msg.CoachingContent,
		&msg.Status,
		&msg.GeneratedAt,
		&msg.SentAt,
		&msg.ReadAt,
		&msg.RepResponse,
		&msg.RespondedAt,
		&msg.ReplyToken,
		&msg.LastError,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}
