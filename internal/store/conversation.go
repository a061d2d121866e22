package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"salescoach.app/engine/core/db"
	"salescoach.app/engine/internal/model"
)

type conversationStore struct {
	q db.Querier
}

func newConversationStore(q db.Querier) ConversationStore {
	return &conversationStore{q: q}
}

const conversationColumns = `id, account_id, transcript, ai_summary, rep_email, call_date,
	methodology, methodology_scores, analyzed_at, created_at, updated_at`

func (s *conversationStore) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	row := s.q.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, id)

	conv, err := scanConversation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return conv, nil
}

func (s *conversationStore) UpdateScores(ctx context.Context, id int64, scores *model.Scorecard, analyzedAt time.Time) error {
	payload, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshaling scorecard: %w", err)
	}

	tag, err := s.q.Exec(ctx,
		`UPDATE conversations
		 SET methodology_scores = $2, analyzed_at = $3, updated_at = now()
		 WHERE id = $1`,
		id, payload, analyzedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanConversation(row pgx.Row) (*model.Conversation, error) {
	var (
		conv      model.Conversation
		scoresRaw []byte
	)
	if err := row.Scan(
		&conv.ID,
		&conv.AccountID,
		&conv.Transcript,
		&conv.AISummary,
		&conv.RepEmail,
		&conv.CallDate,
		&conv.Methodology,
		&scoresRaw,
		&conv.AnalyzedAt,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(scoresRaw) > 0 {
		var scores model.Scorecard
		if err := json.Unmarshal(scoresRaw, &scores); err != nil {
			return nil, fmt.Errorf("unmarshaling scorecard: %w", err)
		}
		conv.Scores = &scores
	}
	return &conv, nil
}
