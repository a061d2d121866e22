package coaching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"salescoach.app/engine/common/id"
	"salescoach.app/engine/common/logger"
	"salescoach.app/engine/internal/composer"
	"salescoach.app/engine/internal/lock"
	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/retriever/knowledge"
	"salescoach.app/engine/internal/rubric"
	"salescoach.app/engine/internal/scorer"
	"salescoach.app/engine/internal/store"
)

// AnalysisService runs the scoring pipeline for one conversation: score the
// transcript against the methodology rubric, pick weak areas, retrieve
// knowledge, compose a draft, and persist scorecard + coaching message.
type AnalysisService interface {
	Analyze(ctx context.Context, conversationID int64, managerEmail string) (*model.CoachingMessage, error)
}

type analysisService struct {
	conversations store.ConversationStore
	scorer        *scorer.Scorer
	retriever     *knowledge.Retriever // nil = augmentation disabled
	guard         lock.AnalysisGuard
	tx            TxRunner
}

func NewAnalysisService(
	conversations store.ConversationStore,
	sc *scorer.Scorer,
	retriever *knowledge.Retriever,
	guard lock.AnalysisGuard,
	tx TxRunner,
) AnalysisService {
	if guard == nil {
		guard = lock.NopGuard{}
	}
	return &analysisService{
		conversations: conversations,
		scorer:        sc,
		retriever:     retriever,
		guard:         guard,
		tx:            tx,
	}
}

func (s *analysisService) Analyze(ctx context.Context, conversationID int64, managerEmail string) (*model.CoachingMessage, error) {
	if conversationID == 0 {
		return nil, ErrInvalidConversation
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ConversationID: logger.Ptr(conversationID),
		Component:      "engine.coaching.analysis",
	})
	sc := logger.StartSpan(ctx, "engine.analyze_conversation")
	defer sc.End()
	ctx = sc.Context()
	start := time.Now()

	release, err := s.guard.Acquire(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	defer release()

	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("loading conversation: %w", err)
	}

	r := rubric.ForMethodology(rubric.Parse(conv.Methodology))
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		AccountID:   logger.Ptr(conv.AccountID),
		Methodology: logger.Ptr(string(r.Methodology)),
	})
	summary := ""
	if conv.AISummary != nil {
		summary = *conv.AISummary
	}

	// Scoring has no fallback: without scores the rest of the pipeline has
	// nothing to build on, so upstream failures surface to the caller.
	result, err := s.scorer.ScoreForRep(ctx, conv.Transcript, summary, conv.RepEmail, r)
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}

	weakAreas := scorer.SelectWeak(result.Scores, r, scorer.DefaultWeakLimit)

	var aug knowledge.Augmentation
	if s.retriever != nil && len(weakAreas) > 0 {
		aug = s.retriever.BuildAugmentation(ctx, weakAreas, conv.Transcript, r.Methodology)
	}
	result.RAGEnhanced = aug.Enhanced

	content := composer.Compose(
		result,
		composer.DisplayNameFromEmail(conv.RepEmail),
		conv.CallDate.Format("January 2, 2006"),
		aug.Context,
		aug.Scripts,
	)

	msg := &model.CoachingMessage{
		ID:              id.New(),
		AccountID:       conv.AccountID,
		ConversationID:  conv.ID,
		RepEmail:        conv.RepEmail,
		ManagerEmail:    managerEmail,
		Methodology:     string(r.Methodology),
		CoachingContent: content,
		Status:          model.CoachingStatusGenerated,
		GeneratedAt:     time.Now(),
	}

	// Scorecard overwrite and message creation land together or not at all;
	// a cancelled run never leaves a scored call without its draft.
	err = s.tx.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Conversations().UpdateScores(ctx, conv.ID, model.ScorecardFrom(result), time.Now()); err != nil {
			return fmt.Errorf("updating conversation scores: %w", err)
		}
		if err := stores.CoachingMessages().Create(ctx, msg); err != nil {
			return fmt.Errorf("creating coaching message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "analysis completed",
		"overall", result.OverallScore,
		"grade", result.OverallGrade,
		"weak_areas", len(weakAreas),
		"rag_enhanced", result.RAGEnhanced,
		"duration_ms", time.Since(start).Milliseconds())

	return msg, nil
}
