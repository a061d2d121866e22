package coaching_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"salescoach.app/engine/common/id"
	"salescoach.app/engine/internal/coaching"
	"salescoach.app/engine/internal/lock"
	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/retriever/knowledge"
	"salescoach.app/engine/internal/scorer"
	"salescoach.app/engine/internal/store"
)

var _ = Describe("AnalysisService", func() {
	var (
		ctx           context.Context
		conversations *mockConversationStore
		messages      *mockCoachingMessageStore
		guard         *mockGuard
		tx            *mockTxRunner
	)

	const transcript = "Rep: Thanks for taking the time today. What budget have you set aside for this project?\n" +
		"Prospect: Around fifty thousand this year.\n" +
		"Rep: What's your biggest challenge with the current setup?\n" +
		"Prospect: Reporting takes days and nobody trusts the numbers."

	newConversation := func() *model.Conversation {
		return &model.Conversation{
			ID:          101,
			AccountID:   7,
			Transcript:  transcript,
			RepEmail:    "jordan.diaz@acme.com",
			CallDate:    time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC),
			Methodology: "sandler",
		}
	}

	newService := func(retriever *knowledge.Retriever) coaching.AnalysisService {
		return coaching.NewAnalysisService(conversations, scorer.New(nil), retriever, guard, tx)
	}

	BeforeEach(func() {
		ctx = context.Background()
		Expect(id.Init(1)).To(Succeed())

		conversations = &mockConversationStore{}
		messages = &mockCoachingMessageStore{}
		guard = &mockGuard{}
		tx = &mockTxRunner{conversations: conversations, messages: messages}
	})

	It("scores the call and persists scorecard and draft together", func() {
		conversations.getByIDFn = func(_ context.Context, conversationID int64) (*model.Conversation, error) {
			Expect(conversationID).To(Equal(int64(101)))
			return newConversation(), nil
		}

		var savedScores *model.Scorecard
		conversations.updateScoresFn = func(_ context.Context, conversationID int64, scores *model.Scorecard, _ time.Time) error {
			Expect(conversationID).To(Equal(int64(101)))
			savedScores = scores
			return nil
		}

		var created *model.CoachingMessage
		messages.createFn = func(_ context.Context, msg *model.CoachingMessage) error {
			created = msg
			return nil
		}

		msg, err := newService(nil).Analyze(ctx, 101, "manager@acme.com")
		Expect(err).NotTo(HaveOccurred())

		Expect(savedScores).NotTo(BeNil())
		Expect(savedScores.Components).To(HaveLen(8))
		Expect(savedScores.RAGEnhanced).To(BeFalse())

		Expect(created).To(Equal(msg))
		Expect(msg.ID).NotTo(BeZero())
		Expect(msg.AccountID).To(Equal(int64(7)))
		Expect(msg.ConversationID).To(Equal(int64(101)))
		Expect(msg.RepEmail).To(Equal("jordan.diaz@acme.com"))
		Expect(msg.ManagerEmail).To(Equal("manager@acme.com"))
		Expect(msg.Methodology).To(Equal("sandler"))
		Expect(msg.Status).To(Equal(model.CoachingStatusGenerated))
		Expect(msg.CoachingContent).To(ContainSubstring("Coaching notes for Jordan Diaz"))
		Expect(msg.CoachingContent).To(ContainSubstring("Call date: March 3, 2026"))

		Expect(guard.released).To(Equal(1))
	})

	It("augments the draft with practice scripts when retrieval finds them", func() {
		conversations.getByIDFn = func(_ context.Context, _ int64) (*model.Conversation, error) {
			return newConversation(), nil
		}

		var savedScores *model.Scorecard
		conversations.updateScoresFn = func(_ context.Context, _ int64, scores *model.Scorecard, _ time.Time) error {
			savedScores = scores
			return nil
		}

		searcher := &mockSearcher{
			searchFn: func(_ context.Context, query model.RetrievalQuery, _ []float32) ([]model.KnowledgeChunk, error) {
				if query.ContentType == "script" {
					return []model.KnowledgeChunk{{Title: "Decision Mapping Drill", Text: "Ask who signs off.", ContentType: "script"}}, nil
				}
				return []model.KnowledgeChunk{{
					Title:         "Pain Funnel Reminder",
					Text:          "Quantify the cost of the problem before presenting.",
					ComponentTags: []string{"pain"},
				}}, nil
			},
		}
		retriever := knowledge.NewRetriever(&mockEmbedder{}, searcher)

		msg, err := newService(retriever).Analyze(ctx, 101, "manager@acme.com")
		Expect(err).NotTo(HaveOccurred())

		Expect(msg.CoachingContent).To(ContainSubstring("Recommended Practice Scripts"))
		Expect(msg.CoachingContent).To(ContainSubstring("Decision Mapping Drill"))
		Expect(msg.CoachingContent).To(ContainSubstring("Pain Funnel Reminder: Quantify the cost of the problem before presenting."))
		Expect(savedScores.RAGEnhanced).To(BeTrue())
	})

	It("enriches the draft with guidance chunks even when no scripts match", func() {
		conversations.getByIDFn = func(_ context.Context, _ int64) (*model.Conversation, error) {
			return newConversation(), nil
		}

		var savedScores *model.Scorecard
		conversations.updateScoresFn = func(_ context.Context, _ int64, scores *model.Scorecard, _ time.Time) error {
			savedScores = scores
			return nil
		}

		searcher := &mockSearcher{
			searchFn: func(_ context.Context, query model.RetrievalQuery, _ []float32) ([]model.KnowledgeChunk, error) {
				if query.ContentType == "script" {
					return nil, nil
				}
				return []model.KnowledgeChunk{{
					Title: "Discovery Pacing",
					Text:  "Slow down after a pain answer and ask what it costs them.",
				}}, nil
			},
		}
		retriever := knowledge.NewRetriever(&mockEmbedder{}, searcher)

		msg, err := newService(retriever).Analyze(ctx, 101, "manager@acme.com")
		Expect(err).NotTo(HaveOccurred())

		Expect(msg.CoachingContent).NotTo(ContainSubstring("Recommended Practice Scripts"))
		Expect(msg.CoachingContent).To(ContainSubstring("Discovery Pacing: Slow down after a pain answer and ask what it costs them."))
		Expect(savedScores.RAGEnhanced).To(BeTrue())
	})

	It("composes unaugmented when retrieval degrades", func() {
		conversations.getByIDFn = func(_ context.Context, _ int64) (*model.Conversation, error) {
			return newConversation(), nil
		}

		var savedScores *model.Scorecard
		conversations.updateScoresFn = func(_ context.Context, _ int64, scores *model.Scorecard, _ time.Time) error {
			savedScores = scores
			return nil
		}

		searcher := &mockSearcher{
			searchFn: func(_ context.Context, _ model.RetrievalQuery, _ []float32) ([]model.KnowledgeChunk, error) {
				return nil, fmt.Errorf("corpus unreachable")
			},
		}
		retriever := knowledge.NewRetriever(&mockEmbedder{}, searcher)

		msg, err := newService(retriever).Analyze(ctx, 101, "manager@acme.com")
		Expect(err).NotTo(HaveOccurred())

		Expect(msg.CoachingContent).NotTo(ContainSubstring("Recommended Practice Scripts"))
		Expect(savedScores.RAGEnhanced).To(BeFalse())
	})

	It("rejects a zero conversation id", func() {
		_, err := newService(nil).Analyze(ctx, 0, "manager@acme.com")
		Expect(err).To(MatchError(coaching.ErrInvalidConversation))
	})

	It("maps a store miss to the not-found sentinel", func() {
		conversations.getByIDFn = func(_ context.Context, _ int64) (*model.Conversation, error) {
			return nil, store.ErrNotFound
		}

		_, err := newService(nil).Analyze(ctx, 101, "manager@acme.com")
		Expect(err).To(MatchError(coaching.ErrConversationNotFound))
	})

	It("surfaces a held analysis lock", func() {
		guard.acquireFn = func(_ context.Context, _ int64) (func(), error) {
			return nil, lock.ErrHeld
		}

		_, err := newService(nil).Analyze(ctx, 101, "manager@acme.com")
		Expect(err).To(MatchError(lock.ErrHeld))
	})

	It("fails the run when the transaction fails", func() {
		conversations.getByIDFn = func(_ context.Context, _ int64) (*model.Conversation, error) {
			return newConversation(), nil
		}
		tx.err = fmt.Errorf("connection lost")

		_, err := newService(nil).Analyze(ctx, 101, "manager@acme.com")
		Expect(err).To(MatchError(ContainSubstring("connection lost")))
		Expect(guard.released).To(Equal(1))
	})
})
