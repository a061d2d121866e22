package knowledge_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/retriever/knowledge"
	"salescoach.app/engine/internal/rubric"
)

var _ = Describe("Retriever", func() {
	var (
		ctx      context.Context
		embedder *mockEmbedder
		searcher *mockSearcher
	)

	BeforeEach(func() {
		ctx = context.Background()
		embedder = &mockEmbedder{}
		searcher = &mockSearcher{}
	})

	Describe("Retrieve", func() {
		It("embeds the query and returns the searcher's chunks", func() {
			var capturedQuery model.RetrievalQuery
			var capturedVector []float32
			searcher.searchFn = func(_ context.Context, query model.RetrievalQuery, vector []float32) ([]model.KnowledgeChunk, error) {
				capturedQuery = query
				capturedVector = vector
				return []model.KnowledgeChunk{{ID: "c1", Title: "Budget Opener"}}, nil
			}

			r := knowledge.NewRetriever(embedder, searcher)
			chunks, err := r.Retrieve(ctx, model.RetrievalQuery{QueryText: "budget coaching", TopK: 3})

			Expect(err).NotTo(HaveOccurred())
			Expect(chunks).To(HaveLen(1))
			Expect(capturedQuery.TopK).To(Equal(3))
			Expect(capturedVector).To(Equal([]float32{0.1, 0.2, 0.3}))
		})

		It("rejects empty query text", func() {
			r := knowledge.NewRetriever(embedder, searcher)
			_, err := r.Retrieve(ctx, model.RetrievalQuery{QueryText: "   "})
			Expect(err).To(HaveOccurred())
		})

		It("errors when not configured", func() {
			r := knowledge.NewRetriever(nil, nil)
			_, err := r.Retrieve(ctx, model.RetrievalQuery{QueryText: "anything"})
			Expect(err).To(HaveOccurred())
		})

		It("propagates embedding failures", func() {
			embedder.embedFn = func(_ context.Context, _ string) ([]float32, error) {
				return nil, fmt.Errorf("quota exceeded")
			}

			r := knowledge.NewRetriever(embedder, searcher)
			_, err := r.Retrieve(ctx, model.RetrievalQuery{QueryText: "anything"})
			Expect(err).To(MatchError(ContainSubstring("embedding query")))
		})
	})

	Describe("RetrieveOrEmpty", func() {
		It("absorbs failures and returns nothing", func() {
			searcher.searchFn = func(_ context.Context, _ model.RetrievalQuery, _ []float32) ([]model.KnowledgeChunk, error) {
				return nil, fmt.Errorf("corpus unreachable")
			}

			r := knowledge.NewRetriever(embedder, searcher)
			Expect(r.RetrieveOrEmpty(ctx, model.RetrievalQuery{QueryText: "anything"})).To(BeEmpty())
		})
	})

	Describe("BuildAugmentation", func() {
		It("returns a zero value when there are no weak areas", func() {
			r := knowledge.NewRetriever(embedder, searcher)
			aug := r.BuildAugmentation(ctx, nil, "transcript", rubric.MethodologySandler)
			Expect(aug.Enhanced).To(BeFalse())
			Expect(aug.Context).To(BeEmpty())
			Expect(aug.Scripts).To(BeEmpty())
		})

		It("runs a combined context query and a scripts query for the weakest area", func() {
			var queries []model.RetrievalQuery
			searcher.searchFn = func(_ context.Context, query model.RetrievalQuery, _ []float32) ([]model.KnowledgeChunk, error) {
				queries = append(queries, query)
				if query.ContentType == "script" {
					return []model.KnowledgeChunk{{ID: "s1", ContentType: "script"}}, nil
				}
				return []model.KnowledgeChunk{{ID: "c1"}, {ID: "c2"}}, nil
			}

			r := knowledge.NewRetriever(embedder, searcher)
			aug := r.BuildAugmentation(ctx, []string{"Budget", "Pain"}, "transcript text", rubric.MethodologySandler)

			Expect(aug.Enhanced).To(BeTrue())
			Expect(aug.Context).To(HaveLen(2))
			Expect(aug.Scripts).To(HaveLen(1))

			Expect(queries).To(HaveLen(2))
			Expect(queries[0].QueryText).To(ContainSubstring("Budget, Pain"))
			Expect(queries[0].ComponentFilter).To(Equal([]string{"budget", "pain"}))
			Expect(queries[1].ContentType).To(Equal("script"))
			Expect(queries[1].QueryText).To(ContainSubstring("improving Budget"))
			Expect(queries[1].ComponentFilter).To(Equal([]string{"budget"}))
		})

		It("degrades to an unenhanced result when retrieval fails", func() {
			searcher.searchFn = func(_ context.Context, _ model.RetrievalQuery, _ []float32) ([]model.KnowledgeChunk, error) {
				return nil, fmt.Errorf("corpus unreachable")
			}

			r := knowledge.NewRetriever(embedder, searcher)
			aug := r.BuildAugmentation(ctx, []string{"Budget"}, "transcript", rubric.MethodologySandler)

			Expect(aug.Enhanced).To(BeFalse())
			Expect(aug.Context).To(BeEmpty())
			Expect(aug.Scripts).To(BeEmpty())
		})
	})
})
