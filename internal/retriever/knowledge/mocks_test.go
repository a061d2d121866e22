package knowledge_test

import (
	"context"

	"salescoach.app/engine/internal/model"
)

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type mockSearcher struct {
	searchFn func(ctx context.Context, query model.RetrievalQuery, vector []float32) ([]model.KnowledgeChunk, error)
}

func (m *mockSearcher) Search(ctx context.Context, query model.RetrievalQuery, vector []float32) ([]model.KnowledgeChunk, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, vector)
	}
	return nil, nil
}
