package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"salescoach.app/engine/common/llm"
	"salescoach.app/engine/internal/model"
)

// Searcher runs a vector query against the knowledge corpus.
type Searcher interface {
	Search(ctx context.Context, query model.RetrievalQuery, vector []float32) ([]model.KnowledgeChunk, error)
}

// Retriever performs semantic search over the methodology corpus. It is an
// enhancement, never a hard dependency: callers use RetrieveOrEmpty and keep
// going when the corpus or the embedding service is down.
type Retriever struct {
	embedder llm.Embedder
	searcher Searcher
	timeout  time.Duration
}

const defaultRetrievalTimeout = 8 * time.Second

func NewRetriever(embedder llm.Embedder, searcher Searcher) *Retriever {
	return &Retriever{
		embedder: embedder,
		searcher: searcher,
		timeout:  defaultRetrievalTimeout,
	}
}

// Retrieve embeds the query text and returns the nearest corpus chunks above
// the similarity threshold, in search-ranked order.
func (r *Retriever) Retrieve(ctx context.Context, query model.RetrievalQuery) ([]model.KnowledgeChunk, error) {
	if r.embedder == nil || r.searcher == nil {
		return nil, fmt.Errorf("knowledge retrieval not configured")
	}
	if strings.TrimSpace(query.QueryText) == "" {
		return nil, fmt.Errorf("empty query text")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	vector, err := r.embedder.Embed(ctx, query.QueryText)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	chunks, err := r.searcher.Search(ctx, query, vector)
	if err != nil {
		return nil, fmt.Errorf("searching corpus: %w", err)
	}

	slog.DebugContext(ctx, "knowledge retrieved",
		"chunks", len(chunks),
		"top_k", query.TopK,
		"content_type", query.ContentType,
		"duration_ms", time.Since(start).Milliseconds())

	return chunks, nil
}

// RetrieveOrEmpty absorbs any retrieval failure: the error is logged as a
// degraded-compose warning and the pipeline continues unaugmented.
func (r *Retriever) RetrieveOrEmpty(ctx context.Context, query model.RetrievalQuery) []model.KnowledgeChunk {
	chunks, err := r.Retrieve(ctx, query)
	if err != nil {
		slog.WarnContext(ctx, "knowledge retrieval degraded, composing without augmentation",
			"error", err,
			"content_type", query.ContentType)
		return nil
	}
	return chunks
}
