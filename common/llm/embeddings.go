package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Embedder turns query text into a vector for corpus similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type embedder struct {
	openai openai.Client
	model  string
}

// NewEmbedder builds an Embedder on the same OpenAI credentials as the chat
// client.
func NewEmbedder(cfg Config) (Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.EmbeddingModel
	if model == "" {
		model = "text-embedding-3-small"
	}

	return &embedder{
		openai: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (e *embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()

	resp, err := e.openai.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.model,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding in response")
	}

	slog.DebugContext(ctx, "embedding computed",
		"model", e.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"dimensions", len(resp.Data[0].Embedding))

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
