package knowledge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"

	"salescoach.app/engine/internal/model"
)

// TypesenseConfig points the searcher at the corpus collection. Content
// management owns the collection and its embedding pipeline; the engine only
// queries it.
type TypesenseConfig struct {
	URL        string
	APIKey     string
	Collection string
}

func (c TypesenseConfig) Enabled() bool {
	return c.URL != "" && c.APIKey != ""
}

type typesenseSearcher struct {
	client     *typesense.Client
	collection string
}

// NewTypesenseSearcher builds the corpus Searcher over a Typesense collection
// of KnowledgeChunk documents.
func NewTypesenseSearcher(cfg TypesenseConfig) Searcher {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)
	collection := cfg.Collection
	if collection == "" {
		collection = "knowledge_chunks"
	}
	return &typesenseSearcher{client: client, collection: collection}
}

func (s *typesenseSearcher) Search(ctx context.Context, query model.RetrievalQuery, vector []float32) ([]model.KnowledgeChunk, error) {
	topK := query.TopK
	if topK <= 0 {
		topK = 5
	}

	params := &api.SearchCollectionParams{
		Q:           pointer.String("*"),
		QueryBy:     pointer.String("text"),
		PerPage:     pointer.Int(topK),
		VectorQuery: pointer.String(vectorQuery(vector, topK, query.SimilarityThreshold)),
	}
	if filter := filterBy(query); filter != "" {
		params.FilterBy = pointer.String(filter)
	}

	result, err := s.client.Collection(s.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("typesense search: %w", err)
	}
	if result.Hits == nil {
		return nil, nil
	}

	chunks := make([]model.KnowledgeChunk, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		chunks = append(chunks, chunkFromDocument(*hit.Document))
	}
	return chunks, nil
}

// vectorQuery renders the Typesense kNN clause. The corpus stores cosine
// vectors, so a similarity threshold t becomes a distance threshold 1-t.
func vectorQuery(vector []float32, k int, similarityThreshold float64) string {
	var b strings.Builder
	b.WriteString("embedding:([")
	for i, v := range vector {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%g", v)
	}
	fmt.Fprintf(&b, "], k:%d", k)
	if similarityThreshold > 0 {
		fmt.Fprintf(&b, ", distance_threshold:%.2f", 1-similarityThreshold)
	}
	b.WriteString(")")
	return b.String()
}

func filterBy(query model.RetrievalQuery) string {
	var clauses []string
	if query.Methodology != "" {
		clauses = append(clauses, fmt.Sprintf("methodology_tag:=[%s,any]", query.Methodology))
	}
	if query.ContentType != "" {
		clauses = append(clauses, fmt.Sprintf("content_type:=%s", query.ContentType))
	}
	if len(query.ComponentFilter) > 0 {
		clauses = append(clauses, fmt.Sprintf("component_tags:=[%s]", strings.Join(query.ComponentFilter, ",")))
	}
	return strings.Join(clauses, " && ")
}

func chunkFromDocument(doc map[string]any) model.KnowledgeChunk {
	return model.KnowledgeChunk{
		ID:             stringField(doc, "id"),
		Title:          stringField(doc, "title"),
		Text:           stringField(doc, "text"),
		ContentType:    stringField(doc, "content_type"),
		MethodologyTag: stringField(doc, "methodology_tag"),
		ComponentTags:  stringsField(doc, "component_tags"),
		SituationTags:  stringsField(doc, "situation_tags"),
	}
}

func stringField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func stringsField(doc map[string]any, key string) []string {
	raw, ok := doc[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
