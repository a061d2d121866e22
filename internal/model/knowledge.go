package model

// KnowledgeChunk is an immutable corpus entry: a methodology script or snippet
// indexed for semantic search. Content management owns the corpus; the engine
// only reads it.
type KnowledgeChunk struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Text           string    `json:"text"`
	ContentType    string    `json:"content_type"`
	MethodologyTag string    `json:"methodology_tag"`
	ComponentTags  []string  `json:"component_tags"`
	SituationTags  []string  `json:"situation_tags"`
	Embedding      []float32 `json:"embedding,omitempty"`
}

// RetrievalQuery scopes a semantic search over the knowledge corpus.
type RetrievalQuery struct {
	QueryText           string
	ContentType         string
	Methodology         string
	ComponentFilter     []string
	TopK                int
	SimilarityThreshold float64
}
