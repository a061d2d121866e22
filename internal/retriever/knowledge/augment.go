package knowledge

import (
	"context"
	"fmt"
	"strings"

	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/rubric"
)

// Augmentation is the retrieval output the composer consumes. Enhanced is
// false whenever retrieval was skipped or degraded.
type Augmentation struct {
	Context  []model.KnowledgeChunk
	Scripts  []model.KnowledgeChunk
	Enhanced bool
}

const (
	// transcriptContextLimit bounds how much call context rides along in the
	// query text; full transcripts blow up embedding cost for no recall gain.
	transcriptContextLimit = 1000

	scriptTopK       = 3
	scriptThreshold  = 0.4
	contextTopK      = 5
	contextThreshold = 0.3
)

// BuildAugmentation runs the two retrieval passes for a scored call: a
// combined query across all weak areas for prose context, then a narrow
// scripts query for the single weakest area. Queries run sequentially so the
// composed chunk order stays deterministic. Every failure degrades to an
// unenhanced result.
func (r *Retriever) BuildAugmentation(ctx context.Context, weakAreas []string, transcript string, methodology rubric.Methodology) Augmentation {
	if len(weakAreas) == 0 {
		return Augmentation{}
	}

	snippet := transcript
	if len(snippet) > transcriptContextLimit {
		snippet = snippet[:transcriptContextLimit]
	}

	contextChunks := r.RetrieveOrEmpty(ctx, model.RetrievalQuery{
		QueryText: fmt.Sprintf("Coaching guidance for weak areas: %s. Call context: %s",
			strings.Join(weakAreas, ", "), snippet),
		Methodology:         string(methodology),
		ComponentFilter:     normalizeAll(weakAreas),
		TopK:                contextTopK,
		SimilarityThreshold: contextThreshold,
	})

	scripts := r.RetrieveOrEmpty(ctx, model.RetrievalQuery{
		QueryText: fmt.Sprintf("Practice script for improving %s. Call context: %s",
			weakAreas[0], snippet),
		ContentType:         "script",
		Methodology:         string(methodology),
		ComponentFilter:     normalizeAll(weakAreas[:1]),
		TopK:                scriptTopK,
		SimilarityThreshold: scriptThreshold,
	})

	return Augmentation{
		Context:  contextChunks,
		Scripts:  scripts,
		Enhanced: len(contextChunks) > 0 || len(scripts) > 0,
	}
}

func normalizeAll(names []string) []string {
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = rubric.NormalizeKey(n)
	}
	return keys
}
