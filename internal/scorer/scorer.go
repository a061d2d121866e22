package scorer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"salescoach.app/engine/common/llm"
	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/rubric"
)

// ErrUpstream marks a scoring-model failure. Unlike retrieval, scoring has no
// graceful degradation path: the pipeline has nothing to build on without
// scores, so the error surfaces to the caller.
var ErrUpstream = errors.New("scoring model failure")

// Scorer applies a methodology rubric to a transcript. The heuristic engine
// is always available; when an LLM client is configured its structured output
// refines the rubric evidence and is validated against a strict schema before
// acceptance.
type Scorer struct {
	llm llm.Client // nil = heuristic only
}

func New(llmClient llm.Client) *Scorer {
	return &Scorer{llm: llmClient}
}

// Score produces one ComponentScore per rubric component, in rubric order,
// each in [0,10]. Empty transcripts score 0 across the board with explicit
// no-data entries; they never error and never hit the model.
func (s *Scorer) Score(ctx context.Context, transcript, summary string, r rubric.Rubric) (*model.AnalysisResult, error) {
	start := time.Now()
	sig := extractSignals(transcript, summary, "")
	return s.score(ctx, sig, r, start)
}

// ScoreForRep is Score with rep attribution for the talk/listen signal.
func (s *Scorer) ScoreForRep(ctx context.Context, transcript, summary, repEmail string, r rubric.Rubric) (*model.AnalysisResult, error) {
	start := time.Now()
	sig := extractSignals(transcript, summary, repEmail)
	return s.score(ctx, sig, r, start)
}

func (s *Scorer) score(ctx context.Context, sig transcriptSignals, r rubric.Rubric, start time.Time) (*model.AnalysisResult, error) {
	if s.llm != nil && !sig.empty() {
		scores, err := s.llmScore(ctx, sig, r)
		if err != nil {
			return nil, err
		}
		result := model.NewAnalysisResult(scores)
		slog.InfoContext(ctx, "transcript scored",
			"methodology", r.Methodology,
			"mode", "llm",
			"overall", result.OverallScore,
			"duration_ms", time.Since(start).Milliseconds())
		return result, nil
	}

	result := model.NewAnalysisResult(heuristicScore(sig, r))
	slog.InfoContext(ctx, "transcript scored",
		"methodology", r.Methodology,
		"mode", "heuristic",
		"overall", result.OverallScore,
		"empty_transcript", sig.empty(),
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}
