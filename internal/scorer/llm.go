package scorer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"salescoach.app/engine/common/llm"
	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/rubric"
)

const (
	// One retry on a schema-invalid payload or a retryable upstream failure,
	// then the run fails. Malformed model output is rejected outright, never
	// salvaged by text scraping.
	maxScoreAttempts = 2

	scoreMaxTokens      = 2000
	transcriptCharLimit = 12000
)

// llmComponentScore is the strict response schema for one rubric component.
type llmComponentScore struct {
	Name            string   `json:"name" jsonschema:"required,description=Rubric component name exactly as given"`
	Score           float64  `json:"score" jsonschema:"required,description=Score from 0 to 10"`
	Indicators      []string `json:"indicators" jsonschema:"required,description=Verbatim or paraphrased evidence from the transcript"`
	MissingElements []string `json:"missing_elements" jsonschema:"required,description=What was absent and should happen next call"`
}

type llmScorePayload struct {
	Components []llmComponentScore `json:"components" jsonschema:"required,description=One entry per rubric component in the given order"`
}

func (s *Scorer) llmScore(ctx context.Context, sig transcriptSignals, r rubric.Rubric) ([]model.ComponentScore, error) {
	req := llm.Request{
		SystemPrompt: scoreSystemPrompt(r),
		UserPrompt:   scoreUserPrompt(sig),
		SchemaName:   "methodology_scores",
		Schema:       llm.GenerateSchema[llmScorePayload](),
		MaxTokens:    scoreMaxTokens,
		Temperature:  llm.Temp(0),
	}

	var lastErr error
	for attempt := 1; attempt <= maxScoreAttempts; attempt++ {
		var payload llmScorePayload
		if _, err := s.llm.Chat(ctx, req, &payload); err != nil {
			if attempt < maxScoreAttempts && llm.IsRetryable(ctx, err) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}

		scores, err := validatePayload(payload, r)
		if err == nil {
			return scores, nil
		}

		lastErr = err
		slog.WarnContext(ctx, "rejecting schema-invalid score payload",
			"methodology", r.Methodology,
			"attempt", attempt,
			"error", err)
	}

	return nil, fmt.Errorf("%w: invalid score payload after %d attempts: %v", ErrUpstream, maxScoreAttempts, lastErr)
}

// validatePayload enforces the output contract: exactly one score per rubric
// component, matched by normalized name, returned in rubric order, values
// clamped to [0,10] at one-decimal precision.
func validatePayload(payload llmScorePayload, r rubric.Rubric) ([]model.ComponentScore, error) {
	if len(payload.Components) != len(r.Components) {
		return nil, fmt.Errorf("expected %d components, got %d", len(r.Components), len(payload.Components))
	}

	byKey := make(map[string]llmComponentScore, len(payload.Components))
	for _, c := range payload.Components {
		byKey[rubric.NormalizeKey(c.Name)] = c
	}

	scores := make([]model.ComponentScore, 0, len(r.Components))
	for _, comp := range r.Components {
		got, ok := byKey[rubric.NormalizeKey(comp.Name)]
		if !ok {
			return nil, fmt.Errorf("missing component %q", comp.Name)
		}
		if got.Score < 0 || got.Score > 10 {
			return nil, fmt.Errorf("component %q score %v out of range", comp.Name, got.Score)
		}
		scores = append(scores, model.ComponentScore{
			Name:            comp.Name,
			Score:           math.Round(got.Score*10) / 10,
			Indicators:      got.Indicators,
			MissingElements: got.MissingElements,
		})
	}
	return scores, nil
}

func scoreSystemPrompt(r rubric.Rubric) string {
	var b strings.Builder
	b.WriteString("You are a sales coaching analyst. Score the call transcript against the ")
	b.WriteString(string(r.Methodology))
	b.WriteString(" methodology rubric.\n\nScore each component from 0 to 10. Cite evidence from the transcript in indicators and name concrete gaps in missing_elements. Score every component, in this exact order:\n")
	for i, c := range r.Components {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Name)
	}
	b.WriteString("\nAlso weigh: presence of an up-front qualification contract, depth of pain exploration (follow-up question count and specificity), budget/investment discussion, decision-maker identification, and the rep's talk/listen balance.")
	return b.String()
}

func scoreUserPrompt(sig transcriptSignals) string {
	transcript := sig.raw
	if len(transcript) > transcriptCharLimit {
		transcript = transcript[:transcriptCharLimit]
	}
	return "Transcript:\n" + transcript
}
