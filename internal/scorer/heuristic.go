package scorer

import (
	"fmt"
	"math"
	"strings"

	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/rubric"
)

const noDataIndicator = "No transcript data available"

// heuristicScore evaluates every rubric component against the extracted
// transcript signals. It is fully deterministic and never fails: an empty
// transcript scores every component 0 with an explicit no-data entry.
func heuristicScore(sig transcriptSignals, r rubric.Rubric) []model.ComponentScore {
	scores := make([]model.ComponentScore, 0, len(r.Components))

	for _, comp := range r.Components {
		if comp.Rule.Derived {
			scores = append(scores, scoreDerived(comp, scores, sig))
			continue
		}
		scores = append(scores, scoreComponent(comp, sig))
	}

	return scores
}

func scoreComponent(comp rubric.Component, sig transcriptSignals) model.ComponentScore {
	cs := model.ComponentScore{Name: comp.Name}

	if sig.empty() {
		cs.Score = 0
		cs.Indicators = []string{noDataIndicator}
		cs.MissingElements = []string{fmt.Sprintf("No evidence found for %s: transcript is empty", comp.Name)}
		return cs
	}

	// Any real conversation earns a floor of 2; evidence builds from there.
	// One primary phrase is direct proof of the ritual and lands the score in
	// the good band on its own.
	score := 2.0

	for _, phrase := range comp.Rule.Primary {
		if strings.Contains(sig.lowered, phrase) {
			if score < 8 {
				score = 8
			} else {
				score++
			}
			cs.Indicators = append(cs.Indicators, fmt.Sprintf("Used %q", phrase))
			if len(cs.Indicators) >= 3 {
				break
			}
		}
	}

	supportHits := 0
	for _, phrase := range comp.Rule.Support {
		if strings.Contains(sig.lowered, phrase) {
			supportHits++
			if supportHits <= 2 {
				cs.Indicators = append(cs.Indicators, fmt.Sprintf("Touched on %q", phrase))
			}
		}
	}
	score += math.Min(float64(supportHits), 2)

	probes, specific := sig.questionsAbout(comp.Rule.ProbeTerms)
	if probes > 0 {
		score += math.Min(float64(probes), 2)
		cs.Indicators = append(cs.Indicators,
			fmt.Sprintf("Asked %d probing question(s), %d with real depth", probes, specific))
	}
	if specific >= 2 {
		score++
	}

	cs.Score = math.Min(score, 10)

	if cs.Score < model.GoodThreshold {
		cs.MissingElements = append(cs.MissingElements, comp.Rule.Gap)
	}
	if len(cs.Indicators) == 0 {
		cs.Indicators = []string{fmt.Sprintf("No direct evidence of %s in this call", comp.Name)}
	}

	return cs
}

// scoreDerived handles components like Sandler's "Overall": the score is the
// rounded mean of the components scored so far, annotated with the
// talk/listen ratio.
func scoreDerived(comp rubric.Component, scored []model.ComponentScore, sig transcriptSignals) model.ComponentScore {
	cs := model.ComponentScore{Name: comp.Name}

	if sig.empty() || len(scored) == 0 {
		cs.Score = 0
		cs.Indicators = []string{noDataIndicator}
		cs.MissingElements = []string{fmt.Sprintf("No evidence found for %s: transcript is empty", comp.Name)}
		return cs
	}

	sum := 0.0
	for _, s := range scored {
		sum += s.Score
	}
	cs.Score = math.Round(sum / float64(len(scored)))

	if ratio := sig.talkListenRatio(); ratio >= 0 {
		cs.Indicators = append(cs.Indicators,
			fmt.Sprintf("Approximate talk/listen ratio: %d%% rep", int(math.Round(ratio*100))))
		// Reps dominating the call lose a point; disciplined listeners gain one.
		if ratio > 0.65 && cs.Score > 0 {
			cs.Score--
			cs.MissingElements = append(cs.MissingElements,
				"Let the prospect talk more: aim for under half of the airtime")
		} else if ratio > 0 && ratio < 0.45 && cs.Score < 10 {
			cs.Score++
		}
	}

	if cs.Score < model.GoodThreshold {
		cs.MissingElements = append(cs.MissingElements, comp.Rule.Gap)
	}
	if len(cs.Indicators) == 0 {
		cs.Indicators = []string{"Derived from component scores"}
	}

	return cs
}
