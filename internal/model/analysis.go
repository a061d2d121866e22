package model

import "math"

// Grade buckets a 0-10 score. The thresholds are canonical across the whole
// product: UI badges, email copy, and weak-area selection all use these.
type Grade string

const (
	GradeGood Grade = "good"
	GradeWarn Grade = "warn"
	GradePoor Grade = "poor"
)

// GoodThreshold is the score at which a component stops being a weak area.
const GoodThreshold = 7.0

// GradeFor buckets a score: >=7 good, >=5 warn, below poor.
func GradeFor(score float64) Grade {
	switch {
	case score >= GoodThreshold:
		return GradeGood
	case score >= 5:
		return GradeWarn
	default:
		return GradePoor
	}
}

// ComponentScore is a 0-10 rating plus evidence for one rubric dimension.
// Score is always defined, even for empty transcripts (0 with a "no data"
// indicator).
type ComponentScore struct {
	Name            string   `json:"name"`
	Score           float64  `json:"score"`
	Indicators      []string `json:"indicators"`
	MissingElements []string `json:"missing"`
}

// Grade returns the bucket for this component's score.
func (c ComponentScore) Grade() Grade {
	return GradeFor(c.Score)
}

// AnalysisResult is the scored breakdown of one conversation. OverallScore and
// OverallGrade are derived from the component scores, never set independently.
type AnalysisResult struct {
	OverallScore float64          `json:"overall"`
	OverallGrade Grade            `json:"grade"`
	Scores       []ComponentScore `json:"components"`
	RAGEnhanced  bool             `json:"rag_enhanced"`
}

// NewAnalysisResult derives the overall score (rounded mean) and grade from
// the given component scores.
func NewAnalysisResult(scores []ComponentScore) *AnalysisResult {
	overall := 0.0
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s.Score
		}
		overall = math.Round(sum / float64(len(scores)))
	}
	return &AnalysisResult{
		OverallScore: overall,
		OverallGrade: GradeFor(overall),
		Scores:       scores,
	}
}
