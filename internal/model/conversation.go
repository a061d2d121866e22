package model

import "time"

// Conversation is a raw call record populated by the ingestion connectors
// (HubSpot, Fathom, Aircall). The engine only reads transcript context and
// writes back methodology scores; everything else belongs to the connectors.
type Conversation struct {
	ID          int64      `json:"id"`
	AccountID   int64      `json:"account_id"`
	Transcript  string     `json:"transcript"`
	AISummary   *string    `json:"ai_summary,omitempty"`
	RepEmail    string     `json:"rep_email"`
	CallDate    time.Time  `json:"call_date"`
	Methodology string     `json:"methodology"`
	Scores      *Scorecard `json:"methodology_scores,omitempty"`
	AnalyzedAt  *time.Time `json:"analyzed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Scorecard is the persisted shape of an analysis run on the conversation
// record. Each run overwrites the previous one; there is no score history.
type Scorecard struct {
	Overall     float64          `json:"overall"`
	Grade       Grade            `json:"grade"`
	Components  []ComponentScore `json:"components"`
	RAGEnhanced bool             `json:"rag_enhanced"`
}

// ScorecardFrom converts an analysis result into its persisted form.
func ScorecardFrom(result *AnalysisResult) *Scorecard {
	return &Scorecard{
		Overall:     result.OverallScore,
		Grade:       result.OverallGrade,
		Components:  result.Scores,
		RAGEnhanced: result.RAGEnhanced,
	}
}
