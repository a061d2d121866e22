package rubric

import (
	"strings"
)

// Methodology identifies which sales framework's rubric applies to a call.
type Methodology string

const (
	MethodologySandler    Methodology = "sandler"
	MethodologyMEDDIC     Methodology = "meddic"
	MethodologyChallenger Methodology = "challenger"
	MethodologySPIN       Methodology = "spin"
	MethodologyGap        Methodology = "gap"
	MethodologyGeneric    Methodology = "generic"
)

// Component is one scorable dimension of a rubric, with the detection rule
// the heuristic scorer evaluates against the transcript.
type Component struct {
	Name string
	// Key is the canonical weak-area key. Components from different
	// methodologies that coach the same skill share a key ("Pain" and
	// "Identify Pain" both normalize to "pain").
	Key  string
	Rule DetectionRule
}

// DetectionRule holds the phrase evidence a component looks for.
// Primary phrases are direct evidence of the ritual (one hit carries the
// score into the "good" band); Support phrases are weaker corroboration.
// ProbeTerms count follow-up questions touching the component's topic.
type DetectionRule struct {
	Primary    []string
	Support    []string
	ProbeTerms []string
	// Gap is the missing-element text used when the component scores weak.
	Gap string
	// Derived marks a component whose score is computed from the other
	// components rather than from its own phrase evidence.
	Derived bool
}

// Rubric is the fixed ordered set of scorable components for one methodology.
type Rubric struct {
	Methodology Methodology
	Components  []Component
}

// Names returns the component names in rubric order.
func (r Rubric) Names() []string {
	names := make([]string, len(r.Components))
	for i, c := range r.Components {
		names[i] = c.Name
	}
	return names
}

// OrderOf returns the declared position of a component name, for stable
// tie-breaking. Unknown names sort last.
func (r Rubric) OrderOf(name string) int {
	key := NormalizeKey(name)
	for i, c := range r.Components {
		if c.Key == key {
			return i
		}
	}
	return len(r.Components)
}

// Parse maps a stored methodology string onto a known variant. Anything
// unrecognized falls back to generic rather than failing the analysis.
func Parse(s string) Methodology {
	switch Methodology(strings.ToLower(strings.TrimSpace(s))) {
	case MethodologySandler:
		return MethodologySandler
	case MethodologyMEDDIC:
		return MethodologyMEDDIC
	case MethodologyChallenger:
		return MethodologyChallenger
	case MethodologySPIN:
		return MethodologySPIN
	case MethodologyGap:
		return MethodologyGap
	default:
		return MethodologyGeneric
	}
}

// ForMethodology returns the rubric for a methodology. All variants dispatch
// through this one table; there are no per-methodology code paths.
func ForMethodology(m Methodology) Rubric {
	if r, ok := rubrics[m]; ok {
		return r
	}
	return rubrics[MethodologyGeneric]
}

// NormalizeKey collapses a component name to its canonical weak-area key:
// lower-cased, whitespace-normalized, and mapped through the synonym table.
func NormalizeKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	k = strings.Join(strings.Fields(k), " ")
	if canonical, ok := synonyms[k]; ok {
		return canonical
	}
	return k
}

// synonyms maps component-name variants onto one canonical key so weak-area
// selection never emits the same skill twice.
var synonyms = map[string]string{
	"pain":                 "pain",
	"pain funnel":          "pain",
	"identify pain":        "pain",
	"identifying pain":     "pain",
	"problem":              "pain",
	"problem questions":    "pain",
	"implication":          "pain",
	"discovery":            "pain",
	"constructive tension": "pain",
	"budget":               "budget",
	"budget step":          "budget",
	"investment":           "budget",
	"metrics":              "budget",
	"decision":             "decision",
	"decision process":     "decision",
	"decision criteria":    "decision",
	"economic buyer":       "decision",
	"up-front contract":    "up-front contract",
	"upfront contract":     "up-front contract",
	"up front contract":    "up-front contract",
	"qualification":        "up-front contract",
	"bonding & rapport":    "rapport",
	"bonding and rapport":  "rapport",
	"rapport":              "rapport",
	"current state":        "situation",
	"next steps":           "next steps",
	"action plan":          "next steps",
	"post-sell":            "post-sell",
	"post sell":            "post-sell",
}
