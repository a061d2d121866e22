package scorer

import (
	"sort"

	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/rubric"
)

// DefaultWeakLimit caps how many weak areas feed knowledge augmentation.
const DefaultWeakLimit = 3

// SelectWeak returns the names of the weakest rubric components, ascending by
// score with rubric-declared order breaking ties. Components whose normalized
// keys collide ("Pain" vs "Pain Funnel") are de-duplicated before truncation.
// Nothing below the good threshold means no augmentation: an empty result.
func SelectWeak(scores []model.ComponentScore, r rubric.Rubric, limit int) []string {
	if limit <= 0 {
		limit = DefaultWeakLimit
	}

	weak := make([]model.ComponentScore, 0, len(scores))
	for _, s := range scores {
		if s.Score < model.GoodThreshold {
			weak = append(weak, s)
		}
	}

	sort.SliceStable(weak, func(i, j int) bool {
		if weak[i].Score != weak[j].Score {
			return weak[i].Score < weak[j].Score
		}
		return r.OrderOf(weak[i].Name) < r.OrderOf(weak[j].Name)
	})

	seen := make(map[string]bool, len(weak))
	names := make([]string, 0, limit)
	for _, s := range weak {
		key := rubric.NormalizeKey(s.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, s.Name)
		if len(names) == limit {
			break
		}
	}
	return names
}
