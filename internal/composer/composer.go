package composer

import (
	"fmt"
	"strings"

	"salescoach.app/engine/internal/model"
	"salescoach.app/engine/internal/rubric"
)

// guidanceSnippetLimit bounds how much of a retrieved chunk lands in the
// draft; full chunks belong in the corpus, not the email.
const guidanceSnippetLimit = 240

// Compose renders the coaching draft. The template is deterministic plain
// text: it has to read the same in the dashboard and in an email body, so it
// carries no markup a renderer would need to understand. Guidance chunks are
// folded into their component's section; chunks that match no scored
// component land in a trailing guidance section so retrieval output is never
// silently dropped.
func Compose(analysis *model.AnalysisResult, repDisplayName, callDate string, guidance, scripts []model.KnowledgeChunk) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Coaching notes for %s\n", repDisplayName)
	fmt.Fprintf(&b, "Call date: %s\n", callDate)
	fmt.Fprintf(&b, "Overall: %s/10 (%s)\n", formatScore(analysis.OverallScore), analysis.OverallGrade)
	b.WriteString("\n")

	byComponent, general := matchGuidance(analysis.Scores, guidance)

	for _, comp := range analysis.Scores {
		fmt.Fprintf(&b, "%s — %s/10 (%s)\n", comp.Name, formatScore(comp.Score), comp.Grade())

		if len(comp.Indicators) > 0 {
			b.WriteString("  What worked:\n")
			for _, ind := range comp.Indicators {
				fmt.Fprintf(&b, "  - %s\n", ind)
			}
		}

		if len(comp.MissingElements) > 0 {
			b.WriteString("  On the next call:\n")
			for _, gap := range comp.MissingElements {
				fmt.Fprintf(&b, "  - %s\n", asInstruction(gap))
			}
		}

		if chunks := byComponent[rubric.NormalizeKey(comp.Name)]; len(chunks) > 0 {
			b.WriteString("  From the playbook:\n")
			for _, chunk := range chunks {
				fmt.Fprintf(&b, "  - %s: %s\n", chunk.Title, guidanceSnippet(chunk.Text))
			}
		}
		b.WriteString("\n")
	}

	if len(general) > 0 {
		b.WriteString("--- Coaching Guidance ---\n")
		for _, chunk := range general {
			fmt.Fprintf(&b, "- %s: %s\n", chunk.Title, guidanceSnippet(chunk.Text))
		}
		b.WriteString("\n")
	}

	// The scripts section only exists when there is something to practice.
	// An empty header would read like a broken template.
	if len(scripts) > 0 {
		b.WriteString("--- Recommended Practice Scripts ---\n")
		for i, chunk := range scripts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, chunk.Title)
			fmt.Fprintf(&b, "   %s\n", strings.TrimSpace(chunk.Text))
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// DisplayNameFromEmail derives a readable rep name: strip the domain, turn
// separators into spaces, title-case each part. Pure and deterministic.
func DisplayNameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	local = strings.ReplaceAll(local, ".", " ")
	local = strings.ReplaceAll(local, "_", " ")

	fields := strings.Fields(local)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
	}
	if len(fields) == 0 {
		return email
	}
	return strings.Join(fields, " ")
}

// matchGuidance assigns each guidance chunk to the first scored component one
// of its tags normalizes to. Unmatched chunks are returned separately.
func matchGuidance(scores []model.ComponentScore, guidance []model.KnowledgeChunk) (map[string][]model.KnowledgeChunk, []model.KnowledgeChunk) {
	if len(guidance) == 0 {
		return nil, nil
	}

	scored := make(map[string]bool, len(scores))
	for _, s := range scores {
		scored[rubric.NormalizeKey(s.Name)] = true
	}

	byComponent := make(map[string][]model.KnowledgeChunk)
	var general []model.KnowledgeChunk
	for _, chunk := range guidance {
		placed := false
		for _, tag := range chunk.ComponentTags {
			if key := rubric.NormalizeKey(tag); scored[key] {
				byComponent[key] = append(byComponent[key], chunk)
				placed = true
				break
			}
		}
		if !placed {
			general = append(general, chunk)
		}
	}
	return byComponent, general
}

// guidanceSnippet collapses whitespace and caps the chunk text for inline use.
func guidanceSnippet(text string) string {
	t := strings.Join(strings.Fields(text), " ")
	if len(t) > guidanceSnippetLimit {
		t = strings.TrimSpace(t[:guidanceSnippetLimit]) + "..."
	}
	return t
}

func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return fmt.Sprintf("%d", int64(score))
	}
	return fmt.Sprintf("%.1f", score)
}

// asInstruction phrases a gap as a next-call instruction.
func asInstruction(gap string) string {
	g := strings.TrimSpace(gap)
	if g == "" {
		return g
	}
	lowered := strings.ToLower(g)
	for _, prefix := range []string{"no ", "missing ", "lack of ", "did not ", "didn't "} {
		if strings.HasPrefix(lowered, prefix) {
			return "Address this gap: " + g
		}
	}
	return g
}
