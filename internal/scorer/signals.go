package scorer

import (
	"strings"
)

// transcriptSignals is everything the heuristic rules need from a transcript,
// extracted in a single pass.
type transcriptSignals struct {
	raw        string
	lowered    string
	sentences  []string
	questions  []string
	repWords   int
	totalWords int
}

// minTranscriptWords is the floor below which a transcript is treated as
// having no usable data.
const minTranscriptWords = 5

func (s transcriptSignals) empty() bool {
	return s.totalWords < minTranscriptWords
}

// talkListenRatio approximates the share of words spoken by the rep.
// Returns -1 when speaker attribution was not possible.
func (s transcriptSignals) talkListenRatio() float64 {
	if s.repWords == 0 || s.totalWords == 0 {
		return -1
	}
	return float64(s.repWords) / float64(s.totalWords)
}

// questionsAbout counts questions touching any of the given terms, together
// with how specific they are (longer questions probe deeper than one-liners).
func (s transcriptSignals) questionsAbout(terms []string) (count int, specific int) {
	for _, q := range s.questions {
		for _, term := range terms {
			if strings.Contains(q, term) {
				count++
				if len(strings.Fields(q)) >= 6 {
					specific++
				}
				break
			}
		}
	}
	return count, specific
}

// extractSignals parses a transcript of "Speaker: utterance" lines. Unlabelled
// transcripts still produce sentence/question signals; only the talk/listen
// ratio needs speaker attribution. The rep is matched by the local part of
// their email, falling back to the first speaker heard.
func extractSignals(transcript, summary, repEmail string) transcriptSignals {
	sig := transcriptSignals{}

	text := strings.TrimSpace(transcript)
	sig.raw = text
	if summary != "" {
		// The prior summary enriches matching context but carries no
		// speaker attribution.
		sig.lowered = strings.ToLower(text + "\n" + summary)
	} else {
		sig.lowered = strings.ToLower(text)
	}

	repKey := repSpeakerKey(repEmail)
	firstSpeaker := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, utterance := splitSpeaker(line)
		words := len(strings.Fields(utterance))
		sig.totalWords += words

		if speaker != "" {
			if firstSpeaker == "" {
				firstSpeaker = speaker
			}
			if speakerMatches(speaker, repKey, firstSpeaker) {
				sig.repWords += words
			}
		}

		for _, sentence := range splitSentences(utterance) {
			lowered := strings.ToLower(strings.TrimSpace(sentence))
			if lowered == "" {
				continue
			}
			sig.sentences = append(sig.sentences, lowered)
			if strings.HasSuffix(lowered, "?") {
				sig.questions = append(sig.questions, lowered)
			}
		}
	}

	return sig
}

func splitSpeaker(line string) (speaker, utterance string) {
	idx := strings.Index(line, ":")
	// A speaker label is a short prefix before the first colon; anything long
	// is treated as prose that happens to contain one.
	if idx > 0 && idx <= 40 && !strings.ContainsAny(line[:idx], ".?!") {
		return strings.ToLower(strings.TrimSpace(line[:idx])), strings.TrimSpace(line[idx+1:])
	}
	return "", line
}

func splitSentences(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '.' || r == '?' || r == '!' {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func repSpeakerKey(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	local = strings.ToLower(local)
	for _, sep := range []string{".", "_", "-"} {
		local = strings.ReplaceAll(local, sep, " ")
	}
	fields := strings.Fields(local)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func speakerMatches(speaker, repKey, firstSpeaker string) bool {
	if repKey != "" && strings.Contains(speaker, repKey) {
		return true
	}
	switch speaker {
	case "rep", "sales rep", "salesperson", "ae":
		return true
	}
	return repKey == "" && speaker == firstSpeaker
}
