package scorer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("extractSignals", func() {
	It("attributes words to the rep by email local part", func() {
		transcript := "Alice: How are you doing today?\nBob: Doing well thanks."
		sig := extractSignals(transcript, "", "alice.smith@acme.com")

		Expect(sig.totalWords).To(Equal(8))
		Expect(sig.repWords).To(Equal(5))
		Expect(sig.questions).To(HaveLen(1))
		Expect(sig.questions[0]).To(Equal("how are you doing today?"))
	})

	It("recognizes generic rep speaker labels", func() {
		transcript := "Rep: What is your biggest challenge right now?\nProspect: Keeping up with demand."
		sig := extractSignals(transcript, "", "")

		Expect(sig.repWords).To(Equal(7))
	})

	It("returns -1 talk/listen ratio when no speakers are labelled", func() {
		sig := extractSignals("A plain narrative with no speakers in it at all.", "", "")
		Expect(sig.talkListenRatio()).To(Equal(-1.0))
	})

	It("treats a transcript under the word floor as empty", func() {
		Expect(extractSignals("hi there", "", "").empty()).To(BeTrue())
		Expect(extractSignals("", "", "").empty()).To(BeTrue())
	})

	It("folds the summary into the matching context but not the word counts", func() {
		sig := extractSignals("Rep: Let's talk about next steps before we wrap up.", "They discussed BUDGET at length.", "")
		Expect(sig.lowered).To(ContainSubstring("budget"))
		Expect(sig.totalWords).To(Equal(9))
	})
})

var _ = Describe("questionsAbout", func() {
	It("counts topic questions and flags the specific ones", func() {
		transcript := "Rep: What's your budget? What are you spending today on the current tooling?"
		sig := extractSignals(transcript, "", "")

		count, specific := sig.questionsAbout([]string{"budget", "spend"})
		Expect(count).To(Equal(2))
		Expect(specific).To(Equal(1))
	})
})
