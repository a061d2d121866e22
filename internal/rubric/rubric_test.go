package rubric_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"salescoach.app/engine/internal/rubric"
)

var _ = Describe("Parse", func() {
	It("maps known methodology strings case-insensitively", func() {
		Expect(rubric.Parse("Sandler")).To(Equal(rubric.MethodologySandler))
		Expect(rubric.Parse(" MEDDIC ")).To(Equal(rubric.MethodologyMEDDIC))
		Expect(rubric.Parse("spin")).To(Equal(rubric.MethodologySPIN))
	})

	It("falls back to generic for anything unrecognized", func() {
		Expect(rubric.Parse("")).To(Equal(rubric.MethodologyGeneric))
		Expect(rubric.Parse("miller-heiman")).To(Equal(rubric.MethodologyGeneric))
	})
})

var _ = Describe("ForMethodology", func() {
	It("returns the sandler rubric with its derived overall component last", func() {
		r := rubric.ForMethodology(rubric.MethodologySandler)
		Expect(r.Methodology).To(Equal(rubric.MethodologySandler))
		Expect(r.Components).To(HaveLen(8))
		last := r.Components[len(r.Components)-1]
		Expect(last.Name).To(Equal("Overall"))
		Expect(last.Rule.Derived).To(BeTrue())
	})

	It("returns a rubric for every known methodology", func() {
		for _, m := range []rubric.Methodology{
			rubric.MethodologySandler,
			rubric.MethodologyMEDDIC,
			rubric.MethodologyChallenger,
			rubric.MethodologySPIN,
			rubric.MethodologyGap,
			rubric.MethodologyGeneric,
		} {
			r := rubric.ForMethodology(m)
			Expect(r.Components).NotTo(BeEmpty(), string(m))
			Expect(r.Methodology).To(Equal(m))
		}
	})

	It("serves the generic rubric for an unknown methodology value", func() {
		r := rubric.ForMethodology(rubric.Methodology("made-up"))
		Expect(r.Methodology).To(Equal(rubric.MethodologyGeneric))
	})
})

var _ = Describe("NormalizeKey", func() {
	It("collapses case and whitespace", func() {
		Expect(rubric.NormalizeKey("  Next   Steps ")).To(Equal("next steps"))
	})

	It("maps synonym variants onto one canonical key", func() {
		Expect(rubric.NormalizeKey("Pain Funnel")).To(Equal("pain"))
		Expect(rubric.NormalizeKey("Identify Pain")).To(Equal("pain"))
		Expect(rubric.NormalizeKey("Implication")).To(Equal("pain"))
		Expect(rubric.NormalizeKey("Upfront Contract")).To(Equal("up-front contract"))
		Expect(rubric.NormalizeKey("Economic Buyer")).To(Equal("decision"))
		Expect(rubric.NormalizeKey("Metrics")).To(Equal("budget"))
	})

	It("passes unknown names through lowercased", func() {
		Expect(rubric.NormalizeKey("Take Control")).To(Equal("take control"))
	})
})

var _ = Describe("OrderOf", func() {
	It("returns declared positions and sorts unknown names last", func() {
		r := rubric.ForMethodology(rubric.MethodologySandler)
		Expect(r.OrderOf("Up-Front Contract")).To(Equal(1))
		Expect(r.OrderOf("Pain Funnel")).To(Equal(2))
		Expect(r.OrderOf("something else")).To(Equal(len(r.Components)))
	})
})
