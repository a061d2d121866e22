package scorer

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"salescoach.app/engine/common/llm"
	"salescoach.app/engine/internal/rubric"
)

var _ = Describe("llm scoring", func() {
	var (
		ctx     context.Context
		generic rubric.Rubric
	)

	const transcript = "Rep: Walk me through your current process for handling inbound leads today.\n" +
		"Prospect: Mostly spreadsheets, and things fall through the cracks every week."

	validPayload := func(r rubric.Rubric) llmScorePayload {
		payload := llmScorePayload{}
		for _, comp := range r.Components {
			payload.Components = append(payload.Components, llmComponentScore{
				Name:            comp.Name,
				Score:           7,
				Indicators:      []string{"evidence"},
				MissingElements: []string{},
			})
		}
		return payload
	}

	BeforeEach(func() {
		ctx = context.Background()
		generic = rubric.ForMethodology(rubric.MethodologyGeneric)
	})

	It("returns validated scores in rubric order", func() {
		client := &mockLLMClient{
			chatFn: func(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
				Expect(req.SchemaName).To(Equal("methodology_scores"))

				payload := validPayload(generic)
				// Reverse the order and add precision noise; validation must
				// reorder and round.
				for i, j := 0, len(payload.Components)-1; i < j; i, j = i+1, j-1 {
					payload.Components[i], payload.Components[j] = payload.Components[j], payload.Components[i]
				}
				payload.Components[0].Score = 7.25

				*result.(*llmScorePayload) = payload
				return &llm.Response{}, nil
			},
		}

		result, err := New(client).Score(ctx, transcript, "", generic)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Scores).To(HaveLen(len(generic.Components)))
		for i, comp := range generic.Components {
			Expect(result.Scores[i].Name).To(Equal(comp.Name))
		}
		Expect(result.Scores[len(result.Scores)-1].Score).To(Equal(7.3))
	})

	It("retries once on a schema-invalid payload", func() {
		calls := 0
		client := &mockLLMClient{
			chatFn: func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				calls++
				if calls == 1 {
					*result.(*llmScorePayload) = llmScorePayload{
						Components: []llmComponentScore{{Name: "Budget", Score: 5}},
					}
				} else {
					*result.(*llmScorePayload) = validPayload(generic)
				}
				return &llm.Response{}, nil
			},
		}

		result, err := New(client).Score(ctx, transcript, "", generic)
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(2))
		Expect(result.Scores).To(HaveLen(len(generic.Components)))
	})

	It("fails with the upstream sentinel once retries are exhausted", func() {
		calls := 0
		client := &mockLLMClient{
			chatFn: func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				calls++
				payload := validPayload(generic)
				payload.Components[0].Score = 12
				*result.(*llmScorePayload) = payload
				return &llm.Response{}, nil
			},
		}

		_, err := New(client).Score(ctx, transcript, "", generic)
		Expect(err).To(MatchError(ErrUpstream))
		Expect(calls).To(Equal(2))
	})

	It("retries a retryable transport failure once before failing upstream", func() {
		calls := 0
		client := &mockLLMClient{
			chatFn: func(_ context.Context, _ llm.Request, _ any) (*llm.Response, error) {
				calls++
				return nil, fmt.Errorf("connection refused")
			},
		}

		_, err := New(client).Score(ctx, transcript, "", generic)
		Expect(errors.Is(err, ErrUpstream)).To(BeTrue())
		Expect(calls).To(Equal(2))
	})

	It("recovers when a transient transport failure clears on retry", func() {
		calls := 0
		client := &mockLLMClient{
			chatFn: func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
				calls++
				if calls == 1 {
					return nil, fmt.Errorf("connection reset by peer")
				}
				*result.(*llmScorePayload) = validPayload(generic)
				return &llm.Response{}, nil
			},
		}

		result, err := New(client).Score(ctx, transcript, "", generic)
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(2))
		Expect(result.Scores).To(HaveLen(len(generic.Components)))
	})

	It("does not retry a cancelled context", func() {
		calls := 0
		client := &mockLLMClient{
			chatFn: func(_ context.Context, _ llm.Request, _ any) (*llm.Response, error) {
				calls++
				return nil, fmt.Errorf("openai chat: %w", context.Canceled)
			},
		}

		_, err := New(client).Score(ctx, transcript, "", generic)
		Expect(errors.Is(err, ErrUpstream)).To(BeTrue())
		Expect(calls).To(Equal(1))
	})
})
