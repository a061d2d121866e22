package mail_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"salescoach.app/engine/internal/mail"
)

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("posts the message with credentials and the configured from address", func() {
		var gotAuth string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			Expect(json.Unmarshal(body, &gotBody)).To(Succeed())
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := mail.NewClient(mail.Config{
			Endpoint: server.URL,
			APIKey:   "secret-key",
			From:     "coaching@salescoach.app",
		})

		err := client.Send(ctx, mail.Request{
			To:      "rep@acme.com",
			Subject: "Coaching notes from your last call",
			Text:    "notes",
			Headers: map[string]string{"X-Reply-Token": "tok"},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(gotAuth).To(Equal("Bearer secret-key"))
		Expect(gotBody["from"]).To(Equal("coaching@salescoach.app"))
		Expect(gotBody["to"]).To(Equal("rep@acme.com"))
		Expect(gotBody["headers"]).To(HaveKeyWithValue("X-Reply-Token", "tok"))
	})

	It("errors on a non-2xx response with the body snippet", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"invalid recipient"}`))
		}))
		defer server.Close()

		client := mail.NewClient(mail.Config{Endpoint: server.URL, APIKey: "k", From: "f@x.com"})

		err := client.Send(ctx, mail.Request{To: "rep@acme.com"})
		Expect(err).To(MatchError(ContainSubstring("422")))
		Expect(err).To(MatchError(ContainSubstring("invalid recipient")))
	})

	It("fails fast when the transport is not configured", func() {
		client := mail.NewClient(mail.Config{})
		err := client.Send(ctx, mail.Request{To: "rep@acme.com"})
		Expect(err).To(MatchError(ContainSubstring("not configured")))
	})
})
