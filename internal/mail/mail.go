package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Request is the transport contract: the engine hands the message off and
// records failure on any non-2xx; it never assumes delivery.
type Request struct {
	To      string            `json:"to"`
	Subject string            `json:"subject"`
	HTML    string            `json:"html"`
	Text    string            `json:"text"`
	ReplyTo string            `json:"reply_to,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, req Request) error
}

type Config struct {
	Endpoint string
	APIKey   string
	From     string
}

func (c Config) Enabled() bool {
	return c.Endpoint != "" && c.APIKey != ""
}

type client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds the outbound email transport client. Delivery is an
// external HTTP API; credentials come from explicit config, never ambient
// state.
func NewClient(cfg Config) Sender {
	return &client{
		cfg: cfg,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *client) Send(ctx context.Context, req Request) error {
	if !c.cfg.Enabled() {
		return fmt.Errorf("email transport not configured")
	}

	payload, err := json.Marshal(struct {
		From string `json:"from"`
		Request
	}{From: c.cfg.From, Request: req})
	if err != nil {
		return fmt.Errorf("marshaling email request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building email request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("email transport: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email transport returned %d: %s", resp.StatusCode, string(body))
	}

	slog.InfoContext(ctx, "email handed off to transport",
		"to", req.To,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
