// Package httpmail sends email through a transactional email HTTP API.
//
// The request is a JSON POST with bearer authentication, the shape accepted
// by most providers (Resend, Postmark-compatible relays and similar):
//
//	{"from": "...", "to": ["..."], "subject": "...", "text": "...", "html": "..."}
package httpmail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/ratelimit"
)

// Ensure Mailer implements the interface.
var _ driven.Mailer = (*Mailer)(nil)

// Default configuration values.
const (
	DefaultTimeout = 15 * time.Second
	DefaultRate    = 2.0
	DefaultBurst   = 5

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 512
)

// Config holds configuration for the HTTP mailer.
type Config struct {
	// Endpoint is the send URL (required).
	Endpoint string

	// APIKey is sent as a bearer token (required).
	APIKey string

	// From is the sender address (required).
	From string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// Mailer posts messages to an email API.
type Mailer struct {
	client   *http.Client
	endpoint string
	apiKey   string
	from     string
	limiter  *ratelimit.Limiter
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

// NewMailer creates a new HTTP mailer.
func NewMailer(cfg Config) (*Mailer, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("httpmail: endpoint is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("httpmail: API key is required")
	}
	if cfg.From == "" {
		return nil, errors.New("httpmail: from address is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Mailer{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		from:     cfg.From,
		limiter:  ratelimit.New(DefaultRate, DefaultBurst),
	}, nil
}

// SetLimiter replaces the outbound rate limiter.
func (m *Mailer) SetLimiter(l *ratelimit.Limiter) {
	m.limiter = l
}

// Send delivers msg with a single request.
func (m *Mailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("httpmail: %w: %w", domain.ErrRateLimited, err)
	}

	body, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("httpmail: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("httpmail: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("httpmail: request failed: %w", err)
	}
	defer resp.Body.Close()

	m.limiter.UpdateFromResponse(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("httpmail: API returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
