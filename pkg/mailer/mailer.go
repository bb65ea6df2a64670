// Package mailer is a thin client for the transactional mail provider's HTTP
// send endpoint. The dispatcher uses it for vendor purchase-order emails.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ghuser/restockd/pkg/config"
)

// ErrNotConfigured is returned by Send when no MAIL_API_KEY is set.
// Callers treat it like any other send failure: the email step is an
// informational side channel and never fails the operation that triggered it.
var ErrNotConfigured = errors.New("mail provider not configured")

// Client sends email through the provider's JSON API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	from       string
}

// New returns a Client configured from cfg.
func New(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.MailTimeout},
		apiURL:     cfg.MailAPIURL,
		apiKey:     cfg.MailAPIKey,
		from:       cfg.MailFrom,
	}
}

type sendRequest struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"html_content"`
}

type sendResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Send delivers one HTML email. Returns an error when the provider is not
// configured, the transport fails, the provider responds non-2xx, or the
// response carries an error field.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendRequest{
		From:        c.from,
		To:          to,
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read send response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var sr sendResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return fmt.Errorf("decode send response: %w", err)
	}
	if sr.Error != "" {
		return fmt.Errorf("mail provider rejected message: %s", sr.Error)
	}
	return nil
}
