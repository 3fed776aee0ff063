package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// BrevoProvider sends mail through the Brevo (ex-Sendinblue)
// transactional email HTTP API.
type BrevoProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type brevoRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoAttachment struct {
	// Content is the base64-encoded file body, per the Brevo API.
	Content string `json:"content"`
	Name    string `json:"name"`
}

type brevoMessage struct {
	Sender      brevoRecipient    `json:"sender"`
	To          []brevoRecipient  `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent,omitempty"`
	TextContent string            `json:"textContent,omitempty"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

// NewBrevoProvider creates a new Brevo provider
func NewBrevoProvider(cfg Config) *BrevoProvider {
	baseURL := cfg.BrevoBaseURL
	if baseURL == "" {
		baseURL = "https://api.brevo.com"
	}

	return &BrevoProvider{
		apiKey:  cfg.BrevoAPIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *BrevoProvider) Name() string {
	return "brevo"
}

// Send dispatches the message via POST /v3/smtp/email.
func (p *BrevoProvider) Send(ctx context.Context, email *Email) error {
	msg := brevoMessage{
		Sender: brevoRecipient{
			Email: email.From,
			Name:  email.FromName,
		},
		Subject:     email.Subject,
		HTMLContent: email.HTMLBody,
		TextContent: email.Body,
	}

	for _, to := range email.To {
		msg.To = append(msg.To, brevoRecipient{Email: to, Name: email.ToName})
	}

	for _, att := range email.Attachments {
		msg.Attachment = append(msg.Attachment, brevoAttachment{
			Content: base64.StdEncoding.EncodeToString(att.Content),
			Name:    att.Name,
		})
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal brevo payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v3/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build brevo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", p.apiKey)

	res, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return fmt.Errorf("brevo returned %d: %s", res.StatusCode, string(body))
	}

	return nil
}
