package email

import (
	"context"
	"fmt"
)

// Provider sends transactional email.
type Provider interface {
	// Send dispatches one message. Implementations honour ctx
	// cancellation so an unresponsive provider cannot stall a request.
	Send(ctx context.Context, email *Email) error

	// Name identifies the backing provider for logs and health output.
	Name() string
}

// Config holds the settings for every supported provider; only the
// section matching Provider is read.
type Config struct {
	Provider string

	FromEmail string
	FromName  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	BrevoAPIKey  string
	BrevoBaseURL string

	SESRegion string
}

// NewProvider creates the configured provider.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPProvider(cfg), nil
	case "brevo":
		return NewBrevoProvider(cfg), nil
	case "ses":
		return NewSESProvider(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}
}
