package email

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESProvider sends mail through AWS SES. Attachments require the raw
// API, so messages are assembled as MIME and sent via SendRawEmail.
type SESProvider struct {
	client *ses.Client
}

// NewSESProvider creates a new SES provider using the default AWS
// credential chain.
func NewSESProvider(ctx context.Context, cfg Config) (*SESProvider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SESRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &SESProvider{client: ses.NewFromConfig(awsCfg)}, nil
}

func (p *SESProvider) Name() string {
	return "ses"
}

// Send dispatches the message as a raw MIME email.
func (p *SESProvider) Send(ctx context.Context, email *Email) error {
	raw, err := BuildRawMessage(email)
	if err != nil {
		return fmt.Errorf("failed to build mime message: %w", err)
	}

	_, err = p.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage: &types.RawMessage{Data: raw},
	})
	if err != nil {
		return fmt.Errorf("ses send failed: %w", err)
	}

	return nil
}
