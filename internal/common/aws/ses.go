// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Mailer sends plain-text e-mail from a fixed sender address.
type Mailer struct {
	client SESAPI
	from   string
}

func NewSESClient(cfg awssdk.Config, fromEmail string) *Mailer {
	return NewMailer(ses.NewFromConfig(cfg), fromEmail)
}

func NewMailer(client SESAPI, fromEmail string) *Mailer {
	return &Mailer{client: client, from: fromEmail}
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: awssdk.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject), Charset: awssdk.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(body), Charset: awssdk.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
