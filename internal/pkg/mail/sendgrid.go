package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	// ErrSendGridAPIKeyRequired is returned when the API key is missing.
	ErrSendGridAPIKeyRequired = errors.New("sendgrid api key is required")
	// ErrSendGridRejected is returned when the API answers with a non-2xx status.
	ErrSendGridRejected = errors.New("sendgrid rejected message")
)

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridConfig configures the SendGrid implementation.
type SendGridConfig struct {
	// APIKey authenticates against the SendGrid v3 API.
	APIKey string
	// From is the default sender when Message.From is empty.
	From string
	// FromName is the optional display name of the default sender.
	FromName string
}

// SendGrid is a Mail implementation backed by the SendGrid v3 mail/send API.
type SendGrid struct {
	client      sendgridClient
	defaultFrom *sgmail.Email
}

// NewSendGrid constructs a SendGrid mail sender.
func NewSendGrid(cfg SendGridConfig) (*SendGrid, error) {
	if cfg.APIKey == "" {
		return nil, ErrSendGridAPIKeyRequired
	}

	var from *sgmail.Email
	if cfg.From != "" {
		from = sgmail.NewEmail(cfg.FromName, cfg.From)
	}

	return &SendGrid{
		client:      sendgrid.NewSendClient(cfg.APIKey),
		defaultFrom: from,
	}, nil
}

// Send delivers a message through the SendGrid API.
func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v3, err := s.build(msg)
	if err != nil {
		return err
	}

	resp, err := s.client.SendWithContext(ctx, v3)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status=%d body=%s", ErrSendGridRejected, resp.StatusCode, resp.Body)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (s *SendGrid) Close() error {
	return nil
}

func (s *SendGrid) build(msg Message) (*sgmail.SGMailV3, error) {
	if len(msg.Recipients()) == 0 {
		return nil, ErrNoRecipients
	}

	from := s.defaultFrom
	if msg.From != "" {
		from = sgmail.NewEmail("", msg.From)
	}
	if from == nil {
		return nil, ErrNoSender
	}

	p := sgmail.NewPersonalization()
	p.AddTos(toEmails(msg.To)...)
	p.AddCCs(toEmails(msg.Cc)...)
	p.AddBCCs(toEmails(msg.Bcc)...)

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(from)
	v3.Subject = msg.Subject
	v3.AddPersonalizations(p)

	// text/plain has to come before text/html
	if msg.TextBody != "" || msg.HTMLBody == "" {
		v3.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	}
	if msg.HTMLBody != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}

	return v3, nil
}

func toEmails(addrs []string) []*sgmail.Email {
	out := make([]*sgmail.Email, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, sgmail.NewEmail("", a))
	}
	return out
}
