package email

import (
	"context"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/recovery/entity"
	"go.opentelemetry.io/otel/codes"
)

type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

// SendOTP delivers the code as plain text from the transport's default sender.
func (m *Mail) SendOTP(ctx context.Context, msg entity.OTPMail) error {
	ctx, span := m.ins.Tracer("recovery.outbound.email").Start(ctx, "SendOTP")
	defer span.End()

	if err := m.client.Send(ctx, mail.Message{
		To:       []string{msg.To},
		Subject:  msg.Subject(),
		TextBody: msg.Text(),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
