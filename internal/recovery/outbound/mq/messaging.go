package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/recovery/entity"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HeaderCorrelationID carries the request correlation ID to consumers.
const HeaderCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishOTPIssued(ctx context.Context, evt entity.OTPIssued) error {
	ctx, span := m.ins.Tracer("recovery.outbound.mq").Start(ctx, "PublishOTPIssued")
	defer span.End()

	return m.publish(ctx, span, event.RecoveryOTPIssuedDestination, event.RecoveryOTPIssuedMessage{
		EventID:   evt.EventID,
		EmailHash: evt.EmailHash,
		IssuedAt:  evt.IssuedAt.Unix(),
	})
}

func (m *Messaging) PublishPasswordResetRequested(ctx context.Context, evt entity.PasswordResetRequested) error {
	ctx, span := m.ins.Tracer("recovery.outbound.mq").Start(ctx, "PublishPasswordResetRequested")
	defer span.End()

	return m.publish(ctx, span, event.RecoveryPasswordResetRequestedDestination, event.RecoveryPasswordResetRequestedMessage{
		EventID:     evt.EventID,
		EmailHash:   evt.EmailHash,
		RequestedAt: evt.RequestedAt.Unix(),
	})
}

func (m *Messaging) publish(ctx context.Context, span trace.Span, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	msg := messaging.OutgoingMessage{Body: body}
	if cID := instrument.GetCorrelationID(ctx); cID != "" {
		msg.Headers = map[string]string{HeaderCorrelationID: cID}
	}

	if err := m.client.Publish(ctx, topic, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
