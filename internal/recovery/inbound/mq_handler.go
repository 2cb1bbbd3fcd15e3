package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/recovery/outbound/mq"
	"github.com/shandysiswandi/otpgate/internal/recovery/usecase"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
)

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers map[string]string) context.Context {
	for k, v := range headers {
		if strings.EqualFold(k, mq.HeaderCorrelationID) && v != "" {
			return instrument.SetCorrelationID(ctx, v)
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// OTPIssuedAudit records a recovery_otp_issued event. Malformed messages are
// dropped rather than redelivered.
func (h *MQHandler) OTPIssuedAudit(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers)

	ctx, span := h.ins.Tracer("recovery.inbound.mq").Start(ctx, "OTPIssuedAudit")
	defer span.End()

	var payload event.RecoveryOTPIssuedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp issued", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	if err := h.uc.AuditEvent(ctx, usecase.AuditEventInput{
		Kind:       event.RecoveryOTPIssuedDestination,
		EventID:    payload.EventID,
		EmailHash:  payload.EmailHash,
		OccurredAt: payload.IssuedAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to audit otp issued", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	return nil
}

// PasswordResetRequestedAudit records a recovery_password_reset_requested event.
func (h *MQHandler) PasswordResetRequestedAudit(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers)

	ctx, span := h.ins.Tracer("recovery.inbound.mq").Start(ctx, "PasswordResetRequestedAudit")
	defer span.End()

	var payload event.RecoveryPasswordResetRequestedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of password reset requested", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	if err := h.uc.AuditEvent(ctx, usecase.AuditEventInput{
		Kind:       event.RecoveryPasswordResetRequestedDestination,
		EventID:    payload.EventID,
		EmailHash:  payload.EmailHash,
		OccurredAt: payload.RequestedAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to audit password reset requested", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	return nil
}
