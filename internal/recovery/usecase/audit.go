package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

type AuditEventInput struct {
	Kind       string `validate:"required"`
	EventID    string `validate:"required"`
	EmailHash  string `validate:"required,hexadecimal,len=64"`
	OccurredAt int64  `validate:"required"`
}

// AuditEvent writes a consumed recovery event to the audit log.
func (s *Usecase) AuditEvent(ctx context.Context, in AuditEventInput) error {
	ctx, span := s.startSpan(ctx, "AuditEvent")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput("Invalid audit event", err)
	}

	slog.InfoContext(ctx, "recovery audit",
		"kind", in.Kind,
		"event_id", in.EventID,
		"email_hash", in.EmailHash,
		"occurred_at", in.OccurredAt,
	)

	return nil
}
