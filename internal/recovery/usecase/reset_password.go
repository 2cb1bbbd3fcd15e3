package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/recovery/entity"
)

type ResetPasswordInput struct {
	Email          string `json:"email" validate:"required"`
	NewPassword    string `json:"newPassword" validate:"required"`
	IdempotencyKey string `json:"-"`
}

// ResetPassword accepts a reset request once both fields are present.
//
// Nothing is verified or stored: there is no OTP check and no password
// update. The request is only recorded as an audit event.
func (s *Usecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(msgResetFieldsRequired, err)
	}

	return s.once(ctx, idempotencyScopeResetPwd, in.IdempotencyKey, msgFailedResetPassword, func(ctx context.Context) error {
		slog.WarnContext(ctx, "password reset accepted without verification")
		s.publishPasswordResetRequested(ctx, in.Email)
		return nil
	})
}

func (s *Usecase) publishPasswordResetRequested(ctx context.Context, email string) {
	emailHash, err := s.emailHash(email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash email for password reset event", "error", err)
		return
	}

	evt := entity.PasswordResetRequested{
		EventID:     s.uuid.Generate(),
		EmailHash:   emailHash,
		RequestedAt: s.clock.Now(),
	}
	if err := s.repoMessaging.PublishPasswordResetRequested(ctx, evt); err != nil {
		slog.ErrorContext(ctx, "failed to publish password reset requested", "event_id", evt.EventID, "error", err)
	}
}
