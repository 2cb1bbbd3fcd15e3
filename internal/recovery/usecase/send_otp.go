package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/recovery/entity"
)

type SendOTPInput struct {
	// Email is used as given; only presence is checked.
	Email          string `json:"email" validate:"required"`
	IdempotencyKey string `json:"-"`
}

type SendOTPOutput struct {
	OTP string
}

// SendOTP generates a fresh code, mails it to the address and returns it.
// The code is neither stored nor verifiable later.
func (s *Usecase) SendOTP(ctx context.Context, in SendOTPInput) (*SendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "SendOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(msgEmailRequired, err)
	}

	var code string
	err := s.once(ctx, idempotencyScopeSendOTP, in.IdempotencyKey, msgFailedSendOTP, func(ctx context.Context) error {
		var err error
		code, err = s.otp.Generate()
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate otp", "error", err)
			return goerror.NewServer(err, msgFailedSendOTP)
		}

		if err := s.repoMail.SendOTP(ctx, entity.OTPMail{To: in.Email, OTP: code}); err != nil {
			slog.ErrorContext(ctx, "failed to send otp email", "error", err)
			return goerror.NewServer(err, msgFailedSendOTP)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOTPIssued(ctx, in.Email)

	return &SendOTPOutput{OTP: code}, nil
}

func (s *Usecase) publishOTPIssued(ctx context.Context, email string) {
	emailHash, err := s.emailHash(email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash email for otp issued event", "error", err)
		return
	}

	evt := entity.OTPIssued{
		EventID:   s.uuid.Generate(),
		EmailHash: emailHash,
		IssuedAt:  s.clock.Now(),
	}
	if err := s.repoMessaging.PublishOTPIssued(ctx, evt); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "event_id", evt.EventID, "error", err)
	}
}
