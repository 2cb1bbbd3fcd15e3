package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
	"github.com/shandysiswandi/otpgate/internal/recovery/entity"
	"go.opentelemetry.io/otel/trace"
)

const (
	msgEmailRequired         = "Email is required"
	msgFailedSendOTP         = "Failed to send OTP"
	msgResetFieldsRequired   = "Email and newPassword are required"
	msgFailedResetPassword   = "Failed to reset password"
	msgDuplicateRequest      = "Duplicate request"
	idempotencyScopeSendOTP  = "recovery:send_otp:"
	idempotencyScopeResetPwd = "recovery:reset_password:"
)

type repoMail interface {
	SendOTP(ctx context.Context, msg entity.OTPMail) error
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, evt entity.OTPIssued) error
	PublishPasswordResetRequested(ctx context.Context, evt entity.PasswordResetRequested) error
}

type Usecase struct {
	repoMail      repoMail
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	otp           otp.Generator
	hmac          hash.Hash
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoMail      repoMail
	RepoMessaging repoMessaging
	// Idempotency is optional; nil runs every request.
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	OTP         otp.Generator
	HMAC        hash.Hash
	UUID        uid.StringID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:      dep.RepoMail,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		otp:           dep.OTP,
		hmac:          dep.HMAC,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("recovery.usecase").Start(ctx, name)
}

// emailHash is the digest published in place of the address. Case is folded
// so A@B.com and a@b.com correlate.
func (s *Usecase) emailHash(email string) (string, error) {
	sum, err := s.hmac.Hash(strings.ToLower(email))
	if err != nil {
		return "", err
	}
	return string(sum), nil
}

// once runs fn at most once per idempotency key. Without a key, or with
// idempotency disabled, fn always runs. failMsg is the user message for a
// tracker failure.
func (s *Usecase) once(ctx context.Context, scope, key, failMsg string, fn func(context.Context) error) error {
	if key == "" || s.idemp == nil {
		return fn(ctx)
	}

	err := s.idemp.Exec(ctx, scope+key, fn,
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.recovery.idempotency.lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.recovery.idempotency.state_ttl_seconds")),
	)
	if err == nil {
		return nil
	}

	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		slog.WarnContext(ctx, "duplicate request rejected", "scope", scope, "error", err)
		return goerror.NewBusiness(msgDuplicateRequest, goerror.CodeConflict)
	}

	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		return err
	}

	slog.ErrorContext(ctx, "failed to check idempotency key", "scope", scope, "error", err)
	return goerror.NewServer(err, failMsg)
}
