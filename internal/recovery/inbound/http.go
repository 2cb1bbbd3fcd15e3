package inbound

import (
	"context"

	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/recovery/usecase"
)

// HeaderIdempotencyKey lets a client retry a request without repeating it.
const HeaderIdempotencyKey = "Idempotency-Key"

type uc interface {
	SendOTP(ctx context.Context, in usecase.SendOTPInput) (*usecase.SendOTPOutput, error)
	ResetPassword(ctx context.Context, in usecase.ResetPasswordInput) error
	AuditEvent(ctx context.Context, in usecase.AuditEventInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, exposeOTP bool) {
	end := &HTTPEndpoint{uc: uc, exposeOTP: exposeOTP}

	// Legacy paths kept for existing clients
	r.POST("/sendOtp", end.SendOTP)
	r.POST("/resetPassword", end.ResetPassword)

	r.POST("/api/v1/recovery/otp", end.SendOTP)
	r.POST("/api/v1/recovery/password/reset", end.ResetPassword)
}
