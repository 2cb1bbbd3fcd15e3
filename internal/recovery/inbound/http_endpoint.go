package inbound

import (
	"log/slog"

	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/recovery/usecase"
)

// HTTPEndpoint exposes the recovery HTTP handlers.
type HTTPEndpoint struct {
	uc        uc
	exposeOTP bool
}

// SendOTP emails a fresh OTP to the given address.
//
// An unreadable body is handled like one without an email.
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		slog.DebugContext(r.Context(), "send otp body is not a json object", "error", err)
	}

	resp, err := h.uc.SendOTP(r.Context(), usecase.SendOTPInput{
		Email:          req.Email,
		IdempotencyKey: r.GetHeader(HeaderIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	out := SendOTPResponse{Message: "OTP sent"}
	if h.exposeOTP {
		out.OTP = resp.OTP
	}

	return out, nil
}

// ResetPassword acknowledges a password reset request.
func (h *HTTPEndpoint) ResetPassword(r *router.Request) (any, error) {
	var req ResetPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		slog.DebugContext(r.Context(), "reset password body is not a json object", "error", err)
	}

	if err := h.uc.ResetPassword(r.Context(), usecase.ResetPasswordInput{
		Email:          req.Email,
		NewPassword:    req.NewPassword,
		IdempotencyKey: r.GetHeader(HeaderIdempotencyKey),
	}); err != nil {
		return nil, err
	}

	return ResetPasswordResponse{Message: "Password reset successful"}, nil
}
