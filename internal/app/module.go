package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/otpgate/internal/recovery"
)

func (a *App) initModules() {
	if err := recovery.New(recovery.Dependency{
		Ctx:         a.ctx,
		Router:      a.router,
		Config:      a.config,
		Instrument:  a.ins,
		Mail:        a.mail,
		Messaging:   a.messaging,
		Goroutine:   a.goroutine,
		UUID:        a.uuid,
		HMAC:        a.hmac,
		Clock:       a.clock,
		OTP:         a.otp,
		Validator:   a.validator,
		Idempotency: a.idemp,
	}); err != nil {
		slog.Error("failed to init module recovery", "error", err)
		os.Exit(1)
	}
}
