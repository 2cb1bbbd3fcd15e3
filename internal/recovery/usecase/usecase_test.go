package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
	"github.com/shandysiswandi/otpgate/internal/recovery/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	mu   sync.Mutex
	sent []entity.OTPMail
	err  error
}

func (f *fakeMail) SendOTP(_ context.Context, msg entity.OTPMail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeMessaging struct {
	otpIssued []entity.OTPIssued
	resets    []entity.PasswordResetRequested
	err       error
}

func (f *fakeMessaging) PublishOTPIssued(_ context.Context, evt entity.OTPIssued) error {
	f.otpIssued = append(f.otpIssued, evt)
	return f.err
}

func (f *fakeMessaging) PublishPasswordResetRequested(_ context.Context, evt entity.PasswordResetRequested) error {
	f.resets = append(f.resets, evt)
	return f.err
}

type fakeOTP struct {
	code string
	err  error
}

func (f fakeOTP) Generate() (string, error) { return f.code, f.err }

type fakeUUID struct{}

func (fakeUUID) Generate() string { return "0190d4b2-0000-7000-8000-000000000001" }

type fakeIdempotency struct {
	seen map[string]bool
	err  error
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.err != nil {
		return f.err
	}
	if f.seen[key] {
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		return err
	}
	f.seen[key] = true
	return nil
}

type fixture struct {
	uc    *Usecase
	mail  *fakeMail
	msg   *fakeMessaging
	hmac  hash.Hash
	idemp *fakeIdempotency
	now   time.Time
}

func newFixture(t *testing.T, gen fakeOTP, withIdempotency bool) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  recovery:\n    idempotency:\n      enabled: true\n"))
	require.NoError(t, err)

	hmac, err := hash.NewHMACSHA256("test-secret")
	require.NoError(t, err)

	f := &fixture{
		mail: &fakeMail{},
		msg:  &fakeMessaging{},
		hmac: hmac,
		now:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	dep := Dependency{
		RepoMail:      f.mail,
		RepoMessaging: f.msg,
		Validator:     v,
		Config:        cfg,
		OTP:           gen,
		HMAC:          hmac,
		UUID:          fakeUUID{},
		Clock:         clock.Fixed(f.now),
		Instrument:    instrument.NewNoop(),
	}
	if withIdempotency {
		f.idemp = &fakeIdempotency{seen: map[string]bool{}}
		dep.Idempotency = f.idemp
	}

	f.uc = New(dep)
	return f
}

func requireGoError(t *testing.T, err error, status int, msg string) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, status, gerr.StatusCode())
	assert.Equal(t, msg, gerr.Msg())
}

func TestSendOTP(t *testing.T) {
	t.Run("missing email is rejected without mailing", func(t *testing.T) {
		f := newFixture(t, fakeOTP{code: "123456"}, false)

		out, err := f.uc.SendOTP(context.Background(), SendOTPInput{})

		assert.Nil(t, out)
		requireGoError(t, err, http.StatusBadRequest, "Email is required")
		assert.Empty(t, f.mail.sent)
		assert.Empty(t, f.msg.otpIssued)
	})

	t.Run("success mails the code and publishes an event", func(t *testing.T) {
		f := newFixture(t, fakeOTP{code: "482913"}, false)

		out, err := f.uc.SendOTP(context.Background(), SendOTPInput{Email: "A@b.com"})
		require.NoError(t, err)

		assert.Equal(t, "482913", out.OTP)
		require.Len(t, f.mail.sent, 1)
		assert.Equal(t, entity.OTPMail{To: "A@b.com", OTP: "482913"}, f.mail.sent[0])
		assert.Equal(t, "Your OTP code is: 482913", f.mail.sent[0].Text())
		assert.Equal(t, "Your OTP Code", f.mail.sent[0].Subject())

		require.Len(t, f.msg.otpIssued, 1)
		evt := f.msg.otpIssued[0]
		assert.Equal(t, "0190d4b2-0000-7000-8000-000000000001", evt.EventID)
		assert.Equal(t, f.now, evt.IssuedAt)
		assert.True(t, f.hmac.Verify(evt.EmailHash, "a@b.com"), "hash is taken over the lowercased email")
	})

	t.Run("mail failure is a server error", func(t *testing.T) {
		f := newFixture(t, fakeOTP{code: "482913"}, false)
		f.mail.err = errors.New("535 authentication failed")

		out, err := f.uc.SendOTP(context.Background(), SendOTPInput{Email: "a@b.com"})

		assert.Nil(t, out)
		requireGoError(t, err, http.StatusInternalServerError, "Failed to send OTP")
		assert.ErrorIs(t, err, f.mail.err)
		assert.Empty(t, f.msg.otpIssued)
	})

	t.Run("generator failure is a server error", func(t *testing.T) {
		f := newFixture(t, fakeOTP{err: errors.New("entropy exhausted")}, false)

		_, err := f.uc.SendOTP(context.Background(), SendOTPInput{Email: "a@b.com"})

		requireGoError(t, err, http.StatusInternalServerError, "Failed to send OTP")
		assert.Empty(t, f.mail.sent)
	})

	t.Run("publish failure does not change the result", func(t *testing.T) {
		f := newFixture(t, fakeOTP{code: "111111"}, false)
		f.msg.err = errors.New("broker down")

		out, err := f.uc.SendOTP(context.Background(), SendOTPInput{Email: "a@b.com"})

		require.NoError(t, err)
		assert.Equal(t, "111111", out.OTP)
	})
}

func TestSendOTP_Idempotency(t *testing.T) {
	t.Run("duplicate key is a conflict", func(t *testing.T) {
		f := newFixture(t, fakeOTP{code: "222222"}, true)
		in := SendOTPInput{Email: "a@b.com", IdempotencyKey: "req-1"}

		_, err := f.uc.SendOTP(context.Background(), in)
		require.NoError(t, err)

		_, err = f.uc.SendOTP(context.Background(), in)
		requireGoError(t, err, http.StatusConflict, "Duplicate request")
		assert.Len(t, f.mail.sent, 1)
		assert.True(t, f.idemp.seen["recovery:send_otp:req-1"])
	})

	t.Run("no key always runs", func(t *testing.T) {
		f := newFixture(t, fakeOTP{code: "222222"}, true)

		for range 2 {
			_, err := f.uc.SendOTP(context.Background(), SendOTPInput{Email: "a@b.com"})
			require.NoError(t, err)
		}
		assert.Len(t, f.mail.sent, 2)
	})

	t.Run("tracker failure uses the endpoint message", func(t *testing.T) {
		f := newFixture(t, fakeOTP{code: "222222"}, true)
		f.idemp.err = errors.New("redis: connection refused")

		_, err := f.uc.SendOTP(context.Background(), SendOTPInput{Email: "a@b.com", IdempotencyKey: "k"})

		requireGoError(t, err, http.StatusInternalServerError, "Failed to send OTP")
		assert.Empty(t, f.mail.sent)
	})

	t.Run("mail failure keeps its own error", func(t *testing.T) {
		f := newFixture(t, fakeOTP{code: "222222"}, true)
		f.mail.err = errors.New("smtp down")

		_, err := f.uc.SendOTP(context.Background(), SendOTPInput{Email: "a@b.com", IdempotencyKey: "k"})

		requireGoError(t, err, http.StatusInternalServerError, "Failed to send OTP")
		assert.False(t, f.idemp.seen["recovery:send_otp:k"])
	})
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name string
		in   ResetPasswordInput
	}{
		{name: "missing both", in: ResetPasswordInput{}},
		{name: "missing new password", in: ResetPasswordInput{Email: "a@b.com"}},
		{name: "missing email", in: ResetPasswordInput{NewPassword: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fakeOTP{}, false)

			err := f.uc.ResetPassword(context.Background(), tt.in)

			requireGoError(t, err, http.StatusBadRequest, "Email and newPassword are required")
			assert.Empty(t, f.msg.resets)
		})
	}

	t.Run("accepted without verification", func(t *testing.T) {
		f := newFixture(t, fakeOTP{}, false)

		err := f.uc.ResetPassword(context.Background(), ResetPasswordInput{Email: "a@b.com", NewPassword: "x"})

		require.NoError(t, err)
		require.Len(t, f.msg.resets, 1)
		assert.Equal(t, f.now, f.msg.resets[0].RequestedAt)
		assert.True(t, f.hmac.Verify(f.msg.resets[0].EmailHash, "a@b.com"))
		assert.Empty(t, f.mail.sent)
	})

	t.Run("publish failure still succeeds", func(t *testing.T) {
		f := newFixture(t, fakeOTP{}, false)
		f.msg.err = errors.New("broker down")

		assert.NoError(t, f.uc.ResetPassword(context.Background(), ResetPasswordInput{Email: "a@b.com", NewPassword: "x"}))
	})

	t.Run("tracker failure", func(t *testing.T) {
		f := newFixture(t, fakeOTP{}, true)
		f.idemp.err = errors.New("redis down")

		err := f.uc.ResetPassword(context.Background(), ResetPasswordInput{Email: "a@b.com", NewPassword: "x", IdempotencyKey: "k"})

		requireGoError(t, err, http.StatusInternalServerError, "Failed to reset password")
	})
}

func TestAuditEvent(t *testing.T) {
	f := newFixture(t, fakeOTP{}, false)
	sum, err := f.hmac.Hash("a@b.com")
	require.NoError(t, err)

	err = f.uc.AuditEvent(context.Background(), AuditEventInput{
		Kind:       "recovery_otp_issued",
		EventID:    "e1",
		EmailHash:  string(sum),
		OccurredAt: f.now.Unix(),
	})
	assert.NoError(t, err)

	err = f.uc.AuditEvent(context.Background(), AuditEventInput{Kind: "recovery_otp_issued", EventID: "e1", EmailHash: "a@b.com", OccurredAt: 1})
	requireGoError(t, err, http.StatusBadRequest, "Invalid audit event")
}
