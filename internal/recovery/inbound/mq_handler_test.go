package inbound

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/recovery/usecase"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHash = "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"

type fakeUC struct {
	audited []usecase.AuditEventInput
	cIDs    []string
	err     error
}

func (f *fakeUC) SendOTP(context.Context, usecase.SendOTPInput) (*usecase.SendOTPOutput, error) {
	return nil, errors.New("not used")
}

func (f *fakeUC) ResetPassword(context.Context, usecase.ResetPasswordInput) error {
	return errors.New("not used")
}

func (f *fakeUC) AuditEvent(ctx context.Context, in usecase.AuditEventInput) error {
	f.audited = append(f.audited, in)
	f.cIDs = append(f.cIDs, instrument.GetCorrelationID(ctx))
	return f.err
}

type staticID string

func (s staticID) Generate() string { return string(s) }

func newHandler(uc *fakeUC) *MQHandler {
	return &MQHandler{uc: uc, uuid: staticID("generated"), ins: instrument.NewNoop()}
}

func TestMQHandler_OTPIssuedAudit(t *testing.T) {
	uc := &fakeUC{}
	h := newHandler(uc)

	err := h.OTPIssuedAudit(context.Background(), messaging.Message{
		Topic:   event.RecoveryOTPIssuedDestination,
		Body:    []byte(`{"event_id":"evt-1","email_hash":"` + sampleHash + `","issued_at":1700000000}`),
		Headers: map[string]string{"CID": "from-request"},
	})

	require.NoError(t, err)
	require.Len(t, uc.audited, 1)
	assert.Equal(t, usecase.AuditEventInput{
		Kind:       event.RecoveryOTPIssuedDestination,
		EventID:    "evt-1",
		EmailHash:  sampleHash,
		OccurredAt: 1700000000,
	}, uc.audited[0])
	assert.Equal(t, []string{"from-request"}, uc.cIDs)
}

func TestMQHandler_PasswordResetRequestedAudit(t *testing.T) {
	uc := &fakeUC{}
	h := newHandler(uc)

	err := h.PasswordResetRequestedAudit(context.Background(), messaging.Message{
		Body: []byte(`{"event_id":"evt-2","email_hash":"` + sampleHash + `","requested_at":1700000100}`),
	})

	require.NoError(t, err)
	require.Len(t, uc.audited, 1)
	assert.Equal(t, event.RecoveryPasswordResetRequestedDestination, uc.audited[0].Kind)
	assert.Equal(t, int64(1700000100), uc.audited[0].OccurredAt)
	assert.Equal(t, []string{"generated"}, uc.cIDs)
}

func TestMQHandler_DropsBadMessages(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		uc := &fakeUC{}

		err := newHandler(uc).OTPIssuedAudit(context.Background(), messaging.Message{Body: []byte(`{`)})

		assert.NoError(t, err)
		assert.Empty(t, uc.audited)
	})

	t.Run("usecase rejects", func(t *testing.T) {
		uc := &fakeUC{err: errors.New("invalid")}

		err := newHandler(uc).PasswordResetRequestedAudit(context.Background(), messaging.Message{Body: []byte(`{}`)})

		assert.NoError(t, err)
		assert.Len(t, uc.audited, 1)
	})
}
