package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldErr map[string]string

func (f fieldErr) Error() string              { return "fields" }
func (f fieldErr) Values() map[string]string { return f }

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid format", err: NewInvalidFormat(), want: http.StatusBadRequest},
		{name: "invalid input", err: NewInvalidInput("Email is required", nil), want: http.StatusBadRequest},
		{name: "conflict", err: NewBusiness("dup", CodeConflict), want: http.StatusConflict},
		{name: "not found", err: NewBusiness("gone", CodeNotFound), want: http.StatusNotFound},
		{name: "unavailable", err: NewBusiness("down", CodeUnavailable), want: http.StatusServiceUnavailable},
		{name: "too many", err: NewBusiness("slow down", CodeTooManyRequest), want: http.StatusTooManyRequests},
		{name: "server", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "unknown code", err: NewBusiness("odd", Code(99)), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewServer_Message(t *testing.T) {
	cause := errors.New("smtp: connection refused")

	err := NewServer(cause, "Failed to send OTP")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Failed to send OTP", gerr.Msg())
	assert.Equal(t, TypeServer, gerr.Type())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Error())

	err = NewServer(cause)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Internal server error", gerr.Msg())
}

func TestNewInvalidInput_KeepsFields(t *testing.T) {
	err := NewInvalidInput("Email is required", fieldErr{"email": "email is a required field"})

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Email is required", gerr.Msg())
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, map[string]string{"email": "email is a required field"}, gerr.Fields())
}

func TestError_ErrorFallbacks(t *testing.T) {
	assert.Equal(t, "Validation violation", (&Error{errType: TypeValidation}).Error())
	assert.Equal(t, "Internal error", (&Error{errType: TypeServer}).Error())
	assert.Equal(t, "custom", (&Error{msg: "custom"}).Error())
	assert.Contains(t, (&Error{code: CodeConflict}).String(), "ERROR_CODE_CONFLICT")
	assert.Equal(t, "ERROR_TYPE_UNKNOWN", Type(7).String())
	assert.Equal(t, "ERROR_CODE_INTERNAL", Code(-1).String())
}

func TestNewInvalidFormat(t *testing.T) {
	var gerr *Error
	require.ErrorAs(t, NewInvalidFormat(), &gerr)
	assert.Equal(t, "Invalid request body", gerr.Msg())

	require.ErrorAs(t, NewInvalidFormat("Body too large"), &gerr)
	assert.Equal(t, "Body too large", gerr.Msg())
	assert.Equal(t, TypeValidation, gerr.Type())
}
