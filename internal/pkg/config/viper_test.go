package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  server:
    address: ":9090"
    read_timeout_seconds: 15
  maintenance:
    endpoints: "/sendOtp, ,/resetPassword"
mail:
  driver: smtp
  smtp:
    service: gmail
    port: 587
instrument:
  enabled: false
  trace_sample_ratio: 0.25
  log_mask_fields: "otp,newPassword"
modules:
  recovery:
    expose_otp: false
    labels: "team:auth, tier:edge"
    idempotency:
      state_ttl_seconds: 300
      lock_ms: 1500
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, cfg.Close()) })

	assert.Equal(t, ":9090", cfg.GetString("app.server.address"))
	assert.Equal(t, 15*time.Second, cfg.GetSecond("app.server.read_timeout_seconds"))
	assert.Equal(t, 5*time.Minute, cfg.GetSecond("modules.recovery.idempotency.state_ttl_seconds"))
	assert.Equal(t, 1500*time.Millisecond, cfg.GetMillisecond("modules.recovery.idempotency.lock_ms"))
	assert.Equal(t, 587, cfg.GetInt("mail.smtp.port"))
	assert.Equal(t, uint16(587), cfg.GetUint16("mail.smtp.port"))
	assert.InDelta(t, 0.25, cfg.GetFloat64("instrument.trace_sample_ratio"), 0.0001)
	assert.False(t, cfg.GetBool("modules.recovery.expose_otp"))
	assert.False(t, cfg.GetBool("instrument.enabled"))
	assert.Equal(t, []string{"/sendOtp", "/resetPassword"}, cfg.GetArray("app.maintenance.endpoints"))
	assert.Equal(t, []string{"otp", "newPassword"}, cfg.GetArray("instrument.log_mask_fields"))
	assert.Nil(t, cfg.GetArray("does.not.exist"))
	assert.Equal(t, map[string]string{"team": "auth", "tier": "edge"}, cfg.GetMap("modules.recovery.labels"))
}

func TestNewViperFromBytes_Defaults(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte("app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.GetString("app.name"))
	assert.Equal(t, ":8080", cfg.GetString("app.server.address"))
	assert.True(t, cfg.GetBool("modules.recovery.expose_otp"))
	assert.False(t, cfg.GetBool("modules.recovery.idempotency.enabled"))
	assert.Equal(t, "none", cfg.GetString("messaging.driver"))
	assert.Equal(t, []string{"authorization", "newpassword", "otp", "password"}, cfg.GetArray("instrument.log_mask_fields"))
}

func TestNewViperFromBytes_EnvOverride(t *testing.T) {
	t.Setenv("OTPGATE_MAIL_DRIVER", "sendgrid")

	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "sendgrid", cfg.GetString("mail.driver"))
}

func TestNewViperFromBytes_Errors(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sampleYAML))
	assert.ErrorIs(t, err, ErrConfigTypeRequired)

	_, err = NewViperFromBytes("yaml", []byte("app: [unterminated"))
	assert.Error(t, err)
}

func TestNewViper_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sampleYAML), 0o600))

	cfg, err := NewViper(file)
	require.NoError(t, err)

	assert.Equal(t, "gmail", cfg.GetString("mail.smtp.service"))
}

func TestNewViper_MissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
