package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNewLogger_MasksConfiguredFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, "otpgate", "info", nil, []string{"otp", " newPassword ", ""})

	logger.Info("response sent",
		"otp", "123456",
		"body", map[string]any{"email": "a@b.com", "newPassword": "hunter22"},
		"raw", `{"otp":"654321","message":"OTP sent"}`,
	)

	line := decodeLine(t, buf)
	assert.Equal(t, "***", line["otp"])
	assert.Equal(t, map[string]any{"email": "a@b.com", "newPassword": "***"}, line["body"])
	assert.JSONEq(t, `{"otp":"***","message":"OTP sent"}`, line["raw"].(string))
	assert.Equal(t, "otpgate", line["service"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Contains(t, line, "ts")
}

func TestNewLogger_CorrelationID(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, "otpgate", "", nil, nil)

	ctx := SetCorrelationID(context.Background(), "cid-42")
	logger.With("module", "recovery").InfoContext(ctx, "otp sent")

	line := decodeLine(t, buf)
	assert.Equal(t, "cid-42", line["_cID"])
	assert.Equal(t, "recovery", line["module"])
	assert.Equal(t, "otpgate", line["service"])
}

func TestNewLogger_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, "otpgate", "warn", nil, nil)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel(" ERROR "))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "abc", GetCorrelationID(SetCorrelationID(context.Background(), "abc")))
}

func TestNew_Disabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ins, err := New(context.Background(), &Config{Enabled: false, ServiceName: "otpgate"})
	require.NoError(t, err)

	_, span := ins.Tracer("test").Start(context.Background(), "noop")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, ins.Shutdown(context.Background()))
}

func TestNewLogger_MasksBoundAttrsAndBytes(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger(buf, "otpgate", "info", nil, []string{"otp", "authorization"})

	logger.With("otp", "111111").Info("otp sent",
		"headers", map[string]string{"Authorization": "Bearer x", "Accept": "*/*"},
		"payload", []byte(`[{"otp":"222222"}]`),
		slog.Group("resp", slog.String("otp", "333333"), slog.Int("status", 200)),
	)

	line := decodeLine(t, buf)
	assert.Equal(t, "***", line["otp"])
	assert.Equal(t, map[string]any{"Authorization": "***", "Accept": "*/*"}, line["headers"])
	assert.JSONEq(t, `[{"otp":"***"}]`, line["payload"].(string))
	assert.Equal(t, map[string]any{"otp": "***", "status": float64(200)}, line["resp"])
}

func TestRenameAttr_Source(t *testing.T) {
	got := renameAttr(nil, slog.Any(slog.SourceKey, &slog.Source{File: "/src/otpgate/internal/recovery/usecase/send_otp.go", Line: 42}))
	assert.Equal(t, "file", got.Key)
	assert.Equal(t, "internal/recovery/usecase/send_otp.go:42", got.Value.String())

	got = renameAttr(nil, slog.Any(slog.SourceKey, &slog.Source{File: "/go/pkg/mod/net/http/server.go", Line: 1}))
	assert.True(t, got.Equal(slog.Attr{}))
}
