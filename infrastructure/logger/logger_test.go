package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(nil))
}

func TestCreateFields(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	fields := createFields(ctx, LoggerInfo{
		ContextFunction: "Generate",
		Error: &CustomError{
			Code:    "SVC001",
			Message: "boom",
			Type:    "validation",
		},
		Data: map[string]interface{}{"url": "https://example.com"},
	})

	// request id + function + 3 error fields + 1 data field
	assert.Len(t, fields, 6)
}

func TestInitialize_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qrgen.log")

	Initialize(Options{Production: true, FilePath: path, MaxSizeMB: 1})
	defer func() { logger = nil }()

	Info("file sink check", LoggerInfo{ContextFunction: "Test"})
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file sink check")
	assert.Contains(t, string(data), `"function":"Test"`)
}

func TestLoggingWithoutInitializeIsNoop(t *testing.T) {
	logger = nil

	assert.NotPanics(t, func() {
		Info("ignored", LoggerInfo{})
		CtxWarn(context.Background(), "ignored", LoggerInfo{})
		Close()
	})
}
