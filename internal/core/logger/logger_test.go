package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToWriterTrimsNewlines(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := ToWriter(zap.New(core), zapcore.InfoLevel)

	n, err := w.Write([]byte("[GIN-debug] GET /health\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "[GIN-debug] GET /health", logs.All()[0].Message)
}

func TestToWriterRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := ToWriter(zap.New(core), zapcore.DebugLevel)

	_, err := w.Write([]byte("dropped\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, logs.Len())
}

func TestToStdLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	std := ToStdLogger(zap.New(core), zapcore.ErrorLevel)

	std.Print("http: TLS handshake error")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestNewWithRotateWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := NewWithRotate("info", true, FileRotate{Enable: true, Filename: file, MaxSizeMB: 1})
	l.Info("hello", zap.String("k", "v"))
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"k":"v"`)
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("loud", false)
	defer cleanup()
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
