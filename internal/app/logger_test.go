package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/poetry-backend/internal/config"
	"github.com/heartmarshall/poetry-backend/pkg/ctxutil"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})

	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level    string
		wantSlog slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" Warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, config.LogConfig{Level: tt.level, Format: "text"})

			logger.Log(context.Background(), tt.wantSlog, "should appear")
			assert.NotZero(t, buf.Len(), "expected output at level %v", tt.wantSlog)

			buf.Reset()
			logger.Log(context.Background(), tt.wantSlog-1, "should be suppressed")
			assert.Zero(t, buf.Len(), "unexpected output: %s", buf.String())
		})
	}
}

func TestNewLogger_TextAddSource_JSONNoSource(t *testing.T) {
	var textBuf, jsonBuf bytes.Buffer

	newLogger(&textBuf, config.LogConfig{Level: "info", Format: "text"}).Info("hola")
	newLogger(&jsonBuf, config.LogConfig{Level: "info", Format: "json"}).Info("hola")

	assert.Contains(t, textBuf.String(), "source=")

	var m map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &m))
	assert.NotContains(t, m, "source")
	assert.Equal(t, "hola", m["msg"])
}

func TestNewLogger_RequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "json"}).
		With("service", "poem").
		WithGroup("req")

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "poem created", slog.String("poem_id", "p1"))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "poem", m["service"])
	group, ok := m["req"].(map[string]any)
	require.True(t, ok, "expected grouped attrs: %v", m)
	assert.Equal(t, "req-42", group["request_id"])
	assert.Equal(t, "p1", group["poem_id"])
}

func TestNewLogger_RequestIDNotDuplicated(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "text"})

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "http.request", slog.String("request_id", "req-42"))

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("request_id=")))
}

func TestNewLogger_NoRequestID(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "info", Format: "json"}).Info("startup")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.NotContains(t, m, "request_id")
}
