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

func TestJSONHandler_RedactsAndRenames(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&contextHandler{
		Handler:     newJSONHandler(&buf, slog.LevelInfo, []string{"email"}),
		serviceName: "bookstore",
	})

	ctx := SetCorrelationID(context.Background(), "cid-1")
	logger.InfoContext(ctx, "login attempt",
		"email", "jane@example.com",
		"password", "Secret#pass",
		"header", "Bearer abc.def.ghi",
		"user_id", "42",
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "login attempt", entry["msg"])
	assert.Equal(t, "INFO", entry["severity"])
	assert.Contains(t, entry, "ts")
	assert.Equal(t, "cid-1", entry["_cID"])
	assert.Equal(t, "bookstore", entry["service"])
	assert.Equal(t, "42", entry["user_id"])
	assert.NotEqual(t, "jane@example.com", entry["email"])
	assert.NotEqual(t, "Secret#pass", entry["password"])
	assert.NotContains(t, buf.String(), "Bearer abc.def.ghi")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestFanout(t *testing.T) {
	var info, warn bytes.Buffer
	logger := slog.New(fanout{
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}).With("module", "catalog")

	logger.Info("listed")
	logger.Warn("slow")
	logger.Debug("dropped")

	assert.Equal(t, 2, bytes.Count(info.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(warn.Bytes(), []byte("\n")))
	assert.Contains(t, warn.String(), `"module":"catalog"`)
	assert.NotContains(t, info.String(), "dropped")
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "x", GetCorrelationID(SetCorrelationID(context.Background(), "x")))
}
