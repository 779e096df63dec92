package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The server wires SlogLogger over a JSON handler, so the tests assert
// against decoded JSON lines rather than text substrings.
func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "swept expired tokens", "count", 3)
	log.Info(ctx, "Starting HTTP server", "address", ":8080")
	log.Warn(ctx, "slow query", "elapsed_ms", 250)
	log.Error(ctx, "error creating user", "error", "boom")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 4)

	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "swept expired tokens", lines[0]["msg"])
	assert.Equal(t, float64(3), lines[0]["count"])

	assert.Equal(t, "INFO", lines[1]["level"])
	assert.Equal(t, ":8080", lines[1]["address"])

	assert.Equal(t, "WARN", lines[2]["level"])
	assert.Equal(t, "ERROR", lines[3]["level"])
	assert.Equal(t, "boom", lines[3]["error"])
}

func TestSlogLogger_With_TagsEveryLine(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	// Services tag their logger once at construction; every subsequent
	// line carries the module attribute.
	tagged := log.With("module", "token_store")
	tagged.Info(ctx, "first")
	tagged.Error(ctx, "second", "error", "boom")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, "token_store", line["module"])
	}
}

func TestSlogLogger_With_DoesNotMutateParent(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	_ = log.With("module", "vault")
	log.Info(ctx, "untagged")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "module")
}

func TestSlogLogger_ContextDoesNotPanic(t *testing.T) {
	log, _ := newTestLogger(t)

	ctx := context.TODO()
	log.Debug(ctx, "ctx-ok")
	log.Info(ctx, "ctx-ok")
	log.Warn(ctx, "ctx-ok")
	log.Error(ctx, "ctx-ok")
}
