package tools

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervalsmcp/pkg/config"
)

// newTestHandlers builds a handler set against a fake API server with a
// pinned clock.
func newTestHandlers(t *testing.T, baseURL string, now time.Time) *Handlers {
	t.Helper()
	cfg := &config.Config{
		AthleteID: "i12345",
		APIKey:    "test-key",
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
	}
	h := NewHandlers(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.now = func() time.Time { return now }
	return h
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// envelope decodes the JSON text a tool handler returned.
func envelope(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool result must be text content")
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	return decoded
}

func envelopeData(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	decoded := envelope(t, result)
	data, ok := decoded["data"].(map[string]any)
	require.True(t, ok, "envelope missing data object: %v", decoded)
	return data
}

// requireError asserts the envelope is an error of the given type and
// returns its message.
func requireError(t *testing.T, result *mcp.CallToolResult, wantType string) string {
	t.Helper()
	decoded := envelope(t, result)
	errObj, ok := decoded["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", decoded)
	assert.Equal(t, wantType, errObj["type"])
	message, _ := errObj["message"].(string)
	return message
}

func TestHasHelpers(t *testing.T) {
	zero := 0
	five := 5
	assert.False(t, hasInt(nil))
	assert.False(t, hasInt(&zero))
	assert.True(t, hasInt(&five))

	empty := ""
	name := "Ride"
	assert.False(t, hasStr(nil))
	assert.False(t, hasStr(&empty))
	assert.True(t, hasStr(&name))

	assert.Equal(t, "Workout", strOr(nil, "Workout"))
	assert.Equal(t, "Ride", strOr(&name, "Workout"))
}

func TestDatePart(t *testing.T) {
	assert.Equal(t, "2026-09-02", datePart("2026-09-02T06:30:00"))
	assert.Equal(t, "2026-09-02", datePart("2026-09-02"))
	assert.Equal(t, "", datePart(""))
}
