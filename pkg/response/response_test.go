package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	out := Success([]string{"a", "b"}, nil)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, []any{"a", "b"}, envelope["data"])
	assert.NotContains(t, envelope, "error")
}

func TestSuccessWithExtras(t *testing.T) {
	out := Success(map[string]any{"id": 1}, map[string]any{
		"metadata":   map[string]any{"count": 1},
		"query_type": "recent",
	})

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, "recent", envelope["query_type"])
	meta, ok := envelope["metadata"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, meta["count"])
}

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		typ     ErrorType
		message string
	}{
		{name: "validation", typ: ValidationError, message: "limit must be positive"},
		{name: "api", typ: APIError, message: "Rate limit exceeded. Please try again later."},
		{name: "not found", typ: NotFound, message: "Resource not found."},
		{name: "internal", typ: InternalError, message: "boom"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Error(tc.typ, tc.message)

			var envelope map[string]map[string]string
			require.NoError(t, json.Unmarshal([]byte(out), &envelope))
			assert.Equal(t, tc.message, envelope["error"]["message"])
			assert.Equal(t, string(tc.typ), envelope["error"]["type"])
		})
	}
}
