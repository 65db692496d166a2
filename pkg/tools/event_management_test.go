package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkCreateEventsValidation(t *testing.T) {
	tests := []struct {
		name    string
		events  string
		wantMsg string
	}{
		{"invalid json", "{not json", "Invalid JSON format: "},
		{"empty array", `[]`, "events array cannot be empty"},
		{
			"missing start date",
			`[{"category":"WORKOUT","name":"Tempo"}]`,
			"Event at index 0 missing required field: start_date_local",
		},
		{
			"missing category at index 1",
			`[{"start_date_local":"2026-09-03","category":"WORKOUT"},{"start_date_local":"2026-09-04"}]`,
			"Event at index 1 missing required field: category",
		},
		{
			"invalid category",
			`[{"start_date_local":"2026-09-03","category":"TRAINING"}]`,
			"Event at index 0 has invalid category: TRAINING",
		},
	}

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := h.bulkCreateEvents(context.Background(), toolRequest(map[string]any{
				"events": tc.events,
			}))
			require.NoError(t, err)
			message := requireError(t, result, "validation_error")
			assert.Contains(t, message, tc.wantMsg)
		})
	}
	assert.EqualValues(t, 0, requests.Load(), "validation failures must not hit the API")
}

func TestBulkDeleteEventsValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{"missing ids", nil, "event_ids is required"},
		{"not integers", map[string]any{"event_ids": `["a","b"]`}, "event_ids must be a JSON array of integers"},
		{"empty array", map[string]any{"event_ids": `[]`}, "event_ids array cannot be empty"},
	}

	h := newTestHandlers(t, "http://127.0.0.1:1", testNow)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := h.bulkDeleteEvents(context.Background(), toolRequest(tc.args))
			require.NoError(t, err)
			message := requireError(t, result, "validation_error")
			assert.Equal(t, tc.wantMsg, message)
		})
	}
}

func TestDuplicateEventRequiresArgs(t *testing.T) {
	h := newTestHandlers(t, "http://127.0.0.1:1", testNow)

	result, err := h.duplicateEvent(context.Background(), toolRequest(map[string]any{"new_date": "2026-09-10"}))
	require.NoError(t, err)
	message := requireError(t, result, "validation_error")
	assert.Equal(t, "event_id is required", message)

	result, err = h.duplicateEvent(context.Background(), toolRequest(map[string]any{"event_id": 5}))
	require.NoError(t, err)
	message = requireError(t, result, "validation_error")
	assert.Equal(t, "new_date is required", message)
}

func TestCreateEventRejectsBadCategory(t *testing.T) {
	h := newTestHandlers(t, "http://127.0.0.1:1", testNow)

	result, err := h.createEvent(context.Background(), toolRequest(map[string]any{
		"name":       "Club Ride",
		"start_date": "2026-09-05",
		"category":   "SOCIAL",
	}))
	require.NoError(t, err)
	message := requireError(t, result, "validation_error")
	assert.Equal(t, "category must be one of 'WORKOUT', 'NOTE', 'RACE' or 'GOAL'", message)
}
