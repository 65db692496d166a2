package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervalsmcp/pkg/icu"
)

func floatPtr(v float64) *float64 { return &v }

func TestRecentActivitiesDateWindow(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]icu.ActivitySummary{
			{
				ID:             "a1",
				StartDateLocal: "2026-08-30T07:00:00",
				Name:           strPtr("Morning Ride"),
				Type:           strPtr("Ride"),
				Distance:       floatPtr(42195),
				MovingTime:     intPtr(5400),
				TrainingLoad:   intPtr(85),
			},
		})
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getRecentActivities(context.Background(), toolRequest(map[string]any{
		"days_back": 7,
		"limit":     5,
	}))
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "oldest=2026-08-26")
	assert.Contains(t, gotQuery, "newest=2026-09-02")
	assert.NotContains(t, gotQuery, "limit")

	data := envelopeData(t, result)
	assert.EqualValues(t, 1, data["count"])
	activities := data["activities"].([]any)
	item := activities[0].(map[string]any)
	assert.Equal(t, "a1", item["id"])
	assert.Equal(t, "2026-08-30", item["date"])
	assert.Equal(t, "Morning Ride", item["name"])
	assert.EqualValues(t, 85, item["training_load"])
}

func TestRecentActivitiesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]icu.ActivitySummary{})
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getRecentActivities(context.Background(), toolRequest(map[string]any{"days_back": 14}))
	require.NoError(t, err)

	data := envelopeData(t, result)
	assert.EqualValues(t, 0, data["count"])

	metadata := envelope(t, result)["metadata"].(map[string]any)
	assert.Equal(t, "No activities found in the last 14 days", metadata["message"])
}

func TestActivitySummaryOmitsZeroMetrics(t *testing.T) {
	zero := 0
	item := activitySummaryItem(icu.ActivitySummary{
		ID:             "a2",
		StartDateLocal: "2026-09-01T06:00:00",
		AverageWatts:   &zero,
	})

	assert.Equal(t, "Activity", item["name"])
	_, present := item["average_watts"]
	assert.False(t, present, "zero metrics must be omitted")
}

func TestUpdateActivityRejectsBadJSON(t *testing.T) {
	h := newTestHandlers(t, "http://127.0.0.1:1", testNow)

	result, err := h.updateActivity(context.Background(), toolRequest(map[string]any{
		"activity_id": "a1",
		"data":        "{not json",
	}))
	require.NoError(t, err)
	message := requireError(t, result, "validation_error")
	assert.Contains(t, message, "Invalid JSON format: ")

	result, err = h.updateActivity(context.Background(), toolRequest(map[string]any{
		"activity_id": "a1",
		"data":        "{}",
	}))
	require.NoError(t, err)
	requireError(t, result, "validation_error")
}

func TestDownloadFitFileReturnsBase64(t *testing.T) {
	payload := []byte{0x0e, 0x10, 0x43, 0x00}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity/a1/fit-file", r.URL.Path)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	handler := h.downloadFile("fit", (*icu.Client).DownloadFitFile)
	result, err := handler(context.Background(), toolRequest(map[string]any{"activity_id": "a1"}))
	require.NoError(t, err)

	data := envelopeData(t, result)
	assert.Equal(t, "fit", data["format"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), data["content_base64"])

	metadata := envelope(t, result)["metadata"].(map[string]any)
	assert.EqualValues(t, len(payload), metadata["size_bytes"])
}

func TestDeleteActivityConfirmation(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.deleteActivity(context.Background(), toolRequest(map[string]any{"activity_id": "a9"}))
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/activity/a9", gotPath)

	data := envelopeData(t, result)
	assert.Equal(t, true, data["deleted"])
	assert.Equal(t, "a9", data["activity_id"])
}
