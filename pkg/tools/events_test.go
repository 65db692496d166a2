package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervalsmcp/pkg/icu"
)

// 2026-09-02 is a Wednesday.
var testNow = time.Date(2026, 9, 2, 15, 4, 5, 0, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func eventsServer(t *testing.T, events []icu.Event, gotQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/athlete/i12345/events", r.URL.Path)
		if gotQuery != nil {
			*gotQuery = r.URL.RawQuery
		}
		_ = json.NewEncoder(w).Encode(events)
	}))
}

func TestRelativeTiming(t *testing.T) {
	today := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		date          string
		tomorrowLabel bool
		want          string
	}{
		{"2026-09-02", true, "today"},
		{"2026-09-02", false, "today"},
		{"2026-09-03", true, "tomorrow"},
		{"2026-09-03", false, "in_1_days"},
		{"2026-09-01", true, "1_days_ago"},
		{"2026-08-28", false, "5_days_ago"},
		{"2026-09-12", true, "in_10_days"},
		{"not-a-date", true, "not-a-date"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, relativeTiming(tc.date, today, tc.tomorrowLabel),
			"date %s tomorrowLabel %v", tc.date, tc.tomorrowLabel)
	}
}

func TestUpcomingWorkoutsFiltersSortsAndLimits(t *testing.T) {
	events := []icu.Event{
		{ID: 3, StartDateLocal: "2026-09-05T06:00:00", Category: strPtr("WORKOUT"), Name: strPtr("Long Run")},
		{ID: 2, StartDateLocal: "2026-09-03T06:00:00", Category: strPtr("WORKOUT"), Name: strPtr("Intervals"), TrainingLoad: intPtr(60)},
		{ID: 4, StartDateLocal: "2026-09-04T06:00:00", Category: strPtr("NOTE"), Name: strPtr("Rest day")},
		{ID: 1, StartDateLocal: "2026-09-02T06:00:00", Category: strPtr("WORKOUT"), Name: strPtr("Easy Ride"), TrainingLoad: intPtr(50)},
		{ID: 5, StartDateLocal: "2026-09-10T08:00:00", Category: strPtr("RACE"), Name: strPtr("Club TT")},
	}

	var gotQuery string
	srv := eventsServer(t, events, &gotQuery)
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getUpcomingWorkouts(context.Background(), toolRequest(map[string]any{"limit": 2}))
	require.NoError(t, err)

	// The fetch window is fixed, independent of the limit.
	assert.Contains(t, gotQuery, "oldest=2026-09-02")
	assert.Contains(t, gotQuery, "newest=2026-10-02")

	data := envelopeData(t, result)
	workouts, ok := data["workouts"].([]any)
	require.True(t, ok)
	require.Len(t, workouts, 2)
	assert.EqualValues(t, 2, data["count"])

	first := workouts[0].(map[string]any)
	second := workouts[1].(map[string]any)
	assert.Equal(t, "Easy Ride", first["name"])
	assert.Equal(t, "today", first["relative_timing"])
	assert.Equal(t, "Intervals", second["name"])
	assert.Equal(t, "tomorrow", second["relative_timing"])

	assert.EqualValues(t, 110, data["total_planned_load"])
}

func TestUpcomingWorkoutsZeroLimit(t *testing.T) {
	events := []icu.Event{
		{ID: 1, StartDateLocal: "2026-09-03T06:00:00", Category: strPtr("WORKOUT"), Name: strPtr("Intervals"), TrainingLoad: intPtr(60)},
		{ID: 2, StartDateLocal: "2026-09-04T06:00:00", Category: strPtr("WORKOUT"), Name: strPtr("Endurance"), TrainingLoad: intPtr(80)},
		{ID: 3, StartDateLocal: "2026-09-05T06:00:00", Category: strPtr("WORKOUT"), Name: strPtr("Long Run"), TrainingLoad: intPtr(110)},
	}
	srv := eventsServer(t, events, nil)
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getUpcomingWorkouts(context.Background(), toolRequest(map[string]any{"limit": 0}))
	require.NoError(t, err)

	data := envelopeData(t, result)
	assert.EqualValues(t, 0, data["count"])
	assert.Empty(t, data["workouts"])
	assert.Nil(t, data["total_planned_load"])
}

func TestUpcomingWorkoutsNullLoadWhenZero(t *testing.T) {
	events := []icu.Event{
		{ID: 1, StartDateLocal: "2026-09-03T06:00:00", Category: strPtr("WORKOUT"), Name: strPtr("Recovery Spin")},
	}
	srv := eventsServer(t, events, nil)
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getUpcomingWorkouts(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	data := envelopeData(t, result)
	load, present := data["total_planned_load"]
	require.True(t, present)
	assert.Nil(t, load)
}

func TestUpcomingWorkoutsEmpty(t *testing.T) {
	srv := eventsServer(t, []icu.Event{}, nil)
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getUpcomingWorkouts(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	data := envelopeData(t, result)
	assert.EqualValues(t, 0, data["count"])
	assert.Empty(t, data["workouts"])

	metadata := envelope(t, result)["metadata"].(map[string]any)
	assert.Equal(t, "No workouts planned on your calendar", metadata["message"])
}

func TestCalendarEventsGroupsByDate(t *testing.T) {
	events := []icu.Event{
		{ID: 1, StartDateLocal: "2026-09-03T06:00:00", Category: strPtr("WORKOUT"), Name: strPtr("Threshold"), TrainingLoad: intPtr(80)},
		{ID: 2, StartDateLocal: "2026-09-03T18:00:00", Category: strPtr("NOTE"), Name: strPtr("Travel day")},
		{ID: 3, StartDateLocal: "2026-09-06T09:00:00", Category: strPtr("RACE"), Name: strPtr("Hill Climb")},
	}

	var gotQuery string
	srv := eventsServer(t, events, &gotQuery)
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getCalendarEvents(context.Background(), toolRequest(map[string]any{
		"days_back":  2,
		"days_ahead": 5,
	}))
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "oldest=2026-08-31")
	assert.Contains(t, gotQuery, "newest=2026-09-07")

	data := envelopeData(t, result)
	byDate, ok := data["events_by_date"].(map[string]any)
	require.True(t, ok)
	require.Len(t, byDate, 2)

	thursday := byDate["2026-09-03"].([]any)
	require.Len(t, thursday, 2)
	workout := thursday[0].(map[string]any)
	assert.Equal(t, "Threshold", workout["name"])
	// The calendar never labels one day ahead as tomorrow.
	assert.Equal(t, "in_1_days", workout["relative_timing"])
	assert.EqualValues(t, 80, workout["training_load"])

	summary := data["summary"].(map[string]any)
	assert.EqualValues(t, 3, summary["total_events"])
	byCategory := summary["by_category"].(map[string]any)
	assert.EqualValues(t, 1, byCategory["workouts"])
	assert.EqualValues(t, 1, byCategory["notes"])
	assert.EqualValues(t, 1, byCategory["races"])
	assert.EqualValues(t, 0, byCategory["goals"])
}

func TestCalendarEventsEmptyRange(t *testing.T) {
	srv := eventsServer(t, []icu.Event{}, nil)
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getCalendarEvents(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	data := envelopeData(t, result)
	assert.Empty(t, data["events"])
	assert.EqualValues(t, 0, data["count"])

	dateRange := data["date_range"].(map[string]any)
	assert.Equal(t, "2026-09-02", dateRange["oldest"])
	assert.Equal(t, "2026-09-09", dateRange["newest"])
}

func TestCalendarEventsAPIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv.URL, testNow)
	result, err := h.getCalendarEvents(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	message := requireError(t, result, "api_error")
	assert.Equal(t, "Unauthorized. Check your API key and athlete ID.", message)
}

func TestGetEventRequiresID(t *testing.T) {
	h := newTestHandlers(t, "http://127.0.0.1:1", testNow)
	result, err := h.getEvent(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	requireError(t, result, "validation_error")
}
