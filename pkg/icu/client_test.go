package icu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervalsmcp/pkg/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		AthleteID: "i12345",
		APIKey:    "test-key",
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
	}
}

func TestOpenRequiresCredentials(t *testing.T) {
	_, err := Open(&config.Config{APIKey: "key"})
	require.Error(t, err)

	_, err = Open(&config.Config{AthleteID: "i12345"})
	require.Error(t, err)
}

func TestClosedClientRejectsCalls(t *testing.T) {
	client, err := Open(testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)
	client.Close()

	_, err = client.GetAthlete(context.Background())
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestBasicAuthHeader(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		_ = json.NewEncoder(w).Encode(Athlete{ID: "i12345", Name: "Test"})
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetAthlete(context.Background())
	require.NoError(t, err)
	assert.True(t, gotOK)
	assert.Equal(t, "API_KEY", gotUser)
	assert.Equal(t, "test-key", gotPass)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantStatus  int
	}{
		{
			name:        "unauthorized",
			status:      401,
			wantMessage: "Unauthorized. Check your API key and athlete ID.",
			wantStatus:  401,
		},
		{
			name:        "not found",
			status:      404,
			wantMessage: "Resource not found.",
			wantStatus:  404,
		},
		{
			name:        "rate limited",
			status:      429,
			wantMessage: "Rate limit exceeded. Please try again later.",
			wantStatus:  429,
		},
		{
			name:        "server error",
			status:      500,
			body:        "boom",
			wantMessage: "HTTP 500: boom",
			wantStatus:  500,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := Open(testConfig(srv.URL))
			require.NoError(t, err)
			defer client.Close()

			_, err = client.GetAthlete(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.wantMessage, apiErr.Message)
			assert.Equal(t, tc.wantStatus, apiErr.StatusCode)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	// Nothing listens on this port.
	client, err := Open(testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetAthlete(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "Request failed: ")
	assert.Zero(t, apiErr.StatusCode)
}

func TestGetActivitiesClientSideLimit(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		activities := make([]ActivitySummary, 10)
		for i := range activities {
			activities[i] = ActivitySummary{ID: "a1", StartDateLocal: "2026-08-01T10:00:00"}
		}
		_ = json.NewEncoder(w).Encode(activities)
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	activities, err := client.GetActivities(context.Background(), "2026-07-01", "2026-08-01", 3)
	require.NoError(t, err)
	assert.Len(t, activities, 3)

	// limit must never reach the server, only the date range does
	assert.NotContains(t, gotQuery, "limit")
	assert.Contains(t, gotQuery, "oldest=2026-07-01")
	assert.Contains(t, gotQuery, "newest=2026-08-01")
}

func TestGetActivitiesZeroLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		activities := make([]ActivitySummary, 3)
		for i := range activities {
			activities[i] = ActivitySummary{ID: "a1", StartDateLocal: "2026-08-01T10:00:00"}
		}
		_ = json.NewEncoder(w).Encode(activities)
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	// A zero limit bounds the result to nothing, it is not "unlimited".
	activities, err := client.GetActivities(context.Background(), "2026-07-01", "2026-08-01", 0)
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestGetActivitiesAroundPassesCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.URL.Query().Get("id"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		_ = json.NewEncoder(w).Encode([]Activity{})
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetActivitiesAround(context.Background(), "abc", 5)
	require.NoError(t, err)
}

func TestBulkDeleteEventsSendsIDsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		var body map[string][]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []int{1, 2, 3}, body["ids"])
		_ = json.NewEncoder(w).Encode(map[string]any{"deleted": 3})
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	result, err := client.BulkDeleteEvents(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result["deleted"])
}

func TestPaceCurvesGAPParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("gap"))
		_ = json.NewEncoder(w).Encode(Curve{})
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetPaceCurves(context.Background(), "", "", true)
	require.NoError(t, err)
}

func TestDownloadReturnsRawBytes(t *testing.T) {
	payload := []byte{0x0e, 0x10, 0x43, 0x00}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity/abc/fit-file", r.URL.Path)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	data, err := client.DownloadFitFile(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestUpdateWellnessPutsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/athlete/i12345/wellness", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2026-08-30", body["id"])
		assert.EqualValues(t, 48, body["restingHR"])
		_ = json.NewEncoder(w).Encode(Wellness{ID: "2026-08-30"})
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	record, err := client.UpdateWellness(context.Background(), map[string]any{
		"id":        "2026-08-30",
		"restingHR": 48,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", record.ID)
}

func TestUpdateWellnessBulkPutsRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/athlete/i12345/wellness-bulk", r.URL.Path)
		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 2)
		assert.Equal(t, "2026-08-29", body[0]["id"])
		assert.Equal(t, "2026-08-30", body[1]["id"])
		_ = json.NewEncoder(w).Encode([]Wellness{{ID: "2026-08-29"}, {ID: "2026-08-30"}})
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	updated, err := client.UpdateWellnessBulk(context.Background(), []map[string]any{
		{"id": "2026-08-29", "sleepSecs": 26100},
		{"id": "2026-08-30", "sleepSecs": 28800},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, "2026-08-30", updated[1].ID)
}

func TestWellnessCamelCaseAliases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"2026-08-30","restingHR":48,"hrvSDNN":65.5,"sleepSecs":27000}`))
	}))
	defer srv.Close()

	client, err := Open(testConfig(srv.URL))
	require.NoError(t, err)
	defer client.Close()

	record, err := client.GetWellnessForDate(context.Background(), "2026-08-30")
	require.NoError(t, err)
	require.NotNil(t, record.RestingHR)
	assert.Equal(t, 48, *record.RestingHR)
	require.NotNil(t, record.HRVSDNN)
	assert.InDelta(t, 65.5, *record.HRVSDNN, 0.001)
	require.NotNil(t, record.SleepSecs)
	assert.Equal(t, 27000, *record.SleepSecs)
}
