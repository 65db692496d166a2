package icu

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GetActivityIntervals returns the structured intervals of an activity.
func (c *Client) GetActivityIntervals(ctx context.Context, activityID string) ([]Interval, error) {
	var intervals []Interval
	path := fmt.Sprintf("/activity/%s/intervals", activityID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &intervals); err != nil {
		return nil, err
	}
	return intervals, nil
}

// GetActivityStreams returns time-series streams for an activity. An
// empty types slice fetches all available streams.
func (c *Client) GetActivityStreams(ctx context.Context, activityID string, types []string) (*Streams, error) {
	params := url.Values{}
	if len(types) > 0 {
		params.Set("types", strings.Join(types, ","))
	}
	var streams Streams
	path := fmt.Sprintf("/activity/%s/streams", activityID)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &streams); err != nil {
		return nil, err
	}
	return &streams, nil
}

// GetBestEfforts returns the best efforts found in an activity.
func (c *Client) GetBestEfforts(ctx context.Context, activityID string) ([]BestEffort, error) {
	var efforts []BestEffort
	path := fmt.Sprintf("/activity/%s/best-efforts", activityID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &efforts); err != nil {
		return nil, err
	}
	return efforts, nil
}

// SearchIntervals searches intervals across all activities. Results keep
// the server's shape; the limit is applied client side.
func (c *Client) SearchIntervals(ctx context.Context, intervalType string, minDuration, maxDuration, limit int) ([]map[string]any, error) {
	params := url.Values{}
	if intervalType != "" {
		params.Set("type", intervalType)
	}
	if minDuration > 0 {
		params.Set("minDuration", strconv.Itoa(minDuration))
	}
	if maxDuration > 0 {
		params.Set("maxDuration", strconv.Itoa(maxDuration))
	}
	var results []map[string]any
	path := fmt.Sprintf("/athlete/%s/activities/interval-search", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &results); err != nil {
		return nil, err
	}
	return truncate(results, limit), nil
}

// GetPowerHistogram returns the power distribution for an activity.
func (c *Client) GetPowerHistogram(ctx context.Context, activityID string) (*Histogram, error) {
	return c.getHistogram(ctx, activityID, "power-histogram")
}

// GetHRHistogram returns the heart rate distribution for an activity.
func (c *Client) GetHRHistogram(ctx context.Context, activityID string) (*Histogram, error) {
	return c.getHistogram(ctx, activityID, "hr-histogram")
}

// GetPaceHistogram returns the pace distribution for an activity.
func (c *Client) GetPaceHistogram(ctx context.Context, activityID string) (*Histogram, error) {
	return c.getHistogram(ctx, activityID, "pace-histogram")
}

// GetGAPHistogram returns the grade adjusted pace distribution for an
// activity.
func (c *Client) GetGAPHistogram(ctx context.Context, activityID string) (*Histogram, error) {
	return c.getHistogram(ctx, activityID, "gap-histogram")
}

func (c *Client) getHistogram(ctx context.Context, activityID, kind string) (*Histogram, error) {
	var histogram Histogram
	path := fmt.Sprintf("/activity/%s/%s", activityID, kind)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &histogram); err != nil {
		return nil, err
	}
	return &histogram, nil
}
