package icu

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// GetActivities lists activities for a date range. The limit is applied
// client side after the response arrives.
func (c *Client) GetActivities(ctx context.Context, oldest, newest string, limit int) ([]ActivitySummary, error) {
	var activities []ActivitySummary
	path := fmt.Sprintf("/athlete/%s/activities", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, dateRangeParams(oldest, newest), nil, &activities); err != nil {
		return nil, err
	}
	return truncate(activities, limit), nil
}

// GetActivity fetches one activity with full details.
func (c *Client) GetActivity(ctx context.Context, activityID string) (*Activity, error) {
	var activity Activity
	path := fmt.Sprintf("/activity/%s", activityID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// SearchActivities searches activities by name or tag, returning the
// compact search shape.
func (c *Client) SearchActivities(ctx context.Context, query string, limit int) ([]ActivitySearchResult, error) {
	var results []ActivitySearchResult
	params := url.Values{"q": {query}}
	path := fmt.Sprintf("/athlete/%s/activities/search", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &results); err != nil {
		return nil, err
	}
	return truncate(results, limit), nil
}

// SearchActivitiesFull searches activities by name or tag, returning full
// Activity records.
func (c *Client) SearchActivitiesFull(ctx context.Context, query string, limit int) ([]Activity, error) {
	var results []Activity
	params := url.Values{"q": {query}}
	path := fmt.Sprintf("/athlete/%s/activities/search-full", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &results); err != nil {
		return nil, err
	}
	return truncate(results, limit), nil
}

// GetActivitiesAround returns activities before and after a reference
// activity. Unlike the list endpoints, count is passed to the server.
func (c *Client) GetActivitiesAround(ctx context.Context, activityID string, count int) ([]Activity, error) {
	var results []Activity
	params := url.Values{
		"id":    {activityID},
		"count": {strconv.Itoa(count)},
	}
	path := fmt.Sprintf("/athlete/%s/activities-around", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateActivity updates fields on an existing activity.
func (c *Client) UpdateActivity(ctx context.Context, activityID string, fields map[string]any) (*Activity, error) {
	var activity Activity
	path := fmt.Sprintf("/activity/%s", activityID)
	if err := c.do(ctx, http.MethodPut, path, nil, fields, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// DeleteActivity removes an activity.
func (c *Client) DeleteActivity(ctx context.Context, activityID string) error {
	path := fmt.Sprintf("/activity/%s", activityID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// DownloadActivityFile fetches the originally uploaded file.
func (c *Client) DownloadActivityFile(ctx context.Context, activityID string) ([]byte, error) {
	path := fmt.Sprintf("/activity/%s/file", activityID)
	return c.doRaw(ctx, http.MethodGet, path, nil, nil)
}

// DownloadFitFile fetches the activity converted to FIT format.
func (c *Client) DownloadFitFile(ctx context.Context, activityID string) ([]byte, error) {
	path := fmt.Sprintf("/activity/%s/fit-file", activityID)
	return c.doRaw(ctx, http.MethodGet, path, nil, nil)
}

// DownloadGPXFile fetches the activity converted to GPX format.
func (c *Client) DownloadGPXFile(ctx context.Context, activityID string) ([]byte, error) {
	path := fmt.Sprintf("/activity/%s/gpx-file", activityID)
	return c.doRaw(ctx, http.MethodGet, path, nil, nil)
}

// truncate bounds a result list. The count never exceeds limit; a limit
// of zero yields an empty list.
func truncate[T any](items []T, limit int) []T {
	if limit < 0 {
		limit = 0
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
