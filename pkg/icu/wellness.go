package icu

import (
	"context"
	"fmt"
	"net/http"
)

// GetWellness returns wellness records for a date range.
func (c *Client) GetWellness(ctx context.Context, oldest, newest string) ([]Wellness, error) {
	var records []Wellness
	path := fmt.Sprintf("/athlete/%s/wellness", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, dateRangeParams(oldest, newest), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetWellnessForDate returns the wellness record for one date.
func (c *Client) GetWellnessForDate(ctx context.Context, date string) (*Wellness, error) {
	var record Wellness
	path := fmt.Sprintf("/athlete/%s/wellness/%s", c.athleteID, date)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateWellness updates a wellness record, creating it if absent. The
// fields map must carry "id" set to the date.
func (c *Client) UpdateWellness(ctx context.Context, fields map[string]any) (*Wellness, error) {
	var record Wellness
	path := fmt.Sprintf("/athlete/%s/wellness", c.athleteID)
	if err := c.do(ctx, http.MethodPut, path, nil, fields, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateWellnessForDate updates the wellness record for one date.
func (c *Client) UpdateWellnessForDate(ctx context.Context, date string, fields map[string]any) (*Wellness, error) {
	var record Wellness
	path := fmt.Sprintf("/athlete/%s/wellness/%s", c.athleteID, date)
	if err := c.do(ctx, http.MethodPut, path, nil, fields, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateWellnessBulk updates several wellness records in one call.
func (c *Client) UpdateWellnessBulk(ctx context.Context, records []map[string]any) ([]Wellness, error) {
	var updated []Wellness
	path := fmt.Sprintf("/athlete/%s/wellness-bulk", c.athleteID)
	if err := c.do(ctx, http.MethodPut, path, nil, records, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}
