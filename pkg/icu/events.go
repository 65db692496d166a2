package icu

import (
	"context"
	"fmt"
	"net/http"
)

// GetEvents returns calendar events (planned workouts, notes, races,
// goals) for a date range.
func (c *Client) GetEvents(ctx context.Context, oldest, newest string) ([]Event, error) {
	var events []Event
	path := fmt.Sprintf("/athlete/%s/events", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, dateRangeParams(oldest, newest), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent returns one calendar event.
func (c *Client) GetEvent(ctx context.Context, eventID int) (*Event, error) {
	var event Event
	path := fmt.Sprintf("/athlete/%s/events/%d", c.athleteID, eventID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent creates a calendar event.
func (c *Client) CreateEvent(ctx context.Context, fields map[string]any) (*Event, error) {
	var event Event
	path := fmt.Sprintf("/athlete/%s/events", c.athleteID)
	if err := c.do(ctx, http.MethodPost, path, nil, fields, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent updates a calendar event.
func (c *Client) UpdateEvent(ctx context.Context, eventID int, fields map[string]any) (*Event, error) {
	var event Event
	path := fmt.Sprintf("/athlete/%s/events/%d", c.athleteID, eventID)
	if err := c.do(ctx, http.MethodPut, path, nil, fields, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes a calendar event.
func (c *Client) DeleteEvent(ctx context.Context, eventID int) error {
	path := fmt.Sprintf("/athlete/%s/events/%d", c.athleteID, eventID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// BulkCreateEvents creates several calendar events in one call.
func (c *Client) BulkCreateEvents(ctx context.Context, events []map[string]any) ([]Event, error) {
	var created []Event
	path := fmt.Sprintf("/athlete/%s/events/bulk", c.athleteID)
	if err := c.do(ctx, http.MethodPost, path, nil, events, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// BulkDeleteEvents deletes several calendar events in one call.
func (c *Client) BulkDeleteEvents(ctx context.Context, eventIDs []int) (map[string]any, error) {
	var result map[string]any
	path := fmt.Sprintf("/athlete/%s/events/bulk", c.athleteID)
	body := map[string]any{"ids": eventIDs}
	if err := c.do(ctx, http.MethodDelete, path, nil, body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DuplicateEvent copies an event to a new date.
func (c *Client) DuplicateEvent(ctx context.Context, eventID int, newDate string) (*Event, error) {
	var event Event
	path := fmt.Sprintf("/athlete/%s/events/%d/duplicate", c.athleteID, eventID)
	body := map[string]any{"start_date_local": newDate}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
