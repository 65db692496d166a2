package icu

import (
	"context"
	"fmt"
	"net/http"
)

// GetGear returns all gear items for the athlete.
func (c *Client) GetGear(ctx context.Context) ([]Gear, error) {
	var gear []Gear
	path := fmt.Sprintf("/athlete/%s/gear", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &gear); err != nil {
		return nil, err
	}
	return gear, nil
}

// CreateGear creates a gear item.
func (c *Client) CreateGear(ctx context.Context, fields map[string]any) (*Gear, error) {
	var gear Gear
	path := fmt.Sprintf("/athlete/%s/gear", c.athleteID)
	if err := c.do(ctx, http.MethodPost, path, nil, fields, &gear); err != nil {
		return nil, err
	}
	return &gear, nil
}

// UpdateGear updates a gear item.
func (c *Client) UpdateGear(ctx context.Context, gearID string, fields map[string]any) (*Gear, error) {
	var gear Gear
	path := fmt.Sprintf("/athlete/%s/gear/%s", c.athleteID, gearID)
	if err := c.do(ctx, http.MethodPut, path, nil, fields, &gear); err != nil {
		return nil, err
	}
	return &gear, nil
}

// DeleteGear removes a gear item.
func (c *Client) DeleteGear(ctx context.Context, gearID string) error {
	path := fmt.Sprintf("/athlete/%s/gear/%s", c.athleteID, gearID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// CreateGearReminder adds a maintenance reminder to a gear item.
func (c *Client) CreateGearReminder(ctx context.Context, gearID string, fields map[string]any) (*GearReminder, error) {
	var reminder GearReminder
	path := fmt.Sprintf("/athlete/%s/gear/%s/reminders", c.athleteID, gearID)
	if err := c.do(ctx, http.MethodPost, path, nil, fields, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// UpdateGearReminder updates a maintenance reminder.
func (c *Client) UpdateGearReminder(ctx context.Context, gearID string, reminderID int, fields map[string]any) (*GearReminder, error) {
	var reminder GearReminder
	path := fmt.Sprintf("/athlete/%s/gear/%s/reminders/%d", c.athleteID, gearID, reminderID)
	if err := c.do(ctx, http.MethodPut, path, nil, fields, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}
