package icu

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetSportSettings returns all sport settings for the athlete.
func (c *Client) GetSportSettings(ctx context.Context) ([]SportSetting, error) {
	var settings []SportSetting
	path := fmt.Sprintf("/athlete/%s/sport-settings", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// CreateSportSettings creates a sport settings record.
func (c *Client) CreateSportSettings(ctx context.Context, fields map[string]any) (*SportSetting, error) {
	var setting SportSetting
	path := fmt.Sprintf("/athlete/%s/sport-settings", c.athleteID)
	if err := c.do(ctx, http.MethodPost, path, nil, fields, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpdateSportSettings updates a sport settings record (FTP, FTHR, pace
// threshold and so on).
func (c *Client) UpdateSportSettings(ctx context.Context, sportID int, fields map[string]any) (*SportSetting, error) {
	var setting SportSetting
	path := fmt.Sprintf("/athlete/%s/sport-settings/%d", c.athleteID, sportID)
	if err := c.do(ctx, http.MethodPut, path, nil, fields, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// DeleteSportSettings removes a sport settings record.
func (c *Client) DeleteSportSettings(ctx context.Context, sportID int) error {
	path := fmt.Sprintf("/athlete/%s/sport-settings/%d", c.athleteID, sportID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ApplySportSettings applies zones and thresholds to historical
// activities, optionally bounded by an oldest date.
func (c *Client) ApplySportSettings(ctx context.Context, sportID int, oldest string) (map[string]any, error) {
	params := url.Values{}
	if oldest != "" {
		params.Set("oldest", oldest)
	}
	var result map[string]any
	path := fmt.Sprintf("/athlete/%s/sport-settings/%d/apply", c.athleteID, sportID)
	if err := c.do(ctx, http.MethodPost, path, params, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
