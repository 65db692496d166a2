package icu

import (
	"context"
	"fmt"
	"net/http"
)

// GetAthlete returns the full athlete profile with sport settings.
func (c *Client) GetAthlete(ctx context.Context) (*Athlete, error) {
	var athlete Athlete
	path := fmt.Sprintf("/athlete/%s", c.athleteID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}
