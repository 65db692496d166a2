package icu

import (
	"context"
	"fmt"
	"net/http"
)

// GetPowerCurves returns best power efforts per duration for a date range.
func (c *Client) GetPowerCurves(ctx context.Context, oldest, newest string) (*Curve, error) {
	return c.getCurve(ctx, "power-curves", oldest, newest, false)
}

// GetHRCurves returns best heart rate efforts per duration for a date
// range.
func (c *Client) GetHRCurves(ctx context.Context, oldest, newest string) (*Curve, error) {
	return c.getCurve(ctx, "hr-curves", oldest, newest, false)
}

// GetPaceCurves returns best pace efforts per duration for a date range.
// useGAP requests grade adjusted pace.
func (c *Client) GetPaceCurves(ctx context.Context, oldest, newest string, useGAP bool) (*Curve, error) {
	return c.getCurve(ctx, "pace-curves", oldest, newest, useGAP)
}

func (c *Client) getCurve(ctx context.Context, kind, oldest, newest string, useGAP bool) (*Curve, error) {
	params := dateRangeParams(oldest, newest)
	if useGAP {
		params.Set("gap", "true")
	}
	var curve Curve
	path := fmt.Sprintf("/athlete/%s/%s", c.athleteID, kind)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &curve); err != nil {
		return nil, err
	}
	return &curve, nil
}
