package icu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"intervalsmcp/pkg/config"
)

// basicAuthUser is the fixed Basic auth username; the API key goes in the
// password slot.
const basicAuthUser = "API_KEY"

// APIError is returned for every failed API call. StatusCode is zero for
// transport failures.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrNotOpen is returned when a method is called before Open.
var ErrNotOpen = errors.New("client not open")

// Client talks to the Intervals.icu API. Open it before use and Close it
// when done; a Client is intended to live for one tool invocation.
type Client struct {
	athleteID string
	apiKey    string
	baseURL   string
	http      *http.Client
}

// Open creates an authenticated client from the given configuration.
func Open(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		athleteID: cfg.AthleteID,
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		http:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Close releases the client. Subsequent calls return ErrNotOpen.
func (c *Client) Close() {
	if c.http != nil {
		c.http.CloseIdleConnections()
		c.http = nil
	}
}

// AthleteID returns the configured athlete ID.
func (c *Client) AthleteID() string {
	return c.athleteID
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if c.http == nil {
		return nil, ErrNotOpen
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(basicAuthUser, c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: "Request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: "Request failed: " + err.Error()}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &APIError{Message: "Unauthorized. Check your API key and athlete ID.", StatusCode: 401}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &APIError{Message: "Resource not found.", StatusCode: 404}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &APIError{Message: "Rate limit exceeded. Please try again later.", StatusCode: 429}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{
			Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(data)),
			StatusCode: resp.StatusCode,
		}
	}

	return data, nil
}

// do issues a request and decodes the JSON response into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func dateRangeParams(oldest, newest string) url.Values {
	params := url.Values{}
	if oldest != "" {
		params.Set("oldest", oldest)
	}
	if newest != "" {
		params.Set("newest", newest)
	}
	return params
}
