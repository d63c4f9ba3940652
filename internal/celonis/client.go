// Package celonis is a thin client for the Celonis Integration API: data job
// lookup/create, transformation update and synchronous execution, and chunked
// data push into a pool table. Every request carries the API key as a bearer
// token; the key is never validated locally, a bad key surfaces as the first
// call's HTTP error.
package celonis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps authenticated HTTP calls against one Celonis instance and pool
type Client struct {
	baseURL    string
	poolID     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Celonis API client
func NewClient(baseURL, poolID, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if poolID == "" {
		return nil, fmt.Errorf("pool ID is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &Client{
		baseURL:    baseURL,
		poolID:     poolID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// APIError carries the HTTP status and response body of a failed API call
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

// doJSON performs one API request. A non-nil payload is sent as a JSON body;
// a non-nil out receives the decoded response. Any non-2xx response becomes
// an *APIError with the response body attached.
func (c *Client) doJSON(ctx context.Context, op, method, url string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		return &APIError{Op: op, Status: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: failed to decode response: %w", op, err)
		}
	}

	return nil
}

func (c *Client) poolURL(format string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf("/integration/api/pools/%s", c.poolID) + fmt.Sprintf(format, args...)
}

func (c *Client) pushURL(format string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf("/integration/api/v1/data-push/%s", c.poolID) + fmt.Sprintf(format, args...)
}
