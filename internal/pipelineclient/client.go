// Package pipelineclient calls the BetMetric pipeline API from outside the
// server process, for schedulers that cannot run the in-process cron.
package pipelineclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiKeyHeader = "X-API-Key"

// Transition is one committed status change reported by a sweep.
type Transition struct {
	BetID string `json:"bet_id"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// SweepResult mirrors the server's sweep response.
type SweepResult struct {
	Bets        int          `json:"bets"`
	Transitions []Transition `json:"transitions"`
	RanAt       time.Time    `json:"ran_at"`
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: unexpected status %d (%s: %s)", e.Op, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

// Client communicates with the BetMetric pipeline API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a pipeline API client. baseURL is the server root, without /api/v1.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Sweep triggers one classification pass and returns what it committed.
func (c *Client) Sweep(ctx context.Context) (*SweepResult, error) {
	var result struct {
		Sweep SweepResult `json:"sweep"`
	}
	if err := c.post(ctx, "running sweep", "/api/v1/pipeline/sweep", &result); err != nil {
		return nil, err
	}
	return &result.Sweep, nil
}

func (c *Client) post(ctx context.Context, op, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Op: op, StatusCode: resp.StatusCode}
		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil && json.Unmarshal(raw, &body) == nil {
			statusErr.Code = body.Error.Code
			statusErr.Message = body.Error.Message
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", op, err)
	}
	return nil
}
