// Package fetch retrieves raw METAR and TAF text from the Aviation Weather
// Center data API.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoData is returned when the API answers successfully but has no report
// for the station.
var ErrNoData = errors.New("no report data available")

// Client talks to the AWC data API with exponential-backoff retries. Client
// errors (4xx) are not retried.
type Client struct {
	http       *http.Client
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewClient builds a client against baseURL (e.g.
// "https://aviationweather.gov/api/data").
func NewClient(baseURL string, timeout time.Duration, maxRetries int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: maxRetries,
		retryDelay: time.Second,
		logger:     logger,
	}
}

// METAR fetches the most recent raw METAR for a station.
func (c *Client) METAR(ctx context.Context, station string) (string, error) {
	query := url.Values{
		"ids":    {strings.ToUpper(station)},
		"format": {"raw"},
		"hours":  {"2"},
		"taf":    {"false"},
	}
	text, err := c.get(ctx, "/metar", query)
	if err != nil {
		return "", err
	}

	// One METAR per line, newest first.
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("station %s: %w", station, ErrNoData)
}

// TAF fetches the most recent raw TAF block for a station. Blocks can span
// several lines; a new block starts at each line beginning with "TAF".
func (c *Client) TAF(ctx context.Context, station string) (string, error) {
	query := url.Values{
		"ids":    {strings.ToUpper(station)},
		"format": {"raw"},
		"hours":  {"6"},
	}
	text, err := c.get(ctx, "/taf", query)
	if err != nil {
		return "", err
	}

	blocks := SplitTAFBlocks(text)
	if len(blocks) == 0 {
		return "", fmt.Errorf("station %s: %w", station, ErrNoData)
	}
	return blocks[0], nil
}

// SplitTAFBlocks splits the API's plain-text TAF response into one string
// per forecast, keeping continuation lines attached to their block.
func SplitTAFBlocks(text string) []string {
	var blocks []string
	var current []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "TAF"):
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			current = []string{line}
		case line != "" && len(current) > 0:
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (string, error) {
	target := c.baseURL + path + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay << (attempt - 1)
			c.logger.Info("retrying request", "url", target, "attempt", attempt+1, "delay", delay)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		body, retryable, err := c.do(ctx, target)
		if err == nil {
			return body, nil
		}
		lastErr = err
		c.logger.Warn("request failed", "url", target, "attempt", attempt+1, "error", err)
		if !retryable {
			return "", err
		}
	}
	return "", fmt.Errorf("failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, target string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", false, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("requesting data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", false, err
		}
		return "", true, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("reading response: %w", err)
	}
	return strings.TrimSpace(string(raw)), false, nil
}
