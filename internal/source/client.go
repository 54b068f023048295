package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"panorama/internal/records"
)

// Client fetches from the external KPI API over HTTP. Every request carries
// the configured timeout; non-2xx responses are errors, recovery is the
// caller's concern (see FallbackSource).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an HTTP data source for the given base URL.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ DataSource = (*Client)(nil)

// FetchDetailedData returns the raw records for a system.
func (c *Client) FetchDetailedData(ctx context.Context, system string) ([]records.Raw, error) {
	var payload struct {
		Records []records.Raw `json:"records"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/systems/%s/records", url.PathEscape(system)), &payload); err != nil {
		return nil, err
	}
	return payload.Records, nil
}

// FetchKpis returns the headline KPI payload for a system.
func (c *Client) FetchKpis(ctx context.Context, system string) (Kpis, error) {
	var payload Kpis
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/systems/%s/kpis", url.PathEscape(system)), &payload); err != nil {
		return Kpis{}, err
	}
	return payload, nil
}

// FetchSeries returns the sparkline series for a system.
func (c *Client) FetchSeries(ctx context.Context, system string) (Series, error) {
	var payload Series
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/systems/%s/series", url.PathEscape(system)), &payload); err != nil {
		return Series{}, err
	}
	return payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("fetching %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
