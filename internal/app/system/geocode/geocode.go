// internal/app/system/geocode/geocode.go

// Package geocode resolves free-text addresses to coordinates through
// the TomTom search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/letkeeper/letkeeper/internal/app/system/apperr"
)

// Position is a geographic coordinate from the upstream provider.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Result is one geocoding match.
type Result struct {
	Type     string         `json:"type"`
	Score    float64        `json:"score"`
	Address  map[string]any `json:"address"`
	Position Position       `json:"position"`
}

type response struct {
	Results []Result `json:"results"`
}

// Config holds the upstream connection settings.
type Config struct {
	BaseURL string // e.g. "api.tomtom.com"
	Version string // e.g. "2"
	Ext     string // response format, e.g. "json"
	APIKey  string
}

// Client calls the geocoding endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// New builds a geocoding client. The HTTP client carries its own
// timeout so a stuck upstream cannot hold a request open.
func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search resolves a free-text query to candidate positions. An empty
// result set is NotFound; transport and non-200 failures are Upstream.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("https://%s/search/%s/geocode/%s.%s?key=%s",
		c.cfg.BaseURL, c.cfg.Version, url.PathEscape(query), c.cfg.Ext, url.QueryEscape(c.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "Geocoding service unavailable", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "Geocoding service unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.New(apperr.Upstream, fmt.Sprintf("Geocoding service returned status %d", resp.StatusCode))
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "Geocoding service returned an invalid response", err)
	}

	if len(body.Results) == 0 {
		return nil, apperr.New(apperr.NotFound, "Geo location not found")
	}
	return body.Results, nil
}
