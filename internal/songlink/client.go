// Package songlink resolves track URLs to Songlink (Odesli) universal links.
package songlink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/CosmoTheDev/prmedia/models"
)

// DefaultBaseURL is the public Odesli API root.
const DefaultBaseURL = "https://api.song.link/v1-alpha.1"

// Client is an HTTP client for the Odesli links API.
// The API is unauthenticated for low request volumes.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client. An empty baseURL selects DefaultBaseURL and a nil
// httpClient gets a 15-second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Resolve maps trackURL to a universal link. Any failure yields the zero
// UniversalLink; the caller renders it as "could not be resolved".
func (c *Client) Resolve(ctx context.Context, trackURL string) models.UniversalLink {
	resp, err := c.lookup(ctx, trackURL)
	if err != nil {
		slog.Warn("songlink: resolve failed", "url", trackURL, "error", err)
		return models.UniversalLink{}
	}
	out := models.UniversalLink{PageURL: resp.PageURL}
	if !out.Resolved() {
		slog.Debug("songlink: response has no pageUrl", "url", trackURL)
		return models.UniversalLink{}
	}
	for _, p := range platformOrder {
		if l, ok := resp.LinksByPlatform[p.key]; ok && l.URL != "" {
			out.Platforms = append(out.Platforms, models.PlatformLink{Name: p.name, URL: l.URL})
		}
	}
	slog.Debug("songlink: resolved", "url", trackURL, "page_url", out.PageURL, "platforms", len(out.Platforms))
	return out
}

func (c *Client) lookup(ctx context.Context, trackURL string) (*linksResponse, error) {
	params := url.Values{}
	params.Set("url", trackURL)
	reqURL := c.baseURL + "/links?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("songlink: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("songlink: links: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("songlink: links HTTP %d: %s", resp.StatusCode, string(b))
	}

	var out linksResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("songlink: decode links response: %w", err)
	}
	return &out, nil
}
