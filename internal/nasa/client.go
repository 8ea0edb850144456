// Package nasa looks up asset metadata in the NASA Image and Video Library.
package nasa

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

const (
	// DefaultAPIURL is the public search API root.
	DefaultAPIURL = "https://images-api.nasa.gov"
	// DefaultDetailsURL prefixes a nasa_id to form the asset's details page.
	DefaultDetailsURL = "https://images.nasa.gov/details/"
)

// Client is an HTTP client for images-api.nasa.gov.
type Client struct {
	apiURL     string
	detailsURL string
	http       *http.Client
}

// New returns a Client. Empty URLs select the public defaults and a nil
// httpClient gets a 15-second timeout.
func New(apiURL, detailsURL string, httpClient *http.Client) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if detailsURL == "" {
		detailsURL = DefaultDetailsURL
	}
	if !strings.HasSuffix(detailsURL, "/") {
		detailsURL += "/"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		detailsURL: detailsURL,
		http:       httpClient,
	}
}

// Lookup returns the media card for mediaID. The bool is false when the
// search fails or finds nothing; the NASA section is then left out.
func (c *Client) Lookup(ctx context.Context, mediaID string) (models.MediaCard, bool) {
	resp, err := c.search(ctx, mediaID)
	if err != nil {
		slog.Warn("nasa: lookup failed", "nasa_id", mediaID, "error", err)
		return models.MediaCard{}, false
	}
	if len(resp.Collection.Items) == 0 {
		slog.Debug("nasa: no items", "nasa_id", mediaID)
		return models.MediaCard{}, false
	}
	return c.card(mediaID, resp.Collection.Items[0]), true
}

// DetailsURL returns the canonical details page for mediaID.
func (c *Client) DetailsURL(mediaID string) string {
	return c.detailsURL + mediaID
}

func (c *Client) card(mediaID string, it item) models.MediaCard {
	var meta itemData
	if len(it.Data) > 0 {
		meta = it.Data[0]
	}
	card := models.MediaCard{
		Title:        orDefault(meta.Title, mediaID),
		Description:  meta.Description,
		DateCreated:  meta.DateCreated,
		Center:       meta.Center,
		NasaID:       orDefault(meta.NasaID, mediaID),
		CanonicalURL: c.DetailsURL(mediaID),
	}
	for _, l := range it.Links {
		if l.Rel == "preview" || l.Render == "image" {
			card.ThumbnailURL = l.Href
			break
		}
	}
	return card
}

func (c *Client) search(ctx context.Context, mediaID string) (*searchResponse, error) {
	params := url.Values{}
	params.Set("nasa_id", mediaID)
	reqURL := c.apiURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("nasa: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nasa: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nasa: search HTTP %d: %s", resp.StatusCode, string(b))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("nasa: decode search response: %w", err)
	}
	return &out, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
