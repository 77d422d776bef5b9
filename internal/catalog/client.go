// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
	"github.com/shelfmark/shelfmark/pkg/keyword"
)

// # Provider Wire Format

// volumesResponse mirrors the provider's search payload. Only the fields the
// application consumes are decoded.
type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string   `json:"title"`
			Authors     []string `json:"authors"`
			Description string   `json:"description"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// # Client

// Client queries the external catalog provider's volumes endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	logger     *slog.Logger
}

// NewClient constructs a catalog [Client].
//
// # Parameters
//   - baseURL: Provider root, e.g. "https://www.googleapis.com/books/v1".
//   - cache: Response cache; pass nil to disable caching.
//   - logger: Structured logger for cache degradation events.
func NewClient(baseURL string, cache Cache, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.CatalogRequestTimeout,
		},
		cache:  cache,
		logger: logger,
	}
}

/*
Search queries the provider for volumes matching a free-text keyword.

Description: Consults the Redis cache first (keyed by normalized keyword),
then falls back to an upstream round trip. Cache failures are logged and
degrade to the upstream call; upstream failures surface as BadGateway.

Parameters:
  - context: context.Context
  - query: string (genre or free-text keyword)

Returns:
  - []Volume: Unordered candidate records; empty when nothing matched
  - err: apperr.BadGateway on provider unavailability or malformed payloads
*/
func (client *Client) Search(context context.Context, query string) ([]Volume, error) {
	cacheKey := keyword.Normalize(query)

	if client.cache != nil {
		volumes, hit, err := client.cache.Get(context, cacheKey)
		if err != nil {
			client.logger.Warn("catalog_cache_read_failed", slog.String("error", err.Error()))
		} else if hit {
			return volumes, nil
		}
	}

	volumes, err := client.fetch(context, query)
	if err != nil {
		return nil, err
	}

	if client.cache != nil {
		if err := client.cache.Set(context, cacheKey, volumes); err != nil {
			client.logger.Warn("catalog_cache_write_failed", slog.String("error", err.Error()))
		}
	}

	return volumes, nil
}

/*
Lookup resolves a single provider volume ID to its record.

Description: The provider's search endpoint resolves volume IDs as queries;
the first candidate is taken as the match. Lookups bypass the cache since
each ID is queried at most once per add operation.

Parameters:
  - context: context.Context
  - id: string (provider volume ID)

Returns:
  - *Volume: The matched record
  - err: apperr.NotFound when the provider has no match, or BadGateway
*/
func (client *Client) Lookup(context context.Context, id string) (*Volume, error) {
	volumes, err := client.fetch(context, id)
	if err != nil {
		return nil, err
	}

	if len(volumes) == 0 {
		return nil, apperr.NotFound("book")
	}

	return &volumes[0], nil
}

// fetch performs one upstream round trip and maps the payload to [Volume]s.
func (client *Client) fetch(context context.Context, query string) ([]Volume, error) {
	endpoint := fmt.Sprintf("%s/volumes?q=%s", client.baseURL, url.QueryEscape(query))

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog_build_request_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.BadGateway("Catalog provider is unreachable", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.BadGateway(
			fmt.Sprintf("Catalog provider returned status %d", response.StatusCode), nil)
	}

	var payload volumesResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, apperr.BadGateway("Catalog provider returned a malformed response", err)
	}

	volumes := make([]Volume, 0, len(payload.Items))
	for _, item := range payload.Items {
		volume := Volume{
			ID:          item.ID,
			Title:       item.VolumeInfo.Title,
			Author:      strings.Join(item.VolumeInfo.Authors, ", "),
			Description: item.VolumeInfo.Description,
		}

		if volume.Title == "" {
			volume.Title = FallbackTitle
		}
		if volume.Author == "" {
			volume.Author = FallbackAuthor
		}
		if volume.Description == "" {
			volume.Description = FallbackDescription
		}

		volumes = append(volumes, volume)
	}

	return volumes, nil
}
