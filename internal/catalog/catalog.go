// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package catalog integrates the external book catalog provider.

The provider is treated as an unreliable upstream: it is queried by free-text
keyword over HTTP, and every non-success status or malformed payload is
surfaced as a gateway-style failure, never as a silent empty result.

# Architecture

  - Client: Outbound HTTP client against the provider's volumes endpoint.
  - Cache: Redis-backed response cache keyed by normalized keyword; cache
    failures degrade to an upstream round trip, never to a request failure.
*/
package catalog

// Volume is a single candidate record returned by the catalog provider.
//
// Multi-author volumes are joined into a single free-text author string.
type Volume struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// Fallback values applied when the provider omits a field.
const (
	FallbackTitle       = "No title available"
	FallbackAuthor      = "Unknown author"
	FallbackDescription = "No description available"
)
