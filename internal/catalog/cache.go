// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shelfmark/shelfmark/internal/platform/constants"
)

// # Cache Contract

// Cache defines the contract for short-lived storage of provider responses.
type Cache interface {

	/*
		Get retrieves a cached result set for a normalized keyword.

		Parameters:
		  - context: context.Context
		  - keyword: string (already normalized)

		Returns:
		  - []Volume: Cached candidates
		  - bool: Whether the keyword was present
		  - error: Connectivity or decoding failures
	*/
	Get(context context.Context, keyword string) ([]Volume, bool, error)

	/*
		Set stores a result set for a normalized keyword with the standard TTL.

		Parameters:
		  - context: context.Context
		  - keyword: string (already normalized)
		  - volumes: []Volume

		Returns:
		  - error: Storage failures
	*/
	Set(context context.Context, keyword string, volumes []Volume) error
}

// # Redis Implementation

// RedisCache implements [Cache] using Redis with JSON-encoded values.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-backed search cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a cached result set. A missing key is a miss, not an error.
func (cache *RedisCache) Get(context context.Context, keyword string) ([]Volume, bool, error) {
	key := constants.RedisPrefixCatalogSearch + keyword

	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_catalog_cache_get_failed: %w", err)
	}

	var volumes []Volume
	if err := json.Unmarshal(payload, &volumes); err != nil {
		return nil, false, fmt.Errorf("redis_catalog_cache_decode_failed: %w", err)
	}

	return volumes, true, nil
}

// Set stores a result set under the catalog prefix with the standard TTL.
func (cache *RedisCache) Set(context context.Context, keyword string, volumes []Volume) error {
	key := constants.RedisPrefixCatalogSearch + keyword

	payload, err := json.Marshal(volumes)
	if err != nil {
		return fmt.Errorf("redis_catalog_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, constants.CatalogSearchCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_catalog_cache_set_failed: %w", err)
	}

	return nil
}
