// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/nyan/internal/platform/constants"
	"github.com/taibuivan/nyan/internal/platform/ref"
)

// RedisProfileCache implements [ProfileCache] with JSON values under
// "identity:profile:<id>".
type RedisProfileCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisProfileCache creates a cache whose entries expire after ttl.
func NewRedisProfileCache(client redis.UniversalClient, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{client: client, ttl: ttl}
}

func profileKey(id ref.UserID) string {
	return constants.RedisPrefixProfile + id.String()
}

func (cache *RedisProfileCache) Get(ctx context.Context, id ref.UserID) (*PublicProfile, error) {
	raw, err := cache.client.Get(ctx, profileKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile_cache_get: %w", err)
	}

	profile := &PublicProfile{}
	if err := json.Unmarshal(raw, profile); err != nil {
		return nil, fmt.Errorf("profile_cache_decode: %w", err)
	}
	return profile, nil
}

func (cache *RedisProfileCache) Set(ctx context.Context, profile *PublicProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("profile_cache_encode: %w", err)
	}

	if err := cache.client.Set(ctx, profileKey(profile.ID), raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("profile_cache_set: %w", err)
	}
	return nil
}
