// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/platform/ref"
)

/*
TestRedisProfileCache_Unreachable checks an unreachable Redis surfaces as an
error the service can fall through on, not a hang or a false miss.
*/
func TestRedisProfileCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := identity.NewRedisProfileCache(client, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	profile, err := cache.Get(ctx, ref.UserID("0190a6e2-8b4c-7d3e-9f00-1a2b3c4d5e6f"))
	assert.Error(t, err)
	assert.Nil(t, profile)

	err = cache.Set(ctx, &identity.PublicProfile{ID: "0190a6e2-8b4c-7d3e-9f00-1a2b3c4d5e6f", Username: "kuro"})
	assert.Error(t, err)
}
