// Copyright 2025 Orebase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRole struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

func newTestCache(t *testing.T) (ICache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client), mr
}

func roleKey(params ...any) string {
	return "role:" + params[0].(string)
}

func TestCachedQuery_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	cq := NewCachedQuery[testRole](c, roleKey, func(ctx context.Context) (testRole, error) {
		calls++
		return testRole{Name: "admin", Rank: 1}, nil
	})

	got, err := cq.Get(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Name)
	assert.Equal(t, 1, calls)

	got, err = cq.Get(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rank)
	assert.Equal(t, 1, calls, "second read should be served from cache")
}

func TestCachedQuery_QueryError(t *testing.T) {
	c, _ := newTestCache(t)

	cq := NewCachedQuery[testRole](c, roleKey, func(ctx context.Context) (testRole, error) {
		return testRole{}, errors.New("boom")
	})

	_, err := cq.Get(context.Background(), "missing")
	require.Error(t, err)
}

func TestCachedQuery_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	cq := NewCachedQuery[testRole](c, roleKey,
		func(ctx context.Context) (testRole, error) {
			calls++
			return testRole{Name: "owner", Rank: 2}, nil
		},
		WithTTL[testRole](time.Minute),
	)

	_, err := cq.Get(ctx, "owner")
	require.NoError(t, err)
	require.NoError(t, cq.Invalidate(ctx, "owner"))

	_, err = cq.Get(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachedQuery_With(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	cq := NewCachedQuery[testRole](c, roleKey, nil)

	got, err := cq.With(func(ctx context.Context) (testRole, error) {
		return testRole{Name: "foreman", Rank: 1}, nil
	}).Get(ctx, "foreman")
	require.NoError(t, err)
	assert.Equal(t, "foreman", got.Name)

	// cached result is shared across derived loaders
	got, err = cq.With(func(ctx context.Context) (testRole, error) {
		return testRole{}, errors.New("should not be called")
	}).Get(ctx, "foreman")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rank)
}

func TestCachedQuery_NilCache(t *testing.T) {
	cq := NewCachedQuery[testRole](nil, roleKey, func(ctx context.Context) (testRole, error) {
		return testRole{Name: "guest"}, nil
	})

	got, err := cq.Get(context.Background(), "guest")
	require.NoError(t, err)
	assert.Equal(t, "guest", got.Name)
	require.NoError(t, cq.Invalidate(context.Background(), "guest"))
}
