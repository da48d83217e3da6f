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

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAsideFetchesOnMissAndStoresResult(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var got cachedPost
	err := Aside(ctx, PostKey(1), &got, PostTTL, func() error {
		fetches++
		got = cachedPost{ID: 1, Title: "hello"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "hello", got.Title)

	// Second read comes from the cache.
	var again cachedPost
	err = Aside(ctx, PostKey(1), &again, PostTTL, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, got, again)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	setupMiniredis(t)

	var got cachedPost
	wantErr := errors.New("db down")
	err := Aside(context.Background(), PostKey(2), &got, PostTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestAsideWorksWithoutRedis(t *testing.T) {
	SetClient(nil)

	var got cachedPost
	err := Aside(context.Background(), PostKey(3), &got, time.Minute, func() error {
		got = cachedPost{ID: 3, Title: "no cache"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)
}

func TestInvalidateRemovesKey(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(4), cachedPost{ID: 4}, time.Minute))
	InvalidatePost(ctx, 4)

	var got cachedPost
	found, err := GetJSON(ctx, PostKey(4), &got)
	require.NoError(t, err)
	assert.False(t, found)
}
