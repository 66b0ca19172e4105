package catalog

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	ok, err := cache.GetJSON(ctx, "k", &payload{})
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.SetJSON(ctx, "k", payload{Name: "polera"}))
	var got payload
	ok, err = cache.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "polera", got.Name)

	mr.FastForward(2 * time.Minute)
	ok, err = cache.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	require.False(t, ok, "entries expire with the configured TTL")
}

func TestCacheNilClientIsNoop(t *testing.T) {
	cache := NewCache(nil, time.Minute)
	ctx := context.Background()
	require.NoError(t, cache.SetJSON(ctx, "k", 1))
	ok, err := cache.GetJSON(ctx, "k", new(int))
	require.NoError(t, err)
	require.False(t, ok)
}
