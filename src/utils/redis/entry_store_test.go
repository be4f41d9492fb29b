package redis_utils_test

import (
	"context"
	"os"
	"testing"
	"time"

	"cryptoapp/src/utils"
	redis_utils "cryptoapp/src/utils/redis"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageKey struct {
	VsCurrency string
	Page       int
}

func TestGenerateUUID(t *testing.T) {
	assert.Equal(t, redis_utils.GenerateUUID("coins", "usd"), redis_utils.GenerateUUID("coins", "usd"))
	assert.NotEqual(t, redis_utils.GenerateUUID("coins", "usd"), redis_utils.GenerateUUID("coins", "eur"))
	assert.NotEqual(t, redis_utils.GenerateUUID("ab", "c"), redis_utils.GenerateUUID("a", "bc"))
}

func TestEntryStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	handler, err := redis_utils.NewRedisHandlerFromOptions(ctx, &redis.Options{Addr: addr})
	require.NoError(t, err)
	defer handler.Close()

	prefix := "test:" + time.Now().Format(time.RFC3339Nano)
	store := redis_utils.NewEntryStore[pageKey, []string](handler, prefix)

	_, found, err := store.Load(ctx, pageKey{VsCurrency: "usd", Page: 1})
	require.NoError(t, err)
	assert.False(t, found)

	first := pageKey{VsCurrency: "usd", Page: 1}
	t.Cleanup(func() { _ = store.Remove(context.Background(), first) })

	cachedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, first, utils.CacheEntry[[]string]{
		Value:    []string{"bitcoin", "ethereum"},
		CachedAt: cachedAt,
	}))

	entry, found, err := store.Load(ctx, pageKey{VsCurrency: "usd", Page: 1})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"bitcoin", "ethereum"}, entry.Value)
	assert.True(t, entry.CachedAt.Equal(cachedAt))

	_, found, err = store.Load(ctx, pageKey{VsCurrency: "usd", Page: 2})
	require.NoError(t, err)
	assert.False(t, found)

	exists, err := store.Contains(ctx, first)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Remove(ctx, first))
	exists, err = store.Contains(ctx, first)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, store.Remove(ctx, first))
}
