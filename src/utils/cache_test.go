package utils_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cryptoapp/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mutex sync.Mutex
	now   time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}

type listingKey struct {
	VsCurrency string
	Page       int
	PerPage    int
	IDs        string
}

func staticEnv(env string) func() string {
	return func() string { return env }
}

func TestFreshnessWindow(t *testing.T) {
	assert.Equal(t, 2*time.Minute, utils.FreshnessWindow("production"))
	assert.Equal(t, 2*time.Minute, utils.FreshnessWindow("PRODUCTION"))
	assert.Equal(t, 10*time.Minute, utils.FreshnessWindow("development"))
	assert.Equal(t, 10*time.Minute, utils.FreshnessWindow(""))
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	t.Run("should fetch once and serve the stored value while fresh", func(t *testing.T) {
		clock := newFakeClock()
		store := utils.NewMemoryStore[string, string]()
		cache := utils.NewCache[string, string]("test", store, staticEnv("development"), utils.CacheOptions{Clock: clock})

		calls := 0
		fetch := func(context.Context) (string, error) {
			calls++
			return "bitcoin", nil
		}

		first, err := cache.GetOrFetch(ctx, "btc", fetch)
		require.NoError(t, err)
		clock.Advance(time.Minute)
		second, err := cache.GetOrFetch(ctx, "btc", fetch)
		require.NoError(t, err)

		assert.Equal(t, "bitcoin", first)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
	})

	t.Run("should refetch once the window has passed and advance the timestamp", func(t *testing.T) {
		clock := newFakeClock()
		store := utils.NewMemoryStore[string, int]()
		cache := utils.NewCache[string, int]("test", store, staticEnv("development"), utils.CacheOptions{Clock: clock})

		calls := 0
		fetch := func(context.Context) (int, error) {
			calls++
			return calls, nil
		}

		_, err := cache.GetOrFetch(ctx, "k", fetch)
		require.NoError(t, err)
		firstEntry, found, err := store.Load(ctx, "k")
		require.NoError(t, err)
		require.True(t, found)

		clock.Advance(10 * time.Minute)
		value, err := cache.GetOrFetch(ctx, "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, 2, value)

		secondEntry, _, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.True(t, secondEntry.CachedAt.After(firstEntry.CachedAt))
	})

	t.Run("should treat a three minute old entry as stale only in production", func(t *testing.T) {
		env := "production"
		var envMutex sync.Mutex
		environment := func() string {
			envMutex.Lock()
			defer envMutex.Unlock()
			return env
		}
		clock := newFakeClock()
		store := utils.NewMemoryStore[string, string]()
		cache := utils.NewCache[string, string]("test", store, environment, utils.CacheOptions{Clock: clock})

		calls := 0
		fetch := func(context.Context) (string, error) {
			calls++
			return "value", nil
		}

		_, err := cache.GetOrFetch(ctx, "k", fetch)
		require.NoError(t, err)
		clock.Advance(3 * time.Minute)

		envMutex.Lock()
		env = "development"
		envMutex.Unlock()
		_, err = cache.GetOrFetch(ctx, "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, 1, calls, "3 minutes is fresh outside production")

		envMutex.Lock()
		env = "production"
		envMutex.Unlock()
		_, err = cache.GetOrFetch(ctx, "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, 2, calls, "3 minutes is stale in production")
	})

	t.Run("should leave the stored entry untouched when the refresh fails", func(t *testing.T) {
		clock := newFakeClock()
		store := utils.NewMemoryStore[string, string]()
		cache := utils.NewCache[string, string]("test", store, staticEnv("development"), utils.CacheOptions{Clock: clock})

		_, err := cache.GetOrFetch(ctx, "k", func(context.Context) (string, error) { return "old", nil })
		require.NoError(t, err)
		before, _, _ := store.Load(ctx, "k")

		clock.Advance(11 * time.Minute)
		boom := errors.New("connection refused")
		_, err = cache.GetOrFetch(ctx, "k", func(context.Context) (string, error) { return "", boom })
		require.Error(t, err)
		assert.ErrorIs(t, err, utils.ErrUpstream)
		assert.ErrorIs(t, err, boom)

		after, found, _ := store.Load(ctx, "k")
		require.True(t, found)
		assert.Equal(t, before, after)
	})

	t.Run("should not store anything when the first fetch fails", func(t *testing.T) {
		store := utils.NewMemoryStore[string, string]()
		cache := utils.NewCache[string, string]("test", store, staticEnv("development"), utils.CacheOptions{})

		_, err := cache.GetOrFetch(ctx, "k", func(context.Context) (string, error) {
			return "", utils.ErrUpstream
		})
		assert.ErrorIs(t, err, utils.ErrUpstream)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("should share entries between identical listing tuples only", func(t *testing.T) {
		store := utils.NewMemoryStore[listingKey, string]()
		cache := utils.NewCache[listingKey, string]("test", store, staticEnv("development"), utils.CacheOptions{})

		calls := 0
		fetch := func(context.Context) (string, error) {
			calls++
			return "page", nil
		}

		keys := []listingKey{
			{VsCurrency: "usd", Page: 1, PerPage: 100},
			{VsCurrency: "usd", Page: 1, PerPage: 100},
			{VsCurrency: "usd", Page: 2, PerPage: 100},
			{VsCurrency: "eur", Page: 1, PerPage: 100},
			{VsCurrency: "usd", Page: 1, PerPage: 50},
			{VsCurrency: "usd", Page: 1, PerPage: 100, IDs: "bitcoin"},
		}
		for _, key := range keys {
			_, err := cache.GetOrFetch(ctx, key, fetch)
			require.NoError(t, err)
		}

		assert.Equal(t, 5, calls)
		assert.Equal(t, 5, store.Len())
	})

	t.Run("should coalesce concurrent misses when single flight is enabled", func(t *testing.T) {
		store := utils.NewMemoryStore[string, string]()
		cache := utils.NewCache[string, string]("test", store, staticEnv("development"), utils.CacheOptions{SingleFlight: true})

		var calls int32
		release := make(chan struct{})
		fetch := func(context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return "value", nil
		}

		var wg sync.WaitGroup
		started := make(chan struct{}, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				started <- struct{}{}
				value, err := cache.GetOrFetch(ctx, "k", fetch)
				assert.NoError(t, err)
				assert.Equal(t, "value", value)
			}()
		}
		for i := 0; i < 8; i++ {
			<-started
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("should finish a shared fetch for waiting callers when the first caller goes away", func(t *testing.T) {
		store := utils.NewMemoryStore[string, string]()
		cache := utils.NewCache[string, string]("test", store, staticEnv("development"), utils.CacheOptions{SingleFlight: true})

		var calls int32
		fetching := make(chan struct{})
		release := make(chan struct{})
		fetch := func(ctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			close(fetching)
			<-release
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return "value", nil
		}

		firstCtx, cancelFirst := context.WithCancel(context.Background())
		firstErr := make(chan error, 1)
		go func() {
			_, err := cache.GetOrFetch(firstCtx, "k", fetch)
			firstErr <- err
		}()
		<-fetching

		type result struct {
			value string
			err   error
		}
		second := make(chan result, 1)
		go func() {
			value, err := cache.GetOrFetch(context.Background(), "k", fetch)
			second <- result{value: value, err: err}
		}()
		time.Sleep(50 * time.Millisecond)

		cancelFirst()
		assert.ErrorIs(t, <-firstErr, context.Canceled)

		close(release)
		res := <-second
		require.NoError(t, res.err)
		assert.Equal(t, "value", res.value)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, 1, store.Len())
	})
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) (utils.CacheEntry[string], bool, error) {
	return utils.CacheEntry[string]{}, false, errors.New("store offline")
}

func (failingStore) Save(context.Context, string, utils.CacheEntry[string]) error {
	return errors.New("store offline")
}

func TestCacheStoreFailures(t *testing.T) {
	cache := utils.NewCache[string, string]("test", failingStore{}, staticEnv("development"), utils.CacheOptions{})

	calls := 0
	for i := 0; i < 2; i++ {
		value, err := cache.GetOrFetch(context.Background(), "k", func(context.Context) (string, error) {
			calls++
			return "value", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "value", value)
	}
	assert.Equal(t, 2, calls)
}
