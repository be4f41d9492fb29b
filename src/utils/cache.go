package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	ProductionFreshness = 2 * time.Minute
	DefaultFreshness    = 10 * time.Minute
)

// FreshnessWindow returns how long a cached entry stays valid for the given environment.
func FreshnessWindow(environment string) time.Duration {
	if strings.EqualFold(environment, "production") {
		return ProductionFreshness
	}
	return DefaultFreshness
}

// CacheEntry holds a cached value along with the moment it was stored.
type CacheEntry[T any] struct {
	Value    T         `json:"value"`
	CachedAt time.Time `json:"cachedAt"`
}

// EntryStore persists cache entries. Implementations must be safe for concurrent use.
type EntryStore[K comparable, T any] interface {
	Load(ctx context.Context, key K) (CacheEntry[T], bool, error)
	Save(ctx context.Context, key K, entry CacheEntry[T]) error
}

// MemoryStore keeps entries in a map for the lifetime of the process.
type MemoryStore[K comparable, T any] struct {
	entries map[K]CacheEntry[T]
	mutex   sync.RWMutex
}

func NewMemoryStore[K comparable, T any]() *MemoryStore[K, T] {
	return &MemoryStore[K, T]{entries: make(map[K]CacheEntry[T])}
}

func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (CacheEntry[T], bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok, nil
}

func (s *MemoryStore[K, T]) Save(_ context.Context, key K, entry CacheEntry[T]) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore[K, T]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.entries)
}

type CacheOptions struct {
	// Clock defaults to SystemClock.
	Clock Clock
	// SingleFlight coalesces concurrent misses for the same key into one fetch.
	SingleFlight bool
}

// Cache is a read-through cache whose freshness window is resolved from the
// environment on every lookup. Entries are only ever replaced, never evicted.
type Cache[K comparable, T any] struct {
	name        string
	store       EntryStore[K, T]
	environment func() string
	clock       Clock
	group       *singleflight.Group
}

func NewCache[K comparable, T any](name string, store EntryStore[K, T], environment func() string, opts CacheOptions) *Cache[K, T] {
	c := &Cache[K, T]{
		name:        name,
		store:       store,
		environment: environment,
		clock:       opts.Clock,
	}
	if c.clock == nil {
		c.clock = SystemClock{}
	}
	if opts.SingleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

// GetOrFetch returns the stored value for key while it is fresh. Otherwise it calls
// fetch, stores the result with the current time and returns it. A failed fetch
// leaves the stored entry untouched and the error is reported as ErrUpstream.
func (c *Cache[K, T]) GetOrFetch(ctx context.Context, key K, fetch func(ctx context.Context) (T, error)) (T, error) {
	logger := LoggerFromContext(ctx)

	entry, found, err := c.store.Load(ctx, key)
	if err != nil {
		logger.WithError(err).WithField("cache", c.name).Warn("cache load failed, fetching from upstream")
		found = false
	}

	result := CacheMiss
	if found {
		if c.clock.Now().Sub(entry.CachedAt) < FreshnessWindow(c.environment()) {
			CacheLookups.WithLabelValues(c.name, CacheHit).Inc()
			return entry.Value, nil
		}
		result = CacheStale
	}

	value, err := c.refresh(ctx, key, fetch)
	if err != nil {
		CacheLookups.WithLabelValues(c.name, CacheError).Inc()
		var zero T
		return zero, err
	}
	CacheLookups.WithLabelValues(c.name, result).Inc()
	return value, nil
}

func (c *Cache[K, T]) refresh(ctx context.Context, key K, fetch func(ctx context.Context) (T, error)) (T, error) {
	load := func(ctx context.Context) (T, error) {
		value, err := fetch(ctx)
		if err != nil {
			var zero T
			if !errors.Is(err, ErrUpstream) {
				err = fmt.Errorf("%w: %w", ErrUpstream, err)
			}
			return zero, err
		}
		saveErr := c.store.Save(ctx, key, CacheEntry[T]{Value: value, CachedAt: c.clock.Now()})
		if saveErr != nil {
			LoggerFromContext(ctx).WithError(saveErr).WithField("cache", c.name).Warn("cache save failed")
		}
		return value, nil
	}

	if c.group == nil {
		return load(ctx)
	}

	// The shared fetch outlives any single caller; it is bounded by the client timeout.
	shared := context.WithoutCancel(ctx)
	resultC := c.group.DoChan(fmt.Sprintf("%#v", key), func() (interface{}, error) {
		return load(shared)
	})
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-resultC:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
