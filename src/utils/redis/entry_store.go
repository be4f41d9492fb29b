package redis_utils

import (
	"context"
	"fmt"

	"cryptoapp/src/utils"
)

// EntryStore keeps cache entries in Redis so that several API instances share them.
// Keys never expire in Redis; freshness is decided by utils.Cache from CachedAt.
type EntryStore[K comparable, T any] struct {
	handler *RedisHandler
	prefix  string
}

func NewEntryStore[K comparable, T any](handler *RedisHandler, prefix string) *EntryStore[K, T] {
	return &EntryStore[K, T]{handler: handler, prefix: prefix}
}

func (s *EntryStore[K, T]) key(key K) string {
	return s.prefix + ":" + GenerateUUID(s.prefix, fmt.Sprintf("%#v", key))
}

func (s *EntryStore[K, T]) Load(ctx context.Context, key K) (utils.CacheEntry[T], bool, error) {
	var entry utils.CacheEntry[T]
	found, err := s.handler.Get(ctx, s.key(key), &entry)
	if err != nil || !found {
		return utils.CacheEntry[T]{}, false, err
	}
	return entry, true, nil
}

func (s *EntryStore[K, T]) Save(ctx context.Context, key K, entry utils.CacheEntry[T]) error {
	return s.handler.Set(ctx, s.key(key), entry, 0)
}

func (s *EntryStore[K, T]) Contains(ctx context.Context, key K) (bool, error) {
	return s.handler.Exists(ctx, s.key(key))
}

// Remove drops the entry for key. Removing a missing key is not an error.
func (s *EntryStore[K, T]) Remove(ctx context.Context, key K) error {
	return s.handler.Delete(ctx, s.key(key))
}
