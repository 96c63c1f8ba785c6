package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

var ErrCacheMiss = errors.New("ключ не найден в кэше")

// Cache is a keyed byte store with per-key expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Remember returns the list stored under key, or computes, stores and
// returns it. An empty cached list counts as a miss and an undecodable
// one is deleted. Store failures are logged and fall back to compute.
func Remember[T any](ctx context.Context, store Cache, key string, ttl time.Duration, compute func(ctx context.Context) ([]T, error)) ([]T, error) {
	raw, err := store.Get(ctx, key)
	switch {
	case err == nil:
		var cached []T
		if err := json.Unmarshal(raw, &cached); err != nil {
			log.Printf("Кэш %s: не удалось декодировать значение: %v", key, err)
			if err := store.Delete(ctx, key); err != nil {
				log.Printf("Кэш %s: ошибка удаления: %v", key, err)
			}
		} else if len(cached) > 0 {
			return cached, nil
		}
	case !errors.Is(err, ErrCacheMiss):
		log.Printf("Кэш %s: ошибка чтения: %v", key, err)
	}

	items, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	raw, err = json.Marshal(items)
	if err != nil {
		log.Printf("Кэш %s: не удалось закодировать значение: %v", key, err)
		return items, nil
	}

	if err := store.Set(ctx, key, raw, ttl); err != nil {
		log.Printf("Кэш %s: ошибка записи: %v", key, err)
	}

	return items, nil
}
