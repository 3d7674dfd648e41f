package cache

import (
	"context"
	"log/slog"
	"time"
)

// GetOrLoad returns the cached value for key, or calls load and stores its result.
// Cache failures are logged and never fail the read.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {

	var cached T

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		slog.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		slog.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
