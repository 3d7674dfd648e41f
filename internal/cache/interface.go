package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Cache stores JSON-encoded catalog and location lookups. Get reports a miss as (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CountriesKey holds the full list of delivery countries.
const CountriesKey = "countries"

func ProductKey(id uuid.UUID) string {
	return "product:" + id.String()
}

func RegionsKey(countryID int64) string {
	return "regions:" + strconv.FormatInt(countryID, 10)
}
