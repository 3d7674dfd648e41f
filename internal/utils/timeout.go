package utils

import (
	"context"
	"time"
)

const (
	// DefaultDBTimeout bounds a single repository call.
	DefaultDBTimeout = 5 * time.Second
	// MigrationTimeout bounds applying the schema on startup.
	MigrationTimeout = 30 * time.Second
)

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}

func WithMigrationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, MigrationTimeout)
}
