package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
)

var ErrLockOutsideTransaction = errors.New("advisory lock requires a transaction")

type LockRepository interface {
	// TryAdvisoryLock takes a transaction scoped advisory lock, reporting false if another session holds it.
	TryAdvisoryLock(ctx context.Context, key int64) (bool, error)
}

type lockRepository struct {
	DB *sql.DB
}

func NewLockRepo(db *sql.DB) LockRepository {
	return &lockRepository{DB: db}
}

func (r *lockRepository) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {

	if !InTransaction(ctx) {
		return false, ErrLockOutsideTransaction
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var acquired bool

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, `SELECT pg_try_advisory_xact_lock($1)`, key).Scan(&acquired)
	if err != nil {
		return false, fmt.Errorf("failed to acquire advisory lock: %w", err)
	}

	return acquired, nil
}
