package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/config"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
)

//go:embed schema.sql
var schema string

type Repositories struct {
	DB         *sql.DB
	Transactor Transactor
	Users      UserRepository
	Profiles   ProfileRepository
	Products   ProductRepository
	Carts      CartRepository
	Orders     OrderRepository
	Payments   PaymentRepository
	Locations  LocationRepository
	Locks      LockRepository
}

// New opens the instrumented connection pool, checks it and wires every repository over it.
func New(ctx context.Context, cfg *config.Config) (*Repositories, error) {

	db, err := telemetry.OpenDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewRepositories(db), nil
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Transactor: NewTransactor(db),
		Users:      NewUserRepo(db),
		Profiles:   NewProfileRepo(db),
		Products:   NewProductRepo(db),
		Carts:      NewCartRepo(db),
		Orders:     NewOrderRepository(db),
		Payments:   NewPaymentRepository(db),
		Locations:  NewLocationRepo(db),
		Locks:      NewLockRepo(db),
	}
}

// Migrate applies the embedded schema; every statement is idempotent.
func (r *Repositories) Migrate(ctx context.Context) error {
	migrateCtx, cancel := utils.WithMigrationTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(migrateCtx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
