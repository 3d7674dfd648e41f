package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
)

type LocationRepository interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListRegions(ctx context.Context, countryID int64) ([]models.Region, error)
	GetRegion(ctx context.Context, id int64) (*models.Region, error)
	CreateAddress(ctx context.Context, address *models.Address) error
	UpdateAddress(ctx context.Context, address *models.Address) error
}

type locationRepository struct {
	DB *sql.DB
}

func NewLocationRepo(db *sql.DB) LocationRepository {
	return &locationRepository{DB: db}
}

func (r *locationRepository) ListCountries(ctx context.Context) ([]models.Country, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := conn(ctx, r.DB).QueryContext(dbCtx, `SELECT id, code, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	defer rows.Close()

	countries := []models.Country{}

	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}

	return countries, rows.Err()
}

func (r *locationRepository) ListRegions(ctx context.Context, countryID int64) ([]models.Region, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, country_id, name, COALESCE(code, '') FROM regions WHERE country_id = $1 ORDER BY name`

	rows, err := conn(ctx, r.DB).QueryContext(dbCtx, query, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	defer rows.Close()

	regions := []models.Region{}

	for rows.Next() {
		var reg models.Region
		if err := rows.Scan(&reg.ID, &reg.CountryID, &reg.Name, &reg.Code); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, reg)
	}

	return regions, rows.Err()
}

func (r *locationRepository) GetRegion(ctx context.Context, id int64) (*models.Region, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	region := &models.Region{}

	query := `SELECT id, country_id, name, COALESCE(code, '') FROM regions WHERE id = $1`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, id).Scan(&region.ID, &region.CountryID, &region.Name, &region.Code)
	if err != nil {
		return nil, err
	}

	return region, nil
}

func (r *locationRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO addresses (region_id, city, street_address, postal_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return conn(ctx, r.DB).QueryRowContext(dbCtx, query, address.RegionID, address.City, address.StreetAddress, address.PostalCode).Scan(&address.ID)
}

func (r *locationRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE addresses SET region_id = $1, city = $2, street_address = $3, postal_code = $4
		WHERE id = $5
	`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, address.RegionID, address.City, address.StreetAddress, address.PostalCode, address.ID)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}

	return expectAffected(result)
}
