package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"time"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
)

type LocationService interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListRegions(ctx context.Context, countryID int64) ([]models.Region, error)
	// ValidateRegion fails with a field error when regionID does not belong to countryID.
	ValidateRegion(ctx context.Context, countryID, regionID int64) (*models.Region, error)
}

type locationService struct {
	repo     repository.LocationRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewLocationService(repo repository.LocationRepository, c cache.Cache, cacheTTL time.Duration) LocationService {
	return &locationService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func (s *locationService) ListCountries(ctx context.Context) ([]models.Country, error) {

	countries, err := cache.GetOrLoad(ctx, s.cache, cache.CountriesKey, s.cacheTTL, s.repo.ListCountries)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch countries").WithError(err)
	}

	return countries, nil
}

func (s *locationService) ListRegions(ctx context.Context, countryID int64) ([]models.Region, error) {

	regions, err := cache.GetOrLoad(ctx, s.cache, cache.RegionsKey(countryID), s.cacheTTL, func(ctx context.Context) ([]models.Region, error) {
		return s.repo.ListRegions(ctx, countryID)
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch regions").WithError(err)
	}

	return regions, nil
}

func (s *locationService) ValidateRegion(ctx context.Context, countryID, regionID int64) (*models.Region, error) {

	region, err := s.repo.GetRegion(ctx, regionID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.AddValidationError("region_id", "region does not exist")
		}
		return nil, errors.DatabaseError("Failed to fetch region").WithError(err)
	}

	if region.CountryID != countryID {
		return nil, errors.AddValidationError("region_id", "region does not belong to the selected country")
	}

	return region, nil
}
