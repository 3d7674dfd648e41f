package service_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repoMocks "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/nuts-storefront/internal/services"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const locationTTL = time.Hour

func setupLocationService(t *testing.T) (service.LocationService, *repoMocks.MockLocationRepository, redismock.ClientMock) {
	t.Helper()

	client, redisMock := redismock.NewClientMock()
	t.Cleanup(func() { assert.NoError(t, redisMock.ExpectationsWereMet()) })

	repo := repoMocks.NewMockLocationRepository(t)
	c := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Minute})

	return service.NewLocationService(repo, c, locationTTL), repo, redisMock
}

func TestListCountries(t *testing.T) {
	ctx := t.Context()
	countries := []models.Country{{ID: 1, Code: "UA", Name: "Ukraine"}, {ID: 2, Code: "PL", Name: "Poland"}}

	data, err := json.Marshal(countries)
	require.NoError(t, err)

	t.Run("Success - Cached Countries", func(t *testing.T) {
		// Arrange
		svc, _, redisMock := setupLocationService(t)
		redisMock.ExpectGet(cache.CountriesKey).SetVal(string(data))

		// Act
		result, err := svc.ListCountries(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, countries, result)
	})

	t.Run("Success - Loaded When Redis Unavailable", func(t *testing.T) {
		// Arrange
		svc, repo, redisMock := setupLocationService(t)
		redisMock.ExpectGet(cache.CountriesKey).SetErr(errors.New("connection refused"))
		repo.On("ListCountries", mock.Anything).Return(countries, nil).Once()
		redisMock.ExpectSet(cache.CountriesKey, data, locationTTL).SetErr(errors.New("connection refused"))

		// Act
		result, err := svc.ListCountries(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, countries, result)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		svc, repo, redisMock := setupLocationService(t)
		redisMock.ExpectGet(cache.CountriesKey).RedisNil()
		repo.On("ListCountries", mock.Anything).Return(nil, errors.New("db down")).Once()

		// Act
		_, err := svc.ListCountries(ctx)

		// Assert
		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestListRegions(t *testing.T) {
	ctx := t.Context()
	regions := []models.Region{{ID: 10, CountryID: 1, Name: "Kyiv"}, {ID: 11, CountryID: 1, Name: "Lviv"}}

	data, err := json.Marshal(regions)
	require.NoError(t, err)

	t.Run("Success - Loaded And Cached Per Country", func(t *testing.T) {
		// Arrange
		svc, repo, redisMock := setupLocationService(t)
		redisMock.ExpectGet("regions:1").RedisNil()
		repo.On("ListRegions", mock.Anything, int64(1)).Return(regions, nil).Once()
		redisMock.ExpectSet("regions:1", data, locationTTL).SetVal("OK")

		// Act
		result, err := svc.ListRegions(ctx, 1)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, regions, result)
	})
}

func TestValidateRegion(t *testing.T) {
	ctx := t.Context()
	kyiv := &models.Region{ID: 10, CountryID: 1, Name: "Kyiv"}

	t.Run("Success - Region In Country", func(t *testing.T) {
		// Arrange
		svc, repo, _ := setupLocationService(t)
		repo.On("GetRegion", mock.Anything, int64(10)).Return(kyiv, nil).Once()

		// Act
		region, err := svc.ValidateRegion(ctx, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, kyiv, region)
	})

	t.Run("Failure - Region Of Another Country", func(t *testing.T) {
		// Arrange
		svc, repo, _ := setupLocationService(t)
		repo.On("GetRegion", mock.Anything, int64(10)).Return(kyiv, nil).Once()

		// Act
		region, err := svc.ValidateRegion(ctx, 2, 10)

		// Assert
		assert.Nil(t, region)
		appErr := requireAppError(t, err, appErrors.ErrCodeValidation)
		assert.Equal(t, "region does not belong to the selected country", appErr.Fields["region_id"])
	})

	t.Run("Failure - Unknown Region", func(t *testing.T) {
		// Arrange
		svc, repo, _ := setupLocationService(t)
		repo.On("GetRegion", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows).Once()

		// Act
		_, err := svc.ValidateRegion(ctx, 1, 99)

		// Assert
		appErr := requireAppError(t, err, appErrors.ErrCodeValidation)
		assert.Equal(t, "region does not exist", appErr.Fields["region_id"])
	})
}
