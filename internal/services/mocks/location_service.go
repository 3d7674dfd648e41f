package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type LocationService struct {
	mock.Mock
}

func (_m *LocationService) ListCountries(ctx context.Context) ([]models.Country, error) {
	ret := _m.Called(ctx)
	var r0 []models.Country
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Country)
	}

	return r0, ret.Error(1)
}

func (_m *LocationService) ListRegions(ctx context.Context, countryID int64) ([]models.Region, error) {
	ret := _m.Called(ctx, countryID)
	var r0 []models.Region
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Region)
	}

	return r0, ret.Error(1)
}

func (_m *LocationService) ValidateRegion(ctx context.Context, countryID int64, regionID int64) (*models.Region, error) {
	ret := _m.Called(ctx, countryID, regionID)
	var r0 *models.Region
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Region)
	}

	return r0, ret.Error(1)
}

// NewLocationService creates a new instance of LocationService. It also registers a cleanup function to assert the mocks expectations.
func NewLocationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *LocationService {
	m := &LocationService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
