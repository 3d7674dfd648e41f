package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockLocationRepository struct {
	mock.Mock
}

func (_m *MockLocationRepository) ListCountries(ctx context.Context) ([]models.Country, error) {
	ret := _m.Called(ctx)
	var r0 []models.Country
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Country)
	}

	return r0, ret.Error(1)
}

func (_m *MockLocationRepository) ListRegions(ctx context.Context, countryID int64) ([]models.Region, error) {
	ret := _m.Called(ctx, countryID)
	var r0 []models.Region
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Region)
	}

	return r0, ret.Error(1)
}

func (_m *MockLocationRepository) GetRegion(ctx context.Context, id int64) (*models.Region, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Region
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Region)
	}

	return r0, ret.Error(1)
}

func (_m *MockLocationRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	ret := _m.Called(ctx, address)
	return ret.Error(0)
}

func (_m *MockLocationRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	ret := _m.Called(ctx, address)
	return ret.Error(0)
}

// NewMockLocationRepository creates a new instance of MockLocationRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockLocationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocationRepository {
	m := &MockLocationRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
