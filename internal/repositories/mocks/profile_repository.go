package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProfileRepository struct {
	mock.Mock
}

func (_m *MockProfileRepository) CreateProfile(ctx context.Context, profile *models.CustomerProfile) error {
	ret := _m.Called(ctx, profile)
	return ret.Error(0)
}

func (_m *MockProfileRepository) CreateBusinessDetails(ctx context.Context, userID uuid.UUID, details *models.BusinessDetails) error {
	ret := _m.Called(ctx, userID, details)
	return ret.Error(0)
}

func (_m *MockProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	ret := _m.Called(ctx, userID)
	var r0 *models.CustomerProfile
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.CustomerProfile)
	}

	return r0, ret.Error(1)
}

func (_m *MockProfileRepository) PhoneTaken(ctx context.Context, phone string, exclude uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, phone, exclude)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockProfileRepository) UpdateContact(ctx context.Context, userID uuid.UUID, fullName string, phone string, companyName string) error {
	ret := _m.Called(ctx, userID, fullName, phone, companyName)
	return ret.Error(0)
}

func (_m *MockProfileRepository) UpdateBusinessDetails(ctx context.Context, userID uuid.UUID, code string, addressID *int64) error {
	ret := _m.Called(ctx, userID, code, addressID)
	return ret.Error(0)
}

// NewMockProfileRepository creates a new instance of MockProfileRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
