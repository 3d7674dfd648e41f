package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (_m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, email, exclude)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockUserRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	ret := _m.Called(ctx, id, email)
	return ret.Error(0)
}

func (_m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	ret := _m.Called(ctx, id, passwordHash)
	return ret.Error(0)
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
