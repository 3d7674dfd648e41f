package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (_m *UserService) RegisterIndividual(ctx context.Context, req *models.RegisterIndividualRequest) (*models.RegisterResponse, error) {
	ret := _m.Called(ctx, req)
	var r0 *models.RegisterResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.RegisterResponse)
	}

	return r0, ret.Error(1)
}

func (_m *UserService) RegisterBusiness(ctx context.Context, req *models.RegisterBusinessRequest) (*models.RegisterResponse, error) {
	ret := _m.Called(ctx, req)
	var r0 *models.RegisterResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.RegisterResponse)
	}

	return r0, ret.Error(1)
}

func (_m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *models.User, error) {
	ret := _m.Called(ctx, req)
	var r0 *models.LoginResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.LoginResponse)
	}

	var r1 *models.User
	if v := ret.Get(1); v != nil {
		r1 = v.(*models.User)
	}

	return r0, r1, ret.Error(2)
}

func (_m *UserService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) (*models.ForgotPasswordResponse, error) {
	ret := _m.Called(ctx, req)
	var r0 *models.ForgotPasswordResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.ForgotPasswordResponse)
	}

	return r0, ret.Error(1)
}

func (_m *UserService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	ret := _m.Called(ctx, req)
	return ret.Error(0)
}

func (_m *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error {
	ret := _m.Called(ctx, userID, req)
	return ret.Error(0)
}

func (_m *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	ret := _m.Called(ctx, userID)
	var r0 *models.CustomerProfile
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.CustomerProfile)
	}

	return r0, ret.Error(1)
}

func (_m *UserService) UpdateContact(ctx context.Context, userID uuid.UUID, req *models.UpdateContactRequest) (*models.CustomerProfile, error) {
	ret := _m.Called(ctx, userID, req)
	var r0 *models.CustomerProfile
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.CustomerProfile)
	}

	return r0, ret.Error(1)
}

func (_m *UserService) UpdateAddress(ctx context.Context, userID uuid.UUID, req *models.UpdateAddressRequest) (*models.CustomerProfile, error) {
	ret := _m.Called(ctx, userID, req)
	var r0 *models.CustomerProfile
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.CustomerProfile)
	}

	return r0, ret.Error(1)
}

// NewUserService creates a new instance of UserService. It also registers a cleanup function to assert the mocks expectations.
func NewUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserService {
	m := &UserService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
