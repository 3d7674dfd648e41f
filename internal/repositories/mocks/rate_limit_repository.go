package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRateLimitRepository struct {
	mock.Mock
}

func (_m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Int(1), ret.Int(2), ret.Error(3)
}

func (_m *MockRateLimitRepository) ResetLoginAttempts(ctx context.Context, email string) error {
	ret := _m.Called(ctx, email)
	return ret.Error(0)
}

// NewMockRateLimitRepository creates a new instance of MockRateLimitRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockRateLimitRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRateLimitRepository {
	m := &MockRateLimitRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
