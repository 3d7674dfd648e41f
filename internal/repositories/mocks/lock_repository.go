package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockLockRepository struct {
	mock.Mock
}

func (_m *MockLockRepository) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

// NewMockLockRepository creates a new instance of MockLockRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockLockRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLockRepository {
	m := &MockLockRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
