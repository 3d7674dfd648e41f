package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor runs the callback inline. An error returned from the expectation
// simulates a failed BEGIN and the callback is not run.
type MockTransactor struct {
	mock.Mock
}

func (_m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ret := _m.Called(ctx)
	if err := ret.Error(0); err != nil {
		return err
	}

	return fn(ctx)
}

func NewMockTransactor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactor {
	m := &MockTransactor{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// NewPassthroughTransactor accepts any number of transactions.
func NewPassthroughTransactor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactor {
	m := NewMockTransactor(t)
	m.On("WithinTransaction", mock.Anything).Return(nil).Maybe()

	return m
}
