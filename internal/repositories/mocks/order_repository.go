package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (_m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page int, size int) ([]models.Order, int, error) {
	ret := _m.Called(ctx, customerID, page, size)
	var r0 []models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockOrderRepository) ListIDsByStatus(ctx context.Context, status models.OrderStatus) ([]uuid.UUID, error) {
	ret := _m.Called(ctx, status)
	var r0 []uuid.UUID
	if v := ret.Get(0); v != nil {
		r0 = v.([]uuid.UUID)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) ListNewWithoutTransaction(ctx context.Context) ([]uuid.UUID, error) {
	ret := _m.Called(ctx)
	var r0 []uuid.UUID
	if v := ret.Get(0); v != nil {
		r0 = v.([]uuid.UUID)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) SumItems(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	ret := _m.Called(ctx, orderID)
	var r0 decimal.Decimal
	if v := ret.Get(0); v != nil {
		r0 = v.(decimal.Decimal)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from models.OrderStatus, to models.OrderStatus) (bool, error) {
	ret := _m.Called(ctx, id, from, to)
	return ret.Bool(0), ret.Error(1)
}

// NewMockOrderRepository creates a new instance of MockOrderRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
