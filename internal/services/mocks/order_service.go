package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (_m *OrderService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {
	ret := _m.Called(ctx, customerID, req)
	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *OrderService) GetOrderByID(ctx context.Context, customerID uuid.UUID, id uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, customerID, id)
	var r0 *models.Order
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *OrderService) ListOrders(ctx context.Context, customerID uuid.UUID, page int, size int) (*models.OrderListResponse, error) {
	ret := _m.Called(ctx, customerID, page, size)
	var r0 *models.OrderListResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.OrderListResponse)
	}

	return r0, ret.Error(1)
}

// NewOrderService creates a new instance of OrderService. It also registers a cleanup function to assert the mocks expectations.
func NewOrderService(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderService {
	m := &OrderService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
