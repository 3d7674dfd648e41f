package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (_m *CartService) GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	ret := _m.Called(ctx, owner)
	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *CartService) GetOrCreateCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	ret := _m.Called(ctx, owner)
	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *CartService) AddItem(ctx context.Context, owner models.CartOwner, productID uuid.UUID, quantity int) (*models.Cart, error) {
	ret := _m.Called(ctx, owner, productID, quantity)
	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *CartService) UpdateItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID, action models.CartAction) (*models.Cart, error) {
	ret := _m.Called(ctx, owner, itemID, action)
	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *CartService) MergeCarts(ctx context.Context, customerID uuid.UUID, sessionKey string) error {
	ret := _m.Called(ctx, customerID, sessionKey)
	return ret.Error(0)
}

// NewCartService creates a new instance of CartService. It also registers a cleanup function to assert the mocks expectations.
func NewCartService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartService {
	m := &CartService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
