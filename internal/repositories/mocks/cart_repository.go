package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

func (_m *MockCartRepository) GetActiveCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	ret := _m.Called(ctx, owner)
	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) CreateCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	ret := _m.Called(ctx, owner)
	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) GetCartWithTotals(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	ret := _m.Called(ctx, owner)
	var r0 *models.Cart
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) UpsertItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	ret := _m.Called(ctx, cartID, productID, quantity)
	var r0 *models.CartItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.CartItem)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) GetOwnedItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID) (*models.CartItem, error) {
	ret := _m.Called(ctx, owner, itemID)
	var r0 *models.CartItem
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.CartItem)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	ret := _m.Called(ctx, itemID, quantity)
	return ret.Error(0)
}

func (_m *MockCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	ret := _m.Called(ctx, itemID)
	return ret.Error(0)
}

func (_m *MockCartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	ret := _m.Called(ctx, cartID)
	var r0 []models.CartItem
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.CartItem)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) ReassignToCustomer(ctx context.Context, cartID uuid.UUID, customerID uuid.UUID) error {
	ret := _m.Called(ctx, cartID, customerID)
	return ret.Error(0)
}

func (_m *MockCartRepository) MoveItem(ctx context.Context, itemID uuid.UUID, toCartID uuid.UUID) error {
	ret := _m.Called(ctx, itemID, toCartID)
	return ret.Error(0)
}

func (_m *MockCartRepository) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	ret := _m.Called(ctx, cartID)
	return ret.Error(0)
}

// NewMockCartRepository creates a new instance of MockCartRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
