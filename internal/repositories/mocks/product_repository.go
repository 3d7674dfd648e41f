package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (_m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	ret := _m.Called(ctx, product)
	return ret.Error(0)
}

func (_m *MockProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, discounted *decimal.Decimal) error {
	ret := _m.Called(ctx, id, price, discounted)
	return ret.Error(0)
}

func (_m *MockProductRepository) ListProducts(ctx context.Context, page int, size int) ([]*models.Product, int, error) {
	ret := _m.Called(ctx, page, size)
	var r0 []*models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Product)
	}

	return r0, ret.Int(1), ret.Error(2)
}

// NewMockProductRepository creates a new instance of MockProductRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
