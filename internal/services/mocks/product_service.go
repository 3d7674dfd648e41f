package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (_m *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductService) ListProducts(ctx context.Context, page int, pageSize int) ([]*models.Product, int, error) {
	ret := _m.Called(ctx, page, pageSize)
	var r0 []*models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Product)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *ProductService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, discounted *decimal.Decimal) (*models.Product, error) {
	ret := _m.Called(ctx, id, price, discounted)
	var r0 *models.Product
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Product)
	}

	return r0, ret.Error(1)
}

// NewProductService creates a new instance of ProductService. It also registers a cleanup function to assert the mocks expectations.
func NewProductService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProductService {
	m := &ProductService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
