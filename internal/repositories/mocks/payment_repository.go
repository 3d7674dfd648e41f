package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (_m *MockPaymentRepository) CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) (bool, error) {
	ret := _m.Called(ctx, tx)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockPaymentRepository) GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.PaymentTransaction
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.PaymentTransaction)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentRepository) ListByStatus(ctx context.Context, status models.TransactionStatus) ([]models.PaymentTransaction, error) {
	ret := _m.Called(ctx, status)
	var r0 []models.PaymentTransaction
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.PaymentTransaction)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentRepository) ListTransactionsByCustomer(ctx context.Context, customerID uuid.UUID, page int, size int) ([]models.PaymentTransaction, int, error) {
	ret := _m.Called(ctx, customerID, page, size)
	var r0 []models.PaymentTransaction
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.PaymentTransaction)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from models.TransactionStatus, to models.TransactionStatus, gatewayRef string) (bool, error) {
	ret := _m.Called(ctx, id, from, to, gatewayRef)
	return ret.Bool(0), ret.Error(1)
}

// NewMockPaymentRepository creates a new instance of MockPaymentRepository. It also registers a cleanup function to assert the mocks expectations.
func NewMockPaymentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
