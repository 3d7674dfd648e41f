package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PaymentService struct {
	mock.Mock
}

func (_m *PaymentService) ListTransactions(ctx context.Context, customerID uuid.UUID, page int, size int) (*models.TransactionListResponse, error) {
	ret := _m.Called(ctx, customerID, page, size)
	var r0 *models.TransactionListResponse
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.TransactionListResponse)
	}

	return r0, ret.Error(1)
}

func (_m *PaymentService) HandleGatewayWebhook(ctx context.Context, payload []byte, signature string) (*models.GatewayWebhookResult, error) {
	ret := _m.Called(ctx, payload, signature)
	var r0 *models.GatewayWebhookResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.GatewayWebhookResult)
	}

	return r0, ret.Error(1)
}

// NewPaymentService creates a new instance of PaymentService. It also registers a cleanup function to assert the mocks expectations.
func NewPaymentService(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentService {
	m := &PaymentService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
