package mocks

import (
	stripe "github.com/aaravmahajanofficial/nuts-storefront/pkg/stripe"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error) {
	ret := m.Called(payload, signature)

	var event stripe.Event
	if v := ret.Get(0); v != nil {
		event = v.(stripe.Event)
	}

	return event, ret.Error(1)
}

func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
