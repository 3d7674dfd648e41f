package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProgressionService struct {
	mock.Mock
}

func (_m *ProgressionService) Run(ctx context.Context) (*models.ProgressionReport, error) {
	ret := _m.Called(ctx)
	var r0 *models.ProgressionReport
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.ProgressionReport)
	}

	return r0, ret.Error(1)
}

// NewProgressionService creates a new instance of ProgressionService. It also registers a cleanup function to assert the mocks expectations.
func NewProgressionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProgressionService {
	m := &ProgressionService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
