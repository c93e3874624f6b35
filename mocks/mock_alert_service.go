package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
)

// MockAlertService is a mock implementation of service.AlertService.
type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) List(ctx context.Context, user *domain.User, status domain.AlertStatus) ([]domain.Alert, error) {
	args := m.Called(ctx, user, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockAlertService) Acknowledge(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Alert, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *MockAlertService) Resolve(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Alert, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}
