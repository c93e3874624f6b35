package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
	"healthmon/internal/i18n"
	"healthmon/internal/service"
)

// MockDashboardService is a mock implementation of service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Get(ctx context.Context, user *domain.User, lang i18n.Language) (*service.DashboardView, error) {
	args := m.Called(ctx, user, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardView), args.Error(1)
}
