package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
	"healthmon/internal/intake"
	"healthmon/internal/service"
)

// MockIntakeService is a mock implementation of service.IntakeService.
type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) SubmitHealthReport(ctx context.Context, reporter *domain.User, fields intake.SymptomFields) (*service.HealthSubmission, error) {
	args := m.Called(ctx, reporter, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HealthSubmission), args.Error(1)
}

func (m *MockIntakeService) SubmitWaterReport(ctx context.Context, reporter *domain.User, fields intake.WaterFields) (*service.WaterSubmission, error) {
	args := m.Called(ctx, reporter, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WaterSubmission), args.Error(1)
}

func (m *MockIntakeService) ListHealthReports(ctx context.Context, user *domain.User) ([]domain.HealthReport, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HealthReport), args.Error(1)
}

func (m *MockIntakeService) ListWaterReports(ctx context.Context, user *domain.User) ([]domain.WaterQualityReport, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaterQualityReport), args.Error(1)
}
