package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
)

// MockHealthReportRepo is a mock implementation of port.HealthReportRepository.
type MockHealthReportRepo struct {
	mock.Mock
}

func (m *MockHealthReportRepo) Create(ctx context.Context, report *domain.HealthReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockHealthReportRepo) List(ctx context.Context) ([]domain.HealthReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HealthReport), args.Error(1)
}

func (m *MockHealthReportRepo) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]domain.HealthReport, error) {
	args := m.Called(ctx, reporterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HealthReport), args.Error(1)
}

// MockWaterReportRepo is a mock implementation of port.WaterReportRepository.
type MockWaterReportRepo struct {
	mock.Mock
}

func (m *MockWaterReportRepo) Create(ctx context.Context, report *domain.WaterQualityReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockWaterReportRepo) List(ctx context.Context) ([]domain.WaterQualityReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaterQualityReport), args.Error(1)
}

func (m *MockWaterReportRepo) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]domain.WaterQualityReport, error) {
	args := m.Called(ctx, reporterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaterQualityReport), args.Error(1)
}
