package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
	"healthmon/internal/i18n"
	"healthmon/internal/service"
)

// MockRiskMapService is a mock implementation of service.RiskMapService.
type MockRiskMapService struct {
	mock.Mock
}

func (m *MockRiskMapService) ListVillages(ctx context.Context, filter service.VillageFilter) ([]domain.Village, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Village), args.Error(1)
}

func (m *MockRiskMapService) Markers(ctx context.Context, filter service.VillageFilter, lang i18n.Language) (*service.MarkerSet, error) {
	args := m.Called(ctx, filter, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MarkerSet), args.Error(1)
}

func (m *MockRiskMapService) SelectVillage(ctx context.Context, id uuid.UUID) (*service.VillageDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VillageDetail), args.Error(1)
}
