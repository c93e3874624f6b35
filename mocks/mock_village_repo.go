package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
)

// MockVillageRepo is a mock implementation of port.VillageRepository.
type MockVillageRepo struct {
	mock.Mock
}

func (m *MockVillageRepo) List(ctx context.Context) ([]domain.Village, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Village), args.Error(1)
}

func (m *MockVillageRepo) ListByDistrict(ctx context.Context, district string) ([]domain.Village, error) {
	args := m.Called(ctx, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Village), args.Error(1)
}

func (m *MockVillageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Village, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Village), args.Error(1)
}

func (m *MockVillageRepo) Upsert(ctx context.Context, village *domain.Village) error {
	args := m.Called(ctx, village)
	return args.Error(0)
}
