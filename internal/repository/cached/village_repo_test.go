package cached_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/fixtures"
	"healthmon/internal/port"
	"healthmon/internal/repository/cached"
	"healthmon/internal/repository/memory"
	"healthmon/mocks"
)

type countingRepo struct {
	port.VillageRepository
	lists, byDistrict, byID int
	err                     error
}

func (c *countingRepo) List(ctx context.Context) ([]domain.Village, error) {
	c.lists++
	if c.err != nil {
		return nil, c.err
	}
	return c.VillageRepository.List(ctx)
}

func (c *countingRepo) ListByDistrict(ctx context.Context, district string) ([]domain.Village, error) {
	c.byDistrict++
	return c.VillageRepository.ListByDistrict(ctx, district)
}

func (c *countingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Village, error) {
	c.byID++
	return c.VillageRepository.GetByID(ctx, id)
}

var cacheCfg = config.CacheConfig{VillageTTL: time.Minute, CleanupInterval: time.Minute}

func newRepo() (*countingRepo, port.VillageRepository) {
	inner := &countingRepo{VillageRepository: memory.NewVillageRepo(fixtures.Villages()...)}
	return inner, cached.NewVillageRepo(inner, cacheCfg)
}

func TestVillageRepo_ListIsCached(t *testing.T) {
	ctx := context.Background()
	inner, repo := newRepo()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.lists)
	assert.Equal(t, "Majuli Island", second[0].Name)
}

func TestVillageRepo_DistrictAndIDKeysAreSeparate(t *testing.T) {
	ctx := context.Background()
	inner, repo := newRepo()

	for i := 0; i < 3; i++ {
		_, err := repo.ListByDistrict(ctx, "Jorhat")
		require.NoError(t, err)
		_, err = repo.ListByDistrict(ctx, "Majuli")
		require.NoError(t, err)
		_, err = repo.GetByID(ctx, fixtures.ID("village", "1"))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, inner.byDistrict)
	assert.Equal(t, 1, inner.byID)
}

func TestVillageRepo_UpsertFlushes(t *testing.T) {
	ctx := context.Background()
	inner, repo := newRepo()

	v, err := repo.GetByID(ctx, fixtures.ID("village", "2"))
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)

	v.RecentCases = 42
	require.NoError(t, repo.Upsert(ctx, v))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.RecentCases)
	assert.Equal(t, 2, inner.byID)

	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.lists)
}

func TestVillageRepo_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	inner, repo := newRepo()
	inner.err = errors.New("db down")

	_, err := repo.List(ctx)
	assert.Error(t, err)

	inner.err = nil
	villages, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, villages, 5)
	assert.Equal(t, 2, inner.lists)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVillageRepo_GetByIDHitsInnerOnce(t *testing.T) {
	ctx := context.Background()
	village := fixtures.Villages()[0]
	inner := new(mocks.MockVillageRepo)
	inner.On("GetByID", mock.Anything, village.ID).Return(&village, nil).Once()
	repo := cached.NewVillageRepo(inner, cacheCfg)

	for i := 0; i < 3; i++ {
		got, err := repo.GetByID(ctx, village.ID)
		require.NoError(t, err)
		assert.Equal(t, village.Name, got.Name)
	}
	inner.AssertExpectations(t)
}

func TestVillageRepo_UpsertPassesThroughMock(t *testing.T) {
	inner := new(mocks.MockVillageRepo)
	inner.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Village")).Return(errors.New("db down"))
	repo := cached.NewVillageRepo(inner, cacheCfg)

	err := repo.Upsert(context.Background(), &domain.Village{Name: "Nimati"})
	assert.EqualError(t, err, "db down")
}
