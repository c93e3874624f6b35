// Package cached decorates repositories with an in-process read cache.
package cached

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/port"
)

const (
	keyAll      = "villages"
	keyDistrict = "villages:district"
	keyVillage  = "village"
)

type villageRepository struct {
	inner port.VillageRepository
	cache *cache.Cache
}

// NewVillageRepo wraps inner so reads are served from memory until they expire.
// Any Upsert drops every cached entry.
func NewVillageRepo(inner port.VillageRepository, cfg config.CacheConfig) port.VillageRepository {
	return &villageRepository{
		inner: inner,
		cache: cache.New(cfg.VillageTTL, cfg.CleanupInterval),
	}
}

// cacheKey joins prefix and params with ':'.
func cacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}

func (r *villageRepository) List(ctx context.Context) ([]domain.Village, error) {
	if v, ok := r.cache.Get(keyAll); ok {
		return cloneVillages(v.([]domain.Village)), nil
	}
	villages, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(keyAll, cloneVillages(villages))
	return villages, nil
}

func (r *villageRepository) ListByDistrict(ctx context.Context, district string) ([]domain.Village, error) {
	key := cacheKey(keyDistrict, district)
	if v, ok := r.cache.Get(key); ok {
		return cloneVillages(v.([]domain.Village)), nil
	}
	villages, err := r.inner.ListByDistrict(ctx, district)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, cloneVillages(villages))
	return villages, nil
}

func (r *villageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Village, error) {
	key := cacheKey(keyVillage, id)
	if v, ok := r.cache.Get(key); ok {
		village := v.(domain.Village)
		return &village, nil
	}
	village, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, *village)
	return village, nil
}

func (r *villageRepository) Upsert(ctx context.Context, village *domain.Village) error {
	if err := r.inner.Upsert(ctx, village); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

func cloneVillages(in []domain.Village) []domain.Village {
	return append([]domain.Village{}, in...)
}
