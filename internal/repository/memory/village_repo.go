package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

type villageRepository struct {
	mu       sync.RWMutex
	villages []domain.Village
}

// NewVillageRepo creates a VillageRepository holding villages.
func NewVillageRepo(villages ...domain.Village) port.VillageRepository {
	return &villageRepository{villages: append([]domain.Village(nil), villages...)}
}

func (r *villageRepository) List(_ context.Context) ([]domain.Village, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Village{}, r.villages...), nil
}

func (r *villageRepository) ListByDistrict(_ context.Context, district string) ([]domain.Village, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Village{}
	for i := range r.villages {
		if r.villages[i].District == district {
			out = append(out, r.villages[i])
		}
	}
	return out, nil
}

func (r *villageRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Village, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.villages {
		if r.villages[i].ID == id {
			v := r.villages[i]
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Upsert replaces the village with the same name, keeping its ID, or
// appends it.
func (r *villageRepository) Upsert(_ context.Context, village *domain.Village) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.villages {
		if r.villages[i].Name == village.Name {
			village.ID = r.villages[i].ID
			r.villages[i] = *village
			return nil
		}
	}
	if village.ID == uuid.Nil {
		village.ID = uuid.New()
	}
	r.villages = append(r.villages, *village)
	return nil
}
