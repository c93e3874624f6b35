package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

type alertRepository struct {
	mu     sync.RWMutex
	alerts []domain.Alert
}

// NewAlertRepo creates an AlertRepository holding alerts.
func NewAlertRepo(alerts ...domain.Alert) port.AlertRepository {
	return &alertRepository{alerts: append([]domain.Alert(nil), alerts...)}
}

func (r *alertRepository) Create(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *alertRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			a := r.alerts[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *alertRepository) List(_ context.Context) ([]domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Alert{}, r.alerts...), nil
}

func (r *alertRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.AlertStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			if r.alerts[i].Status != from {
				return domain.ErrInvalidTransition
			}
			r.alerts[i].Status = to
			return nil
		}
	}
	return domain.ErrNotFound
}
