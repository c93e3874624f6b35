package port

import (
	"context"

	"github.com/google/uuid"

	"healthmon/internal/domain"
)

// UserRepository defines the contract for the user registry.
// Email is the lookup key for login.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

// VillageRepository defines the contract for village persistence.
// List methods return villages in insertion order. Upsert keys on the
// village name and writes the stored ID back.
type VillageRepository interface {
	List(ctx context.Context) ([]domain.Village, error)
	ListByDistrict(ctx context.Context, district string) ([]domain.Village, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Village, error)
	Upsert(ctx context.Context, village *domain.Village) error
}

// AlertRepository defines the contract for alert persistence.
// UpdateStatus only writes when the stored status still equals from, and
// returns domain.ErrInvalidTransition when it no longer does.
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	List(ctx context.Context) ([]domain.Alert, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AlertStatus) error
}
