// Package memory provides in-process repositories used for demos and tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

type userRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserRepo creates a UserRepository holding users.
func NewUserRepo(users ...domain.User) port.UserRepository {
	return &userRepository{users: append([]domain.User(nil), users...)}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, user.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User{}, r.users...), nil
}

func (r *userRepository) ListByRole(_ context.Context, role domain.UserRole) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.User{}
	for i := range r.users {
		if r.users[i].Role == role {
			out = append(out, r.users[i])
		}
	}
	return out, nil
}
