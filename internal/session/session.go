// Package session holds the signed-in user for one storage key and keeps the
// persisted record in step with it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

// Session is either empty or holds exactly one user whose role was
// confirmed at login.
type Session struct {
	key    string
	store  port.SessionStore
	users  port.UserRepository
	logger *zap.Logger

	mu       sync.RWMutex
	user     *domain.User
	inFlight atomic.Bool
}

// New creates an empty session bound to key.
func New(key string, store port.SessionStore, users port.UserRepository, logger *zap.Logger) *Session {
	return &Session{key: key, store: store, users: users, logger: logger}
}

// Key returns the storage key the session persists under.
func (s *Session) Key() string {
	return s.key
}

// Login authenticates email and password against the registry and requires
// the account to hold role. Any mismatch returns ErrInvalidCredentials and
// leaves the session and storage untouched.
func (s *Session) Login(ctx context.Context, email, password string, role domain.UserRole) (*domain.User, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrOperationInFlight
	}
	defer s.inFlight.Store(false)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	if user.Role != role {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	record, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("session.Login: encoding record: %w", err)
	}
	if err := s.store.Set(ctx, s.key, record); err != nil {
		return nil, fmt.Errorf("session.Login: persisting record: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// LoggingIn reports whether a login is currently running.
func (s *Session) LoggingIn() bool {
	return s.inFlight.Load()
}

// Logout clears the session and removes the persisted record. The in-memory
// state is cleared even when the store fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("session.Logout: %w", err)
	}
	return nil
}

// Restore loads the persisted record. An absent, unreadable or malformed
// record leaves the session empty; malformed records are removed.
func (s *Session) Restore(ctx context.Context) (*domain.User, bool) {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("session record unreadable", zap.String("key", s.key), zap.Error(err))
		}
		s.clear()
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil || !user.Valid() {
		s.logger.Debug("discarding malformed session record", zap.String("key", s.key))
		if delErr := s.store.Delete(ctx, s.key); delErr != nil {
			s.logger.Debug("removing malformed session record", zap.Error(delErr))
		}
		s.clear()
		return nil, false
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return &user, true
}

// User returns the signed-in user, if any.
func (s *Session) User() (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *Session) clear() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
