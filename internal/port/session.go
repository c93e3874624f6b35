package port

import "context"

// SessionStore persists raw session records by key.
// Get returns domain.ErrNotFound when no record exists.
type SessionStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
