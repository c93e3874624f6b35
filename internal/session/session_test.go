package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"healthmon/internal/domain"
	"healthmon/internal/fixtures"
	"healthmon/internal/port"
	"healthmon/internal/repository/memory"
	"healthmon/internal/session"
	"healthmon/mocks"
)

const key = "health_monitor_user"

func demoUsers(t *testing.T) port.UserRepository {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(fixtures.DemoPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return memory.NewUserRepo(fixtures.Users(string(hash))...)
}

func newSession(t *testing.T, store port.SessionStore) *session.Session {
	return session.New(key, store, demoUsers(t), zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	store := memory.NewSessionStore()
	s := newSession(t, store)

	user, err := s.Login(context.Background(), "officer@example.com", fixtures.DemoPassword, domain.RoleDistrictOfficer)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rajesh Kumar", user.Name)
	assert.Equal(t, "Jorhat", user.District)

	current, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, user.ID, current.ID)

	raw, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	var persisted domain.User
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, user.Email, persisted.Email)
	assert.Empty(t, persisted.PasswordHash)
	assert.NotContains(t, string(raw), "password")
}

func TestLogin_Failures(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		role     domain.UserRole
	}{
		{"unknown email", "nobody@example.com", fixtures.DemoPassword, domain.RoleAdmin},
		{"role mismatch", "asha@example.com", fixtures.DemoPassword, domain.RoleAdmin},
		{"wrong password", "admin@example.com", "nope", domain.RoleAdmin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewSessionStore()
			s := newSession(t, store)

			_, err := s.Login(context.Background(), tc.email, tc.password, tc.role)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

			_, ok := s.User()
			assert.False(t, ok)
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestLogin_FailureKeepsExistingUser(t *testing.T) {
	s := newSession(t, memory.NewSessionStore())
	ctx := context.Background()

	_, err := s.Login(ctx, "asha@example.com", fixtures.DemoPassword, domain.RoleFieldWorker)
	require.NoError(t, err)
	_, err = s.Login(ctx, "asha@example.com", fixtures.DemoPassword, domain.RoleAdmin)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "asha@example.com", u.Email)
}

func TestLogin_Idempotent(t *testing.T) {
	store := memory.NewSessionStore()
	s := newSession(t, store)
	ctx := context.Background()

	first, err := s.Login(ctx, "admin@example.com", fixtures.DemoPassword, domain.RoleAdmin)
	require.NoError(t, err)
	rec1, _ := store.Get(ctx, key)

	second, err := s.Login(ctx, "admin@example.com", fixtures.DemoPassword, domain.RoleAdmin)
	require.NoError(t, err)
	rec2, _ := store.Get(ctx, key)

	assert.Equal(t, first, second)
	assert.Equal(t, rec1, rec2)
}

type blockingUsers struct {
	port.UserRepository
	entered chan struct{}
	release chan struct{}
}

func (b *blockingUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	close(b.entered)
	<-b.release
	return b.UserRepository.GetByEmail(ctx, email)
}

func TestLogin_RejectsConcurrentAttempt(t *testing.T) {
	users := &blockingUsers{
		UserRepository: demoUsers(t),
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	s := session.New(key, memory.NewSessionStore(), users, zap.NewNop())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := s.Login(ctx, "asha@example.com", fixtures.DemoPassword, domain.RoleFieldWorker)
		done <- err
	}()
	<-users.entered
	assert.True(t, s.LoggingIn())

	_, err := s.Login(ctx, "asha@example.com", fixtures.DemoPassword, domain.RoleFieldWorker)
	assert.ErrorIs(t, err, domain.ErrOperationInFlight)

	close(users.release)
	require.NoError(t, <-done)
	assert.False(t, s.LoggingIn())
}

func TestLogout(t *testing.T) {
	store := memory.NewSessionStore()
	s := newSession(t, store)
	ctx := context.Background()

	_, err := s.Login(ctx, "asha@example.com", fixtures.DemoPassword, domain.RoleFieldWorker)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	_, ok := s.User()
	assert.False(t, ok)
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Logout on an empty session is a no-op.
	assert.NoError(t, s.Logout(ctx))
}

type failingStore struct {
	*memory.SessionStore
	err error
}

func (f *failingStore) Delete(context.Context, string) error { return f.err }

func TestLogout_StoreErrorStillClears(t *testing.T) {
	store := &failingStore{SessionStore: memory.NewSessionStore(), err: errors.New("down")}
	s := newSession(t, store)
	ctx := context.Background()

	_, err := s.Login(ctx, "asha@example.com", fixtures.DemoPassword, domain.RoleFieldWorker)
	require.NoError(t, err)

	assert.Error(t, s.Logout(ctx))
	_, ok := s.User()
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	first := newSession(t, store)
	want, err := first.Login(ctx, "officer@example.com", fixtures.DemoPassword, domain.RoleDistrictOfficer)
	require.NoError(t, err)

	fresh := newSession(t, store)
	got, ok := fresh.Restore(ctx)
	require.True(t, ok)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Role, got.Role)

	current, ok := fresh.User()
	require.True(t, ok)
	assert.Equal(t, want.Email, current.Email)
}

func TestRestore_Absent(t *testing.T) {
	s := newSession(t, memory.NewSessionStore())
	_, ok := s.Restore(context.Background())
	assert.False(t, ok)
}

func TestRestore_MalformedRecordRemoved(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string]string{
		"not json":     "{not-json",
		"missing role": `{"id":"` + uuid.NewString() + `","email":"a@b.c"}`,
		"bad role":     `{"id":"` + uuid.NewString() + `","email":"a@b.c","role":"nurse"}`,
	} {
		t.Run(name, func(t *testing.T) {
			store := memory.NewSessionStore()
			require.NoError(t, store.Set(ctx, key, []byte(raw)))

			s := newSession(t, store)
			_, ok := s.Restore(ctx)
			assert.False(t, ok)
			_, ok = s.User()
			assert.False(t, ok)
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestRestore_StoreErrorIsSwallowed(t *testing.T) {
	store := new(mocks.MockSessionStore)
	store.On("Get", mock.Anything, key).Return(nil, errors.New("connection refused"))

	s := newSession(t, store)
	_, ok := s.Restore(context.Background())
	assert.False(t, ok)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestLogin_FailureDoesNotWrite(t *testing.T) {
	store := new(mocks.MockSessionStore)
	s := newSession(t, store)

	_, err := s.Login(context.Background(), "asha@example.com", "wrong", domain.RoleFieldWorker)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}
