package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/storage/redis"
)

func setupStore(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore_RoundTrip(t *testing.T) {
	mr, client := setupStore(t)
	store := redis.NewSessionStore(client, time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "health_monitor_user:abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Set(ctx, "health_monitor_user:abc", []byte(`{"id":"x"}`)))
	got, err := store.Get(ctx, "health_monitor_user:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`, string(got))
	assert.Equal(t, time.Hour, mr.TTL("health_monitor_user:abc"))

	require.NoError(t, store.Delete(ctx, "health_monitor_user:abc"))
	assert.False(t, mr.Exists("health_monitor_user:abc"))
}

func TestSessionStore_ExpiredRecordIsAbsent(t *testing.T) {
	mr, client := setupStore(t)
	store := redis.NewSessionStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_ServerDown(t *testing.T) {
	mr, client := setupStore(t)
	store := redis.NewSessionStore(client, 0)
	mr.Close()

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestPing(t *testing.T) {
	_, client := setupStore(t)
	assert.NoError(t, redis.Ping(context.Background(), client))
}
