package revocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	pingErr error
	setErr  error
	keys    map[string]time.Duration
	closed  bool
}

func (f *fakeRedis) Set(_ context.Context, key string, _ any, exp time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.keys[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pingErr)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func withFakeRedis(t *testing.T, f *fakeRedis) {
	t.Helper()
	orig := newRedisClient
	newRedisClient = func(*redis.Options) redisClient { return f }
	t.Cleanup(func() { newRedisClient = orig })
}

func TestRedisRevoker(t *testing.T) {
	f := &fakeRedis{keys: map[string]time.Duration{}}
	withFakeRedis(t, f)
	ctx := context.Background()

	r, err := NewRedisRevoker(ctx, "localhost:6379", "")
	require.NoError(t, err)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Minute))
	require.NoError(t, r.Revoke(ctx, "jti-2", 0))
	assert.Equal(t, map[string]time.Duration{"revoked:jti-1": time.Minute}, f.keys)

	ok, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Close())
	assert.True(t, f.closed)
}

func TestRedisRevoker_PingFails(t *testing.T) {
	f := &fakeRedis{pingErr: errors.New("connection refused")}
	withFakeRedis(t, f)

	_, err := NewRedisRevoker(context.Background(), "localhost:1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, f.closed)
}

func TestRedisRevoker_SetError(t *testing.T) {
	f := &fakeRedis{setErr: errors.New("READONLY")}
	withFakeRedis(t, f)

	r, err := NewRedisRevoker(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Error(t, r.Revoke(context.Background(), "j", time.Minute))
}

func TestMemoryRevoker_Expiry(t *testing.T) {
	m := NewMemoryRevoker()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "a", time.Minute))
	require.NoError(t, m.Revoke(ctx, "b", -time.Second))

	ok, _ := m.IsRevoked(ctx, "a")
	assert.True(t, ok)
	ok, _ = m.IsRevoked(ctx, "b")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = m.IsRevoked(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, m.Revoke(ctx, "c", time.Minute))
	assert.Len(t, m.revoked, 1, "expired entries are purged")
}
