// internal/storage/redis_test.go
package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workersglobe/internal/common/config"
)

func newTestRedisStore(t *testing.T, prefix string) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedis(config.RedisConfig{
		Address:   mr.Addr(),
		KeyPrefix: prefix,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t, "workersglobe")

	require.NoError(t, store.Ping(ctx))

	_, err := store.Get(ctx, KeyToken)
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, store.Set(ctx, KeyToken, "abc123"))
	val, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc123", val)

	require.NoError(t, store.Delete(ctx, KeyToken))
	_, err = store.Get(ctx, KeyToken)
	assert.Equal(t, ErrNotFound, err)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, err := NewRedis(config.RedisConfig{Address: mr.Addr(), KeyPrefix: "wg"})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, KeySelectedLanguage, "hi"))

	raw, err := mr.Get("wg:" + KeySelectedLanguage)
	require.NoError(t, err)
	assert.Equal(t, "hi", raw)
}

func TestRedisStore_DeleteMultiple(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t, "")

	require.NoError(t, store.Set(ctx, KeyToken, "t"))
	require.NoError(t, store.Set(ctx, KeyCurrentUser, "{}"))
	require.NoError(t, store.Set(ctx, KeyPendingUserType, "seeker"))

	require.NoError(t, store.Delete(ctx, KeyToken, KeyCurrentUser, KeyPendingUserType))

	for _, key := range []string{KeyToken, KeyCurrentUser, KeyPendingUserType} {
		_, err := store.Get(ctx, key)
		assert.Equal(t, ErrNotFound, err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, KeyAdminToken)
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, store.Set(ctx, KeyAdminToken, "admin-authenticated"))
	val, err := store.Get(ctx, KeyAdminToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-authenticated", val)

	require.NoError(t, store.Delete(ctx, KeyAdminToken))
	_, err = store.Get(ctx, KeyAdminToken)
	assert.Equal(t, ErrNotFound, err)
}
