package auth_test

import (
	"testing"

	"gatehouse/internal/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// NewTestRedisStore runs an in-process Redis and returns a store backed by it.
func NewTestRedisStore(t *testing.T) (*auth.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return auth.NewRedisStore(rdb), mr
}

func TestRedisStore_Verify(t *testing.T) {
	t.Parallel()

	store, _ := NewTestRedisStore(t)
	require.NoError(t, store.Put(t.Context(), "admin", "secret"), "adding user")

	require.True(t, store.Verify(t.Context(), "admin", "secret"), "expected matching pair to verify")
	require.False(t, store.Verify(t.Context(), "admin", "wrong"), "expected wrong password to be rejected")
	require.False(t, store.Verify(t.Context(), "ghost", "secret"), "expected unknown user to be rejected")
}

func TestRedisStore_Remove(t *testing.T) {
	t.Parallel()

	store, _ := NewTestRedisStore(t)
	require.NoError(t, store.Put(t.Context(), "admin", "secret"), "adding user")
	require.NoError(t, store.Remove(t.Context(), "admin"), "removing user")
	require.False(t, store.Verify(t.Context(), "admin", "secret"), "expected removed user to be rejected")

	require.NoError(t, store.Remove(t.Context(), "ghost"), "expected removing an absent user to be a no-op")
}

// Secrets written by an external provisioning system are visible without any
// gateway-side action.
func TestRedisStore_ExternallyProvisioned(t *testing.T) {
	t.Parallel()

	store, mr := NewTestRedisStore(t)

	require.NoError(t, mr.Set("gatehouse:user:eve", "hunter2"), "provisioning user directly")
	require.True(t, store.Verify(t.Context(), "eve", "hunter2"), "expected externally written secret to verify")

	mr.Del("gatehouse:user:eve")
	require.False(t, store.Verify(t.Context(), "eve", "hunter2"), "expected externally deleted secret to stop verifying")
}

func TestRedisStore_UnavailableRejects(t *testing.T) {
	t.Parallel()

	store, mr := NewTestRedisStore(t)
	require.NoError(t, store.Put(t.Context(), "admin", "secret"), "adding user")

	mr.Close()

	require.False(t, store.Verify(t.Context(), "admin", "secret"), "expected an unreachable store to reject, not fail")
}
