package redis

import (
	"context"
	"log/slog"
	"testing"

	"github.com/nftheater/admin-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueStore_RoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewKeyValueStore(client, slog.Default())
	ctx := context.Background()

	store.Set(ctx, "user:abc:user_token", "id-token-123")

	val, ok := store.Get(ctx, "user:abc:user_token")
	require.True(t, ok)
	assert.Equal(t, "id-token-123", val)

	// Keys live under the nftheater namespace.
	exists := client.Exists(ctx, "nftheater:user:abc:user_token").Val()
	assert.Equal(t, int64(1), exists)
}

func TestKeyValueStore_GetMissing(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewKeyValueStore(client, slog.Default())

	val, ok := store.Get(context.Background(), "user:nobody:user_role")
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestKeyValueStore_DeleteMany(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewKeyValueStore(client, slog.Default())
	ctx := context.Background()

	store.Set(ctx, "user:abc:user_role", "SUPER_ADMIN")
	store.Set(ctx, "user:abc:account", "nftheater")

	store.Delete(ctx, "user:abc:user_role", "user:abc:account")

	_, ok := store.Get(ctx, "user:abc:user_role")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "user:abc:account")
	assert.False(t, ok)
}

func TestKeyValueStore_EmptyKeyIgnored(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewKeyValueStore(client, slog.Default())
	ctx := context.Background()

	store.Set(ctx, "", "value")
	_, ok := store.Get(ctx, "")
	assert.False(t, ok)
}
