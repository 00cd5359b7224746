package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance and a redis client for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func testStoreSemantics(t *testing.T, kv KeyValueStore) {
	ctx := context.Background()

	_, err := kv.Get(ctx, KeyActiveSession)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, KeyActiveSession, `{"id":"INT-1"}`))
	val, err := kv.Get(ctx, KeyActiveSession)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"INT-1"}`, val)

	// Set overwrites.
	require.NoError(t, kv.Set(ctx, KeyActiveSession, `{"id":"INT-2"}`))
	val, err = kv.Get(ctx, KeyActiveSession)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"INT-2"}`, val)

	require.NoError(t, kv.Remove(ctx, KeyActiveSession))
	_, err = kv.Get(ctx, KeyActiveSession)
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing an absent key is not an error.
	assert.NoError(t, kv.Remove(ctx, KeyActiveSession))
}

func TestMemoryStore(t *testing.T) {
	testStoreSemantics(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	_, rdb := setupTestRedis(t)
	testStoreSemantics(t, NewRedisStore(rdb))
}

func TestRedisStoreKeysAreIndependent(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	kv := NewRedisStore(rdb)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyActiveSession, "active"))
	require.NoError(t, kv.Set(ctx, KeyCompletedSessions, "completed"))

	require.NoError(t, kv.Remove(ctx, KeyActiveSession))

	val, err := kv.Get(ctx, KeyCompletedSessions)
	require.NoError(t, err)
	assert.Equal(t, "completed", val)
	assert.False(t, mr.Exists(KeyActiveSession))
}
