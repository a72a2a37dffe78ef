package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client backed by miniredis so no
// real server is needed.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	if err := client.Ping(context.Background()).Err(); err != nil {
		mr.Close()
		t.Fatalf("Failed to connect to miniredis: %v", err)
	}

	return client, mr
}

func TestLockEventExclusive(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()
	defer mr.Close()

	lock := NewLock(client, 10*time.Second)

	ok, err := lock.LockEvent("event-1", "writer-a")
	require.NoError(t, err)
	assert.True(t, ok, "first writer should take the lock")

	ok, err = lock.LockEvent("event-1", "writer-b")
	require.NoError(t, err)
	assert.False(t, ok, "second writer must be rejected while the lock is held")

	// An unrelated event is not blocked.
	ok, err = lock.LockEvent("event-2", "writer-b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnlockEventReleasesOwnLock(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()
	defer mr.Close()

	lock := NewLock(client, 10*time.Second)

	ok, err := lock.LockEvent("event-1", "writer-a")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, lock.UnlockEvent("event-1", "writer-a"))

	ok, err = lock.LockEvent("event-1", "writer-b")
	require.NoError(t, err)
	assert.True(t, ok, "lock should be free after release")
}

func TestUnlockEventIgnoresForeignLock(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()
	defer mr.Close()

	lock := NewLock(client, 10*time.Second)

	ok, err := lock.LockEvent("event-1", "writer-a")
	require.NoError(t, err)
	require.True(t, ok)

	// A different token must not release writer-a's lock.
	require.NoError(t, lock.UnlockEvent("event-1", "writer-b"))

	ok, err = lock.LockEvent("event-1", "writer-c")
	require.NoError(t, err)
	assert.False(t, ok, "writer-a's lock must survive a foreign unlock")
}

func TestUnlockEventAfterExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()
	defer mr.Close()

	lock := NewLock(client, time.Second)

	ok, err := lock.LockEvent("event-1", "writer-a")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	// Expired lock: unlock is a no-op and the lock is takeable again.
	require.NoError(t, lock.UnlockEvent("event-1", "writer-a"))

	ok, err = lock.LockEvent("event-1", "writer-b")
	require.NoError(t, err)
	assert.True(t, ok)
}
