package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/careerloop/surveyflow/pkg/adapters/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_AcquireAndRelease(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "surveyflow:session:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "widget-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("surveyflow:session:lock:widget-1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("surveyflow:session:lock:widget-1"))
}

func TestLocker_BlocksWhileHeld(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "surveyflow:session:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "widget-1", 5*time.Second)
	require.NoError(t, err)

	// A second holder must not get in while the first holds the lock.
	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "widget-1", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	// Released: the second acquisition now succeeds.
	unlock2, err := locker.Lock(ctx, "widget-1", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_UnlockIsHolderSafe(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "surveyflow:session:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "widget-1", 5*time.Second)
	require.NoError(t, err)

	// Simulate TTL expiry followed by another replica taking the lock.
	mr.Set("surveyflow:session:lock:widget-1", "someone-else")

	// The stale holder's unlock must not delete the new holder's lock.
	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("surveyflow:session:lock:widget-1"))
}
