package seed

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeepAliveExtendsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	stop := keepAlive(5*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestLocalLockerReleases(t *testing.T) {
	var l LocalLocker

	release, err := l.Acquire(context.Background())
	require.NoError(t, err)

	_, err = l.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrSeedInProgress)

	require.NoError(t, release(context.Background()))
	release, err = l.Acquire(context.Background())
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}
