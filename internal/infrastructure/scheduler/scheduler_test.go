package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottleSpacesRequests(t *testing.T) {
	t.Parallel()

	throttle := NewThrottle(20*time.Millisecond, 0, 1)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 4; i++ {
		require.NoError(t, throttle.Wait(ctx))
	}
	assert.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
}

func TestThrottleHonoursCancellation(t *testing.T) {
	t.Parallel()

	throttle := NewThrottle(time.Hour, 0, 1)
	require.NoError(t, throttle.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, throttle.Wait(ctx))
}

func TestThrottleJitterIsBounded(t *testing.T) {
	t.Parallel()

	throttle := NewThrottle(0, 5*time.Millisecond, 0)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, throttle.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestIntervalSchedulerRunsImmediatelyAndOnTicks(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	s := NewIntervalScheduler(10 * time.Millisecond)

	require.NoError(t, s.Start(context.Background(), func(time.Time) { runs.Add(1) }))
	require.NoError(t, s.Start(context.Background(), func(time.Time) { runs.Add(100) }))

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
	assert.Less(t, after, int32(100))

	require.NoError(t, s.Stop(context.Background()))
}

func TestIntervalSchedulerStopsWithContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	s := NewIntervalScheduler(time.Hour)

	require.NoError(t, s.Start(ctx, func(time.Time) { runs.Add(1) }))
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	require.NoError(t, s.Stop(context.Background()))
}

func TestIntervalSchedulerRejectsZeroInterval(t *testing.T) {
	t.Parallel()

	assert.Error(t, NewIntervalScheduler(0).Start(context.Background(), func(time.Time) {}))
}
