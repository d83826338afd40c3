package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/scheduler"
)

type countingPruner struct {
	calls atomic.Int32
	ttl   atomic.Int64
}

func (p *countingPruner) PruneStale(_ context.Context, ttl time.Duration) int {
	p.calls.Add(1)
	p.ttl.Store(int64(ttl))
	return 0
}

func TestScheduler_PrunesOnTick(t *testing.T) {
	pruner := &countingPruner{}
	s := scheduler.New(pruner, time.Minute, 10*time.Millisecond)

	s.Start()
	require.Eventually(t, func() bool { return pruner.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	require.Equal(t, int64(time.Minute), pruner.ttl.Load())

	calls := pruner.calls.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, calls, pruner.calls.Load())
}

func TestScheduler_StopTwice(t *testing.T) {
	s := scheduler.New(&countingPruner{}, time.Minute, 0)
	s.Start()
	s.Stop()
	s.Stop()
}
