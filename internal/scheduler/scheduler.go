package scheduler

import (
	"context"
	"sync"
	"time"

	"hovertrans/backend/internal/logger"
)

// Pruner drops tabs that have been idle for longer than ttl.
type Pruner interface {
	PruneStale(ctx context.Context, ttl time.Duration) int
}

type Scheduler struct {
	pruner     Pruner
	ttl        time.Duration
	interval   time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the current sweep
	mu         sync.Mutex         // protects cancelFunc
}

// New creates a scheduler that sweeps every interval. A non-positive interval
// defaults to half the ttl.
func New(pruner Pruner, ttl, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = ttl / 2
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		pruner:   pruner,
		ttl:      ttl,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "prune", "resource", "tab", "result", "ok", "interval_ms", s.interval.Milliseconds(), "ttl_ms", s.ttl.Milliseconds())
}

// Stop cancels a running sweep and waits for the loop to exit. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "prune", "resource", "tab", "result", "ok")
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.prune()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	removed := s.pruner.PruneStale(ctx, s.ttl)
	if ctx.Err() != nil {
		logger.Warn("tab sweep cancelled", "module", "scheduler", "action", "prune", "resource", "tab", "result", "cancelled")
		return
	}
	logger.Debug("tab sweep completed", "module", "scheduler", "action", "prune", "resource", "tab", "result", "ok", "removed", removed)
}
