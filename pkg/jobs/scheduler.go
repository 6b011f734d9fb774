package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is executed when a scheduled entry fires.
type Task func(context.Context)

// Scheduler runs one-shot deferred tasks keyed by ID. Entries can be
// cancelled before they fire; scheduling under an existing ID replaces the
// pending entry.
type Scheduler struct {
	name   string
	logger *zap.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewScheduler builds a scheduler.
func NewScheduler(name string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		name:   name,
		logger: logger,
		timers: make(map[string]*time.Timer),
	}
}

// Start arms the scheduler. Safe to call once.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
	s.logger.Sugar().Infow("scheduler started", "scheduler", s.name)
}

// Stop cancels all pending entries and waits for in-flight tasks.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	for id, timer := range s.timers {
		if timer.Stop() {
			s.wg.Done()
		}
		delete(s.timers, id)
	}
	s.started = false
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Sugar().Infow("scheduler stopped", "scheduler", s.name)
}

// After schedules task to run once after delay. A pending entry with the
// same ID is replaced.
func (s *Scheduler) After(id string, delay time.Duration, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return fmt.Errorf("scheduler %s not started", s.name)
	}
	if prev, ok := s.timers[id]; ok {
		if prev.Stop() {
			s.wg.Done()
		}
		delete(s.timers, id)
	}

	ctx := s.ctx
	s.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		defer s.wg.Done()

		// A replacement may have re-armed this ID between the timer firing
		// and the callback taking the lock; only drop our own entry.
		s.mu.Lock()
		if current, ok := s.timers[id]; ok && current == timer {
			delete(s.timers, id)
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		default:
		}
		task(ctx)
	})
	s.timers[id] = timer
	return nil
}

// Cancel drops a pending entry. Returns false when the entry already fired
// or never existed.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	if timer.Stop() {
		s.wg.Done()
		return true
	}
	return false
}

// Pending reports the number of armed entries.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
