// Package scheduler runs the periodic background tasks. Each task gets its
// own ticker goroutine; the tasks share state only through the mutex-guarded
// store and the settings database. Tasks are best-effort: a panic is logged
// and the ticker keeps going, so a failing tick can never take down the host.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one periodic job. InitialDelay, when positive, schedules a single
// extra run that soon after start, before the first full interval elapses.
type Task struct {
	Name         string
	Interval     time.Duration
	InitialDelay time.Duration
	Run          func(ctx context.Context)
}

// Scheduler owns the task goroutines. There is no per-task control: when
// settings change, the caller stops the scheduler wholesale and starts a
// fresh one with the new intervals.
type Scheduler struct {
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a stopped scheduler.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger}
}

// Start launches all tasks. Tasks with a non-positive interval are skipped.
// Calling Start on a running scheduler stops it first.
func (s *Scheduler) Start(ctx context.Context, tasks []Task) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, task := range tasks {
		if task.Interval <= 0 {
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, task)
		s.logger.Info("scheduled task started", "task", task.Name, "interval", task.Interval)
	}
}

// Stop cancels all tasks and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	defer s.wg.Done()

	if task.InitialDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(task.InitialDelay):
			s.runOnce(ctx, task)
		}
	}

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, task)
		}
	}
}

// runOnce executes a single tick, containing panics.
func (s *Scheduler) runOnce(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled task panicked", "task", task.Name, "panic", r)
		}
	}()
	task.Run(ctx)
}
