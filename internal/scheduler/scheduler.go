package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is one periodic poller. Run performs a single poll-decode-publish
// cycle and must honour ctx cancellation.
type Task struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs a fixed set of tasks, each on its own goroutine and cadence.
type Scheduler struct {
	logger *slog.Logger
	tasks  []Task

	group *errgroup.Group
}

// New creates a scheduler for tasks. Tasks with a nil Run are skipped.
func New(logger *slog.Logger, tasks ...Task) *Scheduler {
	s := &Scheduler{logger: logger}
	for _, t := range tasks {
		if t.Run == nil {
			continue
		}
		s.tasks = append(s.tasks, t)
	}
	return s
}

// Tasks returns the names of the scheduled tasks.
func (s *Scheduler) Tasks() []string {
	names := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		names[i] = t.Name
	}
	return names
}

// Start launches every task. Each task runs one cycle immediately, then
// sleeps Interval after the cycle completes, until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range s.tasks {
		g.Go(func() error {
			s.loop(gctx, t)
			return nil
		})
	}
	s.group = g
}

// Wait blocks until every task has stopped.
func (s *Scheduler) Wait() error {
	if s.group == nil {
		return nil
	}
	return s.group.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	s.logger.Debug("scheduler: task started", "task", t.Name, "interval", t.Interval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("scheduler: task stopped", "task", t.Name)
			return
		case <-timer.C:
		}

		s.RunOnce(ctx, t)
		timer.Reset(t.Interval)
	}
}

// RunOnce executes a single cycle of t with its timeout applied. A panic in
// Run is recovered and reported as an error so the loop keeps going.
func (s *Scheduler) RunOnce(ctx context.Context, t Task) (err error) {
	cycleCtx := ctx
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		cycleCtx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", t.Name, r)
			s.logger.Error("scheduler: task panicked", "task", t.Name, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	start := time.Now()
	if err = t.Run(cycleCtx); err != nil {
		s.logger.Warn("scheduler: cycle failed", "task", t.Name, "error", err, "elapsed", time.Since(start))
		return err
	}
	s.logger.Debug("scheduler: cycle complete", "task", t.Name, "elapsed", time.Since(start))
	return nil
}
