package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tessro/unyo/internal/logging"
)

func TestRunsImmediatelyAndRepeats(t *testing.T) {
	var runs atomic.Int32
	s := New(logging.Discard(), Task{
		Name:     "counter",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s.Start(ctx)
	if err := s.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if n := runs.Load(); n < 3 {
		t.Errorf("task ran %d times, want at least 3", n)
	}
}

func TestFailingTaskKeepsRunning(t *testing.T) {
	var runs atomic.Int32
	s := New(logging.Discard(), Task{
		Name:     "flaky",
		Interval: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			if runs.Add(1)%2 == 0 {
				panic("decoder exploded")
			}
			return errors.New("transport down")
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	s.Start(ctx)
	_ = s.Wait()

	if n := runs.Load(); n < 3 {
		t.Errorf("task ran %d times after failures, want at least 3", n)
	}
}

func TestTasksAreIndependent(t *testing.T) {
	var fast atomic.Int32
	release := make(chan struct{})

	s := New(logging.Discard(),
		Task{
			Name:     "stuck",
			Interval: time.Millisecond,
			Run: func(ctx context.Context) error {
				<-release
				return nil
			},
		},
		Task{
			Name:     "fast",
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) error {
				fast.Add(1)
				return nil
			},
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()
	close(release)
	_ = s.Wait()

	if n := fast.Load(); n < 3 {
		t.Errorf("fast task ran %d times while another task hung, want at least 3", n)
	}
}

func TestNoOverlapWithinTask(t *testing.T) {
	var active, maxActive atomic.Int32
	s := New(logging.Discard(), Task{
		Name:     "slow",
		Interval: time.Millisecond,
		Run: func(ctx context.Context) error {
			n := active.Add(1)
			if n > maxActive.Load() {
				maxActive.Store(n)
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.Start(ctx)
	_ = s.Wait()

	if m := maxActive.Load(); m != 1 {
		t.Errorf("max concurrent cycles = %d, want 1", m)
	}
}

func TestRunOnceTimeout(t *testing.T) {
	s := New(logging.Discard())
	err := s.RunOnce(context.Background(), Task{
		Name:    "hang",
		Timeout: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("RunOnce() error = %v, want DeadlineExceeded", err)
	}
}

func TestRunOnceRecoversPanic(t *testing.T) {
	s := New(logging.Discard())
	err := s.RunOnce(context.Background(), Task{
		Name: "boom",
		Run:  func(ctx context.Context) error { panic("nil map") },
	})
	if err == nil {
		t.Error("RunOnce() error = nil after panic")
	}
}

func TestNewSkipsNilRun(t *testing.T) {
	s := New(logging.Discard(), Task{Name: "a", Run: func(context.Context) error { return nil }}, Task{Name: "b"})
	names := s.Tasks()
	if len(names) != 1 || names[0] != "a" {
		t.Errorf("Tasks() = %v, want [a]", names)
	}
}

func TestWaitWithoutStart(t *testing.T) {
	if err := New(logging.Discard()).Wait(); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}
