package command

import (
	"context"
	"errors"
	"testing"
	"time"

	uerrors "github.com/tessro/unyo/internal/errors"
)

func TestExecMissingBinary(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), "unyo-definitely-not-installed")
	if !errors.Is(err, uerrors.ErrCommand) {
		t.Errorf("Run() error = %v, want ErrCommand", err)
	}
}

func TestExecTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Exec{}.Run(ctx, "sleep", "5")
	if !errors.Is(err, uerrors.ErrTimeout) {
		t.Errorf("Run() error = %v, want ErrTimeout", err)
	}
}

func TestExecTimeoutWithOrphanedPipe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Exec{}.Run(ctx, "sh", "-c", "sleep 5 & sleep 5")
	if !errors.Is(err, uerrors.ErrTimeout) {
		t.Errorf("Run() error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Run() returned after %v, want about waitDelay past the deadline", elapsed)
	}
}

func TestRunnerFunc(t *testing.T) {
	var r Runner = RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(name), nil
	})
	out, err := r.Run(context.Background(), "echo")
	if err != nil || string(out) != "echo" {
		t.Errorf("Run() = %q, %v", out, err)
	}
}
