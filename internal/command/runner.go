package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	uerrors "github.com/tessro/unyo/internal/errors"
)

// Runner executes an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}

// waitDelay bounds how long Run waits for output pipes after the child is
// killed. A grandchild holding stdout open would otherwise stall Wait.
const waitDelay = 500 * time.Millisecond

// Exec runs commands as child processes. The child is killed when ctx is done.
type Exec struct{}

// Run starts name with args and waits for it to exit.
func (Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w: %v", name, uerrors.ErrTimeout, ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w: %v", name, uerrors.ErrCommand, err)
		}
		return nil, fmt.Errorf("%s: %w: %v: %s", name, uerrors.ErrCommand, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
