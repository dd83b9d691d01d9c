package power

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tessro/unyo/internal/command"
	"github.com/tessro/unyo/internal/core"
	uerrors "github.com/tessro/unyo/internal/errors"
)

const healthy = "throttled=0x0"

// ParseThrottled interprets `vcgencmd get_throttled` output. Anything other
// than a zero throttle mask counts as undervoltage.
func ParseThrottled(output []byte) (core.PowerStatus, error) {
	raw := strings.TrimSpace(string(output))
	if !strings.HasPrefix(raw, "throttled=") {
		return core.PowerStatus{}, fmt.Errorf("unexpected get_throttled output %q: %w", raw, uerrors.ErrFormat)
	}
	return core.PowerStatus{
		Undervoltage: raw != healthy,
		Raw:          raw,
	}, nil
}

// Poller reads the firmware throttle flags.
type Poller struct {
	command string
	runner  command.Runner
	logger  *slog.Logger
}

// NewPoller creates a poller for the given vcgencmd binary.
func NewPoller(name string, runner command.Runner, logger *slog.Logger) *Poller {
	if runner == nil {
		runner = command.Exec{}
	}
	return &Poller{command: name, runner: runner, logger: logger}
}

// Poll runs the query once. An error means the slot should be left as is.
func (p *Poller) Poll(ctx context.Context) (core.PowerStatus, error) {
	out, err := p.runner.Run(ctx, p.command, "get_throttled")
	if err != nil {
		return core.PowerStatus{}, err
	}
	status, err := ParseThrottled(out)
	if err != nil {
		return core.PowerStatus{}, err
	}
	if status.Undervoltage {
		p.logger.Warn("power: undervoltage detected", "flags", status.Raw)
	}
	return status, nil
}
