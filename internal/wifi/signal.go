package wifi

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tessro/unyo/internal/command"
	"github.com/tessro/unyo/internal/core"
)

// ParseSignal extracts the signal percentage of the active connection from
// terse nmcli output ("ACTIVE:SIGNAL" per line). ok is false for non-UTF-8
// output or when no line is marked active.
func ParseSignal(output []byte) (percent int, ok bool) {
	if !utf8.Valid(output) {
		return 0, false
	}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), ":")
		if len(parts) != 2 || parts[0] != "yes" {
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

// Poller queries the network manager for the active Wi-Fi signal.
type Poller struct {
	command string
	args    []string
	runner  command.Runner
	logger  *slog.Logger
}

// NewPoller creates a poller running command with args. A nil runner runs
// the command as a child process.
func NewPoller(name string, args []string, runner command.Runner, logger *slog.Logger) *Poller {
	if runner == nil {
		runner = command.Exec{}
	}
	return &Poller{
		command: name,
		args:    args,
		runner:  runner,
		logger:  logger,
	}
}

// Poll runs the query once. ok is false when the command failed, produced
// unusable output, or reported no active connection; callers keep the
// previous level in that case.
func (p *Poller) Poll(ctx context.Context) (core.SignalLevel, bool) {
	out, err := p.runner.Run(ctx, p.command, p.args...)
	if err != nil {
		p.logger.Debug("wifi: query failed", "command", p.command, "error", err)
		return core.NoSignal, false
	}

	percent, ok := ParseSignal(out)
	if !ok {
		p.logger.Debug("wifi: no active connection in output", "bytes", len(out))
		return core.NoSignal, false
	}
	return core.ClassifySignal(percent), true
}
