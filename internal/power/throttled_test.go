package power

import (
	"context"
	"errors"
	"testing"

	"github.com/tessro/unyo/internal/command"
	uerrors "github.com/tessro/unyo/internal/errors"
	"github.com/tessro/unyo/internal/logging"
)

func TestParseThrottled(t *testing.T) {
	tests := []struct {
		output    string
		wantUnder bool
		wantErr   bool
	}{
		{"throttled=0x0\n", false, false},
		{"throttled=0x50005\n", true, false},
		{"throttled=0x50000", true, false},
		{"VCHI initialization failed", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			got, err := ParseThrottled([]byte(tt.output))
			if tt.wantErr {
				if !errors.Is(err, uerrors.ErrFormat) {
					t.Errorf("ParseThrottled() error = %v, want ErrFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseThrottled() error = %v", err)
			}
			if got.Undervoltage != tt.wantUnder {
				t.Errorf("Undervoltage = %v, want %v", got.Undervoltage, tt.wantUnder)
			}
		})
	}
}

func TestPoll(t *testing.T) {
	var gotArgs []string
	runner := command.RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte("throttled=0x0\n"), nil
	})

	status, err := NewPoller("vcgencmd", runner, logging.Discard()).Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if status.Undervoltage || status.Raw != "throttled=0x0" {
		t.Errorf("Poll() = %+v", status)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "get_throttled" {
		t.Errorf("args = %v, want [get_throttled]", gotArgs)
	}
}

func TestPollCommandFailure(t *testing.T) {
	runner := command.RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, uerrors.ErrCommand
	})
	if _, err := NewPoller("vcgencmd", runner, logging.Discard()).Poll(context.Background()); !errors.Is(err, uerrors.ErrCommand) {
		t.Errorf("Poll() error = %v, want ErrCommand", err)
	}
}
