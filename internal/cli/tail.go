package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/unyo/internal/config"
	"github.com/tessro/unyo/internal/daemon"
	"github.com/tessro/unyo/internal/state"
	"github.com/tessro/unyo/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
	tailInterval  time.Duration
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow Bluetooth playback changes in real-time",
	Long: `Poll the Bluetooth media player and print changes as they happen.

Events tracked:
  - Player connect/disconnect
  - Track changes (new song started)
  - Track completions (song finished)
  - Track skips (song skipped before completion)
  - Pause/Resume
  - Volume and shuffle changes

Template fields for --format: .Type .Emoji .Time .Title .Artist .State
.Volume .Shuffle .Position .Duration`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", 0, "poll interval (default: bluetooth.interval_ms)")

	rootCmd.AddCommand(tailCmd)
}

// bluetoothOnly returns a copy of c with every source except Bluetooth off.
func bluetoothOnly(c *config.Config, interval time.Duration) *config.Config {
	out := *c
	off := false
	out.WiFi.Enabled = &off
	out.Weather.Enabled = &off
	out.Power.Enabled = false
	on := true
	out.Bluetooth.Enabled = &on
	if interval > 0 {
		out.Bluetooth.Interval = int(interval / time.Millisecond)
	}
	return &out
}

func runTail(cmd *cobra.Command, args []string) error {
	tailCfg := bluetoothOnly(cfg, tailInterval)
	if _, err := tail.ParseTemplate(tailFormat); err != nil {
		return err
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji),
		tail.WithTimestamp(tailTimestamp),
		tail.WithTemplate(tailFormat),
	)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := state.NewCache()
	d := daemon.New(tailCfg, cache, commandLogger())
	if err := d.Start(ctx); err != nil {
		d.Close()
		return err
	}
	defer func() {
		stop()
		_ = d.Wait()
	}()

	watcher := tail.NewWatcher(cache, tailCfg.Bluetooth.IntervalDuration())

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	out := cmd.OutOrStdout()
	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			fmt.Fprintln(out, formatter.Format(event))

		case err := <-errCh:
			if err == context.Canceled {
				return nil
			}
			return err
		}
	}
}
