package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tessro/unyo/internal/daemon"
	"github.com/tessro/unyo/internal/logging"
	"github.com/tessro/unyo/internal/state"
	"github.com/tessro/unyo/internal/tui"
	"github.com/tessro/unyo/internal/tui/styles"
	"github.com/tessro/unyo/internal/wizard"
)

var runHeadless bool

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"kiosk", "ui"},
	Short:   "Start the pollers and the kiosk display",
	Long: `Start every enabled poller and draw the kiosk display.

Each source refreshes on its own interval:
  bluetooth  media player state over D-Bus
  wifi       signal strength from nmcli
  weather    Open-Meteo forecast for the configured or detected location
  power      undervoltage flag from vcgencmd (when enabled)

The location is resolved once at startup; if it cannot be determined
the command exits.

Logs go to log.file (default ~/.local/state/unyo/unyo.log) while the
display owns the terminal. With --headless, or when stdout is not a
terminal, only the pollers run and logs go to stderr.

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help`,
	RunE: runKiosk,
}

func init() {
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "run the pollers without drawing the display")
	rootCmd.AddCommand(runCmd)
}

func runKiosk(cmd *cobra.Command, args []string) error {
	headless := runHeadless || !wizard.IsTerminal()

	logger, closeLog, err := logging.Setup(cfg.Log, !headless)
	if err != nil {
		return err
	}
	defer closeLog()

	styles.ApplyTheme(cfg.Display.Theme)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := state.NewCache()
	d := daemon.New(cfg, cache, logger)
	if err := d.Start(ctx); err != nil {
		d.Close()
		return err
	}

	if headless {
		logger.Info("kiosk: running headless")
		<-ctx.Done()
	} else {
		app := tui.NewApp(cache, cfg.Display.FrameDuration(), cfg.Bluetooth.ResolveDeviceName())
		err = tui.Run(ctx, app)
	}

	stop()
	if werr := d.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
		err = errors.Join(err, werr)
	}
	logger.Info("kiosk: stopped")
	return err
}
