package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/unyo/internal/core"
	"github.com/tessro/unyo/internal/daemon"
	"github.com/tessro/unyo/internal/state"
)

var statusTimeout time.Duration

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Poll every source once and print the result",
	Long: `Run each enabled poller a single time and print what the kiosk
would display. Sources that fail are listed below the table; the others
are still shown.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout", 30*time.Second, "overall time limit")
	rootCmd.AddCommand(statusCmd)
}

// statusResult is the JSON shape of `unyo status`.
type statusResult struct {
	Playback *core.PlaybackSnapshot `json:"playback"`
	Signal   core.SignalLevel       `json:"signal"`
	Weather  *core.WeatherSnapshot  `json:"weather,omitempty"`
	Power    *core.PowerStatus      `json:"power,omitempty"`
	Updated  statusAges             `json:"updated"`
	Errors   []string               `json:"errors,omitempty"`
}

type statusAges struct {
	Bluetooth *time.Time `json:"bluetooth,omitempty"`
	Signal    *time.Time `json:"signal,omitempty"`
	Weather   *time.Time `json:"weather,omitempty"`
	Power     *time.Time `json:"power,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
	defer cancel()

	d := daemon.New(cfg, state.NewCache(), commandLogger())
	defer d.Close()

	result := d.PollOnce(ctx)
	status := collectStatus(result.Data, result.Errors)

	out := cmd.OutOrStdout()
	if JSONOutput() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	renderStatus(out, status, time.Now())
	return nil
}

func collectStatus(cache *state.Cache, errs []error) statusResult {
	var r statusResult

	if snap, ok := cache.Bluetooth(); ok {
		r.Playback = &snap
	}
	r.Signal = cache.Signal()
	if w, ok := cache.Weather(); ok {
		r.Weather = &w
	}
	if p, ok := cache.Power(); ok {
		r.Power = &p
	}

	ages := cache.Ages()
	r.Updated = statusAges{
		Bluetooth: timePtr(ages.Bluetooth),
		Signal:    timePtr(ages.Signal),
		Weather:   timePtr(ages.Weather),
		Power:     timePtr(ages.Power),
	}

	for _, err := range errs {
		r.Errors = append(r.Errors, err.Error())
	}
	return r
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func ageOf(t *time.Time, now time.Time) string {
	if t == nil {
		return FormatAge(time.Time{}, now)
	}
	return FormatAge(*t, now)
}

func renderStatus(w io.Writer, r statusResult, now time.Time) {
	table := NewTableWriter(w, "SOURCE", "STATUS", "UPDATED")

	table.Row("bluetooth", playbackSummary(r.Playback), ageOf(r.Updated.Bluetooth, now))
	table.Row("wifi", r.Signal.String(), ageOf(r.Updated.Signal, now))
	table.Row("weather", weatherSummary(r.Weather), ageOf(r.Updated.Weather, now))
	if r.Power != nil || r.Updated.Power != nil {
		table.Row("power", powerSummary(r.Power), ageOf(r.Updated.Power, now))
	}
	table.Flush()

	if len(r.Errors) > 0 {
		fmt.Fprintln(w)
		for _, e := range r.Errors {
			fmt.Fprintf(w, "%s %s\n", StatusIcon(false), e)
		}
	}
}

func playbackSummary(s *core.PlaybackSnapshot) string {
	if s == nil {
		return "no player"
	}
	pos := int(s.Position / 1000)
	dur := int(s.Duration / 1000)
	return fmt.Sprintf("%s %s - %s %s %s/%s",
		s.State,
		TruncateString(s.Title, 30),
		TruncateString(s.Artist, 20),
		FormatProgress(pos, dur, 10),
		FormatDuration(pos),
		FormatDuration(dur),
	)
}

func weatherSummary(w *core.WeatherSnapshot) string {
	if w == nil {
		return "no forecast"
	}
	return fmt.Sprintf("%s %s %.1f°C, rain %.1fmm, cloud %d%%",
		w.City,
		w.CurrentCondition().Icon(),
		w.Current.Temperature,
		w.Current.Rain,
		w.Current.CloudCover,
	)
}

func powerSummary(p *core.PowerStatus) string {
	if p == nil {
		return "unknown"
	}
	if p.Undervoltage {
		return fmt.Sprintf("%s undervoltage (%s)", StatusIcon(true), p.Raw)
	}
	return "ok"
}
