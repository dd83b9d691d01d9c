package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tessro/unyo/internal/bluetooth"
	"github.com/tessro/unyo/internal/command"
	"github.com/tessro/unyo/internal/config"
	"github.com/tessro/unyo/internal/core"
	uerrors "github.com/tessro/unyo/internal/errors"
	"github.com/tessro/unyo/internal/power"
	"github.com/tessro/unyo/internal/scheduler"
	"github.com/tessro/unyo/internal/state"
	"github.com/tessro/unyo/internal/weather"
	"github.com/tessro/unyo/internal/wifi"
)

// Task names.
const (
	TaskBluetooth = "bluetooth"
	TaskWiFi      = "wifi"
	TaskWeather   = "weather"
	TaskPower     = "power"
)

// Option customises how a Daemon reaches the outside world.
type Option func(*options)

type options struct {
	dial       bluetooth.Dialer
	runner     command.Runner
	httpClient *http.Client
}

// WithBusDialer replaces the system bus dialer.
func WithBusDialer(dial bluetooth.Dialer) Option {
	return func(o *options) { o.dial = dial }
}

// WithRunner replaces the external command runner.
func WithRunner(r command.Runner) Option {
	return func(o *options) { o.runner = r }
}

// WithHTTPClient replaces the HTTP client used for weather and geolocation.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// Daemon owns the pollers and publishes their results into a Cache.
type Daemon struct {
	cfg    *config.Config
	cache  *state.Cache
	logger *slog.Logger

	bluetooth *bluetooth.Client
	wifi      *wifi.Poller
	weather   *weather.Client
	locator   *weather.Locator
	power     *power.Poller

	sched *scheduler.Scheduler
}

// New wires the pollers enabled in cfg to cache.
func New(cfg *config.Config, cache *state.Cache, logger *slog.Logger, opts ...Option) *Daemon {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Daemon{cfg: cfg, cache: cache, logger: logger}

	if cfg.Bluetooth.IsEnabled() {
		d.bluetooth = bluetooth.NewClient(cfg.Bluetooth.Service, o.dial, logger)
	}
	if cfg.WiFi.IsEnabled() {
		d.wifi = wifi.NewPoller(cfg.WiFi.Command, cfg.WiFi.Args, o.runner, logger)
	}
	if cfg.Weather.IsEnabled() {
		var fixed *core.Location
		if cfg.Weather.HasFixedLocation() {
			fixed = &core.Location{
				Latitude:  cfg.Weather.Latitude,
				Longitude: cfg.Weather.Longitude,
				City:      cfg.Weather.City,
			}
		}
		d.locator = weather.NewLocator(cfg.Weather.GeoURL, fixed, o.httpClient, logger)
		d.weather = weather.NewClient(cfg.Weather.BaseURL, o.httpClient, logger)
	}
	if cfg.Power.Enabled {
		d.power = power.NewPoller(cfg.Power.Command, o.runner, logger)
	}

	return d
}

// Cache returns the cache the daemon publishes into.
func (d *Daemon) Cache() *state.Cache {
	return d.cache
}

// ResolveLocation looks up the weather location. It returns the zero
// Location and no error when weather is disabled.
func (d *Daemon) ResolveLocation(ctx context.Context) (core.Location, error) {
	if d.locator == nil {
		return core.Location{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Weather.TimeoutDuration())
	defer cancel()
	return d.locator.Resolve(ctx)
}

// Start resolves the location and launches one task per enabled source.
// A location failure is returned before any task starts.
func (d *Daemon) Start(ctx context.Context) error {
	loc, err := d.ResolveLocation(ctx)
	if err != nil {
		return err
	}

	d.sched = scheduler.New(d.logger, d.Tasks(loc)...)
	d.logger.Info("daemon: starting pollers", "tasks", d.sched.Tasks())
	d.sched.Start(ctx)
	return nil
}

// Wait blocks until every task has stopped, then releases the bus.
func (d *Daemon) Wait() error {
	var err error
	if d.sched != nil {
		err = d.sched.Wait()
	}
	d.Close()
	return err
}

// Close releases the bus connection.
func (d *Daemon) Close() {
	if d.bluetooth != nil {
		if err := d.bluetooth.Close(); err != nil {
			d.logger.Debug("daemon: closing bus", "error", err)
		}
	}
}

// Tasks builds the scheduler tasks for every enabled source.
func (d *Daemon) Tasks(loc core.Location) []scheduler.Task {
	var tasks []scheduler.Task

	if d.bluetooth != nil {
		tasks = append(tasks, scheduler.Task{
			Name:     TaskBluetooth,
			Interval: d.cfg.Bluetooth.IntervalDuration(),
			Timeout:  d.cfg.Bluetooth.TimeoutDuration(),
			Run:      d.pollBluetooth,
		})
	}
	if d.wifi != nil {
		tasks = append(tasks, scheduler.Task{
			Name:     TaskWiFi,
			Interval: d.cfg.WiFi.IntervalDuration(),
			Timeout:  d.cfg.WiFi.TimeoutDuration(),
			Run:      d.pollWiFi,
		})
	}
	if d.weather != nil {
		tasks = append(tasks, scheduler.Task{
			Name:     TaskWeather,
			Interval: d.cfg.Weather.IntervalDuration(),
			Timeout:  d.cfg.Weather.TimeoutDuration(),
			Run: func(ctx context.Context) error {
				return d.pollWeather(ctx, loc)
			},
		})
	}
	if d.power != nil {
		tasks = append(tasks, scheduler.Task{
			Name:     TaskPower,
			Interval: d.cfg.Power.IntervalDuration(),
			Timeout:  d.cfg.Power.TimeoutDuration(),
			Run:      d.pollPower,
		})
	}

	return tasks
}

// pollBluetooth leaves the slot alone on bus failure and publishes absence
// when the bus answered without a player.
func (d *Daemon) pollBluetooth(ctx context.Context) error {
	snap, found, err := d.bluetooth.Poll(ctx)
	if err != nil {
		return err
	}
	d.cache.PublishBluetooth(snap, found)
	return nil
}

func (d *Daemon) pollWiFi(ctx context.Context) error {
	level, ok := d.wifi.Poll(ctx)
	if ok {
		d.cache.PublishSignal(level)
	}
	return nil
}

func (d *Daemon) pollWeather(ctx context.Context, loc core.Location) error {
	snap, err := d.weather.FetchForecast(ctx, loc)
	if err != nil {
		return err
	}
	d.cache.PublishWeather(snap)
	return nil
}

func (d *Daemon) pollPower(ctx context.Context) error {
	status, err := d.power.Poll(ctx)
	if err != nil {
		return err
	}
	d.cache.PublishPower(status)
	return nil
}

// PollOnce runs every enabled source a single time, publishing into the
// cache as the scheduled tasks would. Failures are collected rather than
// returned so one broken source does not hide the others.
func (d *Daemon) PollOnce(ctx context.Context) *uerrors.PartialResult[*state.Cache] {
	result := &uerrors.PartialResult[*state.Cache]{Data: d.cache}

	loc, err := d.ResolveLocation(ctx)
	tasks := d.Tasks(loc)
	if err != nil {
		result.AddError(err)
		tasks = without(tasks, TaskWeather)
	}

	runner := scheduler.New(d.logger)
	for _, t := range tasks {
		if err := runner.RunOnce(ctx, t); err != nil {
			result.AddError(fmt.Errorf("%s: %w", t.Name, err))
		}
	}
	if d.wifi != nil && d.cache.Ages().Signal.IsZero() {
		result.AddError(fmt.Errorf("%s: no active connection reported", TaskWiFi))
	}
	return result
}

func without(tasks []scheduler.Task, name string) []scheduler.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.Name != name {
			out = append(out, t)
		}
	}
	return out
}
