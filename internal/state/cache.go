package state

import (
	"time"

	"github.com/tessro/unyo/internal/core"
)

// Cache is the process-wide set of slots shared between the pollers and the
// render loop. Each slot has exactly one writer.
type Cache struct {
	bluetooth Slot[core.PlaybackSnapshot]
	signal    Slot[core.SignalLevel]
	weather   Slot[core.WeatherSnapshot]
	power     Slot[core.PowerStatus]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Bluetooth returns the current playback snapshot, if any.
func (c *Cache) Bluetooth() (core.PlaybackSnapshot, bool) {
	return c.bluetooth.Load()
}

// Signal returns the current signal level. NoSignal until the first
// successful poll.
func (c *Cache) Signal() core.SignalLevel {
	level, _ := c.signal.Load()
	return level
}

// Weather returns the current forecast, if any.
func (c *Cache) Weather() (core.WeatherSnapshot, bool) {
	return c.weather.Load()
}

// Power returns the current supply status, if any.
func (c *Cache) Power() (core.PowerStatus, bool) {
	return c.power.Load()
}

// PublishBluetooth records a decoded player, or its absence.
func (c *Cache) PublishBluetooth(s core.PlaybackSnapshot, ok bool) {
	if !ok {
		c.bluetooth.Clear()
		return
	}
	c.bluetooth.Store(s)
}

// PublishSignal records a new signal classification.
func (c *Cache) PublishSignal(level core.SignalLevel) {
	c.signal.Store(level)
}

// PublishWeather records a complete forecast.
func (c *Cache) PublishWeather(w core.WeatherSnapshot) {
	c.weather.Store(w)
}

// PublishPower records a new supply status.
func (c *Cache) PublishPower(p core.PowerStatus) {
	c.power.Store(p)
}

// Ages reports when each slot was last written. Zero means never.
type Ages struct {
	Bluetooth time.Time
	Signal    time.Time
	Weather   time.Time
	Power     time.Time
}

// Ages returns the last write time of every slot.
func (c *Cache) Ages() Ages {
	return Ages{
		Bluetooth: c.bluetooth.UpdatedAt(),
		Signal:    c.signal.UpdatedAt(),
		Weather:   c.weather.UpdatedAt(),
		Power:     c.power.UpdatedAt(),
	}
}
