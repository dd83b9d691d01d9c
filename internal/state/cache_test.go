package state

import (
	"sync"
	"testing"

	"github.com/tessro/unyo/internal/core"
)

func TestSlotLifecycle(t *testing.T) {
	var s Slot[int]

	if _, ok := s.Load(); ok {
		t.Fatal("Load() on new slot reported present")
	}
	if !s.UpdatedAt().IsZero() {
		t.Error("UpdatedAt() on new slot should be zero")
	}

	s.Store(7)
	v, ok := s.Load()
	if !ok || v != 7 {
		t.Errorf("Load() = %d, %v, want 7, true", v, ok)
	}
	if s.UpdatedAt().IsZero() {
		t.Error("UpdatedAt() should be set after Store")
	}

	s.Clear()
	if _, ok := s.Load(); ok {
		t.Error("Load() after Clear reported present")
	}
}

func TestCacheSignalDefaultsToNoSignal(t *testing.T) {
	c := NewCache()
	if got := c.Signal(); got != core.NoSignal {
		t.Errorf("Signal() = %v, want NoSignal", got)
	}
	c.PublishSignal(core.Good)
	if got := c.Signal(); got != core.Good {
		t.Errorf("Signal() = %v, want Good", got)
	}
}

func TestCachePublishBluetoothAbsence(t *testing.T) {
	c := NewCache()
	c.PublishBluetooth(core.PlaybackSnapshot{Title: "Song"}, true)
	if s, ok := c.Bluetooth(); !ok || s.Title != "Song" {
		t.Fatalf("Bluetooth() = %+v, %v", s, ok)
	}

	c.PublishBluetooth(core.PlaybackSnapshot{}, false)
	if _, ok := c.Bluetooth(); ok {
		t.Error("Bluetooth() should be absent after publishing no player")
	}
}

func TestCacheWeatherReplacedWholesale(t *testing.T) {
	c := NewCache()
	first := core.WeatherSnapshot{City: "Berlin"}
	first.Hourly[3].Temperature = 12.5
	c.PublishWeather(first)

	second := core.WeatherSnapshot{City: "Berlin"}
	second.Daily[0].RainSum = 1.5
	c.PublishWeather(second)

	got, ok := c.Weather()
	if !ok {
		t.Fatal("Weather() absent")
	}
	if got.Hourly[3].Temperature != 0 {
		t.Errorf("Hourly[3] = %v, want 0 (no merge with previous)", got.Hourly[3].Temperature)
	}
	if got.Daily[0].RainSum != 1.5 {
		t.Errorf("Daily[0].RainSum = %v, want 1.5", got.Daily[0].RainSum)
	}
}

// A reader must observe either the previous or the next snapshot, never a mix.
func TestSlotNoTornReads(t *testing.T) {
	var s Slot[core.WeatherSnapshot]

	mk := func(v float64) core.WeatherSnapshot {
		var w core.WeatherSnapshot
		w.Current.Temperature = v
		for i := range w.Hourly {
			w.Hourly[i].Temperature = v
		}
		for i := range w.Daily {
			w.Daily[i].MeanTemperature = v
		}
		return w
	}
	s.Store(mk(0))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 2000; i++ {
			s.Store(mk(float64(i)))
		}
		close(stop)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				w, _ := s.Load()
				want := w.Current.Temperature
				for i := range w.Hourly {
					if w.Hourly[i].Temperature != want {
						t.Errorf("torn read: hourly[%d] = %v, current = %v", i, w.Hourly[i].Temperature, want)
						return
					}
				}
				for i := range w.Daily {
					if w.Daily[i].MeanTemperature != want {
						t.Errorf("torn read: daily[%d] = %v, current = %v", i, w.Daily[i].MeanTemperature, want)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
}
