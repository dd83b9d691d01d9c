package weather

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tessro/unyo/internal/core"
)

// forecastResponse mirrors the subset of the Open-Meteo payload in use.
// Pointers distinguish a missing or null value from zero.
type forecastResponse struct {
	Current *struct {
		Temperature *float64 `json:"temperature_2m"`
		Rain        *float64 `json:"rain"`
		CloudCover  *int64   `json:"cloud_cover"`
		IsDay       *int64   `json:"is_day"`
	} `json:"current"`
	Hourly *struct {
		Temperature []*float64 `json:"temperature_2m"`
		Rain        []*float64 `json:"rain"`
		CloudCover  []*int64   `json:"cloud_cover"`
	} `json:"hourly"`
	Daily *struct {
		MeanTemperature  []*float64 `json:"temperature_2m_mean"`
		UVIndexMax       []*float64 `json:"uv_index_max"`
		RainSum          []*float64 `json:"rain_sum"`
		SunshineDuration []*float64 `json:"sunshine_duration"`
	} `json:"daily"`
}

// HourLabel formats the local hour i hours after now as "H:00".
func HourLabel(now time.Time, i int) string {
	return fmt.Sprintf("%d:00", now.Add(time.Duration(i)*time.Hour).Hour())
}

// Decode parses a forecast payload. Every required field must be present and
// well-typed; nothing is returned on partial data. Series are read by
// position and labelled relative to now.
func Decode(body []byte, city string, now time.Time) (core.WeatherSnapshot, error) {
	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.WeatherSnapshot{}, formatError("parse forecast: %w", err)
	}

	snap := core.WeatherSnapshot{City: city, FetchedAt: now}

	c := resp.Current
	if c == nil {
		return core.WeatherSnapshot{}, formatError("missing current")
	}
	if c.Temperature == nil || c.Rain == nil || c.CloudCover == nil || c.IsDay == nil {
		return core.WeatherSnapshot{}, formatError("incomplete current conditions")
	}
	snap.IsDay = *c.IsDay == 1
	snap.Current = core.CurrentConditions{
		Temperature: *c.Temperature,
		Rain:        *c.Rain,
		CloudCover:  *c.CloudCover,
	}

	h := resp.Hourly
	if h == nil {
		return core.WeatherSnapshot{}, formatError("missing hourly")
	}
	for i := 0; i < core.HourlyPoints; i++ {
		temp, err := at(h.Temperature, i, "hourly.temperature_2m")
		if err != nil {
			return core.WeatherSnapshot{}, err
		}
		rain, err := at(h.Rain, i, "hourly.rain")
		if err != nil {
			return core.WeatherSnapshot{}, err
		}
		cloud, err := at(h.CloudCover, i, "hourly.cloud_cover")
		if err != nil {
			return core.WeatherSnapshot{}, err
		}
		snap.Hourly[i] = core.HourlyPoint{
			Temperature: temp,
			Rain:        rain,
			CloudCover:  cloud,
			Label:       HourLabel(now, i),
		}
	}

	d := resp.Daily
	if d == nil {
		return core.WeatherSnapshot{}, formatError("missing daily")
	}
	for i := 0; i < core.DailyPoints; i++ {
		mean, err := at(d.MeanTemperature, i, "daily.temperature_2m_mean")
		if err != nil {
			return core.WeatherSnapshot{}, err
		}
		uv, err := at(d.UVIndexMax, i, "daily.uv_index_max")
		if err != nil {
			return core.WeatherSnapshot{}, err
		}
		rain, err := at(d.RainSum, i, "daily.rain_sum")
		if err != nil {
			return core.WeatherSnapshot{}, err
		}
		sun, err := at(d.SunshineDuration, i, "daily.sunshine_duration")
		if err != nil {
			return core.WeatherSnapshot{}, err
		}
		snap.Daily[i] = core.DailyPoint{
			MeanTemperature:  mean,
			UVIndexMax:       uv,
			RainSum:          rain,
			SunshineDuration: sun,
		}
	}

	return snap, nil
}

func at[T any](series []*T, i int, field string) (T, error) {
	var zero T
	if i >= len(series) {
		return zero, formatError("%s: want at least %d values, got %d", field, i+1, len(series))
	}
	if series[i] == nil {
		return zero, formatError("%s[%d]: null", field, i)
	}
	return *series[i], nil
}
