package core

import "time"

const (
	// HourlyPoints is the number of hourly forecast entries in a snapshot.
	HourlyPoints = 24
	// DailyPoints is the number of daily forecast entries in a snapshot.
	DailyPoints = 7
)

// Location is the device position resolved at startup.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
}

// CurrentConditions holds the observation for "now".
type CurrentConditions struct {
	Temperature float64 `json:"temperature"`
	Rain        float64 `json:"rain"`
	CloudCover  int64   `json:"cloud_cover"`
}

// HourlyPoint is one entry of the hourly forecast.
type HourlyPoint struct {
	Temperature float64 `json:"temperature"`
	Rain        float64 `json:"rain"`
	CloudCover  int64   `json:"cloud_cover"`
	Label       string  `json:"label"`
}

// DailyPoint is one entry of the daily forecast.
type DailyPoint struct {
	MeanTemperature  float64 `json:"mean_temperature"`
	UVIndexMax       float64 `json:"uv_index_max"`
	RainSum          float64 `json:"rain_sum"`
	SunshineDuration float64 `json:"sunshine_duration"`
}

// WeatherSnapshot is one complete, decoded forecast.
type WeatherSnapshot struct {
	City      string                    `json:"city"`
	IsDay     bool                      `json:"is_day"`
	Current   CurrentConditions         `json:"current"`
	Hourly    [HourlyPoints]HourlyPoint `json:"hourly"`
	Daily     [DailyPoints]DailyPoint   `json:"daily"`
	FetchedAt time.Time                 `json:"fetched_at"`
}

// Condition is a coarse weather pictogram.
type Condition int

const (
	ConditionCloud Condition = iota
	ConditionSun
	ConditionMoon
	ConditionRain
)

// sunnySeconds is the daily sunshine above which a day counts as sunny.
const sunnySeconds = 3600.0

// ConditionInput carries the optional fields ClassifyCondition considers.
type ConditionInput struct {
	Rain       float64
	CloudCover *int64
	Sunshine   *float64
	IsDay      *bool
}

// ClassifyCondition picks a pictogram for a forecast point.
func ClassifyCondition(in ConditionInput) Condition {
	if in.IsDay != nil && !*in.IsDay {
		return ConditionMoon
	}
	if in.Rain > 0 {
		return ConditionRain
	}
	if in.CloudCover != nil && *in.CloudCover > 50 {
		return ConditionCloud
	}
	if in.Sunshine != nil && *in.Sunshine > sunnySeconds {
		return ConditionSun
	}
	return ConditionCloud
}

// Icon returns a glyph for the condition.
func (c Condition) Icon() string {
	switch c {
	case ConditionSun:
		return "☀"
	case ConditionMoon:
		return "☾"
	case ConditionRain:
		return "☂"
	default:
		return "☁"
	}
}

// CurrentCondition classifies the current observation.
func (w WeatherSnapshot) CurrentCondition() Condition {
	cc := w.Current.CloudCover
	day := w.IsDay
	return ClassifyCondition(ConditionInput{Rain: w.Current.Rain, CloudCover: &cc, IsDay: &day})
}

// Condition classifies an hourly point.
func (h HourlyPoint) Condition() Condition {
	cc := h.CloudCover
	return ClassifyCondition(ConditionInput{Rain: h.Rain, CloudCover: &cc})
}

// Condition classifies a daily point.
func (d DailyPoint) Condition() Condition {
	sun := d.SunshineDuration
	return ClassifyCondition(ConditionInput{Rain: d.RainSum, Sunshine: &sun})
}
