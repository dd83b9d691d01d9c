package weather

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tessro/unyo/internal/core"
	uerrors "github.com/tessro/unyo/internal/errors"
)

type payload struct {
	Current map[string]any `json:"current"`
	Hourly  map[string]any `json:"hourly"`
	Daily   map[string]any `json:"daily"`
}

func series(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func intSeries(n int, f func(i int) int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func samplePayload() payload {
	return payload{
		Current: map[string]any{
			"temperature_2m": 12.3,
			"rain":           0.4,
			"cloud_cover":    87,
			"is_day":         1,
		},
		Hourly: map[string]any{
			"time":           []string{},
			"temperature_2m": series(24, func(i int) float64 { return 10 + float64(i)*0.1 }),
			"rain":           series(24, func(i int) float64 { return float64(i%3) * 0.25 }),
			"cloud_cover":    intSeries(24, func(i int) int64 { return int64(i * 4) }),
		},
		Daily: map[string]any{
			"temperature_2m_mean": series(7, func(i int) float64 { return 8.5 + float64(i) }),
			"temperature_2m_max":  series(7, func(i int) float64 { return 14 }),
			"uv_index_max":        series(7, func(i int) float64 { return float64(i) * 0.7 }),
			"rain_sum":            series(7, func(i int) float64 { return 1.1 * float64(i) }),
			"sunshine_duration":   series(7, func(i int) float64 { return 3600.5 * float64(i) }),
		},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return b
}

func TestDecode(t *testing.T) {
	now := time.Date(2026, 3, 14, 22, 15, 0, 0, time.Local)
	snap, err := Decode(mustJSON(t, samplePayload()), "Vienna", now)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if snap.City != "Vienna" {
		t.Errorf("City = %q, want Vienna", snap.City)
	}
	if !snap.IsDay {
		t.Error("IsDay = false, want true")
	}
	want := core.CurrentConditions{Temperature: 12.3, Rain: 0.4, CloudCover: 87}
	if snap.Current != want {
		t.Errorf("Current = %+v, want %+v", snap.Current, want)
	}
	if snap.Hourly[0].Label != "22:00" || snap.Hourly[2].Label != "0:00" {
		t.Errorf("labels = %q, %q, want 22:00, 0:00", snap.Hourly[0].Label, snap.Hourly[2].Label)
	}
	if !snap.FetchedAt.Equal(now) {
		t.Errorf("FetchedAt = %v, want %v", snap.FetchedAt, now)
	}
}

// Re-encoding the decoded series must reproduce the payload values exactly.
func TestDecodeRoundTrip(t *testing.T) {
	p := samplePayload()
	snap, err := Decode(mustJSON(t, p), "", time.Now())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	var temps, rains []float64
	var clouds []int64
	for _, h := range snap.Hourly {
		temps = append(temps, h.Temperature)
		rains = append(rains, h.Rain)
		clouds = append(clouds, h.CloudCover)
	}
	var means, uvs, sums, suns []float64
	for _, d := range snap.Daily {
		means = append(means, d.MeanTemperature)
		uvs = append(uvs, d.UVIndexMax)
		sums = append(sums, d.RainSum)
		suns = append(suns, d.SunshineDuration)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"hourly.temperature_2m", temps, p.Hourly["temperature_2m"]},
		{"hourly.rain", rains, p.Hourly["rain"]},
		{"hourly.cloud_cover", clouds, p.Hourly["cloud_cover"]},
		{"daily.temperature_2m_mean", means, p.Daily["temperature_2m_mean"]},
		{"daily.uv_index_max", uvs, p.Daily["uv_index_max"]},
		{"daily.rain_sum", sums, p.Daily["rain_sum"]},
		{"daily.sunshine_duration", suns, p.Daily["sunshine_duration"]},
	}
	for _, c := range checks {
		got, want := string(mustJSON(t, c.got)), string(mustJSON(t, c.want))
		if got != want {
			t.Errorf("%s round trip = %s, want %s", c.name, got, want)
		}
	}
	if len(temps) != 24 || len(means) != 7 {
		t.Errorf("lengths = %d, %d, want 24, 7", len(temps), len(means))
	}
}

func TestDecodeLongerSeries(t *testing.T) {
	p := samplePayload()
	p.Hourly["temperature_2m"] = series(48, func(i int) float64 { return float64(i) })
	p.Daily["rain_sum"] = series(16, func(i int) float64 { return 2 })

	snap, err := Decode(mustJSON(t, p), "", time.Now())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if snap.Hourly[23].Temperature != 23 {
		t.Errorf("Hourly[23].Temperature = %v, want 23", snap.Hourly[23].Temperature)
	}
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *payload)
		want   string
	}{
		{"missing current", func(p *payload) { p.Current = nil }, "current"},
		{"missing is_day", func(p *payload) { delete(p.Current, "is_day") }, "current"},
		{"missing hourly", func(p *payload) { p.Hourly = nil }, "hourly"},
		{"short hourly", func(p *payload) {
			p.Hourly["rain"] = series(23, func(int) float64 { return 0 })
		}, "hourly.rain"},
		{"missing daily field", func(p *payload) { delete(p.Daily, "uv_index_max") }, "daily.uv_index_max"},
		{"short daily", func(p *payload) {
			p.Daily["sunshine_duration"] = series(6, func(int) float64 { return 0 })
		}, "daily.sunshine_duration"},
		{"null value", func(p *payload) {
			v := make([]any, 7)
			for i := range v {
				v[i] = 1.0
			}
			v[3] = nil
			p.Daily["rain_sum"] = v
		}, "daily.rain_sum[3]"},
		{"fractional cloud cover", func(p *payload) {
			p.Hourly["cloud_cover"] = series(24, func(int) float64 { return 12.5 })
		}, "parse forecast"},
		{"string temperature", func(p *payload) { p.Current["temperature_2m"] = "warm" }, "parse forecast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePayload()
			tt.mutate(&p)
			_, err := Decode(mustJSON(t, p), "", time.Now())
			if err == nil {
				t.Fatal("Decode() error = nil, want format error")
			}
			var fe *FetchError
			if !errors.As(err, &fe) || fe.Kind != KindFormat {
				t.Fatalf("Decode() error = %v, want KindFormat FetchError", err)
			}
			if !errors.Is(err, uerrors.ErrFormat) {
				t.Errorf("errors.Is(err, ErrFormat) = false")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode() error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte("<html>busy</html>"), "", time.Now())
	if !errors.Is(err, uerrors.ErrFormat) {
		t.Errorf("Decode() error = %v, want ErrFormat", err)
	}
}

func TestHourLabel(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 59, 0, 0, time.UTC)
	tests := []struct {
		offset int
		want   string
	}{
		{0, "9:00"},
		{1, "10:00"},
		{15, "0:00"},
		{23, "8:00"},
	}
	for _, tt := range tests {
		if got := HourLabel(now, tt.offset); got != tt.want {
			t.Errorf("HourLabel(+%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}
