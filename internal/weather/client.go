package weather

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tessro/unyo/internal/core"
)

// BaseURL is the public Open-Meteo API.
const BaseURL = "https://api.open-meteo.com"

const (
	dailyFields   = "sunshine_duration,temperature_2m_max,temperature_2m_min,uv_index_max,temperature_2m_mean,rain_sum"
	hourlyFields  = "temperature_2m,cloud_cover,rain"
	currentFields = "temperature_2m,rain,cloud_cover,is_day"

	// maxBody bounds the forecast payload read into memory.
	maxBody = 4 << 20
)

// Client fetches forecasts from an Open-Meteo compatible endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient creates a forecast client. Per-request deadlines come from the
// caller's context.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
		now:        time.Now,
	}
}

// ForecastURL builds the request URL for loc.
func (c *Client) ForecastURL(loc core.Location) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Set("daily", dailyFields)
	params.Set("hourly", hourlyFields)
	params.Set("current", currentFields)
	params.Set("timezone", "auto")
	params.Set("forecast_hours", strconv.Itoa(core.HourlyPoints))
	return c.baseURL + "/v1/forecast?" + params.Encode()
}

// FetchForecast issues one GET and decodes the result. Errors are
// *FetchError values.
func (c *Client) FetchForecast(ctx context.Context, loc core.Location) (core.WeatherSnapshot, error) {
	u := c.ForecastURL(loc)
	c.logger.Debug("weather: fetching forecast", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return core.WeatherSnapshot{}, networkError(fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.WeatherSnapshot{}, networkError(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.WeatherSnapshot{}, networkError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return core.WeatherSnapshot{}, networkError(fmt.Errorf("read response: %w", err))
	}

	return Decode(body, loc.City, c.now())
}
