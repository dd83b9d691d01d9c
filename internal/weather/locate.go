package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/tessro/unyo/internal/core"
	uerrors "github.com/tessro/unyo/internal/errors"
)

// GeoURL is the default IP geolocation endpoint.
const GeoURL = "http://ip-api.com/json/"

type geoResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	City    string   `json:"city"`
}

// Locator resolves the device location once and caches it.
type Locator struct {
	httpClient *http.Client
	geoURL     string
	fixed      *core.Location
	logger     *slog.Logger

	mu       sync.Mutex
	resolved *core.Location
}

// NewLocator creates a locator. When fixed is non-nil no lookup is made.
func NewLocator(geoURL string, fixed *core.Location, httpClient *http.Client, logger *slog.Logger) *Locator {
	if geoURL == "" {
		geoURL = GeoURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Locator{
		httpClient: httpClient,
		geoURL:     geoURL,
		fixed:      fixed,
		logger:     logger,
	}
}

// Resolve returns the device location. The first success is cached for the
// lifetime of the Locator. Errors wrap errors.ErrLocation.
func (l *Locator) Resolve(ctx context.Context) (core.Location, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved != nil {
		return *l.resolved, nil
	}
	if l.fixed != nil {
		loc := *l.fixed
		l.resolved = &loc
		return loc, nil
	}

	loc, err := l.lookup(ctx)
	if err != nil {
		return core.Location{}, fmt.Errorf("resolve location: %w: %v", uerrors.ErrLocation, err)
	}
	l.logger.Info("weather: resolved location", "city", loc.City, "lat", loc.Latitude, "lon", loc.Longitude)
	l.resolved = &loc
	return loc, nil
}

func (l *Locator) lookup(ctx context.Context) (core.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.geoURL, nil)
	if err != nil {
		return core.Location{}, err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return core.Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Location{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return core.Location{}, err
	}

	var geo geoResponse
	if err := json.Unmarshal(body, &geo); err != nil {
		return core.Location{}, fmt.Errorf("parse geolocation: %w", err)
	}
	if geo.Status != "" && geo.Status != "success" {
		return core.Location{}, fmt.Errorf("lookup %s: %s", geo.Status, geo.Message)
	}
	if geo.Lat == nil || geo.Lon == nil {
		return core.Location{}, fmt.Errorf("geolocation response missing coordinates")
	}

	return core.Location{Latitude: *geo.Lat, Longitude: *geo.Lon, City: geo.City}, nil
}
