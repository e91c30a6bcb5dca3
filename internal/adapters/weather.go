// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/openmetro/tile-engine/internal/fetch"
	"github.com/openmetro/tile-engine/internal/normalize"
	"github.com/openmetro/tile-engine/pkg/types"
)

// LocationResolver yields the coordinate the forecast is fetched for.
type LocationResolver interface {
	Resolve(ctx context.Context, window int64) types.Location
}

// WeatherReport is the weather adapter's renderable result. When Status is
// StatusUnavailable only Location is meaningful.
type WeatherReport struct {
	Status   Status
	Location types.Location

	// Now is the current forecast period.
	Temperature   float64
	Unit          string
	ShortForecast string
	PeriodName    string
	DetailedNow   string

	// Tonight is the first upcoming period whose name mentions night.
	// TonightName is empty when the forecast had no such period.
	TonightName     string
	TonightForecast string
}

// WeatherAdapter composes a location lookup with the provider's two-step
// point-then-forecast indirection. The forecast URL comes from the point
// lookup's response, not from configuration, because the provider issues a
// canonical redirect-style URL per coordinate.
type WeatherAdapter struct {
	Client   *http.Client
	Config   types.WeatherConfig
	Location LocationResolver
	Log      *zap.Logger
}

// Get returns the current report. Any upstream failure yields a report with
// StatusUnavailable; the caller renders the weather fallback document.
func (a *WeatherAdapter) Get(ctx context.Context, window int64) WeatherReport {
	log := logger(a.Log)
	loc := a.Location.Resolve(ctx, window)
	report := WeatherReport{Status: StatusUnavailable, Location: loc}

	pointsURL := fmt.Sprintf("%s/%s,%s", strings.TrimRight(a.Config.PointsURL, "/"), loc.Latitude, loc.Longitude)
	body, err := fetch.Fetch(ctx, a.Client, pointsURL, a.header())
	if err != nil {
		log.Warn("weather point lookup failed", zap.Error(err))
		return report
	}
	points, err := normalize.DecodeObject(body)
	if err != nil {
		log.Warn("weather point response unparsable", zap.Error(err))
		return report
	}
	forecastURL, err := normalize.StringField(points, "properties", "forecast")
	if err != nil {
		log.Warn("weather point response missing forecast URL", zap.Error(err))
		return report
	}

	body, err = fetch.Fetch(ctx, a.Client, forecastURL, a.header())
	if err != nil {
		log.Warn("forecast fetch failed", zap.Error(err))
		return report
	}
	forecast, err := normalize.DecodeObject(body)
	if err != nil {
		log.Warn("forecast response unparsable", zap.Error(err))
		return report
	}

	periods := forecastPeriods(forecast)
	if len(periods) == 0 {
		log.Warn("forecast response has no periods")
		return report
	}

	now, ok := periods[0].(map[string]any)
	if !ok {
		return report
	}
	temp, err := normalize.NumberField(now, "temperature")
	if err != nil {
		log.Warn("forecast period missing temperature", zap.Error(err))
		return report
	}

	report.Status = StatusLive
	report.Temperature = temp
	report.Unit, _ = normalize.StringField(now, "temperatureUnit")
	report.ShortForecast, _ = normalize.StringField(now, "shortForecast")
	report.PeriodName, _ = normalize.StringField(now, "name")
	report.DetailedNow, _ = normalize.StringField(now, "detailedForecast")

	for _, p := range periods[1:] {
		period, ok := p.(map[string]any)
		if !ok {
			continue
		}
		name, err := normalize.StringField(period, "name")
		if err != nil || !strings.Contains(strings.ToLower(name), "night") {
			continue
		}
		report.TonightName = name
		report.TonightForecast, _ = normalize.StringField(period, "shortForecast")
		break
	}

	return report
}

// forecastPeriods accepts both upstream shapes: periods nested under
// properties, and periods at the top level.
func forecastPeriods(forecast map[string]any) []any {
	if periods, err := normalize.SliceField(forecast, "properties", "periods"); err == nil {
		return periods
	}
	if periods, err := normalize.SliceField(forecast, "periods"); err == nil {
		return periods
	}
	return nil
}

func (a *WeatherAdapter) header() http.Header {
	h := http.Header{}
	if a.Config.UserAgent != "" {
		h.Set("User-Agent", a.Config.UserAgent)
	}
	return h
}
