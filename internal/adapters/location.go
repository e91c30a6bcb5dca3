// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/openmetro/tile-engine/internal/cache"
	"github.com/openmetro/tile-engine/internal/fetch"
	"github.com/openmetro/tile-engine/internal/normalize"
	"github.com/openmetro/tile-engine/pkg/types"
)

// locationCacheKey is the windowed-cache key for the resolved location.
// Resolution goes through the cache so weather and any future coordinate
// consumer share one lookup per window instead of re-resolving per request.
const locationCacheKey = "location"

// LocationAdapter resolves the deployment's coordinate through a GeoIP
// provider chain and reverse-geocodes it to place names.
type LocationAdapter struct {
	Client *http.Client
	Config types.LocationConfig
	Cache  *cache.Windowed
	Log    *zap.Logger
}

// Resolve returns a usable Location for the current window. Provider
// failures walk the chain; exhausting it falls back to the configured
// default coordinate. Reverse-geocode failure yields "Unknown" place names
// but never blocks the coordinate.
func (a *LocationAdapter) Resolve(ctx context.Context, window int64) types.Location {
	v, err := a.Cache.GetOrCompute(locationCacheKey, window, func() (any, error) {
		return a.resolve(ctx), nil
	})
	if err != nil {
		// resolve never errors; this branch is unreachable but keeps the
		// method total if the cache contract ever changes.
		return a.defaultLocation()
	}
	return v.(types.Location)
}

func (a *LocationAdapter) resolve(ctx context.Context) types.Location {
	log := logger(a.Log)

	lat, lon := "", ""
	for _, provider := range a.Config.Providers {
		la, lo, err := a.lookupProvider(ctx, provider)
		if err != nil {
			log.Warn("geoip provider failed", zap.String("provider", provider), zap.Error(err))
			continue
		}
		lat, lon = la, lo
		break
	}
	if lat == "" || lon == "" {
		log.Warn("all geoip providers failed, using default coordinate")
		return a.reverseGeocode(ctx, a.Config.DefaultLatitude, a.Config.DefaultLongitude)
	}
	return a.reverseGeocode(ctx, lat, lon)
}

// coordinateFields lists the field spellings the chain's providers use.
// ip-api.com answers lat/lon; ipwho.is answers latitude/longitude.
var coordinateFields = [][2]string{
	{"lat", "lon"},
	{"latitude", "longitude"},
	{"lat", "lng"},
}

func (a *LocationAdapter) lookupProvider(ctx context.Context, providerURL string) (lat, lon string, err error) {
	body, err := fetch.Fetch(ctx, a.Client, providerURL, a.header())
	if err != nil {
		return "", "", err
	}
	obj, err := normalize.DecodeObject(body)
	if err != nil {
		return "", "", err
	}

	for _, pair := range coordinateFields {
		la, errLa := normalize.NumberField(obj, pair[0])
		lo, errLo := normalize.NumberField(obj, pair[1])
		if errLa == nil && errLo == nil {
			return formatCoord(la), formatCoord(lo), nil
		}
	}
	// ipinfo.io packs both coordinates into a single "loc" string.
	if loc, err := normalize.StringField(obj, "loc"); err == nil {
		if la, lo, ok := strings.Cut(loc, ","); ok && la != "" && lo != "" {
			return strings.TrimSpace(la), strings.TrimSpace(lo), nil
		}
	}
	return "", "", fmt.Errorf("provider %s: no coordinate fields in response", providerURL)
}

func (a *LocationAdapter) reverseGeocode(ctx context.Context, lat, lon string) types.Location {
	loc := types.Location{Latitude: lat, Longitude: lon, City: "Unknown", Region: "Unknown"}

	params := url.Values{
		"format":         {"json"},
		"lat":            {lat},
		"lon":            {lon},
		"zoom":           {"10"},
		"addressdetails": {"1"},
	}
	if a.Config.Email != "" {
		params.Set("email", a.Config.Email)
	}
	body, err := fetch.Fetch(ctx, a.Client, a.Config.ReverseURL+"?"+params.Encode(), a.header())
	if err != nil {
		logger(a.Log).Warn("reverse geocode failed", zap.Error(err))
		return loc
	}
	obj, err := normalize.DecodeObject(body)
	if err != nil {
		return loc
	}

	// Prefer city, then smaller and larger settlements in turn.
	for _, field := range []string{"city", "town", "village", "municipality", "county", "state", "country"} {
		if v, err := normalize.StringField(obj, "address", field); err == nil && v != "" {
			loc.City = v
			break
		}
	}
	for _, field := range []string{"state", "county", "region", "country"} {
		if v, err := normalize.StringField(obj, "address", field); err == nil && v != "" {
			loc.Region = v
			break
		}
	}
	return loc
}

func (a *LocationAdapter) defaultLocation() types.Location {
	return types.Location{
		Latitude:  a.Config.DefaultLatitude,
		Longitude: a.Config.DefaultLongitude,
		City:      "Unknown",
		Region:    "Unknown",
	}
}

func (a *LocationAdapter) header() http.Header {
	h := http.Header{}
	if a.Config.UserAgent != "" {
		h.Set("User-Agent", a.Config.UserAgent)
	}
	return h
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
