// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openmetro/tile-engine/internal/cache"
	"github.com/openmetro/tile-engine/pkg/types"
)

func geoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestLocationResolve_FirstProviderWins(t *testing.T) {
	a := geoServer(t, 200, `{"lat": 40.71, "lon": -74.00, "city": "ignored"}`)
	defer a.Close()
	b := geoServer(t, 200, `{"latitude": 1.0, "longitude": 1.0}`)
	defer b.Close()
	rev := geoServer(t, 200, `{"address": {"city": "New York", "state": "New York"}}`)
	defer rev.Close()

	la := &LocationAdapter{
		Client: http.DefaultClient,
		Cache:  cache.New(),
		Config: types.LocationConfig{
			Providers:  []string{a.URL, b.URL},
			ReverseURL: rev.URL,
		},
	}
	loc := la.Resolve(context.Background(), 1)

	assert.Equal(t, "40.7100", loc.Latitude)
	assert.Equal(t, "-74.0000", loc.Longitude)
	assert.Equal(t, "New York", loc.City)
	assert.Equal(t, "New York", loc.Region)
}

func TestLocationResolve_ChainFallsThrough(t *testing.T) {
	dead := geoServer(t, 503, "")
	defer dead.Close()
	noCoords := geoServer(t, 200, `{"status": "fail"}`)
	defer noCoords.Close()
	alt := geoServer(t, 200, `{"latitude": 51.5072, "longitude": -0.1276}`)
	defer alt.Close()
	rev := geoServer(t, 200, `{"address": {"town": "London", "country": "United Kingdom"}}`)
	defer rev.Close()

	la := &LocationAdapter{
		Client: http.DefaultClient,
		Cache:  cache.New(),
		Config: types.LocationConfig{
			Providers:  []string{dead.URL, noCoords.URL, alt.URL},
			ReverseURL: rev.URL,
		},
	}
	loc := la.Resolve(context.Background(), 1)

	assert.Equal(t, "51.5072", loc.Latitude)
	assert.Equal(t, "London", loc.City)
	assert.Equal(t, "United Kingdom", loc.Region)
}

func TestLocationResolve_CombinedLocField(t *testing.T) {
	provider := geoServer(t, 200, `{"ip": "203.0.113.9", "loc": "48.8566,2.3522"}`)
	defer provider.Close()
	rev := geoServer(t, 200, `{"address": {"city": "Paris", "state": "Ile-de-France"}}`)
	defer rev.Close()

	la := &LocationAdapter{
		Client: http.DefaultClient,
		Cache:  cache.New(),
		Config: types.LocationConfig{
			Providers:  []string{provider.URL},
			ReverseURL: rev.URL,
		},
	}
	loc := la.Resolve(context.Background(), 1)

	assert.Equal(t, "48.8566", loc.Latitude)
	assert.Equal(t, "2.3522", loc.Longitude)
	assert.Equal(t, "Paris", loc.City)
}

func TestLocationResolve_AllProvidersFailUsesDefault(t *testing.T) {
	dead := geoServer(t, 500, "")
	defer dead.Close()
	rev := geoServer(t, 500, "")
	defer rev.Close()

	la := &LocationAdapter{
		Client: http.DefaultClient,
		Cache:  cache.New(),
		Config: types.LocationConfig{
			Providers:        []string{dead.URL},
			ReverseURL:       rev.URL,
			DefaultLatitude:  "40.7128",
			DefaultLongitude: "-74.0060",
		},
	}
	loc := la.Resolve(context.Background(), 1)

	assert.Equal(t, "40.7128", loc.Latitude)
	assert.Equal(t, "-74.0060", loc.Longitude)
	assert.Equal(t, "Unknown", loc.City, "reverse geocode failure yields placeholders, not an error")
	assert.Equal(t, "Unknown", loc.Region)
}

func TestLocationResolve_CachedPerWindow(t *testing.T) {
	var calls int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"lat": 40.71, "lon": -74.00}`))
	}))
	defer provider.Close()
	rev := geoServer(t, 200, `{"address": {"city": "New York"}}`)
	defer rev.Close()

	la := &LocationAdapter{
		Client: http.DefaultClient,
		Cache:  cache.New(),
		Config: types.LocationConfig{Providers: []string{provider.URL}, ReverseURL: rev.URL},
	}

	la.Resolve(context.Background(), 9)
	la.Resolve(context.Background(), 9)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "same window shares one lookup")

	la.Resolve(context.Background(), 10)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "new window re-resolves")
}
