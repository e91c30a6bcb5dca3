// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openmetro/tile-engine/internal/adapters"
	"github.com/openmetro/tile-engine/internal/cache"
	"github.com/openmetro/tile-engine/internal/render"
	"github.com/openmetro/tile-engine/internal/tile"
	"github.com/openmetro/tile-engine/pkg/types"
)

const defaultUserAgent = "tile-engine/0.1"

// defaultConfig is the reference deployment: NWS forecasts, Stooq quotes,
// BBC and ESPN feeds, New York as the coordinate of last resort.
func defaultConfig() types.EngineConfig {
	return types.EngineConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: defaultUserAgent,
		},
		Server: types.ServerConfig{Listen: ":8099"},
		Cache:  types.CacheConfig{RefreshInterval: 5 * time.Minute},
		Weather: types.WeatherConfig{
			PointsURL: "https://api.weather.gov/points",
		},
		Finance: types.FinanceConfig{
			Symbol:      "MSFT.US",
			HistoryDays: 5,
		},
		Location: types.LocationConfig{
			Providers:        []string{"http://ip-api.com/json", "https://ipwho.is/"},
			ReverseURL:       "https://nominatim.openstreetmap.org/reverse",
			DefaultLatitude:  "40.7128",
			DefaultLongitude: "-74.0060",
		},
		Food: types.FoodConfig{
			RandomMealURL: "https://www.themealdb.com/api/json/v1/1/random.php",
		},
		Feeds: map[string]types.FeedConfig{
			"news": {
				URL:           "https://feeds.bbci.co.uk/news/world/rss.xml",
				SourceLabel:   "From BBC News",
				MaxItems:      6,
				ExtractImages: true,
				ImageProxy:    true,
			},
			"sports": {
				URL:           "https://www.espn.com/espn/rss/news",
				SourceLabel:   "From ESPN",
				MaxItems:      6,
				ExtractImages: true,
				ImageProxy:    true,
			},
		},
	}
}

// loadConfig layers viper settings over the defaults. Unset keys keep their
// default; finance URLs are derived from the symbol when not given outright.
func loadConfig() types.EngineConfig {
	cfg := defaultConfig()

	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.UserAgent = v
	}
	if v := viper.GetString("server.listen"); v != "" {
		cfg.Server.Listen = v
	}
	if v := viper.GetDuration("cache.refresh_interval"); v > 0 {
		cfg.Cache.RefreshInterval = v
	}
	if v := viper.GetString("render.template_dir"); v != "" {
		cfg.Render.TemplateDir = v
	}
	if v := viper.GetString("weather.points_url"); v != "" {
		cfg.Weather.PointsURL = v
	}
	if v := viper.GetString("finance.symbol"); v != "" {
		cfg.Finance.Symbol = v
	}
	if v := viper.GetString("finance.quote_url"); v != "" {
		cfg.Finance.QuoteURL = v
	}
	if v := viper.GetString("finance.history_url"); v != "" {
		cfg.Finance.HistoryURL = v
	}
	if v := viper.GetInt("finance.history_days"); v > 0 {
		cfg.Finance.HistoryDays = v
	}
	if v := viper.GetStringSlice("location.providers"); len(v) > 0 {
		cfg.Location.Providers = v
	}
	if v := viper.GetString("location.reverse_url"); v != "" {
		cfg.Location.ReverseURL = v
	}
	if v := viper.GetString("location.default_latitude"); v != "" {
		cfg.Location.DefaultLatitude = v
	}
	if v := viper.GetString("location.default_longitude"); v != "" {
		cfg.Location.DefaultLongitude = v
	}
	if v := viper.GetString("food.random_meal_url"); v != "" {
		cfg.Food.RandomMealURL = v
	}
	for name, feed := range cfg.Feeds {
		prefix := "feeds." + name + "."
		if v := viper.GetString(prefix + "url"); v != "" {
			feed.URL = v
		}
		if v := viper.GetString(prefix + "source_label"); v != "" {
			feed.SourceLabel = v
		}
		if v := viper.GetInt(prefix + "max_items"); v > 0 {
			feed.MaxItems = v
		}
		if v := viper.GetString(prefix + "placeholder_image"); v != "" {
			feed.PlaceholderImage = v
		}
		cfg.Feeds[name] = feed
	}

	// The per-component HTTP settings inherit the top-level ones.
	cfg.Weather.HTTPConfig = cfg.HTTPConfig
	cfg.Finance.HTTPConfig = cfg.HTTPConfig
	cfg.Location.HTTPConfig = cfg.HTTPConfig
	cfg.Food.HTTPConfig = cfg.HTTPConfig

	if cfg.Finance.QuoteURL == "" {
		s := strings.ToLower(cfg.Finance.Symbol)
		cfg.Finance.QuoteURL = "https://stooq.com/q/l/?s=" + s + "&f=sd2t2ohlcv&h&e=csv"
	}
	if cfg.Finance.HistoryURL == "" {
		s := strings.ToLower(cfg.Finance.Symbol)
		cfg.Finance.HistoryURL = "https://stooq.com/q/d/l/?s=" + s + "&i=d"
	}

	// Optional credentials extend the location chain and identify us to the
	// geocoder; the engine runs fully without them.
	if tok := loadedSecrets.Get("ipinfo-token", ""); tok != "" {
		cfg.Location.Providers = append(cfg.Location.Providers, "https://ipinfo.io/json?token="+tok)
	}
	cfg.Location.Email = loadedSecrets.Get("geocoder-email", "")

	return cfg
}

// buildOrchestrator wires the adapters, cache, and renderer from cfg.
func buildOrchestrator(cfg types.EngineConfig, log *zap.Logger) *tile.Orchestrator {
	client := &http.Client{Timeout: cfg.Timeout}
	c := cache.New()

	location := &adapters.LocationAdapter{
		Client: client,
		Config: cfg.Location,
		Cache:  c,
		Log:    log,
	}

	feeds := make(map[types.TileKind]*adapters.FeedAdapter, len(cfg.Feeds))
	for name, feedCfg := range cfg.Feeds {
		kind, ok := types.ParseKind(name)
		if !ok {
			log.Warn("ignoring feed with unknown tile kind", zap.String("name", name))
			continue
		}
		feeds[kind] = &adapters.FeedAdapter{
			Client:    client,
			Config:    feedCfg,
			UserAgent: cfg.UserAgent,
			Log:       log,
		}
	}

	return &tile.Orchestrator{
		Weather: &adapters.WeatherAdapter{
			Client:   client,
			Config:   cfg.Weather,
			Location: location,
			Log:      log,
		},
		Finance: &adapters.FinanceAdapter{
			Client: client,
			Config: cfg.Finance,
			Cache:  c,
			Log:    log,
		},
		Food: &adapters.FoodAdapter{
			Client: client,
			Config: cfg.Food,
			Log:    log,
		},
		Feeds:    feeds,
		Renderer: render.New(cfg.Render),
		Cache:    c,
		Log:      log,
		Interval: cfg.Cache.RefreshInterval,
	}
}

// newLogger builds the process logger. Level comes from --verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}
