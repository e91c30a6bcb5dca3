// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Every upstream call is bounded
	// by it; a timed-out call is treated like any other fetch failure.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with upstream requests
	// (e.g. "tile-engine/0.1"). Some providers require a contactable UA.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig describes one RSS-backed tile feed (news, sports). The same
// adapter serves every feed; only this configuration differs per deployment.
type FeedConfig struct {
	// URL is the RSS feed address.
	URL string `json:"url" yaml:"url"`

	// SourceLabel is the attribution line templates show (e.g. "From BBC News").
	SourceLabel string `json:"source_label" yaml:"source_label"`

	// MaxItems caps how many feed entries are normalized (default 6).
	MaxItems int `json:"max_items" yaml:"max_items"`

	// ExtractImages enables the per-item image fallback chain.
	ExtractImages bool `json:"extract_images" yaml:"extract_images"`

	// ImageProxy, when true, rewrites extracted image URLs through the
	// weserv resizing proxy so the client receives tile-sized artwork.
	ImageProxy bool `json:"image_proxy" yaml:"image_proxy"`

	// PlaceholderImage is substituted when an item has no resolvable image.
	PlaceholderImage string `json:"placeholder_image" yaml:"placeholder_image"`
}

// WeatherConfig holds settings for the forecast adapter.
type WeatherConfig struct {
	HTTPConfig `yaml:",inline"`

	// PointsURL is the two-step forecast provider's point-lookup endpoint.
	// The forecast itself is fetched from the URL the point lookup returns,
	// not from a hardcoded address.
	PointsURL string `json:"points_url" yaml:"points_url"`
}

// FinanceConfig holds settings for the stock quote adapter.
type FinanceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Symbol is the ticker to quote (e.g. "MSFT.US").
	Symbol string `json:"symbol" yaml:"symbol"`

	// QuoteURL is the current-quote CSV endpoint.
	QuoteURL string `json:"quote_url" yaml:"quote_url"`

	// HistoryURL is the daily-history CSV endpoint.
	HistoryURL string `json:"history_url" yaml:"history_url"`

	// HistoryDays is how many trailing closes the sparkline uses (default 5).
	HistoryDays int `json:"history_days" yaml:"history_days"`
}

// LocationConfig holds settings for the geolocation provider chain.
type LocationConfig struct {
	HTTPConfig `yaml:",inline"`

	// Providers lists GeoIP lookup endpoints tried in order.
	Providers []string `json:"providers" yaml:"providers"`

	// ReverseURL is the reverse-geocoding endpoint.
	ReverseURL string `json:"reverse_url" yaml:"reverse_url"`

	// Email is sent with reverse-geocode requests when set. Public Nominatim
	// instances ask heavy users to identify themselves this way.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// DefaultLatitude and DefaultLongitude are used when every provider
	// fails. The reference deployment defaults to New York City.
	DefaultLatitude  string `json:"default_latitude" yaml:"default_latitude"`
	DefaultLongitude string `json:"default_longitude" yaml:"default_longitude"`
}

// FoodConfig holds settings for the recipe adapter.
type FoodConfig struct {
	HTTPConfig `yaml:",inline"`

	// RandomMealURL is the random-recipe JSON endpoint.
	RandomMealURL string `json:"random_meal_url" yaml:"random_meal_url"`
}

// CacheConfig holds settings for the windowed cache and content cycling.
type CacheConfig struct {
	// RefreshInterval is the length of one refresh window. Cache keys and
	// time-driven content cycling both derive from it (default 300s).
	RefreshInterval time.Duration `json:"refresh_interval" yaml:"refresh_interval"`
}

// ServerConfig holds settings for the HTTP front.
type ServerConfig struct {
	// Listen is the address the tile server binds (e.g. ":8099").
	Listen string `json:"listen" yaml:"listen"`
}

// RenderConfig holds settings for the template renderer.
type RenderConfig struct {
	// TemplateDir optionally overrides the embedded tile templates. Files
	// are looked up by name here first, then in the embedded set.
	TemplateDir string `json:"template_dir,omitempty" yaml:"template_dir,omitempty"`
}

// EngineConfig groups all component configurations for the tile engine.
type EngineConfig struct {
	HTTPConfig `yaml:",inline"`

	Server   ServerConfig   `json:"server" yaml:"server"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Render   RenderConfig   `json:"render" yaml:"render"`
	Weather  WeatherConfig  `json:"weather" yaml:"weather"`
	Finance  FinanceConfig  `json:"finance" yaml:"finance"`
	Location LocationConfig `json:"location" yaml:"location"`
	Food     FoodConfig     `json:"food" yaml:"food"`

	// Feeds maps a tile kind name ("news", "sports") to its RSS feed.
	Feeds map[string]FeedConfig `json:"feeds" yaml:"feeds"`
}
