// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/openmetro/tile-engine/internal/adapters"
	"github.com/openmetro/tile-engine/pkg/types"
)

// Placeholder artwork served when a record carries no image. An empty image
// src is rendering-fatal for the client, so a substitute is mandatory.
const (
	genericPlaceholder = "https://placehold.co/310x310/444444/FFFFFF/png?text=Tile"
	foodPlaceholder    = "https://placehold.co/310x310/A85E32/FFFFFF/png?text=Recipe"
	noChartPlaceholder = "https://placehold.co/310x310/006400/FFFFFF/png?text=No+Chart"
)

// quickchartBase builds sparkline images for the finance tile's large
// binding. Declared as a var for tests.
var quickchartBase = "https://quickchart.io/chart"

// FormatTemperature renders a temperature as an integer, rounded half up.
func FormatTemperature(v float64) string {
	return fmt.Sprintf("%d", int(math.Floor(v+0.5)))
}

// FormatPrice renders a price with two decimals.
func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatChange renders a signed change with two decimals; non-negative
// values carry an explicit plus.
func FormatChange(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatPercent renders change relative to base as a signed percentage.
func FormatPercent(change, base float64) string {
	if base == 0 {
		return "n/a"
	}
	return FormatChange(change/base*100) + "%"
}

// WeatherVars maps a weather report onto the weather template.
func WeatherVars(report adapters.WeatherReport) map[string]string {
	temp := FormatTemperature(report.Temperature) + "°" + report.Unit

	line1 := report.DetailedNow
	if line1 == "" {
		line1 = report.ShortForecast
	}
	line1 = report.PeriodName + ": " + line1

	line2 := ""
	if report.TonightName != "" {
		line2 = report.TonightName + ": " + report.TonightForecast
	}

	return map[string]string{
		"city":        report.Location.City,
		"square_text": temp + " " + report.ShortForecast,
		"wide_text":   fmt.Sprintf("Forecast: %s, %s, currently %s.", report.PeriodName, report.ShortForecast, temp),
		"large_title": report.Location.City + " Weather",
		"large_line1": line1,
		"large_line2": line2,
	}
}

// FeedVars maps one selected feed item onto the news/sports template.
func FeedVars(item types.NormalizedItem, cfg types.FeedConfig) map[string]string {
	image := item.ImageURL
	if image == "" {
		image = cfg.PlaceholderImage
	}
	if image == "" {
		image = genericPlaceholder
	}
	return map[string]string{
		"headline": item.Title,
		"image":    image,
		"source":   cfg.SourceLabel,
	}
}

// FinanceVars maps a quote snapshot onto the finance template. The caller
// guarantees snap.Price is set; a nil price is the "no data" branch and
// renders the fallback document instead.
func FinanceVars(snap types.QuoteSnapshot) map[string]string {
	open := *snap.Price - snap.Change

	chart := noChartPlaceholder
	if len(snap.History) >= 2 {
		chart = sparklineURL(snap.History)
	}

	return map[string]string{
		"symbol":  displaySymbol(snap.Symbol),
		"price":   FormatPrice(*snap.Price),
		"change":  FormatChange(snap.Change),
		"percent": FormatPercent(snap.Change, open),
		"chart":   chart,
	}
}

// FoodVars maps a recipe onto the food template.
func FoodVars(item types.NormalizedItem) map[string]string {
	image := item.ImageURL
	if image == "" {
		image = foodPlaceholder
	}
	return map[string]string{
		"meal":  item.Title,
		"image": image,
	}
}

// HealthVars maps a tip onto the health template.
func HealthVars(tip string) map[string]string {
	return map[string]string{"tip": tip}
}

// displaySymbol strips the exchange suffix for display ("MSFT.US" → "MSFT").
func displaySymbol(symbol string) string {
	if i := strings.LastIndex(symbol, "."); i > 0 {
		return symbol[:i]
	}
	return symbol
}

// sparklineURL builds a quickchart.io sparkline of the close series. Green
// when the latest close is at or above the previous one, red otherwise.
func sparklineURL(history []float64) string {
	color := "green"
	if history[len(history)-1] < history[len(history)-2] {
		color = "red"
	}

	config := map[string]any{
		"type": "sparkline",
		"data": map[string]any{
			"datasets": []any{map[string]any{
				"data":        history,
				"borderColor": color,
				"borderWidth": 5,
				"fill":        false,
			}},
		},
		"options": map[string]any{
			"elements": map[string]any{
				"line":  map[string]any{"tension": 0.3},
				"point": map[string]any{"radius": 0},
			},
		},
	}
	encoded, _ := json.Marshal(config)
	return quickchartBase + "?c=" + url.QueryEscape(string(encoded)) +
		"&backgroundColor=transparent&width=248&height=200"
}
