// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "github.com/openmetro/tile-engine/pkg/types"

// fallbackText is the static headline each domain shows when no live
// content could be produced.
var fallbackText = map[types.TileKind]string{
	types.TileWeather: "Weather Unavailable",
	types.TileNews:    "No news available at the moment.",
	types.TileFinance: "No market data available.",
	types.TileSports:  "No sports news available.",
	types.TileFood:    "No recipe available right now.",
	types.TileHealth:  "Stay active and drink water.",
}

// Fallback returns kind's statically defined, always-valid document. It is
// the terminal escape of every render path: no upstream failure produces an
// invalid or empty response.
func Fallback(kind types.TileKind) types.TileDocument {
	text, ok := fallbackText[kind]
	if !ok {
		text = "Content Unavailable"
	}
	xml := `<tile><visual version="2" lang="en-US">` +
		`<binding template="TileSquare150x150Text04" fallback="TileSquareText04"><text id="1">` + Escape(text) + `</text></binding>` +
		`<binding template="TileWide310x150Text04" fallback="TileWideText04"><text id="1">` + Escape(text) + `</text></binding>` +
		`<binding template="TileSquare310x310Text09" fallback="TileSquare310x310Text09"><text id="1">` + Escape(text) + `</text><text id="2"></text></binding>` +
		`</visual></tile>`
	return types.TileDocument{XML: xml, ContentType: types.XMLContentType}
}
