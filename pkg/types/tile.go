// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the tile-engine pipeline:
// tile requests and documents, normalized feed records, and the configuration
// structs consumed by the adapters, renderer, and server.
package types

// TileKind identifies which glanceable tile a request targets.
type TileKind string

const (
	TileWeather TileKind = "weather"
	TileNews    TileKind = "news"
	TileFinance TileKind = "finance"
	TileSports  TileKind = "sports"
	TileFood    TileKind = "food"
	TileHealth  TileKind = "health"
)

// Kinds lists every tile kind the engine can render, in a stable order.
var Kinds = []TileKind{TileWeather, TileNews, TileFinance, TileSports, TileFood, TileHealth}

// ParseKind returns the TileKind matching s, or false if s names no kind.
func ParseKind(s string) (TileKind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// TileRequest is the resolved form of an intercepted tile URL: which tile to
// produce and, when the URL carried a cycling segment, which item to show.
// A nil Index means the item is chosen by the current refresh window.
type TileRequest struct {
	Kind  TileKind
	Index *int
}

// TileDocument is the terminal artifact: a complete tile XML body and the
// content type to serve it with. A TileDocument is always well-formed, even
// when every upstream failed; the renderer substitutes the domain's fallback
// document rather than ever producing an empty or invalid body.
type TileDocument struct {
	XML         string
	ContentType string
}

// XMLContentType is the content type for all tile documents.
const XMLContentType = "application/xml; charset=utf-8"
