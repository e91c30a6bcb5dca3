// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// NormalizedItem is one entry of an upstream feed reduced to the fields the
// renderer can use. Immutable once constructed.
type NormalizedItem struct {
	// Title is the entry headline. Normalizers substitute "No Title" when
	// the upstream omits it, so Title is never empty.
	Title string

	// ImageURL is the resolved artwork URL, or "" when no image-bearing
	// element was found. The renderer substitutes a placeholder for "".
	ImageURL string

	// Extra carries domain-specific string fields (e.g. a feed source name)
	// that templates may interpolate.
	Extra map[string]string
}

// FeedResult is an ordered snapshot of a feed at one fetch. A fresh fetch
// yields a fresh FeedResult; existing results are never patched.
type FeedResult struct {
	Items     []NormalizedItem
	FetchedAt time.Time
}

// QuoteSnapshot holds one windowed observation of a stock quote.
//
// Price is nil when the quote fetch failed; History is empty when the history
// fetch failed. Either partial state is valid and renderable, since the two
// upstream calls succeed or fail independently.
type QuoteSnapshot struct {
	// Symbol is the quoted ticker (e.g. "MSFT.US").
	Symbol string

	// Price is the most recent close, or nil when no quote was available.
	Price *float64

	// Change is close minus open for the latest session. The upstream does
	// not expose a true previous close, so the day's open stands in for it;
	// rendered percentages say "vs open" for this reason.
	Change float64

	// History is the recent close series, oldest first. May be empty.
	History []float64

	FetchedAt time.Time
}

// Location is a resolved coordinate plus its reverse-geocoded place names.
// City and Region fall back to "Unknown" when reverse geocoding fails; the
// coordinate itself is always usable.
type Location struct {
	Latitude  string
	Longitude string
	City      string
	Region    string
}
