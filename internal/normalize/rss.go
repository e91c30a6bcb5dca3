// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize parses heterogeneous upstream feed bodies (RSS XML,
// JSON objects, CSV quote dumps) into the engine's normalized record shapes.
//
// Parse failures are policy, not exceptions: a malformed RSS body yields an
// empty item list (callers treat "parse failed" and "feed empty" the same),
// a polluted CSV row is skipped without invalidating the series, and only
// JSON shape mismatches surface as typed errors, because those mean the
// upstream contract changed rather than content being absent.
package normalize

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/openmetro/tile-engine/pkg/types"
)

// RSSOptions controls how much of a feed is normalized.
type RSSOptions struct {
	// MaxItems caps the number of <item> elements read (default 6).
	MaxItems int

	// ExtractImages enables the per-item image fallback chain.
	ExtractImages bool
}

const defaultMaxItems = 6

type rssDoc struct {
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title          string         `xml:"title"`
	Description    string         `xml:"description"`
	MediaContent   []mediaRef     `xml:"http://search.yahoo.com/mrss/ content"`
	MediaThumbnail []mediaRef     `xml:"http://search.yahoo.com/mrss/ thumbnail"`
	Enclosures     []mediaRef     `xml:"enclosure"`
	Image          rssInlineImage `xml:"image"`
	URL            string         `xml:"url"`
}

type mediaRef struct {
	URL string `xml:"url,attr"`
}

type rssInlineImage struct {
	URL  string `xml:"url"`
	Text string `xml:",chardata"`
}

// descImgPattern pulls the first <img src="..."> out of an HTML description
// body. Single or double quotes, any attribute order before src.
var descImgPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

// imageStrategy attempts one step of the image fallback chain, returning ""
// on no hit.
type imageStrategy func(rssItem) string

// imageChain is the ordered fallback chain for item artwork. Evaluation
// stops at the first non-empty result.
var imageChain = []imageStrategy{
	func(it rssItem) string {
		if len(it.MediaContent) > 0 {
			return it.MediaContent[0].URL
		}
		return ""
	},
	func(it rssItem) string {
		if len(it.MediaThumbnail) > 0 {
			return it.MediaThumbnail[0].URL
		}
		return ""
	},
	func(it rssItem) string {
		if len(it.Enclosures) > 0 {
			return it.Enclosures[0].URL
		}
		return ""
	},
	func(it rssItem) string {
		if it.Image.URL != "" {
			return it.Image.URL
		}
		return strings.TrimSpace(it.Image.Text)
	},
	func(it rssItem) string {
		u := strings.TrimSpace(it.URL)
		if strings.HasPrefix(u, "http") {
			return u
		}
		return ""
	},
	func(it rssItem) string {
		if m := descImgPattern.FindStringSubmatch(it.Description); m != nil {
			return m[1]
		}
		return ""
	},
}

// ParseRSS extracts the first MaxItems channel items from an RSS body.
//
// A missing title becomes "No Title". Malformed XML yields an empty slice,
// never an error: the caller renders "no headlines" either way.
func ParseRSS(body []byte, opts RSSOptions) []types.NormalizedItem {
	max := opts.MaxItems
	if max <= 0 {
		max = defaultMaxItems
	}

	var doc rssDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil
	}

	items := doc.Channel.Items
	if len(items) > max {
		items = items[:max]
	}

	out := make([]types.NormalizedItem, 0, len(items))
	for _, it := range items {
		n := types.NormalizedItem{Title: strings.TrimSpace(it.Title)}
		if n.Title == "" {
			n.Title = "No Title"
		}
		if opts.ExtractImages {
			n.ImageURL = extractImage(it)
		}
		out = append(out, n)
	}
	return out
}

func extractImage(it rssItem) string {
	for _, try := range imageChain {
		if url := try(it); url != "" {
			return url
		}
	}
	return ""
}
