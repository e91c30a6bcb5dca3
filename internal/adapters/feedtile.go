// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/openmetro/tile-engine/internal/fetch"
	"github.com/openmetro/tile-engine/internal/normalize"
	"github.com/openmetro/tile-engine/pkg/types"
)

// weservBase is the image resizing proxy. Declared as a var so tests can
// assert the rewrite without the real host.
var weservBase = "https://images.weserv.nl/"

// FeedAdapter serves any RSS-backed tile (news, sports). One implementation,
// parameterized per deployment by FeedConfig. Feeds are polled fresh on every
// request; the fetch timeout is the only backpressure on them.
type FeedAdapter struct {
	Client    *http.Client
	Config    types.FeedConfig
	UserAgent string
	Log       *zap.Logger
	Now       func() time.Time
}

// Get fetches and normalizes the feed. It is total: fetch or parse failure
// yields an empty FeedResult, which the caller renders as "no headlines".
func (a *FeedAdapter) Get(ctx context.Context) types.FeedResult {
	result := types.FeedResult{FetchedAt: a.now()}

	h := http.Header{}
	if a.UserAgent != "" {
		h.Set("User-Agent", a.UserAgent)
	}
	body, err := fetch.Fetch(ctx, a.Client, a.Config.URL, h)
	if err != nil {
		logger(a.Log).Warn("feed fetch failed", zap.String("url", a.Config.URL), zap.Error(err))
		return result
	}

	items := normalize.ParseRSS(body, normalize.RSSOptions{
		MaxItems:      a.Config.MaxItems,
		ExtractImages: a.Config.ExtractImages,
	})
	if a.Config.ImageProxy {
		for i := range items {
			if items[i].ImageURL != "" {
				items[i].ImageURL = proxyImage(items[i].ImageURL)
			}
		}
	}

	result.Items = items
	return result
}

// proxyImage rewrites an image URL through the weserv resizer so the client
// receives tile-sized artwork instead of full-resolution press photos.
func proxyImage(raw string) string {
	params := url.Values{
		"url": {raw},
		"w":   {"400"},
		"h":   {"400"},
	}
	return weservBase + "?" + params.Encode()
}

func (a *FeedAdapter) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
