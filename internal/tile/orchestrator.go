// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tile is the engine's entry point: it routes a resolved tile
// request to the matching source adapter, applies the selection policy, and
// renders the result.
//
// The per-request state machine is Dispatched → Fetching → Rendering → Done,
// with one escape edge: any unrecovered failure in Fetching or Rendering
// goes straight to the domain's fallback document. There is no retry state;
// the engine always answers, never hangs, and never surfaces a raw error to
// the network boundary.
package tile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openmetro/tile-engine/internal/adapters"
	"github.com/openmetro/tile-engine/internal/cache"
	"github.com/openmetro/tile-engine/internal/cycle"
	"github.com/openmetro/tile-engine/internal/render"
	"github.com/openmetro/tile-engine/pkg/types"
)

// Orchestrator owns the adapters, the windowed cache, and the renderer. Its
// lifecycle is the service process; nothing it holds outlives it.
type Orchestrator struct {
	Weather  *adapters.WeatherAdapter
	Finance  *adapters.FinanceAdapter
	Food     *adapters.FoodAdapter
	Feeds    map[types.TileKind]*adapters.FeedAdapter
	Renderer *render.Renderer
	Cache    *cache.Windowed
	Log      *zap.Logger

	// Interval is the refresh window length for caching and cycling.
	Interval time.Duration

	// Now is the clock; overridable for deterministic tests.
	Now func() time.Time
}

// Handle produces the document for req. It is total: every failure path
// lands on the domain's fallback document.
func (o *Orchestrator) Handle(ctx context.Context, req types.TileRequest) types.TileDocument {
	now := o.now().Unix()
	interval := int64(o.Interval.Seconds())
	if interval <= 0 {
		interval = 300
	}
	window := cycle.Window(now, interval)

	doc, err := o.produce(ctx, req, now, interval, window)
	if err != nil {
		o.log().Warn("rendering fallback document",
			zap.String("kind", string(req.Kind)), zap.Error(err))
		return render.Fallback(req.Kind)
	}
	return doc
}

func (o *Orchestrator) produce(ctx context.Context, req types.TileRequest, now, interval, window int64) (types.TileDocument, error) {
	switch req.Kind {
	case types.TileWeather:
		report := o.Weather.Get(ctx, window)
		if report.Status == adapters.StatusUnavailable {
			return types.TileDocument{}, errUnavailable
		}
		return o.Renderer.Render(req.Kind, render.WeatherVars(report))

	case types.TileFinance:
		snap := o.Finance.Get(ctx, window)
		if snap.Price == nil {
			return types.TileDocument{}, errUnavailable
		}
		return o.Renderer.Render(req.Kind, render.FinanceVars(snap))

	case types.TileFood:
		item, status := o.Food.Get(ctx)
		if status == adapters.StatusUnavailable {
			return types.TileDocument{}, errUnavailable
		}
		return o.Renderer.Render(req.Kind, render.FoodVars(item))

	case types.TileHealth:
		idx, err := cycle.SelectIndex(req.Index, adapters.HealthTipCount(), now, interval)
		if err != nil {
			return types.TileDocument{}, err
		}
		return o.Renderer.Render(req.Kind, render.HealthVars(adapters.HealthTip(idx)))

	case types.TileNews, types.TileSports:
		feed, ok := o.Feeds[req.Kind]
		if !ok {
			return types.TileDocument{}, errUnavailable
		}
		result := feed.Get(ctx)
		idx, err := cycle.SelectIndex(req.Index, len(result.Items), now, interval)
		if err != nil {
			return types.TileDocument{}, err
		}
		return o.Renderer.Render(req.Kind, render.FeedVars(result.Items[idx], feed.Config))

	default:
		return types.TileDocument{}, errUnavailable
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) log() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// errUnavailable marks the adapter's "no usable data" state; it exists only
// to route Handle onto the fallback edge.
var errUnavailable = errNoContent{}

type errNoContent struct{}

func (errNoContent) Error() string { return "no usable upstream content" }
