// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openmetro/tile-engine/internal/cache"
	"github.com/openmetro/tile-engine/internal/fetch"
	"github.com/openmetro/tile-engine/internal/normalize"
	"github.com/openmetro/tile-engine/pkg/types"
)

const defaultHistoryDays = 5

// FinanceAdapter produces windowed quote snapshots from a CSV quote
// provider. The windowed cache bounds upstream call frequency: one quote and
// one history fetch per refresh window, shared by all concurrent requests.
type FinanceAdapter struct {
	Client *http.Client
	Config types.FinanceConfig
	Cache  *cache.Windowed
	Log    *zap.Logger
	Now    func() time.Time
}

// Get returns the snapshot for window. It is total: a failed quote fetch
// yields a snapshot with a nil Price, a failed history fetch an empty
// History. A snapshot is published to the cache only after both fetches have
// finished, so waiters never observe a half-populated value.
func (a *FinanceAdapter) Get(ctx context.Context, window int64) types.QuoteSnapshot {
	v, err := a.Cache.GetOrCompute("finance:"+a.Config.Symbol, window, func() (any, error) {
		return a.snapshot(ctx), nil
	})
	if err != nil {
		return types.QuoteSnapshot{Symbol: a.Config.Symbol, FetchedAt: a.now()}
	}
	return v.(types.QuoteSnapshot)
}

func (a *FinanceAdapter) snapshot(ctx context.Context) types.QuoteSnapshot {
	log := logger(a.Log)
	snap := types.QuoteSnapshot{Symbol: a.Config.Symbol, FetchedAt: a.now()}

	var quoteRows, historyRows []normalize.QuoteRow

	// Quote and history are independent; fetch them concurrently. Each
	// closure absorbs its own failure so one upstream cannot cancel the
	// other; partial success is a valid snapshot state.
	var g errgroup.Group
	g.Go(func() error {
		body, err := fetch.Fetch(ctx, a.Client, a.Config.QuoteURL, nil)
		if err != nil {
			log.Warn("quote fetch failed", zap.String("symbol", a.Config.Symbol), zap.Error(err))
			return nil
		}
		quoteRows = normalize.ParseQuoteCSV(body)
		return nil
	})
	g.Go(func() error {
		body, err := fetch.Fetch(ctx, a.Client, a.Config.HistoryURL, nil)
		if err != nil {
			log.Warn("history fetch failed", zap.String("symbol", a.Config.Symbol), zap.Error(err))
			return nil
		}
		historyRows = normalize.ParseQuoteCSV(body)
		return nil
	})
	g.Wait()

	if len(quoteRows) > 0 {
		latest := quoteRows[len(quoteRows)-1]
		price := latest.Close
		snap.Price = &price
		// The upstream exposes no previous close; the session open stands
		// in for it. Rendered percentages are annotated "vs open".
		snap.Change = latest.Close - latest.Open
	}

	days := a.Config.HistoryDays
	if days <= 0 {
		days = defaultHistoryDays
	}
	closes := normalize.Closes(historyRows)
	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}
	snap.History = closes

	return snap
}

func (a *FinanceAdapter) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
