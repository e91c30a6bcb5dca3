// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmetro/tile-engine/internal/cache"
	"github.com/openmetro/tile-engine/pkg/types"
)

const quoteCSV = `Symbol,Date,Time,Open,High,Low,Close,Volume
MSFT.US,2025-07-30,22:00:06,515.17,515.95,509.435,509.945,7184486
`

const historyCSV = `Date,Open,High,Low,Close,Volume
2025-07-23,506.75,506.79,500.7,505.87,16396585
2025-07-24,508.77,513.67,507.3,510.88,16107000
2025-07-25,512.465,518.29,510.3592,513.71,19125699
2025-07-28,514.08,515,510.12,512.5,14308027
2025-07-29,515.53,517.62,511.56,512.57,16469235
2025-07-30,515.17,515.95,509.435,509.945,7184486
`

func financeAdapter(quoteURL, historyURL string) *FinanceAdapter {
	return &FinanceAdapter{
		Client: http.DefaultClient,
		Cache:  cache.New(),
		Config: types.FinanceConfig{
			Symbol:      "MSFT.US",
			QuoteURL:    quoteURL,
			HistoryURL:  historyURL,
			HistoryDays: 5,
		},
	}
}

func csvServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
}

func TestFinanceGet_FullSnapshot(t *testing.T) {
	quote := csvServer(quoteCSV)
	defer quote.Close()
	history := csvServer(historyCSV)
	defer history.Close()

	snap := financeAdapter(quote.URL, history.URL).Get(context.Background(), 1)

	require.NotNil(t, snap.Price)
	assert.Equal(t, 509.945, *snap.Price)
	assert.InDelta(t, 509.945-515.17, snap.Change, 1e-9, "change is close minus open")
	require.Len(t, snap.History, 5, "history trimmed to the configured day count")
	assert.Equal(t, 510.88, snap.History[0], "history stays chronological, oldest first")
	assert.Equal(t, 509.945, snap.History[4])
}

func TestFinanceGet_HistoryFailureIsPartialSuccess(t *testing.T) {
	quote := csvServer(quoteCSV)
	defer quote.Close()
	history := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer history.Close()

	snap := financeAdapter(quote.URL, history.URL).Get(context.Background(), 1)

	require.NotNil(t, snap.Price, "quote success must survive history failure")
	assert.Equal(t, 509.945, *snap.Price)
	assert.Empty(t, snap.History)
}

func TestFinanceGet_QuoteFailureYieldsNilPrice(t *testing.T) {
	quote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer quote.Close()
	history := csvServer(historyCSV)
	defer history.Close()

	snap := financeAdapter(quote.URL, history.URL).Get(context.Background(), 1)

	assert.Nil(t, snap.Price)
	assert.NotEmpty(t, snap.History, "history success must survive quote failure")
}

func TestFinanceGet_OneUpstreamCallPerWindow(t *testing.T) {
	var quoteCalls int32
	quote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&quoteCalls, 1)
		w.Write([]byte(quoteCSV))
	}))
	defer quote.Close()
	history := csvServer(historyCSV)
	defer history.Close()

	a := financeAdapter(quote.URL, history.URL)
	a.Get(context.Background(), 4)
	a.Get(context.Background(), 4)
	assert.Equal(t, int32(1), atomic.LoadInt32(&quoteCalls), "second request in the window hits the cache")

	a.Get(context.Background(), 5)
	assert.Equal(t, int32(2), atomic.LoadInt32(&quoteCalls), "new window refetches")
}
