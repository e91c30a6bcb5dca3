// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmetro/tile-engine/internal/adapters"
	"github.com/openmetro/tile-engine/internal/cache"
	"github.com/openmetro/tile-engine/internal/render"
	"github.com/openmetro/tile-engine/internal/tile"
	"github.com/openmetro/tile-engine/pkg/types"
)

func testServer(feedURL string) *Server {
	return &Server{
		Orchestrator: &tile.Orchestrator{
			Feeds: map[types.TileKind]*adapters.FeedAdapter{
				types.TileNews: {
					Client: http.DefaultClient,
					Config: types.FeedConfig{URL: feedURL, SourceLabel: "From Test Wire"},
				},
			},
			Renderer: render.New(types.RenderConfig{}),
			Cache:    cache.New(),
			Interval: 300 * time.Second,
		},
	}
}

func get(t *testing.T, s *Server, host, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://"+host+path, nil)
	req.Host = host
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTP_NewsTile(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<rss><channel><item><title>Big story</title></item></channel></rss>`))
	}))
	defer feed.Close()

	rec := get(t, testServer(feed.URL), "en-us.appex-rf.msn.com", "/cgtile/v1/en-us/news/today.xml")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.XMLContentType, rec.Header().Get("Content-Type"))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "Big story")
}

func TestServeHTTP_FeedDownStillAnswers200(t *testing.T) {
	rec := get(t, testServer("http://127.0.0.1:0/nowhere"), "en-us.appex-rf.msn.com", "/cgtile/v1/en-us/news/today.xml")

	require.Equal(t, http.StatusOK, rec.Code, "a recognized tile never returns a non-200")
	assert.Contains(t, rec.Body.String(), "No news available")
}

func TestServeHTTP_Appeasement(t *testing.T) {
	rec := get(t, testServer(""), "go.microsoft.com", "/fwlink/?LinkId=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "{}", rec.Body.String())
}

func TestServeHTTP_Unrecognized404(t *testing.T) {
	rec := get(t, testServer(""), "example.com", "/whatever")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
