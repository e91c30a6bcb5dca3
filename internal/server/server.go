// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the HTTP front for the tile engine. The interception
// proxy forwards the client's vendor-host requests here; the server
// classifies each URL and writes the orchestrator's document. Recognized
// routes always answer 200, since the fallback policy guarantees a valid
// body; unrecognized ones get 404.
package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/openmetro/tile-engine/internal/dispatch"
	"github.com/openmetro/tile-engine/internal/tile"
	"github.com/openmetro/tile-engine/pkg/types"
)

// Server routes intercepted requests to the orchestrator.
type Server struct {
	Orchestrator *tile.Orchestrator
	Log          *zap.Logger
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The proxy preserves the original host, so the classifiable URL is
	// host plus path, not just the path.
	url := r.Host + r.URL.String()

	result := dispatch.Classify(url)
	switch result.Action {
	case dispatch.ActionTile:
		s.log().Info("tile request",
			zap.String("kind", string(result.Request.Kind)),
			zap.String("url", url))
		doc := s.Orchestrator.Handle(r.Context(), result.Request)
		writeDocument(w, doc)

	case dispatch.ActionJSON:
		writeDocument(w, types.TileDocument{XML: "{}", ContentType: "application/json"})

	case dispatch.ActionJS:
		writeDocument(w, types.TileDocument{
			XML:         "// tile-engine: in-app content intentionally blank.",
			ContentType: "application/javascript; charset=utf-8",
		})

	default:
		http.NotFound(w, r)
	}
}

func writeDocument(w http.ResponseWriter, doc types.TileDocument) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc.XML))
}

// ListenAndServe runs the server until it fails. Read and write timeouts
// are generous enough to cover the slowest upstream chain.
func (s *Server) ListenAndServe(cfg types.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	s.log().Info("tile server listening", zap.String("addr", cfg.Listen))
	return srv.ListenAndServe()
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
