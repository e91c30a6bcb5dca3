// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/openmetro/tile-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tile HTTP front",
	Long: `Serve starts the HTTP server that answers tile update requests. It is
meant to sit behind an intercepting proxy that forwards the legacy vendor
hosts here; the server classifies each request by its original host and
path, then renders the matching tile, an appeasement response, or a 404.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (default :8099)")
	serveCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := loadConfig()
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.Listen = listen
	}

	srv := &server.Server{
		Orchestrator: buildOrchestrator(cfg, log),
		Log:          log,
	}
	return srv.ListenAndServe(cfg.Server)
}
