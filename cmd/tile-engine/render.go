// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openmetro/tile-engine/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <kind>",
	Short: "Render one tile document to stdout",
	Long: `Render fetches and prints a single tile document without starting the
server. Kind is one of: ` + strings.Join(kindNames(), ", ") + `.

Useful for checking upstream connectivity and template output by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Int("index", -1, "explicit item index (default: time-driven selection)")
	renderCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(renderCmd)
}

func kindNames() []string {
	names := make([]string, len(types.Kinds))
	for i, k := range types.Kinds {
		names[i] = string(k)
	}
	return names
}

func runRender(cmd *cobra.Command, args []string) error {
	kind, ok := types.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown tile kind %q (expected one of: %s)", args[0], strings.Join(kindNames(), ", "))
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	req := types.TileRequest{Kind: kind}
	if idx, _ := cmd.Flags().GetInt("index"); idx >= 0 {
		req.Index = &idx
	}

	cfg := loadConfig()
	o := buildOrchestrator(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout*3)
	defer cancel()

	doc := o.Handle(ctx, req)
	log.Debug("rendered tile", zap.String("kind", string(kind)))
	fmt.Println(doc.XML)
	return nil
}
