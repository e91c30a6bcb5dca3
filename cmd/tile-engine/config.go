// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the configuration the engine would run with, after
merging defaults, the config file, environment variables, and secrets.
Secret values themselves are not printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		// Credentials never reach stdout; show presence only.
		for i, p := range cfg.Location.Providers {
			if j := strings.Index(p, "token="); j >= 0 {
				cfg.Location.Providers[i] = p[:j] + "token=<redacted>"
			}
		}
		if cfg.Location.Email != "" {
			cfg.Location.Email = "<redacted>"
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
