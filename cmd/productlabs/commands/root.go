// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the productlabs root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("PRODUCTLABS_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "productlabs",
		Short:         "Product Labs - product health and release timeline analysis",
		Long:          "Product Labs scores product health across timeline, budget, resources and progress, and reconciles release timelines.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().String("config", "", "path to a YAML config file")
	cmd.PersistentFlags().String("env-file", ".env", "dotenv file with PRODUCTLABS_* overrides")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of Product Labs",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Product Labs version %s\n", version)
		},
	})

	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewReconcileCommand())
	cmd.AddCommand(NewPortfolioCommand())
	cmd.AddCommand(NewServeCommand())

	return cmd
}
