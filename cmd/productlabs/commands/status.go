// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buildly-release-management/buildly-react-template-sub002/cmd/productlabs/internal/clierr"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/statusdoc"
)

func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Evaluate product health from a snapshot",
		Long: `Evaluate a product snapshot across timeline, budget, resources and progress
and print the status report with its recommendations.

JSON and YAML output carry the full report; markdown renders a status document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			format, err := outputFormat(cmd, "status", cfg)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot(cmd, "status")
			if err != nil {
				return err
			}
			clock, err := resolveClock(cmd, "status", snap)
			if err != nil {
				return err
			}

			calc := health.NewCalculator(health.WithClock(clock), health.WithLogger(logger))
			now := calc.Now()
			summary := health.GenerateStatusReport(snap.Product, calc.CalculateAt(snap.Input, now), now)

			logger.Info("status evaluated",
				zap.String("product", summary.ProductName),
				zap.String("overall", summary.Overall.String()),
				zap.Int("score", summary.Score),
			)

			if format == "markdown" {
				out, err := outputPath(cmd, "status", cfg)
				if err != nil {
					return err
				}
				if out != "" {
					if err := statusdoc.Write(out, summary); err != nil {
						return clierr.Wrap(clierr.ExitFailure, "status", err)
					}
					return nil
				}
				return writeOutput(cmd, "status", cfg, []byte(statusdoc.Render(summary)))
			}

			data, err := encode(format, summary)
			if err != nil {
				return clierr.Wrap(clierr.ExitFailure, "status: encode report", err)
			}
			return writeOutput(cmd, "status", cfg, data)
		},
	}

	addSnapshotFlags(cmd)
	return cmd
}
