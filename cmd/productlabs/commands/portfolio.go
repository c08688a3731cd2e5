// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buildly-release-management/buildly-react-template-sub002/cmd/productlabs/internal/clierr"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/portfolio"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/statusdoc"
)

const defaultPortfolioState = ".productlabs/portfolio"

func NewPortfolioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Evaluate every product snapshot in a directory",
		Long: `Discover .yaml, .yml and .json snapshots under --dir, evaluate each one and
print a portfolio table. Per-snapshot results and the run summary are stored
under --state; --resume re-evaluates only the snapshots that failed last time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			format, err := outputFormat(cmd, "portfolio", cfg)
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				return clierr.Usagef("portfolio: --dir is required")
			}
			statePath, _ := cmd.Flags().GetString("state")
			resume, _ := cmd.Flags().GetBool("resume")
			reset, _ := cmd.Flags().GetBool("reset")
			if resume && reset {
				return clierr.Usagef("portfolio: --resume and --reset cannot be combined")
			}

			eval := portfolio.SnapshotEvaluator{Root: dir, Calc: health.NewCalculator(health.WithLogger(logger))}
			if raw, _ := cmd.Flags().GetString("now"); raw != "" {
				d, err := model.ParseDate(raw)
				if err != nil {
					return clierr.Usagef("portfolio: invalid --now %q: %v", raw, err)
				}
				eval.Now = &d.Time
			}

			snapshots, err := portfolio.Discover(dir, portfolio.DefaultFilterOptions())
			if err != nil {
				return clierr.Wrap(clierr.ExitFailure, "portfolio", err)
			}
			store := portfolio.NewStateStore(statePath)
			if reset {
				if err := store.Reset(); err != nil {
					return clierr.Wrap(clierr.ExitFailure, "portfolio: reset state", err)
				}
				logger.Info("portfolio state cleared", zap.String("state", statePath))
			}
			runner := portfolio.NewRunner(snapshots, eval, store, logger)

			var entries []portfolio.Entry
			var runErr error
			if resume {
				entries, runErr = runner.Resume(cmd.Context())
			} else {
				entries, runErr = runner.RunAll(cmd.Context())
			}

			var data []byte
			if format == "markdown" {
				data = []byte(statusdoc.RenderPortfolio(entries))
			} else if data, err = encode(format, entries); err != nil {
				return clierr.Wrap(clierr.ExitFailure, "portfolio: encode entries", err)
			}
			if err := writeOutput(cmd, "portfolio", cfg, data); err != nil {
				return err
			}

			logger.Info("portfolio evaluated",
				zap.Int("snapshots", len(entries)),
				zap.Bool("resume", resume),
			)
			if runErr != nil {
				return clierr.Wrap(clierr.ExitFailure, "portfolio", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringP("dir", "d", "", "directory of product snapshots")
	cmd.Flags().String("state", defaultPortfolioState, "directory for per-snapshot results and the last run summary")
	cmd.Flags().Bool("resume", false, "re-evaluate only the snapshots that failed in the last run")
	cmd.Flags().Bool("reset", false, "clear stored results before evaluating")
	cmd.Flags().StringP("format", "f", "", "output format: json, yaml or markdown (default from config)")
	cmd.Flags().StringP("out", "o", "", "write output to this path instead of stdout")
	cmd.Flags().String("now", "", "evaluation date (YYYY-MM-DD); defaults to each snapshot's date or today")
	return cmd
}
