// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buildly-release-management/buildly-react-template-sub002/cmd/productlabs/internal/clierr"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/statusdoc"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/timeline"
)

func NewReconcileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile release timelines against their work items",
		Long: `Match features and issues to their releases. Late releases whose work is all
finished are marked completed; the rest get an extended end date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			format, err := outputFormat(cmd, "reconcile", cfg)
			if err != nil {
				return err
			}
			extension, err := cmd.Flags().GetInt("extension-days")
			if err != nil {
				return clierr.Usagef("reconcile: get extension-days flag: %v", err)
			}
			if extension < 0 {
				return clierr.Usagef("reconcile: --extension-days must be >= 0, got %d", extension)
			}
			if extension == 0 {
				extension = cfg.Health.ExtensionDays
			}

			snap, err := loadSnapshot(cmd, "reconcile")
			if err != nil {
				return err
			}
			clock, err := resolveClock(cmd, "reconcile", snap)
			if err != nil {
				return err
			}

			res := timeline.Reconcile(snap.Releases, snap.Features, snap.Issues, clock.Now(),
				timeline.Options{ExtensionDays: extension})

			var data []byte
			if format == "markdown" {
				data = []byte(statusdoc.RenderReconciliation(snap.Product.Name, res))
			} else if data, err = encode(format, res); err != nil {
				return clierr.Wrap(clierr.ExitFailure, "reconcile: encode result", err)
			}

			logger.Info("releases reconciled",
				zap.String("product", snap.Product.Name),
				zap.Int("releases", len(res.Releases)),
				zap.Int("auto_completed", res.AutoCompleted),
				zap.Int("extended", res.Extended),
			)
			return writeOutput(cmd, "reconcile", cfg, data)
		},
	}

	addSnapshotFlags(cmd)
	cmd.Flags().Int("extension-days", 0, "days to extend late releases with no later due date (default from config)")
	return cmd
}
