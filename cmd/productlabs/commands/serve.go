// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buildly-release-management/buildly-react-template-sub002/cmd/productlabs/internal/clierr"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/httpapi"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the status API over HTTP",
		Long: `Start the HTTP API. Snapshots posted to /api/v1/status, /api/v1/status/report
and /api/v1/reconcile are evaluated on demand; Prometheus metrics are served on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			if cmd.Flags().Changed("host") {
				cfg.Server.Host, _ = cmd.Flags().GetString("host")
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			if err := cfg.Validate(); err != nil {
				return clierr.Wrap(clierr.ExitUsage, "serve", err)
			}

			calc := health.NewCalculator(health.WithLogger(logger))
			srv, err := httpapi.NewServer(calc, logger, cfg)
			if err != nil {
				return clierr.Wrap(clierr.ExitFailure, "serve", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if err != nil {
					return clierr.Wrap(clierr.ExitFailure, "serve", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return clierr.Wrap(clierr.ExitFailure, "serve: shutdown", err)
			}
			return nil
		},
	}

	cmd.Flags().String("host", "", "listen host (default from config)")
	cmd.Flags().Int("port", 0, "listen port (default from config)")
	return cmd
}
