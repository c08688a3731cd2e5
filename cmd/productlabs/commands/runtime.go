// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/buildly-release-management/buildly-react-template-sub002/cmd/productlabs/internal/clierr"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/config"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/logging"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/projection"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/snapshot"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

// loadRuntime resolves configuration and the logger from the global flags.
func loadRuntime(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, clierr.Usagef("get config flag: %v", err)
	}
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, nil, clierr.Usagef("get env-file flag: %v", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, nil, clierr.Usagef("get verbose flag: %v", err)
	}

	cfg, err := config.Load(config.LoadOptions{ConfigPath: configPath, EnvFile: envFile})
	if err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			return nil, nil, clierr.Wrap(clierr.ExitUsage, "config", err)
		}
		return nil, nil, clierr.Wrap(clierr.ExitFailure, "config", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, clierr.Wrap(clierr.ExitUsage, "logger", err)
	}
	return cfg, logger, nil
}

// loadSnapshot reads the --snapshot file.
func loadSnapshot(cmd *cobra.Command, name string) (*snapshot.Snapshot, error) {
	path, err := cmd.Flags().GetString("snapshot")
	if err != nil {
		return nil, clierr.Usagef("%s: get snapshot flag: %v", name, err)
	}
	if path == "" {
		return nil, clierr.Usagef("%s: --snapshot is required", name)
	}
	snap, err := snapshot.Load(path)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitFailure, name, err)
	}
	return snap, nil
}

// resolveClock picks the evaluation time: --now, then the snapshot's own
// date, then the wall clock.
func resolveClock(cmd *cobra.Command, name string, snap *snapshot.Snapshot) (status.Clock, error) {
	raw, err := cmd.Flags().GetString("now")
	if err != nil {
		return nil, clierr.Usagef("%s: get now flag: %v", name, err)
	}
	if raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			return nil, clierr.Usagef("%s: invalid --now %q: %v", name, raw, err)
		}
		return status.FixedClock{At: d.Time}, nil
	}
	if snap.Now != nil {
		return status.FixedClock{At: snap.Now.Time}, nil
	}
	return status.SystemClock{}, nil
}

// outputFormat validates --format, falling back to the configured default.
func outputFormat(cmd *cobra.Command, name string, cfg *config.Config) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", clierr.Usagef("%s: get format flag: %v", name, err)
	}
	if format == "" {
		format = cfg.Report.Format
	}
	for _, known := range config.ReportFormats {
		if format == known {
			return format, nil
		}
	}
	return "", clierr.Usagef("%s: unknown format %q (want one of %v)", name, format, config.ReportFormats)
}

// encode serializes v as json or yaml; markdown is rendered by the caller.
func encode(format string, v any) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return buf.Bytes(), nil
}

// writeOutput sends data to --out, the configured output path, or stdout.
// outputPath returns --out, else the configured report output. Empty means stdout.
func outputPath(cmd *cobra.Command, name string, cfg *config.Config) (string, error) {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return "", clierr.Usagef("%s: get out flag: %v", name, err)
	}
	if out == "" {
		out = cfg.Report.Output
	}
	return out, nil
}

func writeOutput(cmd *cobra.Command, name string, cfg *config.Config, data []byte) error {
	out, err := outputPath(cmd, name, cfg)
	if err != nil {
		return err
	}
	if out == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return clierr.Wrap(clierr.ExitFailure, name, err)
		}
		return nil
	}
	if err := projection.AtomicWrite(out, data); err != nil {
		return clierr.Wrap(clierr.ExitFailure, name, err)
	}
	return nil
}

func addSnapshotFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("snapshot", "s", "", "path to a product snapshot (.yaml or .json)")
	cmd.Flags().StringP("format", "f", "", "output format: json, yaml or markdown (default from config)")
	cmd.Flags().StringP("out", "o", "", "write output to this path instead of stdout")
	cmd.Flags().String("now", "", "evaluation date (YYYY-MM-DD); defaults to the snapshot date or today")
}

func syncLogger(l *zap.Logger) {
	_ = logging.Sync(l)
}
