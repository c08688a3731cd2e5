// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config loads Product Labs configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Health  HealthConfig  `koanf:"health"`
	Report  ReportConfig  `koanf:"report"`
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// HealthConfig tunes evaluation.
type HealthConfig struct {
	ExtensionDays int `koanf:"extension_days"`
}

// ReportConfig sets CLI report defaults.
type ReportConfig struct {
	Format string `koanf:"format"`
	Output string `koanf:"output"`
}

// Report formats accepted by the CLI.
var ReportFormats = []string{"json", "yaml", "markdown"}

// Addr returns host:port for the HTTP listener.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must be > 0", ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("%w: logging.format must be 'json' or 'console', got %q", ErrInvalidConfig, c.Logging.Format)
	}
	if c.Health.ExtensionDays <= 0 {
		return fmt.Errorf("%w: health.extension_days must be > 0, got %d", ErrInvalidConfig, c.Health.ExtensionDays)
	}
	if !validReportFormat(c.Report.Format) {
		return fmt.Errorf("%w: report.format must be one of %v, got %q", ErrInvalidConfig, ReportFormats, c.Report.Format)
	}
	return nil
}

func validReportFormat(f string) bool {
	for _, known := range ReportFormats {
		if f == known {
			return true
		}
	}
	return false
}
