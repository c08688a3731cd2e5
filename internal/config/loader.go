// SPDX-License-Identifier: AGPL-3.0-or-later
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PRODUCTLABS_"

const defaults = `
server:
  host: 0.0.0.0
  port: 8080
  shutdown_timeout: 5s
logging:
  level: info
  format: json
health:
  extension_days: 14
report:
  format: json
  output: ""
`

// LoadOptions locate the optional config sources.
type LoadOptions struct {
	// ConfigPath is a YAML file. Empty skips it; a missing file is an error.
	ConfigPath string
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string
}

// Load builds the configuration. Precedence, highest first:
//
//  1. Environment variables (PRODUCTLABS_SERVER_PORT -> server.port)
//  2. Variables from the dotenv file that are not already set
//  3. The YAML config file
//  4. Built-in defaults
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider([]byte(defaults)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if opts.ConfigPath != "" {
		content, err := os.ReadFile(opts.ConfigPath) //nolint:gosec // operator supplied path
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", opts.ConfigPath, err)
		}
	}

	if opts.EnvFile != "" {
		if err := loadDotenv(opts.EnvFile); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load(LoadOptions{})
	if err != nil {
		panic(fmt.Sprintf("built-in config defaults are invalid: %v", err))
	}
	return cfg
}

// envKey maps PRODUCTLABS_SERVER_SHUTDOWN_TIMEOUT to server.shutdown_timeout.
// The first underscore separates the section from the field name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

// loadDotenv exports variables from path without overriding the real environment.
func loadDotenv(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	for k, v := range vars {
		if _, exists := os.LookupEnv(k); !exists {
			if err := os.Setenv(k, v); err != nil {
				return fmt.Errorf("setting %s: %w", k, err)
			}
		}
	}
	return nil
}
