package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	configFileName = "h2schema.yaml"
	envPrefix      = "H2SCHEMA_"

	defaultDriver   = "postgres"
	defaultImage    = "oscarfonts/h2:latest"
	defaultFormat   = "info"
	defaultProvider = "native"
)

// Config holds the resolved settings for a run
type Config struct {
	// Driver is the database/sql driver used to reach H2's PG server: postgres or pgx
	Driver string `koanf:"driver"`
	// DSN points at an existing H2 server; empty starts a container
	DSN string `koanf:"dsn"`
	// Schema scopes introspection; empty means every user schema
	Schema   string `koanf:"schema"`
	Image    string `koanf:"image"`
	Format   string `koanf:"format"`
	Provider string `koanf:"provider"`
	LogLevel string `koanf:"log_level"`
}

// LoadConfig layers defaults, the config file, H2SCHEMA_* variables and
// explicitly set flags, later sources winning.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"driver":    defaultDriver,
		"image":     defaultImage,
		"format":    defaultFormat,
		"provider":  defaultProvider,
		"log_level": "info",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(configFileName); err == nil {
			cfgFile = configFileName
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Level maps LogLevel to a slog level, defaulting to info
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
