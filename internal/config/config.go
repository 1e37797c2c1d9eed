// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package config loads and validates the pipeline configuration through a
// koanf chain: built-in defaults, then an optional YAML config file, then
// PITCHLAKE_* environment variables, each layer overriding the previous.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"pitchlake.yaml",
	"pitchlake.yml",
	"/etc/pitchlake/config.yaml",
	"/etc/pitchlake/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "PITCHLAKE_CONFIG"

// envMappings maps environment variable names to config paths. Explicit
// mapping avoids guessing where an underscore separates section from key.
var envMappings = map[string]string{
	"PITCHLAKE_SOURCE_REMOTE":           "source.remote",
	"PITCHLAKE_SOURCE_DIR":              "source.dir",
	"PITCHLAKE_VIDEO_INFO_FILE":         "source.video_info_file",
	"PITCHLAKE_DB_PATH":                 "database.path",
	"PITCHLAKE_DB_MAX_MEMORY":           "database.max_memory",
	"PITCHLAKE_DB_THREADS":              "database.threads",
	"PITCHLAKE_DB_PRESERVE_ROW_ORDER":   "database.preserve_insertion_order",
	"PITCHLAKE_STRICT_SCHEMA":           "pipeline.strict_schema",
	"PITCHLAKE_EXPORT_DIR":              "pipeline.export_dir",
	"LOG_LEVEL":                         "logging.level",
	"LOG_FORMAT":                        "logging.format",
}

// Config is the root pipeline configuration.
type Config struct {
	Source   SourceConfig   `koanf:"source"`
	Database DatabaseConfig `koanf:"database"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// SourceConfig locates the raw match files.
type SourceConfig struct {
	// Remote is an optional GitHub directory URL to mirror into Dir before
	// ingestion. Empty disables fetching; ingestion then reads Dir as is.
	Remote string `koanf:"remote"`

	// Dir is the local directory holding per-match source files.
	Dir string `koanf:"dir" validate:"required"`

	// VideoInfoFile is the match video offset CSV, relative to Dir when not
	// absolute.
	VideoInfoFile string `koanf:"video_info_file"`
}

// DatabaseConfig configures the DuckDB warehouse file.
type DatabaseConfig struct {
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 means runtime.NumCPU().
	Threads int `koanf:"threads" validate:"gte=0"`

	PreserveInsertionOrder bool `koanf:"preserve_insertion_order"`
}

// PipelineConfig holds cross-stage behavior switches.
type PipelineConfig struct {
	// StrictSchema promotes any shape report (missing, dropped, lossy, or
	// failed columns) from diagnostic to stage failure.
	StrictSchema bool `koanf:"strict_schema"`

	// ExportDir receives Parquet exports of the gold views. Empty disables
	// the export.
	ExportDir string `koanf:"export_dir"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Remote:        "",
			Dir:           "data/raw",
			VideoInfoFile: "match_video_info.csv",
		},
		Database: DatabaseConfig{
			Path:                   "data/pitchlake.duckdb",
			MaxMemory:              "2GB",
			Threads:                0,
			PreserveInsertionOrder: true,
		},
		Pipeline: PipelineConfig{
			StrictSchema: false,
			ExportDir:    "data/gold",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the config file at path (or
// the first DefaultConfigPaths entry when path is empty), and environment
// variables, then validates it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path == "" {
		for _, candidate := range DefaultConfigPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// envTransformFunc maps recognized environment variable names to koanf
// config paths; unrecognized variables are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToUpper(key)]
}
