package main

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config is the optional YAML configuration file. Flags override it.
type config struct {
	// File is the database file path.
	File string `yaml:"file"`
	// History is the readline history file path.
	History string `yaml:"history"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Prompt overrides the REPL prompt.
	Prompt string `yaml:"prompt"`
}

func defaultConfig() config {
	return config{
		File:     "db.tdb",
		History:  os.TempDir() + "/tdb_history",
		LogLevel: "info",
		Prompt:   "tdb> ",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func (c config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
