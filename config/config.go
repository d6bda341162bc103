// Package config loads container settings from the environment and optional
// .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvLifetime  = "OBJGRAPH_LIFETIME"
	EnvLogLevel  = "OBJGRAPH_LOG_LEVEL"
	EnvLogFormat = "OBJGRAPH_LOG_FORMAT"
	EnvMaxDepth  = "OBJGRAPH_MAX_DEPTH"
)

// Defaults used when a variable is unset.
const (
	DefaultLifetime  = "transient"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultMaxDepth  = 64
)

// Config holds container settings.
type Config struct {
	Lifetime  string // transient | singleton
	LogLevel  string // debug | info | warn | error
	LogFormat string // json | console
	MaxDepth  int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Lifetime:  DefaultLifetime,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		MaxDepth:  DefaultMaxDepth,
	}
}

// Load reads the given .env files (".env" when none are given) into the
// process environment and builds a Config from it. Missing files are not an
// error; variables already set in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Lifetime:  strings.ToLower(env(EnvLifetime, DefaultLifetime)),
		LogLevel:  strings.ToLower(env(EnvLogLevel, DefaultLogLevel)),
		LogFormat: strings.ToLower(env(EnvLogFormat, DefaultLogFormat)),
		MaxDepth:  DefaultMaxDepth,
	}

	if raw := env(EnvMaxDepth, ""); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMaxDepth, err)
		}
		cfg.MaxDepth = depth
	}

	return cfg, cfg.Validate()
}

// Parse builds a Config from .env formatted content without touching the
// process environment.
func Parse(content string) (Config, error) {
	vars, err := godotenv.Unmarshal(content)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if v, ok := vars[EnvLifetime]; ok {
		cfg.Lifetime = strings.ToLower(v)
	}
	if v, ok := vars[EnvLogLevel]; ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := vars[EnvLogFormat]; ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := vars[EnvMaxDepth]; ok {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMaxDepth, err)
		}
		cfg.MaxDepth = depth
	}

	return cfg, cfg.Validate()
}

// Validate checks every field holds a known value.
func (c Config) Validate() error {
	switch c.Lifetime {
	case "transient", "singleton":
	default:
		return fmt.Errorf("%s: unknown lifetime %q", EnvLifetime, c.Lifetime)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s: unknown level %q", EnvLogLevel, c.LogLevel)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%s: unknown format %q", EnvLogFormat, c.LogFormat)
	}

	if c.MaxDepth < 1 {
		return fmt.Errorf("%s: must be positive, got %d", EnvMaxDepth, c.MaxDepth)
	}

	return nil
}

func env(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultVal
}
