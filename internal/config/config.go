// Package config reads advisor settings from the environment. A .env file in
// the working directory is loaded first; variables already set win.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// DBPath is the SQLite file holding student records.
	DBPath string
	// DataDir overrides the embedded catalog data when set.
	DataDir string
	// StartTerm overrides the offerings term as the first planned semester.
	StartTerm   string
	LogLevel    slog.Level
	LogUseCases bool
	CacheSize   int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig(home string) Config {
	return Config{
		DBPath:    filepath.Join(home, ".advisor", "advisor.db"),
		LogLevel:  slog.LevelWarn,
		CacheSize: 256,
	}
}

// Load reads configuration from the environment, falling back to defaults
// for any unset or unparseable values.
func Load() (Config, error) {
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := DefaultConfig(home)

	if v := strings.TrimSpace(os.Getenv("ADVISOR_DB")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("ADVISOR_DATA")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("ADVISOR_START_TERM")); v != "" {
		cfg.StartTerm = v
	}
	if v := os.Getenv("ADVISOR_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := os.Getenv("ADVISOR_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ADVISOR_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		}
	}
	// Use-case events are logged at info level.
	if cfg.LogUseCases && cfg.LogLevel > slog.LevelInfo {
		cfg.LogLevel = slog.LevelInfo
	}
	return cfg, nil
}

// Logger builds the process logger at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
