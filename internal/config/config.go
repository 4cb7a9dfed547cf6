// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultPollInterval is the window watcher tick.
const DefaultPollInterval = 2000 * time.Millisecond

// Config holds all configuration for the companion.
type Config struct {
	// Window watcher
	PollInterval time.Duration

	// Converter
	ConverterPath    string // explicit executable, tried before discovery
	ConverterTimeout time.Duration
	LibraryDir       string // base library directory (EASYEDA2KICAD)

	// KiCad
	KiCadConfigDir string // overrides config directory discovery

	// Observability
	LogLevel    string
	LogFile     string
	MetricsAddr string
}

// Load reads configuration from environment variables and .env files. With
// no arguments an absent ./.env is ignored; files named explicitly must load.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 {
			return nil, fmt.Errorf("config: load env file: %w", err)
		}
		zap.L().Debug("failed to load .env file", zap.Error(err))
	}

	libDir, err := DefaultLibraryDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		PollInterval:     getEnvDurationOrDefault("EASYEDA2KICAD_POLL_INTERVAL", DefaultPollInterval),
		ConverterPath:    os.Getenv("EASYEDA2KICAD_CONVERTER"),
		ConverterTimeout: getEnvDurationOrDefault("EASYEDA2KICAD_CONVERTER_TIMEOUT", 0),
		LibraryDir:       getEnvOrDefault("EASYEDA2KICAD_LIBRARY_DIR", libDir),
		KiCadConfigDir:   os.Getenv("EASYEDA2KICAD_KICAD_CONFIG_DIR"),
		LogLevel:         getEnvOrDefault("EASYEDA2KICAD_LOG_LEVEL", "info"),
		LogFile:          getEnvOrDefault("EASYEDA2KICAD_LOG_FILE", ""),
		MetricsAddr:      os.Getenv("EASYEDA2KICAD_METRICS_ADDR"),
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return cfg, nil
}

// DefaultLibraryDir is ~/Documents/KiCAD/EASYEDA2KICAD, where the converter
// output and the registered KiCad libraries live.
func DefaultLibraryDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Documents", "KiCAD", "EASYEDA2KICAD"), nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvDurationOrDefault accepts Go durations ("2s") and bare milliseconds ("2000").
func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultVal
}
