// Package config loads process configuration for the Rotaplan CLI from the
// environment. Everything that changes solve semantics travels inside the
// request; the environment only tunes logging and the solver time limit.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Solver
	SolveTimeLimit time.Duration
}

// Load loads configuration from environment variables. A .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("ROTAPLAN_ENV", "development"),
		LogLevel:       getEnv("ROTAPLAN_LOG_LEVEL", "info"),
		LogFormat:      getEnv("ROTAPLAN_LOG_FORMAT", "text"),
		SolveTimeLimit: getDurationEnv("ROTAPLAN_SOLVE_TIME_LIMIT", 120*time.Second),
	}
	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
