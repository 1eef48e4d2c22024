// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Addr            string
	DBPath          string
	JWTSecret       string
	TokenTTL        time.Duration
	DefaultCurrency string
	StaticPath      string
}

// Load reads a .env file from the working directory, if there is one, then
// reads configuration from environment variables. Variables already set in
// the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer, got %q", os.Getenv("TOKEN_TTL_HOURS"))
	}

	cfg := &Config{
		Addr:            getEnv("ADDR", ":8080"),
		DBPath:          getEnv("DB_PATH", "./data/fairsplit.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        time.Duration(ttlHours) * time.Hour,
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "INR"),
		StaticPath:      os.Getenv("STATIC_PATH"),
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
