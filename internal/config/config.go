// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Prefix       string
	OwnerID      string
	DatabasePath string
	MediaDir     string
	LogLevel     string
	Cooldown     time.Duration
	Timezone     string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present; real environment variables
// win over file entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	prefix := os.Getenv("BOT_PREFIX")
	if prefix == "" {
		prefix = "!"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	mediaDir := os.Getenv("MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = "./data/media"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	cooldown := 3 * time.Second
	if raw := os.Getenv("COOLDOWN_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid COOLDOWN_MS %q", raw)
		}
		cooldown = time.Duration(ms) * time.Millisecond
	}

	tz := os.Getenv("TIMEZONE")
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
	}

	return &Config{
		Prefix:       prefix,
		OwnerID:      os.Getenv("OWNER_ID"),
		DatabasePath: dbPath,
		MediaDir:     mediaDir,
		LogLevel:     logLevel,
		Cooldown:     cooldown,
		Timezone:     tz,
	}, nil
}

// Location resolves the configured timezone, falling back to local time.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
