// Package config loads environment-sourced settings for the downloader.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIKey            string
	OutputDir         string
	LogDir            string
	HTTPTimeout       time.Duration
	RateLimit         int
	RateLimitInterval time.Duration
	Languages         []string
}

func Load() *Config {
	return &Config{
		APIKey:            GetEnv("YOUTUBE_API_KEY", ""),
		OutputDir:         GetEnv("OUTPUT_DIR", "transcripts"),
		LogDir:            GetEnv("LOG_DIR", "logs"),
		HTTPTimeout:       getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		RateLimit:         getEnvAsInt("RATE_LIMIT", 5),
		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 1*time.Second),
		Languages:         getEnvAsList("LANGUAGES", []string{"en"}),
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// Validate rejects configurations that would fail mid-batch. The API key is
// checked separately by the frontend because it is only required for
// channel expansion.
func Validate(cfg *Config) error {
	if cfg.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if cfg.HTTPTimeout <= 0 {
		return errors.New("HTTP timeout must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("rate limit must be greater than 0")
	}
	if cfg.RateLimitInterval <= 0 {
		return errors.New("rate limit interval must be greater than 0")
	}
	if len(cfg.Languages) == 0 {
		return errors.New("at least one language is required")
	}
	return nil
}
