package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "transcripts", cfg.OutputDir)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, time.Second, cfg.RateLimitInterval)
	assert.Equal(t, []string{"en"}, cfg.Languages)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "secret")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("HTTP_TIMEOUT", "90s")
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("LANGUAGES", "de, fr,en")

	cfg := Load()

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 90*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, []string{"de", "fr", "en"}, cfg.Languages)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")
	t.Setenv("RATE_LIMIT", "many")
	t.Setenv("LANGUAGES", " , ,")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, []string{"en"}, cfg.Languages)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	assert.NoError(t, Validate(cfg))

	broken := *cfg
	broken.OutputDir = ""
	assert.Error(t, Validate(&broken))

	broken = *cfg
	broken.HTTPTimeout = 0
	assert.Error(t, Validate(&broken))

	broken = *cfg
	broken.RateLimit = -1
	assert.Error(t, Validate(&broken))

	broken = *cfg
	broken.Languages = nil
	assert.Error(t, Validate(&broken))
}
