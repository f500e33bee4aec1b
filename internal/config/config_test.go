package config

import (
	"testing"
	"time"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "GEMINI_API_KEY", "LLM_TIMEOUT", "SITE_TIMEOUT", "DEFAULT_COUNT", "CORS_ORIGINS", "RATE_LIMIT_RPS"} {
		t.Setenv(k, "")
	}

	cfg := Load(logger.Nop())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 10*time.Second, cfg.SiteTimeout)
	assert.Equal(t, 4, cfg.DefaultCount)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.False(t, cfg.LLMEnabled())
	assert.NotEmpty(t, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("LLM_TIMEOUT", "30")
	t.Setenv("SITE_TIMEOUT", "2500ms")
	t.Setenv("DEFAULT_COUNT", "6")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load(nil)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.LLMEnabled())
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.SiteTimeout)
	assert.Equal(t, 6, cfg.DefaultCount)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadInvalidFallsBack(t *testing.T) {
	t.Setenv("DEFAULT_COUNT", "many")
	t.Setenv("SITE_TIMEOUT", "-3s")
	t.Setenv("GEMINI_API_KEY", "your_api_key_here")

	cfg := Load(logger.Nop())

	assert.Equal(t, 4, cfg.DefaultCount)
	assert.Equal(t, 10*time.Second, cfg.SiteTimeout)
	assert.False(t, cfg.LLMEnabled())
}
