package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("PROVIDER_BURST", "")

	cfg := Load()

	assert.Equal(t, "https://api.spoonacular.com/recipes", cfg.Provider.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 10, cfg.Provider.Burst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("PROVIDER_RATE_PER_SECOND", "2.5")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 2.5, cfg.Provider.RatePerSecond)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Tracing(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

	cfg := Load()

	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 0.25, cfg.Tracing.SampleRatio)
}
