package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panorama/internal/config"
)

func TestGetConfigDefaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.GetConfig()

	assert.Equal(t, "panorama", cfg.AppName)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, config.Development, cfg.Environment)
	assert.Equal(t, config.LogLevelDebug, cfg.LogLevel)
	assert.False(t, cfg.HasAPIBaseURL())
	assert.Equal(t, 7, cfg.ForecastHorizonDays)
	assert.Equal(t, 14, cfg.ReportWindowDays)
	assert.Equal(t, 30, cfg.DetailWindowDays)
	assert.Equal(t, 150*time.Second, cfg.PollInterval())
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())
}

func TestGetConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("PANORAMA_ENV", config.Production)
	t.Setenv("PANORAMA_APP_PORT", "8080")
	t.Setenv("PANORAMA_API_BASE_URL", "https://kpi.example.com")
	t.Setenv("PANORAMA_FORECAST_HORIZON_DAYS", "14")
	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.GetConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.AppPort)
	assert.True(t, cfg.HasAPIBaseURL())
	assert.Equal(t, "https://kpi.example.com", cfg.APIBaseURL)
	assert.Equal(t, 14, cfg.ForecastHorizonDays)
}

func TestGetConfigIsCached(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	first := config.GetConfig()
	second := config.GetConfig()
	require.Same(t, first, second)
}

func TestEnvironmentHelpers(t *testing.T) {
	t.Setenv("PANORAMA_ENV", config.Test)
	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.GetConfig()
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}
