package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"panorama/internal/config"
	"panorama/internal/logging"
)

func TestNewLoggerDevelopment(t *testing.T) {
	cfg := &config.Config{
		AppName:     "panorama",
		Environment: config.Development,
		LogLevel:    config.LogLevelDebug,
	}

	logger := logging.NewLogger(cfg)
	assert.NotNil(t, logger)
	assert.True(t, logger.Enabled(nil, -4), "debug level must be enabled")
}

func TestNewLoggerProduction(t *testing.T) {
	cfg := &config.Config{
		AppName:          "panorama",
		Environment:      config.Production,
		LogLevel:         config.LogLevelWarn,
		LogsDirectory:    t.TempDir(),
		LogsMaxSizeInMb:  1,
		LogsMaxBackups:   1,
		LogsMaxAgeInDays: 1,
	}

	logger := logging.NewLogger(cfg)
	assert.NotNil(t, logger)
	assert.False(t, logger.Enabled(nil, 0), "info must be filtered at warn level")
	assert.True(t, logger.Enabled(nil, 4))
}
