// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// Upstream KPI API settings
	APIBaseURL          string `mapstructure:"apibaseurl"`
	APIKey              string `mapstructure:"apikey"`
	FetchTimeoutSeconds int    `mapstructure:"fetchtimeoutseconds"`

	// Refresh / pipeline settings
	PollIntervalSeconds int `mapstructure:"pollintervalseconds"`
	ForecastHorizonDays int `mapstructure:"forecasthorizondays"`
	ReportWindowDays    int `mapstructure:"reportwindowdays"`
	DetailWindowDays    int `mapstructure:"detailwindowdays"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		// Set defaults
		v.SetDefault("appname", "panorama")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("apibaseurl", "")
		v.SetDefault("fetchtimeoutseconds", 10)
		v.SetDefault("pollintervalseconds", 150)
		v.SetDefault("forecasthorizondays", 7)
		v.SetDefault("reportwindowdays", 14)
		v.SetDefault("detailwindowdays", 30)
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)

		// Bind environment variables
		v.BindEnv("appname", "PANORAMA_APP_NAME")
		v.BindEnv("appport", "PANORAMA_APP_PORT")
		v.BindEnv("environment", "PANORAMA_ENV")
		v.BindEnv("loglevel", "PANORAMA_LOG_LEVEL")
		v.BindEnv("apibaseurl", "PANORAMA_API_BASE_URL")
		v.BindEnv("apikey", "PANORAMA_API_KEY")
		v.BindEnv("fetchtimeoutseconds", "PANORAMA_FETCH_TIMEOUT_SECONDS")
		v.BindEnv("pollintervalseconds", "PANORAMA_POLL_INTERVAL_SECONDS")
		v.BindEnv("forecasthorizondays", "PANORAMA_FORECAST_HORIZON_DAYS")
		v.BindEnv("reportwindowdays", "PANORAMA_REPORT_WINDOW_DAYS")
		v.BindEnv("detailwindowdays", "PANORAMA_DETAIL_WINDOW_DAYS")
		v.BindEnv("logsdir", "PANORAMA_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "PANORAMA_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "PANORAMA_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "PANORAMA_LOGS_MAX_AGE_IN_DAYS")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.PollIntervalSeconds <= 0 {
		return fmt.Errorf("invalid poll interval: %d", c.PollIntervalSeconds)
	}
	if c.ForecastHorizonDays <= 0 {
		return fmt.Errorf("invalid forecast horizon: %d", c.ForecastHorizonDays)
	}
	if c.ReportWindowDays <= 0 || c.DetailWindowDays <= 0 {
		return fmt.Errorf("invalid window configuration: report=%d detail=%d",
			c.ReportWindowDays, c.DetailWindowDays)
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// HasAPIBaseURL reports whether an upstream API is configured. Without one
// the service runs entirely against the deterministic mock source.
func (c *Config) HasAPIBaseURL() bool {
	return c.APIBaseURL != ""
}

// FetchTimeout returns the per-request timeout for upstream fetches.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// PollInterval returns the refresh cadence for the snapshot scheduler.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// GetLogLevel returns the log level as a string.
func (c *Config) GetLogLevel() string {
	return string(c.LogLevel)
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
