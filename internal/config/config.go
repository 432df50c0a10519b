package config

import (
	"os"
	"strconv"

	"boxplot/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Engine   EngineConfig
	Chart    ChartConfig
	LogLevel string
}

// DatabaseConfig holds database connection settings. An empty URL selects the
// in-memory analysis store.
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a Postgres store is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	GinMode        string
	MaxUploadBytes int64
	RecentLimit    int
}

// EngineConfig holds summary computation settings
type EngineConfig struct {
	BatchConcurrency int64
	MemoCapacity     int
}

// ChartConfig holds the default chart size in points
type ChartConfig struct {
	Width  float64
	Height float64
}

const (
	defaultMaxUploadBytes = 5 << 20
	defaultRecentLimit    = 10
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Server:   *loadServerConfig(),
		Engine:   *loadEngineConfig(),
		Chart:    *loadChartConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		GinMode:        getEnvOrDefault("GIN_MODE", "release"),
		MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		RecentLimit:    getEnvIntOrDefault("RECENT_LIMIT", defaultRecentLimit),
	}
}

func loadEngineConfig() *EngineConfig {
	return &EngineConfig{
		BatchConcurrency: getEnvInt64OrDefault("BATCH_CONCURRENCY", 4),
		MemoCapacity:     getEnvIntOrDefault("MEMO_CAPACITY", 256),
	}
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		Width:  getEnvFloatOrDefault("CHART_WIDTH", 800),
		Height: getEnvFloatOrDefault("CHART_HEIGHT", 400),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Engine.BatchConcurrency <= 0 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be positive")
	}
	if config.Engine.MemoCapacity < 0 {
		return errors.ConfigInvalid("MEMO_CAPACITY cannot be negative")
	}
	if config.Chart.Width <= 0 || config.Chart.Height <= 0 {
		return errors.ConfigInvalid("CHART_WIDTH and CHART_HEIGHT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
