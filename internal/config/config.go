package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Tracker  TrackerConfig
	HRM      HRMConfig
	Sync     SyncConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// TrackerConfig holds the time-tracking provider API configuration
type TrackerConfig struct {
	BaseURL string
	APIKey  string
}

// HRMConfig holds the HR system API configuration
type HRMConfig struct {
	BaseURL string
	APIKey  string
}

// SyncConfig holds reconciliation run configuration
type SyncConfig struct {
	GraceMinutes  int
	RunHour       int // UTC hour at which the daily run fires
	IncludeAbsent bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_sync"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// External source configuration
	config.Tracker = TrackerConfig{
		BaseURL: getEnv("TRACKER_BASE_URL", ""),
		APIKey:  getEnv("TRACKER_API_KEY", ""),
	}
	config.HRM = HRMConfig{
		BaseURL: getEnv("HRM_BASE_URL", ""),
		APIKey:  getEnv("HRM_API_KEY", ""),
	}

	// Reconciliation configuration
	grace, err := strconv.Atoi(getEnv("SYNC_GRACE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_GRACE_MINUTES: %w", err)
	}
	runHour, err := strconv.Atoi(getEnv("SYNC_RUN_HOUR", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_RUN_HOUR: %w", err)
	}

	config.Sync = SyncConfig{
		GraceMinutes:  grace,
		RunHour:       runHour,
		IncludeAbsent: getEnv("SYNC_INCLUDE_ABSENT", "true") == "true",
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Tracker.BaseURL == "" {
		return fmt.Errorf("TRACKER_BASE_URL is required")
	}
	if c.HRM.BaseURL == "" {
		return fmt.Errorf("HRM_BASE_URL is required")
	}
	if c.Sync.GraceMinutes < 0 {
		return fmt.Errorf("SYNC_GRACE_MINUTES must not be negative")
	}
	if c.Sync.RunHour < 0 || c.Sync.RunHour > 23 {
		return fmt.Errorf("SYNC_RUN_HOUR must be between 0 and 23")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
