package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Google   GoogleConfig
	App      AppConfig
	Sync     SyncConfig
	Admin    AdminConfig
	JWT      JWTConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// GoogleConfig holds the Sheets and Calendar access configuration.
type GoogleConfig struct {
	ServiceAccountFile string
	SpreadsheetID      string
	RangeName          string
	Timezone           string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// SyncConfig controls the rota sync pipeline.
type SyncConfig struct {
	// WindowDays is how far into the past parsed rota rows are still
	// considered relevant.
	WindowDays int
	// Interval between scheduled sync runs. Zero disables the scheduler.
	Interval time.Duration
	// Workers bounds how many staff members sync concurrently.
	Workers int
	// RosterFile is the YAML file listing staff members and calendar shares.
	RosterFile string
}

// AdminConfig holds the credentials for the control API.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; real env vars win.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "rotasync"),
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

	// Google API configuration
	config.Google = GoogleConfig{
		ServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		SpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		RangeName:          getEnv("GOOGLE_RANGE_NAME", "Sheet1!A:M"),
		Timezone:           getEnv("GOOGLE_TIMEZONE", "Europe/Dublin"),
	}

	// Sync configuration
	windowDays, err := strconv.Atoi(getEnv("SYNC_WINDOW_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_WINDOW_DAYS: %w", err)
	}
	syncInterval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("SYNC_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_WORKERS: %w", err)
	}

	config.Sync = SyncConfig{
		WindowDays: windowDays,
		Interval:   syncInterval,
		Workers:    workers,
		RosterFile: getEnv("SYNC_ROSTER_FILE", "config/staff.yaml"),
	}

	// Admin API configuration
	config.Admin = AdminConfig{
		Email:        getEnv("ADMIN_EMAIL", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
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
	if c.Google.ServiceAccountFile == "" {
		return fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_FILE is required")
	}
	if c.Google.SpreadsheetID == "" {
		return fmt.Errorf("GOOGLE_SPREADSHEET_ID is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Admin.Email == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if c.Sync.WindowDays <= 0 {
		return fmt.Errorf("SYNC_WINDOW_DAYS must be positive")
	}
	if c.Sync.Workers <= 0 {
		return fmt.Errorf("SYNC_WORKERS must be positive")
	}
	if _, err := time.LoadLocation(c.Google.Timezone); err != nil {
		return fmt.Errorf("invalid GOOGLE_TIMEZONE: %w", err)
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
