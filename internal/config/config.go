package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Reminder ReminderConfig
	Portal   PortalConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ReminderConfig tunes the obligation scanner and the dispatch throttle.
type ReminderConfig struct {
	// UpcomingThresholdDays is how many days ahead the scanner reports an
	// installment as upcoming.
	UpcomingThresholdDays int
	// Cooldown is the minimum interval between repeated reminders for the
	// same installment.
	Cooldown time.Duration
	// DispatchDelay is the fixed pause between consecutive outbound messages.
	DispatchDelay time.Duration
	// CronSpec schedules the daily reminder sweep. Empty disables the sweep.
	CronSpec string
	// CountryCode replaces a leading 0 when sanitizing phone numbers.
	CountryCode string
	// Currency is the display label used in outbound message amounts.
	Currency string
}

// PortalConfig holds the customer portal link settings.
type PortalConfig struct {
	// FernetKey is a base64 fernet key used to seal shareable portal link
	// tokens. Empty means sealed links are minted with an ephemeral key.
	FernetKey string
	// LinkTTL is how long a sealed portal link stays valid.
	LinkTTL time.Duration
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/installment_manager.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Reminder: ReminderConfig{
			UpcomingThresholdDays: getEnvInt("REMINDER_UPCOMING_DAYS", 3),
			Cooldown:              getEnvDuration("REMINDER_COOLDOWN", 24*time.Hour),
			DispatchDelay:         getEnvDuration("REMINDER_DISPATCH_DELAY", 500*time.Millisecond),
			CronSpec:              getEnv("REMINDER_CRON", "0 9 * * *"),
			CountryCode:           getEnv("REMINDER_COUNTRY_CODE", "964"),
			Currency:              getEnv("REMINDER_CURRENCY", "IQD"),
		},
		Portal: PortalConfig{
			FernetKey: getEnv("PORTAL_FERNET_KEY", ""),
			LinkTTL:   getEnvDuration("PORTAL_LINK_TTL", 7*24*time.Hour),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration gets a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
