package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the Intervals.icu API root used unless overridden.
const DefaultBaseURL = "https://intervals.icu/api/v1"

// DefaultTimeout applies to every API request.
const DefaultTimeout = 30 * time.Second

// Config holds application configuration
type Config struct {
	// Intervals.icu credentials
	AthleteID string
	APIKey    string

	// API endpoint configuration
	BaseURL string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	// Also try to load from common locations
	homeDir, _ := os.UserHomeDir()
	envPaths := []string{
		".env",
		filepath.Join(homeDir, ".intervals-mcp", ".env"),
		"/etc/intervals-mcp/.env",
	}

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	return &Config{
		AthleteID: os.Getenv("INTERVALS_ICU_ATHLETE_ID"),
		APIKey:    os.Getenv("INTERVALS_ICU_API_KEY"),
		BaseURL:   getEnvWithDefault("INTERVALS_ICU_BASE_URL", DefaultBaseURL),
		Timeout:   getTimeout(),
	}
}

// Validate checks that the credentials required for every API call are set.
func (c *Config) Validate() error {
	if c.AthleteID == "" {
		return fmt.Errorf("INTERVALS_ICU_ATHLETE_ID environment variable is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("INTERVALS_ICU_API_KEY environment variable is required")
	}
	return nil
}

func getTimeout() time.Duration {
	value := os.Getenv("INTERVALS_ICU_TIMEOUT_SECONDS")
	if value == "" {
		return DefaultTimeout
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		return DefaultTimeout
	}
	return time.Duration(secs) * time.Second
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
