package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"betmetric/internal/logger"
)

// Config holds application configuration
type Config struct {
	Env string

	// Server
	Port string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Directory holding the golang-migrate SQL files
	MigrationsPath string

	// Pipeline endpoints (operational triggers guarded by X-API-Key)
	PipelineAPIKey string

	// Background classification sweep
	SweepEnabled  bool
	SweepSchedule string

	// Prometheus scrape endpoint
	MetricsEnabled bool
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using process environment")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "betmetric"),
		DBPassword: getEnv("DB_PASSWORD", "betmetric"),
		DBName:     getEnv("DB_NAME", "betmetric"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "betmetric.db"),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		SweepEnabled:  getBool("SWEEP_ENABLED", true),
		SweepSchedule: getEnv("SWEEP_SCHEDULE", "0 */15 * * * *"),

		MetricsEnabled: getBool("METRICS_ENABLED", true),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			logger.Get().Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBool parses a boolean environment variable, falling back to the default
// when the variable is unset or malformed.
func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Get().Warnf("invalid %s value %q, falling back to %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
