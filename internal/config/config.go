package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the service configuration read from the environment
type Config struct {
	Port     string
	BasePath string

	LogLevel string
	LogFile  string

	Database DatabaseConfig
	RabbitMQ RabbitMQConfig

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AdminEmail    string
	AdminPassword string

	SentryDSN string

	ProviderTimeout time.Duration
	ExportsDir      string
	CORSOrigins     []string

	TokenCleanupSchedule string
	LogCleanupSchedule   string
	LogRetention         time.Duration
	HealthCheckSchedule  string
}

// DatabaseConfig holds postgres connection parameters
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RabbitMQConfig holds broker connection parameters
type RabbitMQConfig struct {
	Host string
	Port string
	User string
	Pass string
}

// Load reads .env (when present) and the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		BasePath: getEnv("BASE_PATH", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", ""),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RabbitMQ: RabbitMQConfig{
			Host: getEnv("RABBITMQ_HOST", "localhost"),
			Port: getEnv("RABBITMQ_PORT", "5672"),
			User: getEnv("RABBITMQ_USER", "guest"),
			Pass: getEnv("RABBITMQ_PASS", "guest"),
		},
		JWTSecret:            getEnv("JWT_SECRET", "dev_jwt_secret_change_in_production"),
		AccessTokenTTL:       getEnvAsDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL:      getEnvAsDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		AdminEmail:           getEnv("ADMIN_EMAIL", "admin@content-multiplier.com"),
		AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
		SentryDSN:            getEnv("SENTRY_DSN", ""),
		ProviderTimeout:      getEnvAsDuration("PROVIDER_TIMEOUT", 2*time.Minute),
		ExportsDir:           getEnv("EXPORTS_DIR", "exports"),
		CORSOrigins:          getEnvAsList("CORS_ORIGINS", []string{"*"}),
		TokenCleanupSchedule: getEnv("TOKEN_CLEANUP_SCHEDULE", "@daily"),
		LogCleanupSchedule:   getEnv("LOG_CLEANUP_SCHEDULE", "@every 6h"),
		LogRetention:         getEnvAsDuration("LOG_RETENTION", 7*24*time.Hour),
		HealthCheckSchedule:  getEnv("HEALTH_CHECK_SCHEDULE", ""),
	}
}

// Complete reports whether every required database parameter is set
func (d DatabaseConfig) Complete() bool {
	return d.Host != "" && d.Port != "" && d.User != "" && d.Password != "" && d.Name != ""
}

// getEnv gets environment variable with fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		logrus.Warnf("Invalid duration for %s (%q), using %s", key, raw, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
