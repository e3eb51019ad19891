// Package config provides configuration management for the task manager.
// Values come from environment variables (optionally seeded from a .env file by main),
// with support for required variables, default values, and collective error reporting:
// every problem is gathered and reported at once instead of failing on the first one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers understood by the server.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// DatabaseConfig holds the connection settings for the persistent store.
type DatabaseConfig struct {
	Driver   string // postgres or memory
	URL      string // connection string, required for postgres
	MaxConns int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret  string        // Secret key for signing tokens
	TokenTTL   time.Duration // Lifetime of a session token, 0 means no expiry
	BcryptCost int
}

// MailConfig holds settings for the notification sink.
type MailConfig struct {
	APIKey     string
	Domain     string
	From       string
	Workers    int
	QueueSize  int
	MaxRetries int
}

// Enabled reports whether the Mailgun provider is configured.
func (m *MailConfig) Enabled() bool {
	return m.APIKey != "" && m.Domain != ""
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string // Port for the HTTP server
	AllowedOrigins []string
	LogLevel       string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Database *DatabaseConfig
	Auth     *AuthConfig
	Mail     *MailConfig
	Server   *ServerConfig
}

// getRequiredEnv returns a required environment variable, recording an error when it is unset or empty.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv returns an optional environment variable or its default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt parses an optional integer variable.
// Uses defaultValue if not set or if parsing fails. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration parses an optional duration variable such as "15m" or "168h".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampInt keeps value within [lo, hi], recording an error when it had to move it.
func clampInt(value, lo, hi int, varName string, errors *[]string) int {
	if value < lo {
		*errors = append(*errors, fmt.Sprintf("%s (%d) is less than minimum %d", varName, value, lo))
		return lo
	}
	if value > hi {
		*errors = append(*errors, fmt.Sprintf("%s (%d) is greater than maximum %d", varName, value, hi))
		return hi
	}
	return value
}

// splitList splits a comma separated list and drops empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database
	driver := strings.ToLower(getOptionalEnv("STORE_DRIVER", StoreDriverPostgres))
	var dbURL string
	switch driver {
	case StoreDriverPostgres:
		dbURL = getRequiredEnv("DATABASE_URL", &errors)
	case StoreDriverMemory:
		dbURL = getOptionalEnv("DATABASE_URL", "")
	default:
		errors = append(errors, fmt.Sprintf("invalid value for STORE_DRIVER: %q (want %s or %s)", driver, StoreDriverPostgres, StoreDriverMemory))
	}
	maxConns := clampInt(getOptionalEnvInt("DB_MAX_CONNS", 10, &errors), 2, 100, "DB_MAX_CONNS", &errors)

	dbConfig := &DatabaseConfig{
		Driver:   driver,
		URL:      dbURL,
		MaxConns: maxConns,
	}

	// Auth
	jwtSecret := getRequiredEnv("JWT_SECRET", &errors)
	tokenTTL := getOptionalEnvDuration("TOKEN_TTL", 168*time.Hour, &errors) // 7 days
	if tokenTTL < 0 {
		errors = append(errors, fmt.Sprintf("TOKEN_TTL must not be negative, got %s", tokenTTL))
		tokenTTL = 0
	}
	// bcrypt accepts 4..31
	bcryptCost := clampInt(getOptionalEnvInt("BCRYPT_COST", 10, &errors), 4, 31, "BCRYPT_COST", &errors)

	authConfig := &AuthConfig{
		JWTSecret:  jwtSecret,
		TokenTTL:   tokenTTL,
		BcryptCost: bcryptCost,
	}

	// Mail
	mailConfig := &MailConfig{
		APIKey:     getOptionalEnv("MAILGUN_API_KEY", ""),
		Domain:     getOptionalEnv("MAILGUN_DOMAIN", ""),
		From:       getOptionalEnv("MAIL_FROM", "Task Manager <noreply@example.com>"),
		Workers:    clampInt(getOptionalEnvInt("MAILER_WORKERS", 2, &errors), 1, 32, "MAILER_WORKERS", &errors),
		QueueSize:  clampInt(getOptionalEnvInt("MAILER_QUEUE_SIZE", 64, &errors), 1, 10000, "MAILER_QUEUE_SIZE", &errors),
		MaxRetries: clampInt(getOptionalEnvInt("MAILER_MAX_RETRIES", 3, &errors), 0, 10, "MAILER_MAX_RETRIES", &errors),
	}

	// Server
	serverConfig := &ServerConfig{
		Port:           getOptionalEnv("PORT", "8080"),
		AllowedOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:       strings.ToLower(getOptionalEnv("LOG_LEVEL", "info")),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		Database: dbConfig,
		Auth:     authConfig,
		Mail:     mailConfig,
		Server:   serverConfig,
	}, nil
}
