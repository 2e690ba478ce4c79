// Package config provides configuration management for the recipefinder application.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting:
// every problem found is reported at once instead of failing on the first one.
package config

import (
	"fmt"
	// `os` package provides operating system functionalities, like reading environment variables.
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends understood by STORAGE_BACKEND.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret           string        // Secret key for signing JWTs
	AccessTokenDuration time.Duration // Lifetime of issued tokens
	Issuer              string        // `iss` claim written into and required from tokens
	BcryptCost          int           // Work factor for password hashing
}

// BucketConfig describes one admission gate: it holds at most Capacity tokens and
// gains Refill tokens every Interval, added continuously rather than in steps.
type BucketConfig struct {
	Capacity int
	Refill   int
	Interval time.Duration
}

// RateLimitConfig holds one bucket per guarded endpoint class.
type RateLimitConfig struct {
	Register         BucketConfig
	Login            BucketConfig
	CredentialChange BucketConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port               string // Port for the HTTP server
	LogLevel           string
	CORSAllowedOrigins []string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Storage   string
	DB        *PoolConfig // nil when Storage is StorageMemory
	Auth      *AuthConfig
	RateLimit *RateLimitConfig
	Server    *ServerConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set or blank.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
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

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m", "1h30s".
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

// clampPoolSize keeps pool sizes between 5 and 100, reporting any adjustment.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100", varName, size))
		return 100
	}
	return size
}

// loadBucket reads RATE_LIMIT_<CLASS>_{CAPACITY,REFILL,INTERVAL}.
func loadBucket(class string, def BucketConfig, errors *[]string) BucketConfig {
	prefix := "RATE_LIMIT_" + class + "_"
	b := BucketConfig{
		Capacity: getOptionalEnvInt(prefix+"CAPACITY", def.Capacity, errors),
		Refill:   getOptionalEnvInt(prefix+"REFILL", def.Refill, errors),
		Interval: getOptionalEnvDuration(prefix+"INTERVAL", def.Interval, errors),
	}
	if b.Capacity < 1 {
		*errors = append(*errors, fmt.Sprintf("%sCAPACITY must be at least 1, got %d", prefix, b.Capacity))
	}
	if b.Refill < 1 {
		*errors = append(*errors, fmt.Sprintf("%sREFILL must be at least 1, got %d", prefix, b.Refill))
	}
	if b.Interval <= 0 {
		*errors = append(*errors, fmt.Sprintf("%sINTERVAL must be positive, got %s", prefix, b.Interval))
	}
	return b
}

// DefaultBucket is ten calls per minute, refilled greedily.
var DefaultBucket = BucketConfig{Capacity: 10, Refill: 10, Interval: time.Minute}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	storage := strings.ToLower(getOptionalEnv("STORAGE_BACKEND", StoragePostgres))
	if storage != StoragePostgres && storage != StorageMemory {
		errors = append(errors, fmt.Sprintf("invalid value for STORAGE_BACKEND: expected %q or %q, got %q", StoragePostgres, StorageMemory, storage))
	}

	// Database Configuration, only needed when records live in PostgreSQL.
	var dbConfig *PoolConfig
	if storage == StoragePostgres {
		dbConfig = &PoolConfig{
			User:     getRequiredEnv("DB_USER", &errors),
			Password: getRequiredEnv("DB_PASSWORD", &errors),
			DBName:   getRequiredEnv("DB_NAME", &errors),
			Host:     getOptionalEnv("DB_HOST", "localhost"),
			Port:     getOptionalEnvInt("DB_PORT", 5432, &errors),
		}
		dbConfig.MaxSize = clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors)
	}

	// Auth Configuration
	authConfig := &AuthConfig{
		JWTSecret:           getRequiredEnv("JWT_SECRET", &errors),
		AccessTokenDuration: getOptionalEnvDuration("JWT_ACCESS_TOKEN_DURATION", 24*time.Hour, &errors),
		Issuer:              getOptionalEnv("JWT_ISSUER", "recipefinder"),
		BcryptCost:          getOptionalEnvInt("BCRYPT_COST", 10, &errors),
	}
	if authConfig.AccessTokenDuration <= 0 {
		errors = append(errors, "JWT_ACCESS_TOKEN_DURATION must be positive")
	}
	if authConfig.BcryptCost < 4 || authConfig.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("BCRYPT_COST must be between 4 and 31, got %d", authConfig.BcryptCost))
	}

	rateLimitConfig := &RateLimitConfig{
		Register:         loadBucket("REGISTER", DefaultBucket, &errors),
		Login:            loadBucket("LOGIN", DefaultBucket, &errors),
		CredentialChange: loadBucket("PASSWORD", DefaultBucket, &errors),
	}

	// Server Configuration
	serverConfig := &ServerConfig{
		// Kept as a string because it goes straight into the listen address (":8080").
		Port:               getOptionalEnv("PORT", "8080"),
		LogLevel:           getOptionalEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		Storage:   storage,
		DB:        dbConfig,
		Auth:      authConfig,
		RateLimit: rateLimitConfig,
		Server:    serverConfig,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DSN renders the pool configuration as a postgres:// URL understood by both
// pgx and golang-migrate.
func (c *PoolConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName,
	)
}
