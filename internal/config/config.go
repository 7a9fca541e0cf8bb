// Package config provides application configuration through environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBDriver is the database driver to use (e.g., "postgres", "mysql").
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// RedisURL is the connection URL of the revocation cache (redis://host:port/db).
	RedisURL string
	// RevocationTimeout bounds every round-trip to the revocation cache.
	RevocationTimeout time.Duration

	// JWTSecret is the HMAC key used to sign and verify access tokens.
	// When JWTSecretKMSKeyURI is set it holds the base64 ciphertext of the key.
	JWTSecret string
	// JWTSecretKMSKeyURI is the gocloud.dev secrets URI used to decrypt JWTSecret.
	JWTSecretKMSKeyURI string
	// AuthTokenExpiration is the lifetime of an access token.
	AuthTokenExpiration time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// RateLimitLoginEnabled indicates whether rate limiting for login and registration is enabled.
	RateLimitLoginEnabled bool
	// RateLimitLoginRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitLoginRequestsPerSec float64
	// RateLimitLoginBurst is the burst size for login rate limiting.
	RateLimitLoginBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration
		DBDriver: env.GetString("DB_DRIVER", "mysql"),
		DBConnectionString: env.GetString(
			"DB_CONNECTION_STRING",
			"user:password@tcp(localhost:3306)/tiny_note?parseTime=true",
		),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 10),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME_MINUTES", 5, time.Minute),

		// Revocation cache
		RedisURL:          env.GetString("REDIS_URL", "redis://localhost:6379/0"),
		RevocationTimeout: env.GetDuration("REVOCATION_TIMEOUT_MILLISECONDS", 500, time.Millisecond),

		// Auth
		JWTSecret:           env.GetString("JWT_SECRET", ""),
		JWTSecretKMSKeyURI:  env.GetString("JWT_SECRET_KMS_KEY_URI", ""),
		AuthTokenExpiration: env.GetDuration("AUTH_TOKEN_EXPIRATION_MINUTES", 60, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Rate limiting for login and registration (IP-based, unauthenticated)
		RateLimitLoginEnabled:        env.GetBool("RATE_LIMIT_LOGIN_ENABLED", true),
		RateLimitLoginRequestsPerSec: env.GetFloat64("RATE_LIMIT_LOGIN_REQUESTS_PER_SEC", 5.0),
		RateLimitLoginBurst:          env.GetInt("RATE_LIMIT_LOGIN_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "tiny_note"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.AuthTokenExpiration <= 0 {
		return fmt.Errorf("AUTH_TOKEN_EXPIRATION_MINUTES must be positive")
	}
	if c.RevocationTimeout <= 0 {
		return fmt.Errorf("REVOCATION_TIMEOUT_MILLISECONDS must be positive")
	}
	return nil
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
