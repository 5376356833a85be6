// Package config provides application configuration through environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage provider names.
const (
	StorageProviderMinio = "minio"
	StorageProviderBlob  = "blob"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the API server binds to.
	ServerHost string
	// ServerPort is the port the API server listens on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// AppEnv is "development" or "production". Production makes key and
	// configuration errors fatal instead of falling back.
	AppEnv string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// DBDriver is "postgres", "mysql" or empty to run without the audit store.
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// StorageProvider selects the object store implementation ("minio" or "blob").
	StorageProvider string
	// StorageEndpoint is the MinIO/S3 host without scheme.
	StorageEndpoint string
	// StoragePort is the MinIO/S3 port. Zero leaves the endpoint untouched.
	StoragePort int
	// StorageUseSSL selects https for the MinIO endpoint.
	StorageUseSSL bool
	// StorageAccessKey is the MinIO/S3 access key.
	StorageAccessKey string
	// StorageSecretKey is the MinIO/S3 secret key.
	StorageSecretKey string
	// StorageBucket is the single bucket every object lives in.
	StorageBucket string
	// StorageRegion is set explicitly so presigning never looks the region up.
	StorageRegion string
	// StorageBlobURL is the gocloud.dev/blob bucket URL used by the blob provider.
	StorageBlobURL string

	// MasterKey is the base64 master key, or the base64 KMS ciphertext when KMSKeyURI is set.
	MasterKey string
	// KMSKeyURI is a gocloud.dev/secrets keeper URI used to unwrap MasterKey.
	KMSKeyURI string

	// JWTSecret is the HS256 secret used to verify bearer tokens.
	JWTSecret string
	// JWTIssuer is the expected "iss" claim.
	JWTIssuer string
	// JWTTokenTTL is the default lifetime of tokens issued by the CLI.
	JWTTokenTTL time.Duration

	// RateLimitEnabled indicates whether per-requester rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the sustained request rate per requester.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size per requester.
	RateLimitBurst int

	// RateLimitPublicEnabled indicates whether the unauthenticated public route is rate limited by IP.
	RateLimitPublicEnabled bool
	// RateLimitPublicRequestsPerSec is the sustained request rate per client IP.
	RateLimitPublicRequestsPerSec float64
	// RateLimitPublicBurst is the burst size per client IP.
	RateLimitPublicBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv(godotenv.Load)
	return fromEnv()
}

// Reload re-reads the nearest .env file, letting its values replace ones
// already in the environment, and returns the resulting configuration.
// Used on SIGHUP.
func Reload() *Config {
	loadDotEnv(godotenv.Overload)
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		// Server
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),
		AppEnv:          env.GetString("APP_ENV", EnvDevelopment),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Audit database
		DBDriver:             env.GetString("DB_DRIVER", ""),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", ""),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Object store
		StorageProvider:  env.GetString("STORAGE_PROVIDER", StorageProviderMinio),
		StorageEndpoint:  env.GetString("STORAGE_ENDPOINT", "localhost"),
		StoragePort:      env.GetInt("STORAGE_PORT", 9000),
		StorageUseSSL:    env.GetBool("STORAGE_USE_SSL", false),
		StorageAccessKey: env.GetString("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: env.GetString("STORAGE_SECRET_KEY", ""),
		StorageBucket:    env.GetString("STORAGE_BUCKET", "uploads"),
		StorageRegion:    env.GetString("STORAGE_REGION", "us-east-1"),
		StorageBlobURL:   env.GetString("STORAGE_BLOB_URL", ""),

		// Master key
		MasterKey: env.GetString("MASTER_KEY", ""),
		KMSKeyURI: env.GetString("KMS_KEY_URI", ""),

		// Bearer tokens
		JWTSecret:   env.GetString("JWT_SECRET", ""),
		JWTIssuer:   env.GetString("JWT_ISSUER", "storage-gateway"),
		JWTTokenTTL: env.GetDuration("JWT_TOKEN_TTL_SECONDS", 3600, time.Second),

		// Rate limiting (authenticated routes, per requester)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// Rate limiting (public download route, per IP)
		RateLimitPublicEnabled:        env.GetBool("RATE_LIMIT_PUBLIC_ENABLED", true),
		RateLimitPublicRequestsPerSec: env.GetFloat64("RATE_LIMIT_PUBLIC_REQUESTS_PER_SEC", 5.0),
		RateLimitPublicBurst:          env.GetInt("RATE_LIMIT_PUBLIC_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "storage_gateway"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, EnvProduction)
}

// Validate checks settings that would otherwise fail late. Missing secrets
// are only reported in production; development falls back where it can.
func (c *Config) Validate() error {
	switch c.StorageProvider {
	case StorageProviderMinio:
		if c.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for the minio provider")
		}
	case StorageProviderBlob:
		if c.StorageBlobURL == "" {
			return fmt.Errorf("STORAGE_BLOB_URL is required for the blob provider")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_PROVIDER %q", c.StorageProvider)
	}

	switch c.DBDriver {
	case "", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDriver != "" && c.DBConnectionString == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is required when DB_DRIVER is set")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.IsProduction() && c.MasterKey == "" {
		return fmt.Errorf("MASTER_KEY is required in production")
	}

	return nil
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// loadDotEnv searches for a .env file from the current directory up to the
// filesystem root and loads the first one found.
func loadDotEnv(load func(filenames ...string) error) {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
