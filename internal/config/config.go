package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-recipe-api/internal/database"
	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port        int      `json:"port"`
	Host        string   `json:"host"`
	Environment string   `json:"environment"`
	CORSOrigins []string `json:"cors_origins"`

	// Database configuration
	DBDriver    string `json:"db_driver"`
	DBPath      string `json:"db_path"`
	DatabaseURL string `json:"database_url"`
	DBHost      string `json:"db_host"`
	DBPort      string `json:"db_port"`
	DBName      string `json:"db_name"`
	DBUser      string `json:"db_user"`
	DBPassword  string `json:"db_password"`
	DBSSLMode   string `json:"db_sslmode"`

	// Image storage configuration
	StorageBackend string `json:"storage_backend"`
	MediaRoot      string `json:"media_root"`
	MediaURL       string `json:"media_url"`
	S3Bucket       string `json:"s3_bucket"`
	S3PublicURL    string `json:"s3_public_url"`
	AWSRegion      string `json:"aws_region"`
	MaxUploadMB    int    `json:"max_upload_mb"`

	// Rate limiting configuration
	RedisURL        string        `json:"redis_url"`
	RateLimit       int           `json:"rate_limit"`
	RateLimitWindow time.Duration `json:"rate_limit_window"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret     string `json:"jwt_secret"`
	OAuthClientID string `json:"oauth_client_id"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, DBDriver: %s, DBPath: %s, DatabaseURL: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], StorageBackend: %s, MediaRoot: %s, S3Bucket: %s, RedisURL: %s, RateLimit: %d/%s, LogLevel: %s, JWTSecret: [REDACTED], OAuthClientID: %s}",
		c.Port, c.Host, c.Environment, c.DBDriver, c.DBPath, maskDatabaseURL(c.DatabaseURL), c.DBHost, c.DBName, c.DBUser,
		c.StorageBackend, c.MediaRoot, c.S3Bucket, maskDatabaseURL(c.RedisURL), c.RateLimit, c.RateLimitWindow, c.LogLevel, c.OAuthClientID)
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		// Replace password with [REDACTED]
		parsed.User = url.UserPassword(parsed.User.Username(), "[REDACTED]")
	}

	return parsed.String()
}

// Database builds the connection settings consumed by database.InitDatabase
func (c *Config) Database() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:   c.DBDriver,
		URL:      c.DatabaseURL,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
		Path:     c.DBPath,
	}
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It also validates formats like DatabaseURL and the storage backend
// Returns an error if any required environment variable is missing or invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	dbURL := GetEnvWithDefault("DATABASE_URL", "")
	if dbURL != "" {
		// validate URL with net/url
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	storage := strings.ToLower(GetEnvWithDefault("STORAGE_BACKEND", StorageLocal))
	bucket := GetEnvWithDefault("S3_BUCKET_NAME", "")
	switch storage {
	case StorageLocal:
	case StorageS3:
		if bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET_NAME environment variable is required when STORAGE_BACKEND is s3")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND: %s (supported: local, s3)", storage)
	}

	rateLimit := GetEnvAsType("RATE_LIMIT_REQUESTS", 120)
	if rateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", rateLimit)
	}
	windowSeconds := GetEnvAsType("RATE_LIMIT_WINDOW_SECONDS", 60)
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive, got %d", windowSeconds)
	}

	config := &Config{
		Port:        port,
		Host:        GetEnvWithDefault("APP_HOST", "localhost"),
		Environment: GetEnvWithDefault("APP_ENV", "development"),
		CORSOrigins: splitList(GetEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		DBDriver:    driver,
		DBPath:      GetEnvWithDefault("DB_PATH", "recipes.sqlite"),
		DatabaseURL: dbURL,
		DBHost:      GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:      GetEnvWithDefault("DB_PORT", "5432"),
		DBName:      GetEnvWithDefault("DB_NAME", "recipes"),
		DBUser:      GetEnvWithDefault("DB_USER", "user"),
		DBPassword:  GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:   GetEnvWithDefault("DB_SSLMODE", "disable"),

		StorageBackend: storage,
		MediaRoot:      GetEnvWithDefault("MEDIA_ROOT", "media"),
		MediaURL:       GetEnvWithDefault("MEDIA_URL", "/media/"),
		S3Bucket:       bucket,
		S3PublicURL:    GetEnvWithDefault("S3_PUBLIC_URL", ""),
		AWSRegion:      GetEnvWithDefault("AWS_REGION", "us-east-1"),
		MaxUploadMB:    GetEnvAsType("MAX_UPLOAD_SIZE_MB", 10),

		RedisURL:        GetEnvWithDefault("REDIS_URL", ""),
		RateLimit:       rateLimit,
		RateLimitWindow: time.Duration(windowSeconds) * time.Second,

		LogLevel:      GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:     GetEnvWithDefault("JWT_SECRET", "secret"),
		OAuthClientID: GetEnvWithDefault("OAUTH_CLIENT_ID", "recipe-web"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			log.Warnf("Environment variable %s is not an integer, using default value", key)
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			log.Warnf("Environment variable %s is not a boolean, using default value", key)
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
