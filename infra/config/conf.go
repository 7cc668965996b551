package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds process wide helpers shared across handlers.
type Config struct {
	Validator *validator.Validate
}

// AppConfig represents the application configuration
type AppConfig struct {
	Port     string
	Database string

	OpenSearchURL  string
	OpenSearchUser string
	OpenSearchPass string
	EnableIndexing bool

	LoggingLevel string

	CulqiSecretKey  string
	CulqiBaseURL    string
	AppEnv          string
	DevEmail        string
	LogRequests     bool
	CapturePayments bool
}

var (
	instance          *Config
	appConfigInstance *AppConfig
)

func App() *Config {
	if instance == nil {
		instance = &Config{
			Validator: validator.New(),
		}
	}
	return instance
}

// GetAppConfig returns the application configuration
func GetAppConfig() *AppConfig {
	if appConfigInstance == nil {
		appConfigInstance = &AppConfig{
			Port:     GetEnv("APP_PORT", "9999"),
			Database: GetEnv("DATABASE_PATH", "culqi-gateway.db"),

			OpenSearchURL:  GetEnv("OPENSEARCH_URL", ""),
			OpenSearchUser: GetEnv("OPENSEARCH_USER", ""),
			OpenSearchPass: GetEnv("OPENSEARCH_PASSWORD", ""),
			EnableIndexing: GetBoolEnv("ENABLE_OPENSEARCH_INDEXING", false),

			LoggingLevel: GetEnv("LOGGING_LEVEL", "info"),

			CulqiSecretKey:  GetEnv("CULQI_SECRET_KEY", ""),
			CulqiBaseURL:    GetEnv("CULQI_API_URL", ""),
			AppEnv:          GetEnv("APP_ENV", ""),
			DevEmail:        GetEnv("DEV_EMAIL", ""),
			LogRequests:     GetBoolEnv("LOG_CULQI_REQUESTS", true),
			CapturePayments: GetBoolEnv("CAPTURE_PAYMENTS", true),
		}
	}
	return appConfigInstance
}

// Validate checks that the configuration can actually start the service.
func (c *AppConfig) Validate() error {
	if c.CulqiSecretKey == "" {
		return errors.New("CULQI_SECRET_KEY is required")
	}
	return nil
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolEnv returns the boolean value of an environment variable or a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
