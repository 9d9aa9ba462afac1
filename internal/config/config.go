package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client application
type Config struct {
	// API Configuration
	API APIConfig

	// Storage Configuration
	Storage StorageConfig

	// Logging Configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// APIConfig holds backend API configuration
type APIConfig struct {
	BaseURL    string        // Base URL of the backend API
	Timeout    time.Duration // Per-request timeout
	EnableMock bool          // Use the built-in mock API server
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Prefix     string // Key prefix for all persisted entries
	Dir        string // Directory for the state file, empty = user config dir
	UseKeyring bool   // Store tokens in the OS keychain instead of the state file
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level   string
	Format  string // json, console
	Enabled bool   // Request/response diagnostic logging
}

// AppConfig holds application identity
type AppConfig struct {
	Name    string
	Version string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	baseURL := os.Getenv("KURAKAMPUS_API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("KURAKAMPUS_API_TIMEOUT"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	prefix := os.Getenv("KURAKAMPUS_STORAGE_PREFIX")
	if prefix == "" {
		prefix = "kurakampus_"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	appName := os.Getenv("KURAKAMPUS_APP_NAME")
	if appName == "" {
		appName = "KuraKampus"
	}

	appVersion := os.Getenv("KURAKAMPUS_APP_VERSION")
	if appVersion == "" {
		appVersion = "1.0.0"
	}

	return &Config{
		API: APIConfig{
			BaseURL:    baseURL,
			Timeout:    timeout,
			EnableMock: boolEnv("KURAKAMPUS_ENABLE_MOCK"),
		},
		Storage: StorageConfig{
			Prefix:     prefix,
			Dir:        os.Getenv("KURAKAMPUS_STORAGE_DIR"),
			UseKeyring: boolEnv("KURAKAMPUS_USE_KEYRING"),
		},
		Logging: LoggingConfig{
			Level:   logLevel,
			Format:  logFormat,
			Enabled: boolEnv("KURAKAMPUS_ENABLE_LOGGING"),
		},
		App: AppConfig{
			Name:    appName,
			Version: appVersion,
		},
	}, nil
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
