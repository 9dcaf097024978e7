// Package config provides application configuration through environment variables.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DataDir is the local directory holding the catalog documents.
	DataDir string
	// StorageURL is a gocloud blob URL (e.g., "file:///var/lib/librarian", "mem://").
	// When set it takes precedence over DataDir.
	StorageURL string
	// ItemsKey is the blob key of the items document.
	ItemsKey string
	// UsersKey is the blob key of the users document.
	UsersKey string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsFile is where the metrics registry is written in text format on exit.
	// Empty disables the dump.
	MetricsFile string

	// EncryptionKeyURI is a gocloud secrets URL used to encrypt the documents at rest.
	// Empty stores plaintext JSON.
	EncryptionKeyURI string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Storage
		DataDir:    env.GetString("DATA_DIR", "data"),
		StorageURL: env.GetString("STORAGE_URL", ""),
		ItemsKey:   env.GetString("ITEMS_KEY", "items.json"),
		UsersKey:   env.GetString("USERS_KEY", "users.json"),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "librarian"),
		MetricsFile:      env.GetString("METRICS_FILE", ""),

		// Encryption
		EncryptionKeyURI: env.GetString("ENCRYPTION_KEY_URI", ""),
	}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
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
