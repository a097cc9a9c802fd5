package config

import (
	"os"
	"strconv"
	"time"

	"sheetscope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Extractor ExtractorConfig
	Upload    UploadConfig
	Sample    SampleConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ExtractorConfig holds settings for the external extraction tool
type ExtractorConfig struct {
	// Binary is the extraction tool on PATH (or an absolute path to it).
	Binary string
	// WorkDir is the base directory for per-extraction scratch space.
	// Empty means the OS temp dir.
	WorkDir string
	// Timeout bounds each parse/query invocation.
	Timeout time.Duration
	// MaxConcurrent bounds how many extraction subprocesses may run at once.
	MaxConcurrent int
}

// UploadConfig holds upload handling settings
type UploadConfig struct {
	// MaxBytes is the largest accepted spreadsheet upload.
	MaxBytes int64
	// MaxCached is how many extraction results are kept in memory before
	// the oldest is evicted and its scratch dir removed.
	MaxCached int
}

// SampleConfig holds sample workbook settings
type SampleConfig struct {
	FileName string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Extractor: ExtractorConfig{
			Binary:        getEnvOrDefault("EXTRACTOR_BIN", "eparse"),
			WorkDir:       getEnvOrDefault("EXTRACTOR_WORK_DIR", ""),
			Timeout:       getEnvDurationOrDefault("EXTRACTOR_TIMEOUT", 2*time.Minute),
			MaxConcurrent: getEnvIntOrDefault("EXTRACTOR_MAX_CONCURRENT", 4),
		},
		Upload: UploadConfig{
			MaxBytes:  getEnvInt64OrDefault("UPLOAD_MAX_BYTES", 32<<20),
			MaxCached: getEnvIntOrDefault("UPLOAD_MAX_CACHED", 16),
		},
		Sample: SampleConfig{
			FileName: getEnvOrDefault("SAMPLE_FILE_NAME", "sample_data.xlsx"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Extractor.Binary == "" {
		return errors.ConfigInvalid("EXTRACTOR_BIN must not be empty")
	}
	if config.Extractor.MaxConcurrent < 1 {
		return errors.ConfigInvalid("EXTRACTOR_MAX_CONCURRENT must be at least 1")
	}
	if config.Upload.MaxBytes < 1 {
		return errors.ConfigInvalid("UPLOAD_MAX_BYTES must be positive")
	}
	if config.Upload.MaxCached < 1 {
		return errors.ConfigInvalid("UPLOAD_MAX_CACHED must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
