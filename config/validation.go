package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable
func ValidateConfig(cfg *Config) error {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
			return ValidationError{Field: "database", Message: "host, port and name are required for postgres"}
		}
	case "sqlite":
		if cfg.DBPath == "" {
			return ValidationError{Field: "DB_PATH", Message: "path is required for sqlite"}
		}
	default:
		return ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)}
	}

	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "secret is required"}
	}
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "port is required"}
	}
	if cfg.MediaBucket != "" && cfg.MediaBaseURL == "" {
		return ValidationError{Field: "MEDIA_BASE_URL", Message: "base URL is required when an S3 bucket is configured"}
	}
	return nil
}
