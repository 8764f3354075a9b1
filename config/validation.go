package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// maxPresignExpiry is the longest lifetime S3 accepts for a presigned URL.
const maxPresignExpiry = 7 * 24 * time.Hour

// minProductionSecretLength applies to JWT secrets outside development.
const minProductionSecretLength = 32

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		fail("SERVER_PORT", "must be a port number, got %q", cfg.ServerPort)
	}
	if cfg.RecipeAmount < 1 {
		fail("RECIPE_AMOUNT", "must be positive")
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverSQLiteNoCGO:
		if cfg.DBPath == "" {
			fail("DB_PATH", "is required for the %s driver", cfg.DBDriver)
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			fail("DATABASE_URL", "is required for the postgres driver")
		}
	default:
		fail("DB_DRIVER", "unknown driver %q", cfg.DBDriver)
	}

	if cfg.RateLimitMax < 1 {
		fail("RATE_LIMIT_MAX", "must be positive")
	}
	if cfg.RateLimitWindow <= 0 {
		fail("RATE_LIMIT_WINDOW", "must be positive")
	}
	if cfg.ImageURLExpiry <= 0 || cfg.ImageURLExpiry > maxPresignExpiry {
		fail("IMAGE_URL_EXPIRY", "must be between 1s and %s", maxPresignExpiry)
	}
	if cfg.SeedOnStart && cfg.SeedFile == "" {
		fail("SEED_FILE", "is required when SEED_ON_START is set")
	}

	switch cfg.Environment {
	case Production, CI:
		if cfg.JWTSecret != "" && len(cfg.JWTSecret) < minProductionSecretLength {
			fail("JWT_SECRET", "must be at least %d characters in %s", minProductionSecretLength, cfg.Environment)
		}
	}

	return errors.Join(errs...)
}
