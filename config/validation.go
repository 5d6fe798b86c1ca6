package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a Config
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	required("SERVER_PORT", cfg.ServerPort)

	switch cfg.DBDriver {
	case "postgres":
		required("DB_HOST", cfg.DBHost)
		required("DB_PORT", cfg.DBPort)
		required("DB_USER", cfg.DBUser)
		required("DB_NAME", cfg.DBName)
		// Local development may run against a password-less database
		if cfg.Environment == CI || cfg.Environment == Production {
			required("DB_PASSWORD", cfg.DBPassword)
		}
	case "sqlite":
		required("SQLITE_PATH", cfg.SQLitePath)
		if cfg.Environment == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.RedisURL == "" {
		required("REDIS_HOST", cfg.RedisHost)
		required("REDIS_PORT", cfg.RedisPort)
	}
	if cfg.RPCMaxInFlight <= 0 {
		errs = append(errs, ValidationError{Field: "RPC_MAX_IN_FLIGHT", Message: "must be positive"})
	}
	if cfg.RPCRequestTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "RPC_REQUEST_TIMEOUT", Message: "must be positive"})
	}
	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		errs = append(errs, ValidationError{Field: "AWS_REGION", Message: "is required when S3_BUCKET_NAME is set"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
