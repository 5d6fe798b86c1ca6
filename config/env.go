package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	return environmentFrom(newViper())
}

func environmentFrom(v *viper.Viper) Environment {
	// CI environment is automatically detected
	if v.GetBool("ci") {
		return CI
	}

	env := v.GetString("app_env")
	if env == "" {
		env = v.GetString("env")
	}
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// LogMode is the logger mode matching the environment
func (e Environment) LogMode() string {
	if e == Production {
		return "production"
	}
	return "development"
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}
