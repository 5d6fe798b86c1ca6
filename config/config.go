package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the services
type Config struct {
	Environment Environment

	// HTTP gateway
	ServerHost string
	ServerPort string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis configuration, used by the RPC transport and rate limiting
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// RPC transport
	RPCMaxInFlight     int
	RPCRequestTimeout  time.Duration
	RateLimitPerMinute int

	// Browser origins allowed to call the gateway. Empty allows all.
	CORSAllowedOrigins []string

	// Recipe images stored in S3. Empty bucket disables presigning.
	S3Bucket        string
	AWSRegion       string
	ImageLinkExpiry time.Duration
}

// secretKeys are read from Docker secrets first and fall back to the
// environment.
var secretKeys = []string{"db_user", "db_password", "redis_password", "redis_url"}

// LoadConfig creates a Config from environment variables and Docker secrets
func LoadConfig() (*Config, error) {
	v := newViper()
	env := environmentFrom(v)

	cfg := &Config{
		Environment:        env,
		ServerHost:         v.GetString("server_host"),
		ServerPort:         v.GetString("server_port"),
		DBDriver:           strings.ToLower(v.GetString("db_driver")),
		DBHost:             v.GetString("db_host"),
		DBPort:             v.GetString("db_port"),
		DBUser:             v.GetString("db_user"),
		DBPassword:         v.GetString("db_password"),
		DBName:             v.GetString("db_name"),
		DBSSLMode:          v.GetString("db_ssl_mode"),
		SQLitePath:         v.GetString("sqlite_path"),
		MigrationsDir:      v.GetString("migrations_dir"),
		RedisHost:          v.GetString("redis_host"),
		RedisPort:          v.GetString("redis_port"),
		RedisPassword:      v.GetString("redis_password"),
		RedisDB:            v.GetInt("redis_db"),
		RedisURL:           v.GetString("redis_url"),
		RPCMaxInFlight:     v.GetInt("rpc_max_in_flight"),
		RPCRequestTimeout:  v.GetDuration("rpc_request_timeout"),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		S3Bucket:           v.GetString("s3_bucket_name"),
		AWSRegion:          v.GetString("aws_region"),
		ImageLinkExpiry:    v.GetDuration("image_link_expiry"),
	}

	if env != CI {
		applySecrets(cfg, v.GetString("secrets_dir"))
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "recipes")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("sqlite_path", "recipes.db")
	v.SetDefault("migrations_dir", "migrations")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("rpc_max_in_flight", 64)
	v.SetDefault("rpc_request_timeout", 10*time.Second)
	v.SetDefault("rate_limit_per_minute", 120)
	v.SetDefault("image_link_expiry", 15*time.Minute)
	v.SetDefault("secrets_dir", "/run/secrets")

	return v
}

func applySecrets(cfg *Config, secretsDir string) {
	for _, name := range secretKeys {
		value := readSecret(secretsDir, name)
		if value == "" {
			continue
		}
		switch name {
		case "db_user":
			cfg.DBUser = value
		case "db_password":
			cfg.DBPassword = value
		case "redis_password":
			cfg.RedisPassword = value
		case "redis_url":
			cfg.RedisURL = value
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(secretsDir, name string) string {
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PostgresDSN returns the connection string for the configured database
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// HTTPAddr is the listen address of the HTTP gateway
func (c *Config) HTTPAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// IsProduction reports whether the configuration was loaded for production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
