package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		BaseURL     string `yaml:"base_url" env:"SERVER_BASE_URL"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Realtime struct {
		NatsURL        string `yaml:"nats_url" env:"REALTIME_NATS_URL"`
		Subject        string `yaml:"subject" env:"REALTIME_SUBJECT"`
		AllowedOrigins string `yaml:"allowed_origins" env:"REALTIME_ALLOWED_ORIGINS"`
	} `yaml:"realtime"`

	Mail struct {
		SendGridAPIKey string `yaml:"sendgrid_api_key" env:"MAIL_SENDGRID_API_KEY"`
		FromAddress    string `yaml:"from_address" env:"MAIL_FROM_ADDRESS"`
		FromName       string `yaml:"from_name" env:"MAIL_FROM_NAME"`
	} `yaml:"mail"`

	RateLimit struct {
		AuthPerSecond float64 `yaml:"auth_per_second" env:"RATE_LIMIT_AUTH_PER_SECOND"`
		AuthBurst     int     `yaml:"auth_burst" env:"RATE_LIMIT_AUTH_BURST"`
	} `yaml:"rate_limit"`

	PasswordReset struct {
		TokenTTL        string `yaml:"token_ttl" env:"PASSWORD_RESET_TOKEN_TTL"`
		LinkBaseURL     string `yaml:"link_base_url" env:"PASSWORD_RESET_LINK_BASE_URL"`
		CleanupInterval string `yaml:"cleanup_interval" env:"PASSWORD_RESET_CLEANUP_INTERVAL"`
	} `yaml:"password_reset"`

	Seed struct {
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminName     string `yaml:"admin_name" env:"SEED_ADMIN_NAME"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	} `yaml:"seed"`
}

// LoadDotEnv loads a .env file into the process environment when it exists.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.BaseURL = "http://localhost:8080"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "projecthub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "projecthub"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Realtime.Subject = "projecthub.events"
	config.Realtime.AllowedOrigins = "*"

	config.Mail.FromAddress = "noreply@projecthub.local"
	config.Mail.FromName = "ProjectHub"

	config.RateLimit.AuthPerSecond = 1
	config.RateLimit.AuthBurst = 10

	config.PasswordReset.TokenTTL = "24h"
	config.PasswordReset.LinkBaseURL = "http://localhost:3000/reset-password"
	config.PasswordReset.CleanupInterval = "1h"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	switch strings.ToLower(config.Server.Mode) {
	case "development", "production", "test":
	default:
		return fmt.Errorf("unknown server mode %q", config.Server.Mode)
	}

	durations := map[string]string{
		"JWT access token expiration":     config.JWT.AccessTokenExpiration,
		"JWT refresh token expiration":    config.JWT.RefreshTokenExpiration,
		"database connection lifetime":    config.Database.ConnMaxLifetime,
		"password reset token ttl":        config.PasswordReset.TokenTTL,
		"password reset cleanup interval": config.PasswordReset.CleanupInterval,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.RateLimit.AuthPerSecond <= 0 || config.RateLimit.AuthBurst <= 0 {
		return fmt.Errorf("rate limit values must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AllowedOrigins returns the configured websocket origins. A single "*" allows any origin.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Realtime.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
