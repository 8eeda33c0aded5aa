// Package config loads the service configuration from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file, with defaults for everything except secrets. The result is
// validated once at startup so a bad value stops the process early.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// StartupPolicy decides what happens when the database is unreachable at
// startup.
type StartupPolicy string

const (
	// StartupFailFast aborts startup.
	StartupFailFast StartupPolicy = "fail-fast"
	// StartupDegrade logs the failure and keeps serving.
	StartupDegrade StartupPolicy = "degrade"
)

// Config is the root configuration object.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig groups HTTP server and process settings.
type AppConfig struct {
	Env         string `validate:"required"`
	Port        string `validate:"required"`
	LogLevel    string `validate:"oneof=trace debug info warn error"`
	FrontendURL string
	DocsEnabled bool
}

// DatabaseConfig describes how to reach the product store.
type DatabaseConfig struct {
	Driver          string        `validate:"oneof=postgres sqlite memory"`
	DSN             string        `validate:"required_unless=Driver memory"`
	StartupPolicy   StartupPolicy `validate:"oneof=fail-fast degrade"`
	AutoMigrate     bool
	MaxOpenConns    int           `validate:"gte=0"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
	ConnectTimeout  time.Duration `validate:"gt=0"`
}

// RabbitMQConfig enables product event publishing when URL is set.
type RabbitMQConfig struct {
	URL   string `validate:"omitempty,url"`
	Queue string `validate:"required"`
}

// IsDevelopment reports whether the service runs in a development environment.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("DOCS_ENABLED", true)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=products port=5432 sslmode=disable")
	v.SetDefault("DB_STARTUP_POLICY", string(StartupFailFast))
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
}

// Load reads a .env file when present, then builds the configuration from
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates the configuration from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:         v.GetString("APP_ENV"),
			Port:        v.GetString("APP_PORT"),
			LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
			FrontendURL: v.GetString("FRONTEND_URL"),
			DocsEnabled: v.GetBool("DOCS_ENABLED"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:             v.GetString("DATABASE_DSN"),
			StartupPolicy:   StartupPolicy(strings.ToLower(v.GetString("DB_STARTUP_POLICY"))),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnectTimeout:  v.GetDuration("DB_CONNECT_TIMEOUT"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
