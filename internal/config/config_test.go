package config_test

import (
	"testing"
	"time"

	"productapi/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.App.Port)
	assert.True(t, cfg.App.IsDevelopment())
	assert.True(t, cfg.App.DocsEnabled)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, config.StartupFailFast, cfg.Database.StartupPolicy)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, "product_events", cfg.RabbitMQ.Queue)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{
		"APP_ENV":            "production",
		"DB_DRIVER":          "SQLite",
		"DATABASE_DSN":       "file:products.db",
		"DB_STARTUP_POLICY":  "degrade",
		"DB_CONNECT_TIMEOUT": "2s",
		"LOG_LEVEL":          "DEBUG",
		"FRONTEND_URL":       "http://localhost:5173",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, config.StartupDegrade, cfg.Database.StartupPolicy)
	assert.Equal(t, 2*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, "http://localhost:5173", cfg.App.FrontendURL)
}

func TestFromViper_MemoryDriverNeedsNoDSN(t *testing.T) {
	_, err := config.FromViper(newViper(map[string]any{
		"DB_DRIVER":    "memory",
		"DATABASE_DSN": "",
	}))
	assert.NoError(t, err)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := map[string]map[string]any{
		"unknown driver":         {"DB_DRIVER": "oracle"},
		"unknown startup policy": {"DB_STARTUP_POLICY": "retry"},
		"missing dsn":            {"DATABASE_DSN": ""},
		"bad log level":          {"LOG_LEVEL": "loud"},
		"bad rabbitmq url":       {"RABBITMQ_URL": "not a url"},
		"zero connect timeout":   {"DB_CONNECT_TIMEOUT": "0s"},
	}

	for name, overrides := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromViper(newViper(overrides))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.App.Port)
	assert.Equal(t, config.DriverMemory, cfg.Database.Driver)
}
