package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productapi/internal/config"
)

func testConfig(t *testing.T, overrides map[string]any) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestNewApp_Drivers(t *testing.T) {
	tests := map[string]map[string]any{
		"memory": {"DB_DRIVER": "memory"},
		"sqlite": {
			"DB_DRIVER":    "sqlite",
			"DATABASE_DSN": fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		},
	}

	for name, overrides := range tests {
		t.Run(name, func(t *testing.T) {
			app, cleanup, err := NewApp(context.Background(), testConfig(t, overrides))
			require.NoError(t, err)
			defer cleanup()

			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Monitor","price":300}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusCreated, resp.StatusCode)

			resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var health map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
			assert.Equal(t, "healthy", health["status"])
		})
	}
}

func TestNewApp_FailFastOnUnreachableDatabase(t *testing.T) {
	cfg := testConfig(t, map[string]any{
		"DATABASE_DSN":       "host=127.0.0.1 port=1 user=postgres dbname=products sslmode=disable connect_timeout=1",
		"DB_STARTUP_POLICY":  "fail-fast",
		"DB_CONNECT_TIMEOUT": "2s",
	})

	_, cleanup, err := NewApp(context.Background(), cfg)
	defer cleanup()
	assert.Error(t, err)
}

func TestNewApp_DegradesOnUnreachableDatabase(t *testing.T) {
	cfg := testConfig(t, map[string]any{
		"DATABASE_DSN":       "host=127.0.0.1 port=1 user=postgres dbname=products sslmode=disable connect_timeout=1",
		"DB_STARTUP_POLICY":  "degrade",
		"DB_CONNECT_TIMEOUT": "2s",
	})

	app, cleanup, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
