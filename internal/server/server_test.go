package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"productapi/internal/config"
	"productapi/internal/repositories"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg config.AppConfig) *fiber.App {
	t.Helper()
	zerolog.SetGlobalLevel(zerolog.Disabled)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	service := services.NewProductService(repositories.NewMemoryProductRepository(), nil)
	return New(Deps{Config: cfg, ProductService: service})
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, config.AppConfig{Env: "test"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "memory", health["database"])
	assert.NotEmpty(t, health["time"])
}

func TestDocs(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		app := newTestApp(t, config.AppConfig{Env: "test", DocsEnabled: true})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, `"/products/{id}"`)
		assert.Contains(t, body, "Products REST API")

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
		assert.Equal(t, "/docs/index.html", resp.Header.Get("Location"))
	})

	t.Run("disabled", func(t *testing.T) {
		app := newTestApp(t, config.AppConfig{Env: "test"})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCORS(t *testing.T) {
	app := newTestApp(t, config.AppConfig{Env: "test", FrontendURL: "http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://evil.example")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestCORSConfig(t *testing.T) {
	assert.Equal(t, "*", corsConfig("").AllowOrigins)
	assert.Equal(t, "http://localhost:5173", corsConfig("http://localhost:5173").AllowOrigins)
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t, config.AppConfig{Env: "test"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp(t, config.AppConfig{Env: "test"})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("connection reset by peer")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.ErrTeapot
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/boom", status: http.StatusInternalServerError, body: `{"error":"Hubo un error"}`},
		{path: "/panic", status: http.StatusInternalServerError, body: `{"error":"Hubo un error"}`},
		{path: "/teapot", status: http.StatusTeapot, body: `{"error":"I'm a teapot"}`},
		{path: "/missing", status: http.StatusNotFound, body: `{"error":"Cannot GET /missing"}`},
	}

	for _, tt := range tests {
		t.Run(strings.TrimPrefix(tt.path, "/"), func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, readBody(t, resp))
		})
	}
}
