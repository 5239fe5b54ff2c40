package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrix/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// NewApplication registers Prometheus collectors against the default
// registry, so the full wiring is exercised once and probed via subtests.
func TestNewApplication(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RETRIX_LOGGING_OUTPUT", "stdout")

	application, err := NewApplication()
	require.NoError(t, err)
	require.NotNil(t, application.Router)
	require.NotNil(t, application.Server)
	require.NotNil(t, application.Analytics)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		application.Router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("health endpoint", func(t *testing.T) {
		rec := get("/healthz")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("version endpoint", func(t *testing.T) {
		rec := get("/version")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "retrix-analytics")
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		rec := get("/metrics")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("uploads endpoint with empty data dir", func(t *testing.T) {
		rec := get("/api/uploads")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"uploads":[]}`, rec.Body.String())
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := get("/api/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("request id header set", func(t *testing.T) {
		rec := get("/healthz")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestGetCORSConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	a := &Application{Config: cfg}

	corsCfg := a.getCORSConfig()
	assert.Contains(t, corsCfg.AllowedOrigins, "http://localhost:8080")
	assert.Contains(t, corsCfg.AllowedMethods, http.MethodGet)
}
