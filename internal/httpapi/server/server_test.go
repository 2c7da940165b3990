package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beemotools/beemo-exporter/pkg/cache/inmemory"
	"github.com/beemotools/beemo-exporter/pkg/config"
	"github.com/beemotools/beemo-exporter/pkg/store"
)

func testServer(t *testing.T) (*APIServer, *store.DatasetStore) {
	t.Helper()
	c, err := inmemory.NewCache(&inmemory.Config{})
	require.NoError(t, err)
	dataStore := store.New(c)

	cfg := &config.AppConfig{
		App:       config.App{Environment: "test"},
		APIServer: config.APIServerConfig{Port: 8000},
	}
	return NewAPIServer(cfg, dataStore), dataStore
}

func get(s *APIServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.router.ServeHTTP(w, req)
	return w
}

func TestDatasetRoutes_UnavailableBeforeFirstRefresh(t *testing.T) {
	s, _ := testServer(t)

	for _, path := range []string{"/licenses.csv", "/backupsets.csv", "/groups.csv"} {
		w := get(s, path)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		assert.Equal(t, "Service unavailable", w.Body.String(), path)
	}
}

func TestDatasetRoutes_ServeCachedCSV(t *testing.T) {
	s, dataStore := testServer(t)

	// non-ASCII payload: Content-Length must count bytes, not runes
	payload := "Groupe,Espace utilisé (Go),Quota (Go),Ratio\nacme,50.0,200,25.0\n"
	require.NoError(t, dataStore.Set(context.Background(), "groups", payload))

	w := get(s, "/groups.csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=groups.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(len(payload)), w.Header().Get("Content-Length"))

	// the other datasets are still warming up
	assert.Equal(t, http.StatusServiceUnavailable, get(s, "/licenses.csv").Code)
}

func TestUnknownPathsReturn404(t *testing.T) {
	s, _ := testServer(t)

	for _, path := range []string{"/", "/licenses", "/licenses.csv/extra", "/metrics"} {
		w := get(s, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Not found", w.Body.String(), path)
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	s, _ := testServer(t)

	w := get(s, "/groups.csv")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	// a caller-supplied id is echoed back
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/groups.csv", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}

func TestCORS_AllowedOrigin(t *testing.T) {
	c, err := inmemory.NewCache(&inmemory.Config{})
	require.NoError(t, err)
	cfg := &config.AppConfig{
		App: config.App{Environment: "test"},
		APIServer: config.APIServerConfig{
			Port: 8000,
			CORS: config.CORSConfig{AllowedOrigins: []string{"https://dashboard.example.com"}},
		},
	}
	s := NewAPIServer(cfg, store.New(c))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/licenses.csv", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/licenses.csv", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	s.router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
