package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"alumni-office/internal/config"
	"alumni-office/internal/db/dbtest"
	"alumni-office/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	return NewRouter(cfg, ServerDeps{Store: dbtest.Open(t), Logger: logger.NewNop()})
}

func TestValidateListenAddr(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"0.0.0.0:5000", false},
		{"localhost:8080", false},
		{"", true},
		{":5000", true},
		{"localhost", true},
		{"localhost:0", true},
		{"localhost:70000", true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			err := validateListenAddr(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewServerRequiresStore(t *testing.T) {
	_, err := NewServer(config.Default(), ServerDeps{})
	require.Error(t, err)

	srv, err := NewServer(config.Default(), ServerDeps{Store: dbtest.Open(t)})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:5000", srv.Addr)
}

func TestRoutes(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/table/CHAPTERS", http.StatusOK},
		{http.MethodGet, "/view/ALUMNIDIRECTORY", http.StatusOK},
		{http.MethodGet, "/report/ALUMNIDIRECTORY", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/tables/CHAPTERS", http.StatusNotFound},
		{http.MethodPost, "/view/ALUMNIDIRECTORY", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/table/CHAPTERS", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestCORS(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/table/CHAPTERS", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/table/CHAPTERS", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.API.RateLimitPerMinute = 2
	router := NewRouter(cfg, ServerDeps{Store: dbtest.Open(t)})

	var last int
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
