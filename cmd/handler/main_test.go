package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	var rec *responseWriter
	h := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec = w.(*responseWriter)
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, http.StatusTeapot, rec.status)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("FAM_CONFIG", "")
	assert.Equal(t, "fam.toml", configPath())

	t.Setenv("FAM_CONFIG", "/etc/fam/config.toml")
	assert.Equal(t, "/etc/fam/config.toml", configPath())
}
