package setup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-batmanform/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	conf, err := config.Parse()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	conf.HTTP.Session.Keys = []string{"0123456789abcdef0123456789abcdef"}
	return conf
}

func TestServerFromConfigRoutes(t *testing.T) {
	server, err := NewHTTPServerFromConfig(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	handler := server.Handler()

	tests := []struct {
		path     string
		status   int
		location string
	}{
		{path: "/login", status: http.StatusOK},
		{path: "/dashboard", status: http.StatusSeeOther, location: "/login"},
		{path: "/metrics/", status: http.StatusForbidden},
		{path: "/assets/batmanform.css", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status || rec.Header().Get("Location") != tt.location {
				t.Fatalf("got %d %q, want %d %q", rec.Code, rec.Header().Get("Location"), tt.status, tt.location)
			}
		})
	}
}

func TestSchemaDirMustHoldEverySection(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "login.json"), []byte(`{"id":"login","fields":[]}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	conf := testConfig(t)
	conf.Schemas.Dir = dir

	if _, err := NewHTTPServerFromConfig(context.Background(), conf); err == nil {
		t.Fatalf("expected missing section schemas to fail")
	}
}
