package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmanager/config"
	"github.com/ncobase/taskmanager/logging/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func loadConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	body = strings.ReplaceAll(body, "$DIR", dir)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return cfg
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := loadConfig(t, `
frontend:
  client_url: http://localhost:5173
auth:
  jwt:
    secret: server-test
storage:
  bucket: $DIR/uploads
`)
	app, cleanup, err := NewApp(context.Background(), cfg, Options{Memory: true, Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	t.Cleanup(cleanup)
	return app
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "healthy" || body.Components["store"] != "memory" {
		t.Errorf("health = %+v", body)
	}
	if w.Header().Get("X-Trace-Id") == "" {
		t.Error("missing trace id header")
	}
}

func TestMiddlewareStack(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}

	w = httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", w.Code)
	}
}

func TestNewAppRequiresSecret(t *testing.T) {
	cfg := loadConfig(t, "app_name: tm\n")
	if _, _, err := NewApp(context.Background(), cfg, Options{Memory: true, Logger: logger.Discard()}); err == nil {
		t.Error("NewApp() without a jwt secret should fail")
	}

	cfg = loadConfig(t, "auth:\n  jwt:\n    secret: s\n")
	if _, _, err := NewApp(context.Background(), cfg, Options{Logger: logger.Discard()}); err == nil {
		t.Error("NewApp() against MongoDB without a uri should fail")
	}
}

func TestRunStopsWithContext(t *testing.T) {
	app := newTestApp(t)
	app.config.Host = "127.0.0.1"
	app.config.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
