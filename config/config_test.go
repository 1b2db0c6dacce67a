package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	p := writeConfig(t, "app_name: tm\n")

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("Port = %d, want 5000", cfg.Port)
	}
	if cfg.Frontend.ClientURL != "*" {
		t.Errorf("ClientURL = %q, want *", cfg.Frontend.ClientURL)
	}
	if cfg.Data.MongoDB.Database != "taskmanager" {
		t.Errorf("Database = %q, want taskmanager", cfg.Data.MongoDB.Database)
	}
	if cfg.Auth.JWT.Expire != 7*24*time.Hour {
		t.Errorf("JWT.Expire = %v, want 168h", cfg.Auth.JWT.Expire)
	}
	if cfg.Storage.Bucket != "uploads" {
		t.Errorf("Storage.Bucket = %q, want uploads", cfg.Storage.Bucket)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without a jwt secret")
	}
}

func TestLoadConfigFileValues(t *testing.T) {
	p := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 8080
data:
  mongodb:
    uri: mongodb://db:27017
    database: tasks
  redis:
    addr: cache:6379
    cache_ttl: 30s
auth:
  jwt:
    secret: file-secret
    expire: 24h
  admin_invite_token: invite
`)

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.Data.MongoDB.URI != "mongodb://db:27017" || cfg.Data.MongoDB.Database != "tasks" {
		t.Errorf("MongoDB = %+v", cfg.Data.MongoDB)
	}
	if cfg.Data.Redis.Addr != "cache:6379" || cfg.Data.Redis.CacheTTL != 30*time.Second {
		t.Errorf("Redis = %+v", cfg.Data.Redis)
	}
	if cfg.Auth.AdminInviteToken != "invite" {
		t.Errorf("AdminInviteToken = %q", cfg.Auth.AdminInviteToken)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	p := writeConfig(t, "server:\n  port: 8080\nauth:\n  jwt:\n    secret: file-secret\n")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CLIENT_URL", "http://localhost:5173")
	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("ADMIN_INVITE_TOKEN", "env-invite")

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Auth.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, want env-secret", cfg.Auth.JWT.Secret)
	}
	if cfg.Frontend.ClientURL != "http://localhost:5173" {
		t.Errorf("ClientURL = %q", cfg.Frontend.ClientURL)
	}
	if cfg.Data.MongoDB.URI != "mongodb://env:27017" {
		t.Errorf("MongoDB.URI = %q", cfg.Data.MongoDB.URI)
	}
	if cfg.Auth.AdminInviteToken != "env-invite" {
		t.Errorf("AdminInviteToken = %q", cfg.Auth.AdminInviteToken)
	}

	got, err := GetConfig()
	if err != nil || got != cfg {
		t.Errorf("GetConfig() = %p, %v; want last loaded config", got, err)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() with a missing explicit file should fail")
	}
}
