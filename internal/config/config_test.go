package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("OBJECT_STORE_ACCESS_KEY", "test-access")
	t.Setenv("OBJECT_STORE_SECRET_KEY", "test-secret")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

object_store:
  endpoint: "minio:9000"
  access_key: "ak"
  secret_key: "sk"
  bucket: "crm-attachments"

pagination:
  default_limit: 25
  max_limit: 100

retry:
  max_elapsed_time: "3s"
  initial_interval: "25ms"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.ObjectStore.Endpoint != "minio:9000" {
		t.Errorf("object_store.endpoint = %q", cfg.ObjectStore.Endpoint)
	}
	if cfg.ObjectStore.Bucket != "crm-attachments" {
		t.Errorf("object_store.bucket = %q", cfg.ObjectStore.Bucket)
	}
	if cfg.Pagination.DefaultLimit != 25 || cfg.Pagination.MaxLimit != 100 {
		t.Errorf("pagination = %+v", cfg.Pagination)
	}
	if cfg.Retry.MaxElapsedTime != 3*time.Second {
		t.Errorf("retry.max_elapsed_time = %v", cfg.Retry.MaxElapsedTime)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOnlyWithDefaults(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port default = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Pagination.DefaultLimit != 50 || cfg.Pagination.MaxLimit != 200 {
		t.Errorf("pagination defaults = %+v", cfg.Pagination)
	}
	if cfg.ObjectStore.Bucket != "attachments" {
		t.Errorf("object_store.bucket default = %q", cfg.ObjectStore.Bucket)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format default = %q", cfg.Log.Format)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("server.port = %d, want env override 7777", cfg.Server.Port)
	}
}

func TestLoad_MissingRequiredDSN(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("OBJECT_STORE_ACCESS_KEY", "ak")
	t.Setenv("OBJECT_STORE_SECRET_KEY", "sk")
	// t.Setenv registers the restore; unset so cleanenv sees it as missing.
	t.Setenv("DATABASE_DSN", "x")
	os.Unsetenv("DATABASE_DSN")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_DSN")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate_Rejects(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database:    DatabaseConfig{DSN: "postgres://u:p@h/db"},
			ObjectStore: ObjectStoreConfig{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "s", Bucket: "b"},
			Pagination:  PaginationConfig{DefaultLimit: 50, MaxLimit: 200},
			Retry:       RetryConfig{MaxElapsedTime: time.Second, InitialInterval: time.Millisecond},
			Log:         LogConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero default limit", mutate: func(c *Config) { c.Pagination.DefaultLimit = 0 }},
		{name: "max below default", mutate: func(c *Config) { c.Pagination.MaxLimit = 10 }},
		{name: "endpoint with scheme", mutate: func(c *Config) { c.ObjectStore.Endpoint = "http://minio:9000" }},
		{name: "empty bucket", mutate: func(c *Config) { c.ObjectStore.Bucket = " " }},
		{name: "zero retry window", mutate: func(c *Config) { c.Retry.MaxElapsedTime = 0 }},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
