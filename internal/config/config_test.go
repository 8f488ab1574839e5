package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("database driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Model.Source != "local" {
		t.Errorf("model source = %q, want local", cfg.Model.Source)
	}
	if cfg.Model.EncoderKey != "encoder.gob" || cfg.Model.ClassifierKey != "classifier.gob" {
		t.Errorf("artifact keys = %q / %q", cfg.Model.EncoderKey, cfg.Model.ClassifierKey)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.History.PreviewLength != 50 {
		t.Errorf("preview length = %d, want 50", cfg.History.PreviewLength)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  mode: release
database:
  driver: postgres
  host: db.internal
  name: veritas
history:
  preview_length: 80
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("server mode = %q, want release", cfg.Server.Mode)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("database driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.History.PreviewLength != 80 {
		t.Errorf("preview length = %d, want 80", cfg.History.PreviewLength)
	}
	// Unset keys keep their defaults.
	if cfg.Database.Port != 5432 {
		t.Errorf("database port = %d, want default 5432", cfg.Database.Port)
	}
}

func TestLoadJWTSecretFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("jwt secret = %q, want env-secret", cfg.Auth.JWTSecret)
	}
}

func TestAuthConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr bool
	}{
		{"valid", AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour}, false},
		{"missing secret", AuthConfig{TokenTTL: time.Hour}, true},
		{"zero ttl", AuthConfig{JWTSecret: "secret"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseConfigDSN(t *testing.T) {
	pg := DatabaseConfig{
		Driver: "postgres", Host: "db", Port: 5432,
		User: "veritas", Password: "pw", Name: "veritas", SSLMode: "disable",
	}
	want := "host=db port=5432 user=veritas password=pw dbname=veritas sslmode=disable"
	if got := pg.DSN(); got != want {
		t.Errorf("postgres DSN = %q, want %q", got, want)
	}

	lite := DatabaseConfig{Driver: "sqlite", Path: "/tmp/x.db"}
	if got := lite.DSN(); got != "/tmp/x.db" {
		t.Errorf("sqlite DSN = %q, want path", got)
	}
}
