package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServiceName != "persona-chat" {
		t.Errorf("Unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("Unexpected port %d", cfg.HTTPPort)
	}
	if cfg.GuestFreeLimit != 3 {
		t.Errorf("Unexpected guest limit %d", cfg.GuestFreeLimit)
	}
	if cfg.CompletionModel != "gemini-2.5-flash-lite" {
		t.Errorf("Unexpected model %q", cfg.CompletionModel)
	}
	if cfg.CompletionTimeout != 75*time.Second {
		t.Errorf("Unexpected completion timeout %v", cfg.CompletionTimeout)
	}
	if cfg.MigrationsMode != "auto" {
		t.Errorf("Unexpected migrations mode %q", cfg.MigrationsMode)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Unexpected addr %q", cfg.Addr())
	}
}

func TestLoadRejectsEnabledAuthWithoutIssuer(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_ISSUER", "")
	t.Setenv("AUTH_JWKS_URL", "https://example.test/jwks")

	if _, err := Load(); err == nil {
		t.Error("Expected an error when auth is enabled without an issuer")
	}
}

func TestLoadRejectsEnabledAuthWithoutJWKS(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_ISSUER", "https://example.test/")
	t.Setenv("AUTH_JWKS_URL", "")

	if _, err := Load(); err == nil {
		t.Error("Expected an error when auth is enabled without a JWKS URL")
	}
}

func TestLoadRejectsUnknownMigrationsMode(t *testing.T) {
	t.Setenv("DB_MIGRATIONS_MODE", "yolo")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for an unknown migrations mode")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9091")
	t.Setenv("GUEST_FREE_LIMIT", "5")
	t.Setenv("DB_MIGRATIONS_MODE", "sql")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 9091 {
		t.Errorf("Unexpected port %d", cfg.HTTPPort)
	}
	if cfg.GuestFreeLimit != 5 {
		t.Errorf("Unexpected guest limit %d", cfg.GuestFreeLimit)
	}
	if cfg.MigrationsMode != "sql" {
		t.Errorf("Unexpected migrations mode %q", cfg.MigrationsMode)
	}
}
