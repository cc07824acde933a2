package config

import (
	"strings"
	"testing"
)

func validSecret() string {
	return strings.Repeat("s", MinSessionSecretLength)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOGIFY_SESSION_SECRET", validSecret())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "./data/blogify.db" {
		t.Errorf("DBPath = %q; want ./data/blogify.db", cfg.DBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q; want localhost:8080", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment = false; want true by default")
	}
	if cfg.MailEnabled() {
		t.Error("MailEnabled = true without SMTP credentials")
	}
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("BLOGIFY_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error without session secret")
	}
}

func TestLoadRejectsShortSessionSecret(t *testing.T) {
	t.Setenv("BLOGIFY_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Error("expected error for short session secret")
	}
}

func TestEnvIsNormalized(t *testing.T) {
	t.Setenv("BLOGIFY_SESSION_SECRET", validSecret())
	t.Setenv("BLOGIFY_ENV", "Production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q; want production", cfg.Env)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment = true for production")
	}
}

func TestOperatorEmailFallsBackToSMTPUser(t *testing.T) {
	t.Setenv("BLOGIFY_SESSION_SECRET", validSecret())
	t.Setenv("BLOGIFY_SMTP_USER", "relay@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.OperatorEmail(); got != "relay@example.com" {
		t.Errorf("OperatorEmail = %q; want relay@example.com", got)
	}

	t.Setenv("BLOGIFY_CONTACT_EMAIL", "owner@example.com")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.OperatorEmail(); got != "owner@example.com" {
		t.Errorf("OperatorEmail = %q; want owner@example.com", got)
	}
}
