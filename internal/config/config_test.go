package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SITE_DIR", "DB_PATH", "RUNTIME_DIR", "SERVE_STATIC",
		"ADMIN_USER", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH", "SECRET_KEY", "SESSION_TTL",
		"CORS_ORIGIN", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" || cfg.Addr() != ":8000" {
		t.Errorf("expected port 8000, got %q", cfg.Port)
	}
	if cfg.RuntimeDir != "/tmp" || cfg.SiteDir != "." {
		t.Errorf("unexpected dirs: %q %q", cfg.RuntimeDir, cfg.SiteDir)
	}
	if !cfg.ServeStatic {
		t.Error("expected SERVE_STATIC default true")
	}
	if cfg.SessionTTL != 14*24*time.Hour {
		t.Errorf("expected 14 day ttl, got %v", cfg.SessionTTL)
	}
	want := []string{"ADMIN_USER", "ADMIN_PASSWORD", "SECRET_KEY"}
	if got := cfg.InsecureDefaults(); !reflect.DeepEqual(got, want) {
		t.Errorf("InsecureDefaults() = %v, want %v", got, want)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVE_STATIC", "false")
	t.Setenv("ADMIN_USER", "owner")
	t.Setenv("ADMIN_PASSWORD", "long-random-password")
	t.Setenv("SECRET_KEY", "k3y")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("DB_PATH", "/data/app.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.ServeStatic || cfg.DBPath != "/data/app.db" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h ttl, got %v", cfg.SessionTTL)
	}
	if got := cfg.InsecureDefaults(); len(got) != 0 {
		t.Errorf("expected no insecure defaults, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Port: "8000", AdminUser: "a", AdminPassword: "p", SecretKey: "s", SessionTTL: time.Hour}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := base
	bad.SessionTTL = 0
	var cerr *ConfigError
	if err := bad.Validate(); !errors.As(err, &cerr) || cerr.Field != "SESSION_TTL" {
		t.Errorf("expected SESSION_TTL error, got %v", err)
	}

	hashOnly := base
	hashOnly.AdminPassword = ""
	hashOnly.AdminPasswordHash = "$2a$10$abc"
	if err := hashOnly.Validate(); err != nil {
		t.Errorf("hash alone should be accepted, got %v", err)
	}
}
