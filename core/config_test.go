package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Port == "" || cfg.DatabaseURL == "" || cfg.RedisURL == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
	if cfg.TokenTTLMinutes <= 0 {
		t.Fatalf("token ttl must default to a positive value, got %d", cfg.TokenTTLMinutes)
	}
}

func TestConfigFileOverridesOnlyWhatItMentions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"9090\"\nallow_anonymous_posts: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Config{Port: "3000", JWTIssuer: "blog-api", TokenTTLMinutes: 300}
	if err := applyConfigFile(&cfg, path); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("port not overridden: %q", cfg.Port)
	}
	if !cfg.AllowAnonymousPosts {
		t.Fatalf("allow_anonymous_posts not overridden")
	}
	if cfg.JWTIssuer != "blog-api" || cfg.TokenTTLMinutes != 300 {
		t.Fatalf("unmentioned settings must be untouched: %+v", cfg)
	}
}

func TestConfigFileErrors(t *testing.T) {
	cfg := Config{}
	if err := applyConfigFile(&cfg, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("port: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := applyConfigFile(&cfg, bad); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
