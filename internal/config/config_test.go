package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"planbord/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Listen != ":8080" || cfg.Server.BasePath != "/api/v1" {
		t.Fatalf("server defaults = %+v", cfg.Server)
	}
	if cfg.Reservations.ConflictPolicy != config.ConflictWarn {
		t.Fatalf("conflict policy = %q, want warn", cfg.Reservations.ConflictPolicy)
	}
}

func TestGenerateDefaultRoundTrips(t *testing.T) {
	cfg, err := config.FromYAML([]byte(config.GenerateDefault()))
	if err != nil {
		t.Fatalf("parse generated default: %v", err)
	}
	if *cfg != *config.Default() {
		t.Fatalf("generated default differs: %+v", cfg)
	}
}

func TestValidateRejectsBadPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Reservations.ConflictPolicy = "ignore"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected policy error")
	}
	cfg = config.Default()
	cfg.Server.Listen = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected listen error")
	}
}

func TestFromYAMLRejectsGarbage(t *testing.T) {
	if _, err := config.FromYAML([]byte("server: [not a map")); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadOptional(dir)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Fatalf("missing file should yield defaults, got %+v", cfg)
	}

	body := "server:\n  listen: \":9090\"\nreservations:\n  conflict_policy: reject\n"
	if err := os.WriteFile(filepath.Join(dir, "planbord.yml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = config.LoadOptional(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Listen != ":9090" || cfg.Reservations.ConflictPolicy != config.ConflictReject {
		t.Fatalf("loaded config = %+v", cfg)
	}
}
