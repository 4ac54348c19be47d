package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"NAVECHO_TEST_PORT" envDefault:"123"`
	IdleTTL time.Duration `env:"NAVECHO_TEST_IDLE_TTL" envDefault:"30m"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.IdleTTL != 30*time.Minute {
		t.Fatalf("expected default idle ttl 30m, got %s", cfg.IdleTTL)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("NAVECHO_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFromUsesSnapshot(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	err := ParseEnvFrom(&cfg, map[string]string{
		"NAVECHO_TEST_PORT":     "9000",
		"NAVECHO_TEST_IDLE_TTL": "90s",
	})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.IdleTTL != 90*time.Second {
		t.Fatalf("IdleTTL = %s, want 90s", cfg.IdleTTL)
	}
}

func TestParseEnvFromNilSnapshotUsesDefaults(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, nil); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("Port = %d, want 123", cfg.Port)
	}
}
