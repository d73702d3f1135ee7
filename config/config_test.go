package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigMissingKeyFailsFast(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("MARKETANLY_GEMINI_API_KEY", "")
	if _, err := LoadConfig(""); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestLoadConfigEnvAndDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Fatalf("GEMINI_API_KEY must be honored, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Server.Address != ":8090" {
		t.Fatalf("unexpected default address %q", cfg.Server.Address)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.Timeout != 120*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.Gemini.Timeout)
	}
	if cfg.Mail.SimulatedDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected default mail delay %v", cfg.Mail.SimulatedDelay)
	}
}

func TestLoadConfigPrefixedEnvOverride(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("MARKETANLY_SERVER_ADDRESS", ":9999")
	t.Setenv("MARKETANLY_GEMINI_MODEL", "gemini-2.5-pro")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":9999" {
		t.Fatalf("prefixed env override ignored, got %q", cfg.Server.Address)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("prefixed env override ignored, got %q", cfg.Gemini.Model)
	}
}
