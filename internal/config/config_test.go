package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RENALCALC_JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.TokenTTL != 72*time.Hour {
		t.Fatalf("expected default ttl 72h, got %s", cfg.TokenTTL)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected empty redis addr, got %q", cfg.RedisAddr)
	}
	if cfg.HistoryLimit != 50 {
		t.Fatalf("expected history limit 50, got %d", cfg.HistoryLimit)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("RENALCALC_JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("RENALCALC_JWT_SECRET", "s3cret")
	t.Setenv("RENALCALC_TOKEN_TTL", "forever")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestLoadNonPositiveTTL(t *testing.T) {
	t.Setenv("RENALCALC_JWT_SECRET", "s3cret")
	t.Setenv("RENALCALC_TOKEN_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
