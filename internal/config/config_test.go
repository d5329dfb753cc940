package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.StoreHost != "localhost" {
		t.Fatalf("unexpected store host: %s", cfg.StoreHost)
	}
	if cfg.BcryptCost != 13 {
		t.Fatalf("unexpected bcrypt cost: %d", cfg.BcryptCost)
	}
	if cfg.AccessTTL != 900*time.Second {
		t.Fatalf("unexpected access ttl: %v", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 720*time.Hour {
		t.Fatalf("unexpected refresh ttl: %v", cfg.RefreshTTL)
	}
	if len(cfg.Users) != 3 || len(cfg.Passwords) != 3 {
		t.Fatalf("unexpected seed lists: %v / %d passwords", cfg.Users, len(cfg.Passwords))
	}
	if !cfg.PushEnabled {
		t.Fatal("expected push enabled by default")
	}
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("TWTR_AUTH_SECRET", "prod-secret")
	t.Setenv("TWTR_ACCESS_TTL", "900")
	t.Setenv("TWTR_REFRESH_TTL", "48h")
	t.Setenv("TWTR_USERS", "alice, bob")
	t.Setenv("TWTR_PASSWORDS", "a-secret,b-secret")
	t.Setenv("TWTR_PUSH_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreHost != "redis.internal" {
		t.Fatalf("unexpected store host: %s", cfg.StoreHost)
	}
	if cfg.AuthSecret != "prod-secret" {
		t.Fatalf("unexpected secret: %s", cfg.AuthSecret)
	}
	if cfg.AccessTTL != 900*time.Second {
		t.Fatalf("bare-seconds ttl not parsed: %v", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 48*time.Hour {
		t.Fatalf("duration ttl not parsed: %v", cfg.RefreshTTL)
	}
	if len(cfg.Users) != 2 || cfg.Users[1] != "bob" {
		t.Fatalf("users not split/trimmed: %v", cfg.Users)
	}
	if cfg.PushEnabled {
		t.Fatal("expected push disabled")
	}
}

func TestLoadExplicitEmptyClearsDefault(t *testing.T) {
	t.Setenv("TWTR_AUTH_SECRET", "")
	t.Setenv("TWTR_USERS", "")
	t.Setenv("TWTR_PASSWORDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AuthSecret != "" {
		t.Fatalf("explicit empty secret ignored: %q", cfg.AuthSecret)
	}
	if len(cfg.Users) != 0 || len(cfg.Passwords) != 0 {
		t.Fatalf("explicit empty seed lists ignored: %v / %v", cfg.Users, cfg.Passwords)
	}
}

func TestLoadRejectsMismatchedSeedLists(t *testing.T) {
	t.Setenv("TWTR_USERS", "alice,bob")
	t.Setenv("TWTR_PASSWORDS", "only-one")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for mismatched user/password lists")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("TWTR_ACCESS_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable ttl")
	}
}
