// Package config resolves runtime settings for the backend from
// environment variables, applying development defaults for anything
// unset. Configuration is read once in main and passed down by
// reference; nothing re-reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings for the twtr backend.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - StoreHost: document store (Redis) host; port is fixed at 6379.
//   - AuthSecret: HMAC secret for signing tokens (HS256). The default is
//     insecure and exists for local development only.
//   - BcryptCost: cost parameter used when hashing seed passwords.
//   - AccessTTL / RefreshTTL: token lifetimes.
//   - Users / Passwords: comma-separated registry seed lists; position i
//     of Users pairs with position i of Passwords.
//   - RegistryDSN: optional Postgres DSN; when set the user registry is
//     loaded from the users table instead of the seed lists.
//   - PushEnabled: when false, enqueue-style writes are dropped instead
//     of forwarded to the store.
type Config struct {
	Addr        string
	StoreHost   string
	AuthSecret  string
	BcryptCost  int
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	Users       []string
	Passwords   []string
	RegistryDSN string
	PushEnabled bool
}

const (
	envAddr        = "TWTR_ADDR"
	envStoreHost   = "REDIS_HOST"
	envAuthSecret  = "TWTR_AUTH_SECRET"
	envBcryptCost  = "TWTR_BCRYPT_COST"
	envAccessTTL   = "TWTR_ACCESS_TTL"
	envRefreshTTL  = "TWTR_REFRESH_TTL"
	envUsers       = "TWTR_USERS"
	envPasswords   = "TWTR_PASSWORDS"
	envRegistryDSN = "TWTR_PG_DSN"
	envPushEnabled = "TWTR_PUSH_ENABLED"
)

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and seed credentials are placeholders; override them
// in any real deployment.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.StoreHost = "localhost"
	c.AuthSecret = "dev-signing-secret"
	c.BcryptCost = 13
	c.AccessTTL = 900 * time.Second
	c.RefreshTTL = 720 * time.Hour
	c.Users = []string{"user1", "user2", "user3"}
	c.Passwords = []string{"pass1", "pass2", "pass3"}
	c.RegistryDSN = ""
	c.PushEnabled = true
}

// Load builds a Config by applying defaults and overlaying environment
// variables.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if len(cfg.Users) != len(cfg.Passwords) {
		return nil, fmt.Errorf("config: %d users but %d passwords", len(cfg.Users), len(cfg.Passwords))
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup(envAddr); ok {
		c.Addr = v
	}
	if v, ok := lookup(envStoreHost); ok {
		c.StoreHost = v
	}
	if v, ok := lookup(envAuthSecret); ok {
		c.AuthSecret = v
	}
	if v, ok := lookup(envBcryptCost); ok {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: parse %s: %w", envBcryptCost, err)
		}
		c.BcryptCost = cost
	}
	if v, ok := lookup(envAccessTTL); ok {
		d, err := parseDuration(envAccessTTL, v)
		if err != nil {
			return err
		}
		c.AccessTTL = d
	}
	if v, ok := lookup(envRefreshTTL); ok {
		d, err := parseDuration(envRefreshTTL, v)
		if err != nil {
			return err
		}
		c.RefreshTTL = d
	}
	if v, ok := lookup(envUsers); ok {
		c.Users = splitList(v)
	}
	if v, ok := lookup(envPasswords); ok {
		c.Passwords = splitList(v)
	}
	if v, ok := lookup(envRegistryDSN); ok {
		c.RegistryDSN = v
	}
	if v, ok := lookup(envPushEnabled); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: parse %s: %w", envPushEnabled, err)
		}
		c.PushEnabled = enabled
	}
	return nil
}

// lookup distinguishes unset from explicitly empty, so setting a
// variable to "" clears the default rather than being ignored.
func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	return strings.TrimSpace(v), ok
}

// parseDuration accepts either a Go duration string ("15m") or a bare
// number of seconds ("900") for compatibility with older deployments.
func parseDuration(name, raw string) (time.Duration, error) {
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s: %w", name, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
