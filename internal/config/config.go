package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAddr       = "CASAPIO_ADDR"
	envPGDSN      = "CASAPIO_PG_DSN"
	envAuthSecret = "CASAPIO_AUTH_SECRET"
	envTokenTTL   = "CASAPIO_TOKEN_TTL"
)

// Config is process-wide read-only configuration established at startup.
type Config struct {
	Addr        string
	DatabaseDSN string
	AuthSecret  string
	TokenTTL    time.Duration
}

// Load reads configuration from the environment, after loading a .env
// file when one is present. Missing optional values fall back to
// defaults; the signing secret is validated by the caller that needs it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:     ":8080",
		TokenTTL: 15 * time.Minute,
	}
	if v := strings.TrimSpace(os.Getenv(envAddr)); v != "" {
		cfg.Addr = v
	}
	cfg.DatabaseDSN = strings.TrimSpace(os.Getenv(envPGDSN))
	cfg.AuthSecret = strings.TrimSpace(os.Getenv(envAuthSecret))

	if v := strings.TrimSpace(os.Getenv(envTokenTTL)); v != "" {
		ttl, err := parseTTL(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envTokenTTL, err)
		}
		cfg.TokenTTL = ttl
	}
	return cfg, nil
}

// parseTTL accepts Go duration syntax plus a day suffix ("7d").
func parseTTL(raw string) (time.Duration, error) {
	if strings.HasSuffix(raw, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid day duration %q", raw)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", raw)
	}
	return d, nil
}
