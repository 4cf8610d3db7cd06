package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/neexbeast/city-infos/internal/upstream"
)

// Config is the process configuration, read from the environment.
type Config struct {
	CityAPIBaseURL  string
	CityAPIKey      string
	Host            string
	Port            string
	UpstreamTimeout time.Duration
	LogLevel        slog.Level
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset.
func FromEnv() (Config, error) {
	cfg := Config{
		CityAPIBaseURL: getEnv("CITY_API_BASE_URL", upstream.DefaultBaseURL),
		CityAPIKey:     os.Getenv("CITY_API_KEY"),
		Host:           listenHost(),
		Port:           getEnv("PORT", "3000"),
	}

	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing UPSTREAM_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.UpstreamTimeout = timeout

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToLower(getEnv("LOG_LEVEL", "info")))); err != nil {
		return Config{}, fmt.Errorf("parsing LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// listenHost binds all interfaces when RENDER_EXTERNAL_URL is set. Otherwise
// HOST applies, defaulting to localhost.
func listenHost() string {
	if os.Getenv("RENDER_EXTERNAL_URL") != "" {
		return "0.0.0.0"
	}
	return getEnv("HOST", "localhost")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
