package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	TokenKey        string
	DatabaseURL     string
	RateLimit       float64
	RateBurst       int
	LogLevel        string
	ShutdownTimeout time.Duration
	// EnvFile reports whether a .env file was found and applied.
	EnvFile bool
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	envErr := godotenv.Load()
	cfg := Config{
		Addr:        getenv("ADDR", ":8443"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		EnvFile:     envErr == nil,
	}
	if cfg.TokenKey == "" {
		return Config{}, errors.New("TOKEN_KEY environment variable is not set")
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return Config{}, errors.New("TLS_CERT and TLS_KEY must be set together")
	}

	var err error
	if cfg.RateLimit, err = strconv.ParseFloat(getenv("RATE_LIMIT", "5"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT: %w", err)
	}
	if cfg.RateBurst, err = strconv.Atoi(getenv("RATE_BURST", "10")); err != nil {
		return Config{}, fmt.Errorf("RATE_BURST: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getenv("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	return cfg, nil
}

func (c Config) TLS() bool {
	return c.TLSCert != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
