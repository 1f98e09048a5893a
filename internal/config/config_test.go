package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("ADDR", "")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("RATE_BURST", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("TLS_CERT", "")
	t.Setenv("TLS_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8443", cfg.Addr)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.TLS())
}

func TestLoad_MissingTokenKey(t *testing.T) {
	t.Setenv("TOKEN_KEY", "")
	_, err := Load()
	assert.ErrorContains(t, err, "TOKEN_KEY")
}

func TestLoad_BadValues(t *testing.T) {
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("TLS_CERT", "")
	t.Setenv("TLS_KEY", "")

	t.Setenv("RATE_BURST", "many")
	_, err := Load()
	assert.ErrorContains(t, err, "RATE_BURST")

	t.Setenv("RATE_BURST", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")
}

func TestLoad_TLSPair(t *testing.T) {
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("TLS_CERT", "server.crt")
	t.Setenv("TLS_KEY", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TLS_KEY", "server.key")
	t.Setenv("RATE_BURST", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TLS())
}
