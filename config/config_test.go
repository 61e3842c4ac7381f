package config_test

import (
	"os"
	"testing"
	"time"

	"LoveForTennis/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears variables for the duration of the test.
func unset(t *testing.T, keys ...string) {
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unset(t, "PORT", "USE_HTTPS", "JWT_EXPIRE_MIN", "RESET_TOKEN_TTL_MIN", "CORS_ORIGINS")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ListenPort())
	assert.Equal(t, time.Hour, cfg.JWTTTL())
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	unset(t, "PORT")
	t.Setenv("USE_HTTPS", "true")
	t.Setenv("CORS_ORIGINS", "https://club.example,https://admin.club.example")
	t.Setenv("CLUB_TIMEZONE", "Europe/Madrid")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "443", cfg.ListenPort())
	assert.Len(t, cfg.CORSOrigins, 2)
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", loc.String())
}
