package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.LogLevel, "the logger picks the level from the environment mode")
	assert.Empty(t, cfg.AllowedOrigins)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "Africa/Dakar", cfg.Timezone)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co/")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("DB_BOOTSTRAP", "true")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("ALLOWED_ORIGINS", "https://unimate.app/, https://admin.unimate.app,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://demo.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.True(t, cfg.DBBootstrap)
	assert.Equal(t, []string{"https://unimate.app", "https://admin.unimate.app"}, cfg.AllowedOrigins)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	require.Error(t, err)
}

func TestDiagnosticsNeverLeakValues(t *testing.T) {
	cfg := &Config{SupabaseURL: "https://demo.supabase.co", SupabaseAnonKey: "super-secret-key"}

	diag := cfg.Diagnostics()

	assert.Equal(t, map[string]string{"SUPABASE_URL": "SET", "SUPABASE_ANON_KEY": "SET"}, diag)
	for _, v := range diag {
		assert.NotContains(t, v, "super-secret-key")
	}
}

func TestDiagnosticsMissing(t *testing.T) {
	cfg := &Config{SupabaseURL: "  "}

	diag := cfg.Diagnostics()

	assert.Equal(t, "MISSING", diag["SUPABASE_URL"])
	assert.Equal(t, "MISSING", diag["SUPABASE_ANON_KEY"])
}
