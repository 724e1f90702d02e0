package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EXTRACTOR", "rules")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "rules", cfg.Extractor)
	assert.Equal(t, "models/gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, 100, cfg.MaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "onboard.db", cfg.DBPath)
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("EXTRACTOR", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EXTRACTOR", "rules")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "9090")
	t.Setenv("EXTRACT_TIMEOUT", "10")
	t.Setenv("MAX_SESSIONS", "5")
	t.Setenv("SESSION_TIMEOUT", "15")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_PATH", "/tmp/x.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, 5, cfg.MaxSessions)
	assert.Equal(t, 15*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("EXTRACTOR", "tarot")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("EXTRACTOR", "rules")
	t.Setenv("PORT", "not-a-port")
	_, err = Load()
	assert.Error(t, err)
}
