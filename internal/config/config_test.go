package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("CHANNELS", "")
	t.Setenv("GATEWAY_URL", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "./tariqak.db", cfg.DatabasePath)
	assert.Equal(t, []string{"ahwalaltreq", "a7walstreet", "Palestine_Streets_Radar"}, cfg.Channels)
	assert.Empty(t, cfg.GatewayURL)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHANNELS", " ch1, ch2 ,,ch3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"ch1", "ch2", "ch3"}, cfg.Channels)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
