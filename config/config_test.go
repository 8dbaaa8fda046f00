package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadTestConfig(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("test")
	assert.NoError(err, "could not load config")

	assert.Equal("8089", cfg.GetPort())
	assert.Equal(2*time.Second, cfg.GetBackendTimeout())
	assert.Equal("/documentos/form/%d", cfg.GetEditPath())
	assert.Equal(time.Minute, cfg.GetSessionMaxIdle())
	assert.Equal(2*time.Second, cfg.GetShortNoticeDuration())
	assert.Equal(3*time.Second, cfg.GetLongNoticeDuration())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	assert := require.New(t)
	t.Setenv("PORT", "9999")
	t.Setenv("BACKEND_URL", "http://backend.internal/api/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load("test")
	assert.NoError(err, "could not load config")

	assert.Equal("9999", cfg.GetPort())
	assert.Equal("http://backend.internal/api", cfg.GetBackendURL(), "trailing slash should be trimmed")
	assert.Equal([]string{"http://a.example", "http://b.example"}, cfg.GetCORSAllowedOrigins())
}

func TestMissingConfigFileFallsBackToDefaults(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("doesnotexist")
	assert.NoError(err, "a missing config file should not be an error")

	assert.Equal(defaultPort, cfg.GetPort())
	assert.Equal(defaultEditPath, cfg.GetEditPath())
	assert.Equal(defaultBackendTimeout, cfg.GetBackendTimeout())
}
