package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.AppURL)
	assert.Equal(t, "http://localhost:11434/api/generate", cfg.GenerateURL)
	assert.Equal(t, 20*time.Second, cfg.GenerateTimeout)
	assert.False(t, cfg.RedisEnabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskhero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_port: \"9000\"\ngenerate_model: mistral\nredis_enabled: true\n"), 0o600))
	t.Setenv("GENERATE_MODEL", "phi3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.AppURL)
	assert.Equal(t, "phi3", cfg.GenerateModel)
	assert.True(t, cfg.RedisEnabled)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("GENERATION_WORKERS", "0")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-1")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GENERATION_WORKERS")
	assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MINUTE")
}
