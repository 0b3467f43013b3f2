package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/backend"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, backend.DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, "/projrct/getall", cfg.ProjectsPath)
	assert.Equal(t, "/skill/getall", cfg.SkillsPath)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.Rotation.Narrow)
	assert.Equal(t, 2*time.Second, cfg.Rotation.Wide)
	assert.Equal(t, "portfolio.db", cfg.DBPath)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"PORT":                "9000",
		"DEBUG":               "true",
		"CACHE_TTL":           "0",
		"REFRESH_INTERVAL":    "0s",
		"SKILL_ROTATE_NARROW": "8s",
		"SKILL_ROTATE_WIDE":   "1s",
		"REDIS_URL":           "redis://localhost:6379/0",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.True(t, cfg.Debug)
	assert.Zero(t, cfg.CacheTTL)
	assert.Zero(t, cfg.RefreshInterval)
	assert.Equal(t, 8*time.Second, cfg.Rotation.Narrow)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad port":          {"PORT": "http"},
		"bad debug":         {"DEBUG": "maybe"},
		"bad timeout":       {"API_TIMEOUT": "soon"},
		"zero timeout":      {"API_TIMEOUT": "0"},
		"negative ttl":      {"CACHE_TTL": "-1m"},
		"narrow not longer": {"SKILL_ROTATE_NARROW": "1s", "SKILL_ROTATE_WIDE": "2s"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := load(env(vars))
			assert.Error(t, err)
		})
	}
}
