package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mverrors "github.com/matzehuels/modelviewer/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modelviewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.Diagnostics.ShowDOT)
	assert.False(t, cfg.Diagnostics.ShowMemory)
	assert.Equal(t, "dot", cfg.Export.Engine)
	assert.Equal(t, "png", cfg.Export.Format)
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Equal(t, 168*time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[diagnostics]
show_dot = true

[export]
engine = "neato"

[cache]
backend = "redis"
ttl = "1h30m"
redis_addr = "cache:6379"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Diagnostics.ShowDOT)
	assert.False(t, cfg.Diagnostics.ShowMemory)
	assert.Equal(t, "neato", cfg.Export.Engine)
	assert.Equal(t, "png", cfg.Export.Format, "unset keys keep their defaults")
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL.Duration)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[export\nengine = 1"},
		{"unknown key", "[export]\ncolour = \"red\"\n"},
		{"bad engine", "[export]\nengine = \"spring\"\n"},
		{"bad format", "[export]\nformat = \"pdf\"\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad ttl", "[cache]\nttl = \"forever\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, mverrors.Is(err, mverrors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err, "an explicit path must exist")

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MODELVIEWER_SHOW_DOT":      "true",
		"MODELVIEWER_SHOW_MEMORY":   "1",
		"MODELVIEWER_ENGINE":        "fdp",
		"MODELVIEWER_CACHE_BACKEND": "none",
		"OTHER_SHOW_DOT":            "false",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, Diagnostics{ShowDOT: true, ShowMemory: true}, cfg.Diagnostics)
	assert.Equal(t, "fdp", cfg.Export.Engine)
	assert.Equal(t, BackendNone, cfg.Cache.Backend)
}

func TestApplyEnvInvalid(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == "MODELVIEWER_SHOW_MEMORY" {
			return "sometimes", true
		}
		return "", false
	})
	assert.True(t, mverrors.Is(err, mverrors.ErrCodeInvalidConfig))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MODELVIEWER_SHOW_DOT", "yes")
	_, err := FromEnv()
	assert.Error(t, err, "strconv.ParseBool rejects yes")

	t.Setenv("MODELVIEWER_SHOW_DOT", "t")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Diagnostics.ShowDOT)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "modelviewer.toml"))
	require.NoError(t, err)
	assert.Equal(t, "svg", cfg.Export.Format)
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Equal(t, "examples/models", cfg.Server.Root)
}
