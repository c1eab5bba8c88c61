package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr":                  "127.0.0.1:9000",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "1h",
		"cache_dir":                      "/var/cache/viti",
		"source_base_url":                "http://mirror.example/index.php",
		"upstream_timeout":               "5s",
		"category_match":                 "exact",
		"users":                          map[string]string{"alice": "$2a$10$hash"},
	})

	t.Run("loads every field", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", full}))

		assert.Equal(t, "127.0.0.1:9000", cfg.EndpointAddr)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, time.Hour, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "/var/cache/viti", cfg.CacheDir)
		assert.Equal(t, "http://mirror.example/index.php", cfg.SourceBaseURL)
		assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
		assert.Equal(t, "exact", cfg.CategoryMatch)
		assert.Equal(t, map[string]string{"alice": "$2a$10$hash"}, cfg.Users)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"cache_dir": "cache"})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		assert.Equal(t, "cache", cfg.CacheDir)
		assert.Equal(t, ":5000", cfg.EndpointAddr)
		assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		cfg := &Config{EndpointAddr: "defaults:1234"}
		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, "defaults:1234", cfg.EndpointAddr)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})
}
