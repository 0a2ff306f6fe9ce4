package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

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

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"addr":         ":9191",
		"database_dsn": "postgres://json/carnet",
		"secret_key":   "json-secret",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, ":9191", cfg.Addr)
		assert.Equal(t, "postgres://json/carnet", cfg.DatabaseDSN)
		assert.Equal(t, "json-secret", cfg.SecretKey)
	})

	t.Run("empty json fields keep existing values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"addr": ":7777",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{Addr: ":8090", DatabaseDSN: "keep-dsn", SecretKey: "keep-secret"}
		parseJson(cfg)

		assert.Equal(t, ":7777", cfg.Addr)
		assert.Equal(t, "keep-dsn", cfg.DatabaseDSN)
		assert.Equal(t, "keep-secret", cfg.SecretKey)
	})

	t.Run("no config flag is a no-op", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{Addr: "defaults:1234", DatabaseDSN: "dsn", SecretKey: "key"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.Addr)
		assert.Equal(t, "dsn", cfg.DatabaseDSN)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
