package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NOTEBOOK_SERVER", "NOTEBOOK_TIMEOUT", "NOTEBOOK_EXPORT_DIR"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:4000", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "exports", c.ExportDir)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	clearEnv(t)

	cfg, err := load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:4000", cfg.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url":"http://json:1","request_timeout":"3s","export_dir":"out"}`), 0o600))

	cfg, err := load([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, "http://json:1", cfg.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "out", cfg.ExportDir)

	t.Setenv("NOTEBOOK_SERVER", "http://env:2")
	t.Setenv("NOTEBOOK_TIMEOUT", "7s")
	cfg, err = load([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, "http://env:2", cfg.ServerURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)

	cfg, err = load([]string{"-c", path, "-a", "http://flag:3", "-t", "1"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:3", cfg.ServerURL)
	assert.Equal(t, time.Second, cfg.RequestTimeout)
	assert.Equal(t, "out", cfg.ExportDir)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	_, err = load([]string{"-c", bad})
	assert.Error(t, err)

	_, err = load([]string{"-t", "soon"})
	assert.Error(t, err)

	t.Setenv("NOTEBOOK_TIMEOUT", "forever")
	_, err = load(nil)
	assert.Error(t, err)
}
