package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvTimeout, "")
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, DefaultURL, cfg.ServerURL)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultTimeout, cfg.RequestTimeout)
	assert.Equal(t, filepath.Join(dir, "reel-tasks.log"), cfg.LogFile)
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "server_url: http://queue.internal:8080/\nlog_level: debug\nrequest_timeout: 3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv(EnvURL, "")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvTimeout, "")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://queue.internal:8080", cfg.ServerURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadFrom_Errors(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvLogLevel, "")

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv(EnvTimeout, "soon")
		_, err := LoadFrom(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		t.Setenv(EnvTimeout, "")
		t.Setenv(EnvLogLevel, "loud")
		_, err := LoadFrom(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		t.Setenv(EnvTimeout, "")
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: [oops"), 0o644))
		_, err := LoadFrom(dir)
		assert.Error(t, err)
	})
}

func TestDefaultDataDir_Env(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/reels")
	dir, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reels", dir)
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvDataDir, t.TempDir())

	t.Run("missing is fine", func(t *testing.T) {
		chdir(t, t.TempDir())
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DefaultURL, cfg.ServerURL)
	})

	t.Run("unreadable is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o755))
		chdir(t, dir)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading .env")
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
