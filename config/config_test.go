package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "localhost:8000", cfg.Addr())
	assert.Equal(t, "http://localhost:8000", cfg.URL())
}

func TestGetConfigReadsDebugFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(DebugEnv+"=true\n"), 0o644))
	chdir(t, dir)
	// godotenv never overrides variables already present
	t.Setenv(DebugEnv, "")
	os.Unsetenv(DebugEnv)

	cfg := GetConfig()
	assert.True(t, cfg.Debug)
	assert.Equal(t, "localhost:8000", cfg.Addr(), "address is not configurable")
}

func TestGetConfigWithoutDotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(DebugEnv, "0")

	cfg := GetConfig()
	assert.False(t, cfg.Debug)
	assert.Equal(t, DefaultRoot, cfg.Root)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " yes ", "on"} {
		assert.True(t, parseBool(s), s)
	}
	for _, s := range []string{"", "0", "false", "off", "nope"} {
		assert.False(t, parseBool(s), s)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
