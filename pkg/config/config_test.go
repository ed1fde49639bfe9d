package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirFromEnv(t *testing.T) {
	t.Cleanup(resetConfigDir)
	resetConfigDir()

	dir := t.TempDir()
	t.Setenv(EnvOverrideConfigDir, dir)
	assert.Equal(t, dir, Dir())
}

func TestSetDir(t *testing.T) {
	t.Cleanup(resetConfigDir)
	resetConfigDir()

	SetDir("/tmp/framesplit/../framesplit")
	assert.Equal(t, filepath.Clean("/tmp/framesplit"), Dir())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "55 AA", cfg.GetHeader())
}

func TestLoadDefaultConfigFileWarnsOnBadJSON(t *testing.T) {
	t.Cleanup(resetConfigDir)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{"), 0o600))
	SetDir(dir)

	var stderr bytes.Buffer
	cfg := LoadDefaultConfigFile(&stderr)
	require.NotNil(t, cfg)
	assert.Contains(t, stderr.String(), "WARNING")
}
