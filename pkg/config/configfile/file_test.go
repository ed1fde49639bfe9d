package configfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New("config.json")
	assert.Equal(t, DefaultHeader, cfg.GetHeader())
	assert.Equal(t, DefaultMaxSize, cfg.GetMaxSize())
	assert.Equal(t, DefaultOutputDir, cfg.GetOutputDir())
}

func TestLoadFromReader(t *testing.T) {
	cfg := New("config.json")
	err := cfg.LoadFromReader(strings.NewReader(`{"header": "55 AA BB", "maxSize": "512MiB", "workers": 2}`))
	require.NoError(t, err)

	assert.Equal(t, "55 AA BB", cfg.GetHeader())
	assert.Equal(t, "512MiB", cfg.GetMaxSize())
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadFromReaderEmpty(t *testing.T) {
	cfg := New("config.json")
	require.NoError(t, cfg.LoadFromReader(strings.NewReader("")))
	assert.Equal(t, DefaultHeader, cfg.GetHeader())
}

func TestLoadFromReaderInvalid(t *testing.T) {
	tests := map[string]string{
		"header":  `{"header": "ZZ"}`,
		"maxSize": `{"maxSize": "huge"}`,
		"workers": `{"workers": -1}`,
	}
	for field, data := range tests {
		err := New("config.json").LoadFromReader(strings.NewReader(data))
		require.Error(t, err, field)
	}
}

func TestSave(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := New(fn)
	cfg.Header = "55 AA"
	cfg.Workers = 3
	require.NoError(t, cfg.Save())

	f, err := os.Open(fn)
	require.NoError(t, err)
	defer f.Close()

	loaded := New(fn)
	require.NoError(t, loaded.LoadFromReader(f))
	assert.Equal(t, "55 AA", loaded.Header)
	assert.Equal(t, 3, loaded.Workers)
}

func TestSaveWithoutFilename(t *testing.T) {
	assert.Error(t, New("").Save())
}
