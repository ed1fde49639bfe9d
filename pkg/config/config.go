package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"framesplit/pkg/config/configfile"

	"github.com/sirupsen/logrus"
)

const (
	// EnvOverrideConfigDir is the name of the environment variable that can be
	// used to override the location of the client configuration files (~/.framesplit).
	EnvOverrideConfigDir = "FRAMESPLIT_CONFIG"

	// ConfigFileName is the name of the client configuration file inside the
	// config-directory.
	ConfigFileName = "config.json"
	configFileDir  = ".framesplit"
)

var (
	initConfigDir = new(sync.Once)
	configDir     string
)

func resetConfigDir() {
	configDir = ""
	initConfigDir = new(sync.Once)
}

func getHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		logrus.WithError(err).Debug("failed to resolve home directory")
		return ""
	}
	return home
}

// Dir returns the directory the configuration file is stored in.
func Dir() string {
	initConfigDir.Do(func() {
		configDir = os.Getenv(EnvOverrideConfigDir)
		if configDir == "" {
			configDir = filepath.Join(getHomeDir(), configFileDir)
		}
	})
	return configDir
}

// SetDir sets the directory the configuration file is stored in.
func SetDir(dir string) {
	// Ensure Dir() doesn't overwrite the value set by SetDir.
	initConfigDir.Do(func() {})
	configDir = filepath.Clean(dir)
}

// Load reads the configuration file ([ConfigFileName]) from the given
// directory. A missing file yields the defaults.
func Load(dir string) (*configfile.ConfigFile, error) {
	if dir == "" {
		dir = Dir()
	}

	filename := filepath.Join(dir, ConfigFileName)
	cfg := configfile.New(filename)

	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	if err := cfg.LoadFromReader(f); err != nil {
		return cfg, fmt.Errorf("loading config file: %s: %w", filename, err)
	}
	return cfg, nil
}

// LoadDefaultConfigFile attempts to load the default config file and returns
// a reasonable default if it fails.
func LoadDefaultConfigFile(stderr io.Writer) *configfile.ConfigFile {
	cfg, err := Load(Dir())
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "WARNING: Error", err)
	}
	return cfg
}
