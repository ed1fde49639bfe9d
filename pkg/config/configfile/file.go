package configfile

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"framesplit/pkg/frame"
	"framesplit/pkg/splitter"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultHeader    = "55 AA"
	DefaultMaxSize   = "1GB"
	DefaultOutputDir = "parts"
)

// ConfigFile ~/.framesplit/config.json file info
type ConfigFile struct {
	Filename  string `json:"-"` // Note: for internal use only
	Header    string `json:"header,omitempty" validate:"omitempty,hexadecimal_header"`
	MaxSize   string `json:"maxSize,omitempty" validate:"omitempty,human_size"`
	OutputDir string `json:"outputDir,omitempty"`
	Workers   int    `json:"workers,omitempty" validate:"gte=0,lte=64"`
}

// New initializes an empty configuration file for the given filename 'fn'
func New(fn string) *ConfigFile {
	return &ConfigFile{
		Filename: fn,
	}
}

// LoadFromReader reads the configuration data given and populates the
// receiver object
func (configFile *ConfigFile) LoadFromReader(configData io.Reader) error {
	if err := json.NewDecoder(configData).Decode(configFile); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return configFile.Validate()
}

// Validate checks the values stored in the configuration file.
func (configFile *ConfigFile) Validate() error {
	v := goValidator.New()
	_ = v.RegisterValidation("hexadecimal_header", validateHeader)
	_ = v.RegisterValidation("human_size", validateSize)

	if err := v.Struct(configFile); err != nil {
		var fieldErrs goValidator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return errors.Errorf("invalid value for %q in config", fieldErrs[0].Field())
		}
		return err
	}
	return nil
}

// GetHeader returns the configured frame header or the default.
func (configFile *ConfigFile) GetHeader() string {
	if configFile.Header == "" {
		return DefaultHeader
	}
	return configFile.Header
}

// GetMaxSize returns the configured part size limit or the default.
func (configFile *ConfigFile) GetMaxSize() string {
	if configFile.MaxSize == "" {
		return DefaultMaxSize
	}
	return configFile.MaxSize
}

// GetOutputDir returns the configured output directory or the default.
func (configFile *ConfigFile) GetOutputDir() string {
	if configFile.OutputDir == "" {
		return DefaultOutputDir
	}
	return configFile.OutputDir
}

// SaveToWriter encodes and writes out the configuration to the given writer
func (configFile *ConfigFile) SaveToWriter(writer io.Writer) error {
	data, err := json.MarshalIndent(configFile, "", "\t")
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

// Save encodes and writes out the configuration file
func (configFile *ConfigFile) Save() (retErr error) {
	if configFile.Filename == "" {
		return errors.Errorf("Can't save config with empty filename")
	}

	dir := filepath.Dir(configFile.Filename)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	temp, err := os.CreateTemp(dir, filepath.Base(configFile.Filename))
	if err != nil {
		return err
	}
	defer func() {
		temp.Close()
		if retErr != nil {
			if err := os.Remove(temp.Name()); err != nil {
				logrus.WithError(err).WithField("file", temp.Name()).Debug("Error cleaning up temp file")
			}
		}
	}()

	if err := configFile.SaveToWriter(temp); err != nil {
		return err
	}

	if err := temp.Close(); err != nil {
		return errors.Wrap(err, "error closing temp file")
	}

	// Handle situation where the configfile is a symlink
	cfgFile := configFile.Filename
	if f, err := os.Readlink(cfgFile); err == nil {
		cfgFile = f
	}

	return os.Rename(temp.Name(), cfgFile)
}

// GetFilename returns the file name that this config file is based on.
func (configFile *ConfigFile) GetFilename() string {
	return configFile.Filename
}

func validateHeader(fl goValidator.FieldLevel) bool {
	_, err := frame.ParseHeader(fl.Field().String())
	return err == nil
}

func validateSize(fl goValidator.FieldLevel) bool {
	_, err := splitter.ParseSize(fl.Field().String())
	return err == nil
}
