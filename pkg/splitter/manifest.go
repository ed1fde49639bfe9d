package splitter

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
)

const (
	ManifestName           = "manifest.json"
	CurrentManifestVersion = 1
)

// Part describes one output file.
type Part struct {
	Name   string        `json:"name"`
	Offset int64         `json:"offset"`
	Size   int64         `json:"size"`
	Digest digest.Digest `json:"digest"`
}

// Manifest records how a source file was split.
type Manifest struct {
	ManifestVersion int    `json:"manifestVersion"`
	Source          string `json:"source"`
	SourceSize      int64  `json:"sourceSize"`
	Header          string `json:"header"`
	MaxSize         int64  `json:"maxSize"`
	Parts           []Part `json:"parts"`
}

// NewManifest creates an empty Manifest with the current version.
func NewManifest() *Manifest {
	return &Manifest{
		ManifestVersion: CurrentManifestVersion,
		Parts:           []Part{},
	}
}

// ReadManifest loads the manifest from dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest")
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse manifest")
	}

	if m.ManifestVersion > CurrentManifestVersion {
		return nil, errors.New("framesplit upgrade required: manifest version is newer than this version of framesplit")
	}

	return &m, nil
}

// Write saves the manifest into dir.
func (m *Manifest) Write(dir string) error {
	m.ManifestVersion = CurrentManifestVersion

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal manifest")
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestName), append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, "failed to write manifest to disk")
	}

	return nil
}
