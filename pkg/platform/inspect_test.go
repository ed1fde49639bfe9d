package platform

import (
	"debug/pe"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"framesplit/pkg/platform/petest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bin.exe")
	require.NoError(t, os.WriteFile(path, data, 0o755))
	return path
}

func TestInspectPE(t *testing.T) {
	tests := []struct {
		name      string
		machine   uint16
		subsystem uint16
		want      Architecture
		gui       bool
	}{
		{
			name:      "386 windowed",
			machine:   pe.IMAGE_FILE_MACHINE_I386,
			subsystem: pe.IMAGE_SUBSYSTEM_WINDOWS_GUI,
			want:      Windows32,
			gui:       true,
		},
		{
			name:      "386 console",
			machine:   pe.IMAGE_FILE_MACHINE_I386,
			subsystem: pe.IMAGE_SUBSYSTEM_WINDOWS_CUI,
			want:      Windows32,
		},
		{
			name:      "amd64 console",
			machine:   pe.IMAGE_FILE_MACHINE_AMD64,
			subsystem: pe.IMAGE_SUBSYSTEM_WINDOWS_CUI,
			want:      Architecture{Bits: Bits64, Linkage: LinkageWindowsPE},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exe, err := Inspect(writeFile(t, petest.Image(tc.machine, tc.subsystem)))
			require.NoError(t, err)
			assert.Equal(t, tc.want, exe.Architecture)
			assert.Equal(t, tc.gui, exe.GUI)
		})
	}
}

func TestInspectTestBinary(t *testing.T) {
	self, err := os.Executable()
	require.NoError(t, err)

	exe, err := Inspect(self)
	require.NoError(t, err)
	assert.Equal(t, Current(), exe.Architecture, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestInspectUnknown(t *testing.T) {
	_, err := Inspect(writeFile(t, []byte("#!/bin/sh\necho hi\n")))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Inspect(writeFile(t, []byte("M")))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Inspect(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
