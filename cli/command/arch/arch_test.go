package arch

import (
	"bytes"
	"context"
	"debug/pe"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framesplit/cli/command"
	"framesplit/pkg/config/configfile"
	"framesplit/pkg/platform"
	"framesplit/pkg/platform/petest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	fsCli, err := command.NewFramesplitCli(
		command.WithOutputStream(&out),
		command.WithErrorStream(&errOut),
		command.WithConfigFile(configfile.New("")),
	)
	require.NoError(t, err)

	cmd := NewArchCommand(fsCli)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestArchCurrent(t *testing.T) {
	out, _, err := run(t)
	require.NoError(t, err)
	assert.Equal(t, platform.Current().String()+"\n", out)
}

func TestArchFile(t *testing.T) {
	exe := filepath.Join(t.TempDir(), "app.exe")
	require.NoError(t, os.WriteFile(exe, petest.Image(pe.IMAGE_FILE_MACHINE_I386, pe.IMAGE_SUBSYSTEM_WINDOWS_GUI), 0o755))

	out, errOut, err := run(t, "--expect-win32", exe)
	require.NoError(t, err)
	assert.Equal(t, "('32bit', 'WindowsPE')\n", out)
	assert.Contains(t, errOut, "no console")
}

func TestArchExpectWin32Fails(t *testing.T) {
	exe := filepath.Join(t.TempDir(), "app64.exe")
	require.NoError(t, os.WriteFile(exe, petest.Image(pe.IMAGE_FILE_MACHINE_AMD64, pe.IMAGE_SUBSYSTEM_WINDOWS_CUI), 0o755))

	out, _, err := run(t, "--expect-win32", exe)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "('64bit', 'WindowsPE')"))
	assert.Contains(t, err.Error(), "expected ('32bit', 'WindowsPE')")
}

func TestArchTooManyArgs(t *testing.T) {
	_, _, err := run(t, "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 argument")
}
