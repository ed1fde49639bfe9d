package generate

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framesplit/cli/command"
	"framesplit/pkg/config/configfile"
	"framesplit/pkg/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCli(t *testing.T, stdin string) (*command.FramesplitCli, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	fsCli, err := command.NewFramesplitCli(
		command.WithInputStream(io.NopCloser(strings.NewReader(stdin))),
		command.WithOutputStream(&out),
		command.WithErrorStream(io.Discard),
		command.WithConfigFile(configfile.New("")),
		command.WithProgress(&progress.Progress{}),
	)
	require.NoError(t, err)
	return fsCli, &out
}

func TestGenerateCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "frames.dat")

	fsCli, out := newTestCli(t, "")
	cmd := NewGenerateCommand(fsCli)
	cmd.SetArgs([]string{output, "-n", "1000"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, int64(136000), info.Size())
	assert.Contains(t, out.String(), "Frames: 1,000 | frame size: 136 bytes")
}

func TestGenerateCommandPromptsForCount(t *testing.T) {
	output := filepath.Join(t.TempDir(), "frames.dat")

	fsCli, out := newTestCli(t, "5\n")
	cmd := NewGenerateCommand(fsCli)
	cmd.SetArgs([]string{output, "--header", "55 AA", "--words", "1"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Number of frames to generate: ")
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, data, 30)
}

func TestGenerateCommandRejectsBadCount(t *testing.T) {
	fsCli, _ := newTestCli(t, "many\n")
	cmd := NewGenerateCommand(fsCli)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "frames.dat")})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid frame count")
}
