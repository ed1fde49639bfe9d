package builder

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/cli/safeexec"
	"github.com/pkg/errors"
)

// Runner executes an external command and returns its combined output.
// A nil env inherits the current environment.
type Runner interface {
	Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands found on PATH.
type ExecRunner struct {
	Dir string
}

func (r *ExecRunner) Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	bin, err := safeexec.LookPath(name)
	if err != nil {
		return nil, errors.Wrapf(err, "%s not found in PATH", name)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = r.Dir
	cmd.Env = env

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err = cmd.Run()
	return out.Bytes(), err
}
