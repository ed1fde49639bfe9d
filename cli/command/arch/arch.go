package arch

import (
	"fmt"

	"framesplit/cli"
	"framesplit/cli/command"
	"framesplit/pkg/platform"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type archOptions struct {
	expectWin32 bool
}

func NewArchCommand(fsCli command.Cli) *cobra.Command {
	var opts archOptions

	cmd := &cobra.Command{
		Use:   "arch [OPTIONS] [FILE]",
		Short: "Print the word size and executable format of this binary or FILE",
		Args:  cli.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return runArch(fsCli, opts, file)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.expectWin32, "expect-win32", false, fmt.Sprintf("Fail unless the result is %s", platform.Windows32))

	return cmd
}

func runArch(fsCli command.Cli, opts archOptions, file string) error {
	arch := platform.Current()
	gui := false

	if file != "" {
		exe, err := platform.Inspect(file)
		if err != nil {
			return err
		}
		arch = exe.Architecture
		gui = exe.GUI
	}

	fmt.Fprintln(fsCli.Out(), arch)
	if gui {
		fmt.Fprintln(fsCli.Err(), "subsystem: windows (no console)")
	}

	if opts.expectWin32 && arch != platform.Windows32 {
		return errors.Errorf("architecture is %s, expected %s", arch, platform.Windows32)
	}
	return nil
}
