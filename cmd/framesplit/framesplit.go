package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"framesplit/cli"
	"framesplit/cli/command"
	"framesplit/cli/command/commands"
	"framesplit/cli/version"

	"github.com/docker/docker/errdefs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	attachParentConsole()

	fsCli, err := command.NewFramesplitCli()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logrus.SetOutput(fsCli.Err())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newFramesplitCommand(fsCli)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errdefs.IsCancelled(err) {
			fmt.Fprintln(fsCli.Err(), err)
		}
		cancel()
		os.Exit(1)
	}
}

func newFramesplitCommand(fsCli *command.FramesplitCli) *cobra.Command {
	cmd := &cobra.Command{
		Use:              "framesplit [OPTIONS] COMMAND [ARG...]",
		Short:            "Split recorder data files at frame boundaries",
		SilenceUsage:     true,
		SilenceErrors:    true,
		TraverseChildren: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("framesplit: unknown command: framesplit %s\n\nRun 'framesplit --help' for more information on a command", args[0])
		},
		Version: version.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   false,
			HiddenDefaultCmd:    true,
			DisableDescriptions: true,
		},
	}

	opts, _ := cli.SetupRootCommand(cmd)
	cmd.PersistentPreRunE = cli.PreRunInitialize(fsCli, opts)

	commands.AddCommands(cmd, fsCli)
	cli.DisableFlagsInUseLine(cmd)

	return cmd
}
