package commands

import (
	"framesplit/cli/command"
	"framesplit/cli/command/arch"
	"framesplit/cli/command/build"
	"framesplit/cli/command/generate"
	"framesplit/cli/command/split"
	"framesplit/cli/command/verify"
	"framesplit/cli/command/versioncmd"

	"github.com/spf13/cobra"
)

func AddCommands(cmd *cobra.Command, fsCli command.Cli) {
	cmd.AddCommand(
		split.NewSplitCommand(fsCli),
		generate.NewGenerateCommand(fsCli),
		verify.NewVerifyCommand(fsCli),
		arch.NewArchCommand(fsCli),
		build.NewBuildCommand(fsCli),
		versioncmd.NewVersionCommand(fsCli),
	)
}
