package versioncmd

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"framesplit/cli/command"
	"framesplit/cli/version"
	"framesplit/pkg/platform"

	"github.com/spf13/cobra"
)

func NewVersionCommand(fsCli command.Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(fsCli)
		},
	}
}

func runVersion(fsCli command.Cli) error {
	w := tabwriter.NewWriter(fsCli.Out(), 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "Version:\t%s\n", version.Version)
	fmt.Fprintf(w, "Git commit:\t%s\n", version.GitCommit)
	fmt.Fprintf(w, "Built:\t%s\n", version.BuildTime)
	fmt.Fprintf(w, "Go version:\t%s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch:\t%s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "Architecture:\t%s\n", platform.Current())
	return w.Flush()
}
