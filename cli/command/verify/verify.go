package verify

import (
	"context"

	"framesplit/cli"
	"framesplit/cli/command"
	"framesplit/pkg/splitter"

	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewVerifyCommand(fsCli command.Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "verify DIR",
		Short: "Check split parts against their manifest",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), fsCli, args[0])
		},
	}
}

func runVerify(ctx context.Context, fsCli command.Cli, dir string) error {
	results, err := splitter.Verify(ctx, dir)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		style := aec.GreenF
		if r.Status != splitter.StatusOK {
			style = aec.RedF
			failed++
		}
		fsCli.Out().With(style).Printf("%-9s %s\n", r.Status, r.Name)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d part(s) failed verification", failed, len(results))
	}
	command.Printer.Fprintf(fsCli.Out(), "All %d part(s) verified.\n", len(results))
	return nil
}
