package generate

import (
	"context"
	"os"
	"strconv"

	"framesplit/cli"
	"framesplit/cli/command"
	"framesplit/pkg/frame"
	"framesplit/pkg/splitter"

	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	frames int
	header string
	words  int
}

func NewGenerateCommand(fsCli command.Cli) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [OPTIONS] OUTPUT",
		Short: "Generate a synthetic recorder data file",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("frames") {
				opts.frames = -1
			}
			return runGenerate(cmd.Context(), fsCli, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.frames, "frames", "n", 0, "Number of frames to generate (prompted when omitted)")
	flags.StringVar(&opts.header, "header", frame.FormatHeader(frame.DefaultGeneratorHeader), "Frame header in hex")
	flags.IntVar(&opts.words, "words", frame.DefaultWords, "Counter words after each header")

	return cmd
}

func runGenerate(ctx context.Context, fsCli command.Cli, opts generateOptions, output string) error {
	header, err := frame.ParseHeader(opts.header)
	if err != nil {
		return err
	}

	if opts.frames < 0 {
		answer, err := command.PromptForInput(ctx, fsCli.In(), fsCli.Out(), "Number of frames to generate: ")
		if err != nil {
			return err
		}
		opts.frames, err = strconv.Atoi(answer)
		if err != nil || opts.frames < 0 {
			return errors.Errorf("invalid frame count: %q", answer)
		}
	}

	gen := &frame.Generator{Header: header, Words: opts.words}
	command.Printer.Fprintf(fsCli.Err(), "Generating %d frames...\n", opts.frames)

	f, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", output)
	}
	defer f.Close()

	var n int64
	err = fsCli.Progress().RunWithProgress("Writing", func() error {
		var err error
		n, err = gen.WriteFrames(ctx, f, opts.frames)
		return err
	}, fsCli.Err())
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", output)
	}

	fsCli.Out().With(aec.GreenF).Println("File written: ", output)
	command.Printer.Fprintf(fsCli.Out(), "File size: %s\n", splitter.HumanSize(n))
	command.Printer.Fprintf(fsCli.Out(), "Frames: %d | frame size: %d bytes\n", opts.frames, gen.FrameSize())

	return nil
}
