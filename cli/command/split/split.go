package split

import (
	"context"
	"os"
	"path/filepath"

	"framesplit/cli"
	"framesplit/cli/command"
	"framesplit/pkg/frame"
	"framesplit/pkg/splitter"

	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type splitOptions struct {
	output  string
	header  string
	maxSize string
	workers int
	force   bool
}

func NewSplitCommand(fsCli command.Cli) *cobra.Command {
	var opts splitOptions

	cmd := &cobra.Command{
		Use:   "split [OPTIONS] INPUT",
		Short: "Split a recorder data file at frame headers",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := fsCli.ConfigFile()
			flags := cmd.Flags()
			if !flags.Changed("output") {
				opts.output = cfg.GetOutputDir()
			}
			if !flags.Changed("header") {
				opts.header = cfg.GetHeader()
			}
			if !flags.Changed("max-size") {
				opts.maxSize = cfg.GetMaxSize()
			}
			if !flags.Changed("workers") {
				opts.workers = cfg.Workers
			}
			return runSplit(cmd.Context(), fsCli, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Directory to write parts to")
	flags.StringVar(&opts.header, "header", "", `Frame header in hex, e.g. "55 AA BB"`)
	flags.StringVar(&opts.maxSize, "max-size", "", `Largest part size, in GiB ("1", "0.5") or with a unit ("512MiB")`)
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Number of parts copied in parallel (0 picks a default)")
	flags.BoolVarP(&opts.force, "force", "f", false, "Overwrite existing parts without asking")

	return cmd
}

func runSplit(ctx context.Context, fsCli command.Cli, opts splitOptions, input string) error {
	info, err := os.Stat(input)
	if err != nil {
		return errors.Errorf("input file does not exist: %s", input)
	}
	if info.IsDir() {
		return errors.Errorf("input is a directory: %s", input)
	}

	header, err := frame.ParseHeader(opts.header)
	if err != nil {
		return err
	}

	maxSize, err := splitter.ParseSize(opts.maxSize)
	if err != nil {
		return err
	}

	if !opts.force {
		existing, _ := filepath.Glob(filepath.Join(opts.output, "part_*.dat"))
		if len(existing) > 0 {
			ok, err := command.PromptForConfirmation(ctx, fsCli.In(), fsCli.Out(),
				command.Printer.Sprintf("%s already contains %d part(s). Overwrite?", opts.output, len(existing)))
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("split cancelled")
			}
		}
	}

	command.Printer.Fprintf(fsCli.Err(), "Using frame header: %s (%d bytes)\n", frame.FormatHeader(header), len(header))
	logrus.WithFields(logrus.Fields{
		"input":   input,
		"maxSize": maxSize,
		"workers": opts.workers,
	}).Debug("starting split")

	p := fsCli.Progress()
	manifest, err := splitter.Split(ctx, input, splitter.Options{
		Header:    header,
		MaxSize:   maxSize,
		OutputDir: opts.output,
		Workers:   opts.workers,
		Progress: func(pr splitter.Progress) {
			p.Percent(fsCli.Err(), pr.Stage, pr.Percent())
		},
	})
	p.Done(fsCli.Err())
	if err != nil {
		var notFound *splitter.HeaderNotFoundError
		if errors.As(err, &notFound) {
			fsCli.Err().With(aec.RedF).Println("Frame header not found!")
		}
		return err
	}

	for _, part := range manifest.Parts {
		command.Printer.Fprintf(fsCli.Out(), "  %s  %s  %s\n", part.Name, splitter.HumanSize(part.Size), part.Digest.Encoded()[:12])
	}
	fsCli.Out().With(aec.GreenF).Println(command.Printer.Sprintf("Done! %d file(s) written to %s", len(manifest.Parts), opts.output))

	return nil
}
