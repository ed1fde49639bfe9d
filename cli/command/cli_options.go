package command

import (
	"io"

	"framesplit/pkg/config/configfile"
	"framesplit/pkg/progress"
	"framesplit/pkg/streams"

	"github.com/moby/term"
)

// CLIOption is a functional argument to apply options to a [FramesplitCli]. These
// options can be passed to [NewFramesplitCli] to initialize a new CLI, or
// applied with [FramesplitCli.Initialize] or [FramesplitCli.Apply].
type CLIOption func(cli *FramesplitCli) error

// WithStandardStreams sets a cli in, out and err streams with the standard streams.
func WithStandardStreams() CLIOption {
	return func(cli *FramesplitCli) error {
		// Set terminal emulation based on platform as required.
		stdin, stdout, stderr := term.StdStreams()
		cli.in = streams.NewIn(stdin)
		cli.out = streams.NewOut(stdout)
		cli.err = streams.NewOut(stderr)
		return nil
	}
}

// WithCombinedStreams uses the same stream for the output and error streams.
func WithCombinedStreams(combined io.Writer) CLIOption {
	return func(cli *FramesplitCli) error {
		s := streams.NewOut(combined)
		cli.out = s
		cli.err = s
		return nil
	}
}

// WithInputStream sets a cli input stream.
func WithInputStream(in io.ReadCloser) CLIOption {
	return func(cli *FramesplitCli) error {
		cli.in = streams.NewIn(in)
		return nil
	}
}

// WithOutputStream sets a cli output stream.
func WithOutputStream(out io.Writer) CLIOption {
	return func(cli *FramesplitCli) error {
		cli.out = streams.NewOut(out)
		return nil
	}
}

// WithErrorStream sets a cli error stream.
func WithErrorStream(err io.Writer) CLIOption {
	return func(cli *FramesplitCli) error {
		cli.err = streams.NewOut(err)
		return nil
	}
}

// WithConfigFile replaces the configuration loaded from disk.
func WithConfigFile(cfg *configfile.ConfigFile) CLIOption {
	return func(cli *FramesplitCli) error {
		cli.configFile = cfg
		return nil
	}
}

// WithProgress sets the progress indicator.
func WithProgress(p *progress.Progress) CLIOption {
	return func(cli *FramesplitCli) error {
		cli.progress = p
		return nil
	}
}
