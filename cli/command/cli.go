package command

import (
	"io"

	"framesplit/cli/debug"
	cliflags "framesplit/cli/flags"
	"framesplit/pkg/config"
	"framesplit/pkg/config/configfile"
	"framesplit/pkg/progress"
	"framesplit/pkg/streams"

	"github.com/spf13/cobra"
)

// Streams is an interface which exposes the standard input and output streams
type Streams interface {
	In() *streams.In
	Out() *streams.Out
	Err() *streams.Out
}

// Cli represents the framesplit command line client.
type Cli interface {
	Streams
	SetIn(in *streams.In)
	Apply(ops ...CLIOption) error
	ConfigFile() *configfile.ConfigFile
	Progress() *progress.Progress
}

// FramesplitCli is an instance the framesplit command line client.
// Instances of the client can be returned from NewFramesplitCli.
type FramesplitCli struct {
	in         *streams.In
	out        *streams.Out
	err        *streams.Out
	configFile *configfile.ConfigFile
	progress   *progress.Progress
}

// NewFramesplitCli returns a FramesplitCli instance with all operators applied on it.
// It applies by default the standard streams.
func NewFramesplitCli(ops ...CLIOption) (*FramesplitCli, error) {
	defaultOps := []CLIOption{
		WithStandardStreams(),
	}
	ops = append(defaultOps, ops...)

	cli := &FramesplitCli{}
	if err := cli.Apply(ops...); err != nil {
		return nil, err
	}
	return cli, nil
}

// Out returns the writer used for stdout
func (cli *FramesplitCli) Out() *streams.Out {
	return cli.out
}

// Err returns the writer used for stderr
func (cli *FramesplitCli) Err() *streams.Out {
	return cli.err
}

// SetIn sets the reader used for stdin
func (cli *FramesplitCli) SetIn(in *streams.In) {
	cli.in = in
}

// In returns the reader used for stdin
func (cli *FramesplitCli) In() *streams.In {
	return cli.in
}

// ShowHelp shows the command help.
func ShowHelp(err io.Writer) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SetOut(err)
		cmd.HelpFunc()(cmd, args)
		return nil
	}
}

// Apply all the operation on the cli
func (cli *FramesplitCli) Apply(ops ...CLIOption) error {
	for _, op := range ops {
		if err := op(cli); err != nil {
			return err
		}
	}
	return nil
}

// ConfigFile returns the ConfigFile
func (cli *FramesplitCli) ConfigFile() *configfile.ConfigFile {
	// Commands run from tests may skip Initialize.
	if cli.configFile == nil {
		cli.configFile = config.LoadDefaultConfigFile(cli.err)
	}
	return cli.configFile
}

// Progress returns the progress indicator writing to stderr.
func (cli *FramesplitCli) Progress() *progress.Progress {
	if cli.progress == nil {
		cli.progress = &progress.Progress{
			ProgressColorEnabled:     cli.err.IsColorEnabled(),
			ProgressIndicatorEnabled: cli.err.IsTerminal(),
		}
	}
	return cli.progress
}

// Initialize runs initialization that must happen after command line
// flags are parsed.
func (cli *FramesplitCli) Initialize(opts *cliflags.ClientOptions, ops ...CLIOption) error {
	for _, o := range ops {
		if err := o(cli); err != nil {
			return err
		}
	}
	cliflags.SetLogLevel(opts.LogLevel)

	if opts.ConfigDir != "" {
		config.SetDir(opts.ConfigDir)
	}

	if opts.Debug || debug.IsEnabled() {
		debug.Enable()
	}

	cli.configFile = config.LoadDefaultConfigFile(cli.err)

	return nil
}
