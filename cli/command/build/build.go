package build

import (
	"context"
	"fmt"

	"framesplit/cli"
	"framesplit/cli/command"
	"framesplit/cli/version"
	"framesplit/pkg/builder"

	"github.com/morikuni/aec"
	"github.com/spf13/cobra"
)

const defaultPackage = "./cmd/framesplit"

type buildOptions struct {
	output     string
	name       string
	targetOS   string
	targetArch string
	clean      bool
	oneFile    bool
	noConsole  bool
	addData    []string
	exclude    []string
	archive    bool
	ldflags    string
	appVersion string
}

func NewBuildCommand(fsCli command.Cli) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build [OPTIONS] [PACKAGE]",
		Short: "Cross-compile a command into a standalone executable",
		Long: `Cross-compile a Go command into a standalone executable and check that it
reports the requested architecture. By default framesplit itself is built.

Example:
  framesplit build --clean --target-arch=32bit --add-data ".;." --onefile --noconsole`,
		Args: cli.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := defaultPackage
			if len(args) == 1 {
				pkg = args[0]
			}
			return runBuild(cmd.Context(), fsCli, builder.New(nil), opts, pkg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "dist", "Directory to write the executable to")
	flags.StringVar(&opts.name, "name", "", "Executable name (defaults to the package directory name)")
	flags.StringVar(&opts.targetOS, "target-os", "windows", "Target operating system (GOOS)")
	flags.StringVar(&opts.targetArch, "target-arch", "", `Target architecture: "32bit", "64bit" or a GOARCH value (default: host, or 386 when `+builder.Force32BitEnv+` is set)`)
	flags.BoolVar(&opts.clean, "clean", false, "Remove the output directory before building")
	flags.BoolVarP(&opts.oneFile, "onefile", "F", false, "Produce a single file; bundled data goes into a zip with the executable")
	flags.BoolVarP(&opts.noConsole, "noconsole", "w", false, "Link for the windows GUI subsystem so no console window opens")
	flags.StringArrayVar(&opts.addData, "add-data", nil, `Additional data to ship, as "SRC;DST" (repeatable)`)
	flags.StringArrayVar(&opts.exclude, "exclude", []string{".git", "dist"}, "Patterns to skip when copying data (repeatable)")
	flags.BoolVar(&opts.archive, "archive", false, "Also pack the output into a zip archive")
	flags.StringVar(&opts.ldflags, "ldflags", "", "Extra linker flags")
	flags.StringVar(&opts.appVersion, "app-version", version.Version, "Version stamped into the executable")

	return cmd
}

func runBuild(ctx context.Context, fsCli command.Cli, b *builder.Builder, opts buildOptions, pkg string) error {
	var data []builder.DataSpec
	for _, s := range opts.addData {
		spec, err := builder.ParseDataSpec(s)
		if err != nil {
			return err
		}
		data = append(data, spec)
	}

	var res *builder.Result
	err := fsCli.Progress().RunWithProgress("Building", func() error {
		var err error
		res, err = b.Build(ctx, builder.Options{
			Package:    pkg,
			OutputDir:  opts.output,
			Name:       opts.name,
			TargetOS:   opts.targetOS,
			TargetArch: opts.targetArch,
			Clean:      opts.clean,
			OneFile:    opts.oneFile,
			NoConsole:  opts.noConsole,
			AddData:    data,
			Exclude:    opts.exclude,
			Archive:    opts.archive,
			LDFlags:    opts.ldflags,
			Version:    opts.appVersion,
		})
		return err
	}, fsCli.Err())
	if err != nil {
		return err
	}

	fmt.Fprintln(fsCli.Out(), res.Executable.Architecture)
	fsCli.Out().With(aec.GreenF).Println("Built ", res.Artifact, " with ", res.GoVersion)
	if len(res.DataFiles) > 0 {
		command.Printer.Fprintf(fsCli.Out(), "Bundled %d data file(s)\n", len(res.DataFiles))
	}
	if res.Archive != "" {
		fsCli.Out().With(aec.GreenF).Println("Archive ", res.Archive)
	}
	return nil
}
