// Package builder cross-compiles a Go command into a single-file
// executable, ships data files alongside it and checks the result.
package builder

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"framesplit/pkg/platform"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const versionVar = "framesplit/cli/version.Version"

// Options configures a build.
type Options struct {
	Package    string `validate:"required"`
	OutputDir  string `validate:"required"`
	Name       string
	TargetOS   string `validate:"required"`
	TargetArch string
	Clean      bool
	OneFile    bool
	NoConsole  bool
	AddData    []DataSpec
	Exclude    []string
	Archive    bool
	LDFlags    string
	Version    string
}

// Result describes the produced artifacts.
type Result struct {
	Artifact   string
	Executable *platform.Executable
	GoVersion  string
	DataFiles  []string
	Archive    string
}

// Builder runs the Go toolchain through a Runner.
type Builder struct {
	runner   Runner
	validate *goValidator.Validate
}

// New returns a Builder using runner, or the system toolchain if runner
// is nil.
func New(runner Runner) *Builder {
	if runner == nil {
		runner = &ExecRunner{}
	}
	return &Builder{
		runner:   runner,
		validate: goValidator.New(),
	}
}

// Build compiles opts.Package and verifies the produced executable.
func (b *Builder) Build(ctx context.Context, opts Options) (*Result, error) {
	if err := b.validate.Struct(opts); err != nil {
		return nil, errors.Wrap(err, "invalid build options")
	}

	goarch, err := ResolveArch(opts.TargetArch)
	if err != nil {
		return nil, err
	}
	goos := opts.TargetOS

	log := logrus.WithFields(logrus.Fields{
		"package": opts.Package,
		"target":  goos + "/" + goarch,
	})

	if opts.Clean {
		if err := checkCleanTarget(opts.OutputDir); err != nil {
			return nil, err
		}
		log.WithField("dir", opts.OutputDir).Debug("removing previous build output")
		if err := os.RemoveAll(opts.OutputDir); err != nil {
			return nil, errors.Wrapf(err, "failed to clean %s", opts.OutputDir)
		}
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", opts.OutputDir)
	}

	out, err := b.runner.Run(ctx, nil, "go", "env", "GOVERSION")
	if err != nil {
		return nil, errors.Wrap(err, "failed to query go version")
	}
	goVersion := strings.TrimSpace(string(out))

	if err := CheckToolchain(goVersion, goos, goarch); err != nil {
		return nil, err
	}

	artifact := filepath.Join(opts.OutputDir, artifactName(opts, goos))
	env := isolatedEnv(os.Environ(), map[string]string{
		"GOOS":        goos,
		"GOARCH":      goarch,
		"CGO_ENABLED": "0",
		"GOFLAGS":     "",
	})

	args := []string{"build", "-trimpath", "-ldflags", ldflags(opts, goos), "-o", artifact, opts.Package}
	log.WithField("args", args).Debug("running go build")

	if out, err := b.runner.Run(ctx, env, "go", args...); err != nil {
		return nil, errors.Wrapf(err, "go build failed: %s", strings.TrimSpace(string(out)))
	}

	exe, err := platform.Inspect(artifact)
	if err != nil {
		return nil, err
	}
	if want := platform.For(goos, goarch); exe.Architecture != want {
		return nil, errors.Errorf("%s reports %s, expected %s", artifact, exe.Architecture, want)
	}
	if opts.NoConsole && goos == "windows" && !exe.GUI {
		return nil, errors.Errorf("%s was not linked for the windows GUI subsystem", artifact)
	}

	res := &Result{
		Artifact:   artifact,
		Executable: exe,
		GoVersion:  goVersion,
	}

	// Single-file builds keep data out of the output directory and ship it
	// inside the archive instead.
	dataRoot := opts.OutputDir
	if opts.OneFile && len(opts.AddData) > 0 {
		tmp, err := os.MkdirTemp("", "framesplit-data-")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tmp)
		dataRoot = tmp
	}

	for _, spec := range opts.AddData {
		files, err := copyData(spec, dataRoot, opts.OutputDir, opts.Exclude)
		if err != nil {
			return nil, err
		}
		res.DataFiles = append(res.DataFiles, files...)
	}

	if opts.Archive || (opts.OneFile && len(opts.AddData) > 0) {
		res.Archive = strings.TrimSuffix(artifact, filepath.Ext(artifact)) + ".zip"
		if err := writeArchive(res.Archive, artifact, dataRoot, res.DataFiles); err != nil {
			return nil, err
		}
	}

	log.WithField("artifact", artifact).Info("build complete")
	return res, nil
}

func writeArchive(path, artifact, dataRoot string, dataFiles []string) error {
	staging, err := os.MkdirTemp("", "framesplit-archive-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	files := []string{filepath.Base(artifact)}
	info, err := os.Stat(artifact)
	if err != nil {
		return err
	}
	if err := copyFile(artifact, filepath.Join(staging, files[0]), info.Mode()); err != nil {
		return err
	}

	for _, rel := range dataFiles {
		info, err := os.Stat(filepath.Join(dataRoot, rel))
		if err != nil {
			return err
		}
		if err := copyFile(filepath.Join(dataRoot, rel), filepath.Join(staging, rel), info.Mode()); err != nil {
			return err
		}
		files = append(files, rel)
	}

	return writeZip(path, staging, files)
}

// checkCleanTarget refuses to clean a directory that contains the working
// directory.
func checkCleanTarget(dir string) error {
	target, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", dir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}

	rel, err := filepath.Rel(target, wd)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return errors.Errorf("refusing to clean %s: it contains the working directory", dir)
	}
	return nil
}

func artifactName(opts Options, goos string) string {
	name := opts.Name
	if name == "" {
		name = filepath.Base(filepath.Clean(opts.Package))
		if name == "." || name == string(filepath.Separator) {
			name = "main"
		}
	}
	if goos == "windows" && !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}
	return name
}

func ldflags(opts Options, goos string) string {
	flags := []string{"-s", "-w"}
	if opts.NoConsole && goos == "windows" {
		flags = append(flags, "-H=windowsgui")
	}
	if opts.Version != "" {
		flags = append(flags, "-X", versionVar+"="+opts.Version)
	}
	if opts.LDFlags != "" {
		flags = append(flags, opts.LDFlags)
	}
	return strings.Join(flags, " ")
}

// isolatedEnv returns base with the keys of overrides replaced. Empty
// override values remove the variable.
func isolatedEnv(base []string, overrides map[string]string) []string {
	env := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range overrides {
		if v != "" {
			env = append(env, k+"="+v)
		}
	}
	return env
}
