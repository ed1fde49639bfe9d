package builder

import (
	"archive/zip"
	"context"
	"debug/pe"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"framesplit/pkg/platform"
	"framesplit/pkg/platform/petest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToolchain answers "go env GOVERSION" and writes a header-only PE for
// "go build".
type fakeToolchain struct {
	version  string
	machine  uint16
	buildErr error
	builds   [][]string
	envs     [][]string
}

func (f *fakeToolchain) Run(_ context.Context, env []string, name string, args ...string) ([]byte, error) {
	if name != "go" {
		return nil, errors.Errorf("unexpected command %s", name)
	}

	if args[0] == "env" {
		return []byte(f.version + "\n"), nil
	}

	f.builds = append(f.builds, args)
	f.envs = append(f.envs, env)
	if f.buildErr != nil {
		return []byte("compile error"), f.buildErr
	}

	var out, flags string
	for i, a := range args {
		switch a {
		case "-o":
			out = args[i+1]
		case "-ldflags":
			flags = args[i+1]
		}
	}

	machine := f.machine
	if machine == 0 {
		machine = pe.IMAGE_FILE_MACHINE_I386
		if envValue(env, "GOARCH") == "amd64" {
			machine = pe.IMAGE_FILE_MACHINE_AMD64
		}
	}

	subsystem := uint16(pe.IMAGE_SUBSYSTEM_WINDOWS_CUI)
	if strings.Contains(flags, "-H=windowsgui") {
		subsystem = pe.IMAGE_SUBSYSTEM_WINDOWS_GUI
	}

	return nil, os.WriteFile(out, petest.Image(machine, subsystem), 0o755)
}

func envValue(env []string, key string) string {
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}

func baseOptions(t *testing.T) Options {
	return Options{
		Package:    "./cmd/framesplit",
		OutputDir:  filepath.Join(t.TempDir(), "dist"),
		TargetOS:   "windows",
		TargetArch: "32bit",
		NoConsole:  true,
		Version:    "1.2.3",
	}
}

func TestBuildWindows32(t *testing.T) {
	tc := &fakeToolchain{version: "go1.24.1"}
	opts := baseOptions(t)

	res, err := New(tc).Build(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(opts.OutputDir, "framesplit.exe"), res.Artifact)
	assert.Equal(t, platform.Windows32, res.Executable.Architecture)
	assert.True(t, res.Executable.GUI)
	assert.Equal(t, "go1.24.1", res.GoVersion)
	assert.Empty(t, res.Archive)

	require.Len(t, tc.builds, 1)
	args := strings.Join(tc.builds[0], " ")
	assert.Contains(t, args, "-trimpath")
	assert.Contains(t, args, "-H=windowsgui")
	assert.Contains(t, args, "framesplit/cli/version.Version=1.2.3")

	env := tc.envs[0]
	assert.Equal(t, "windows", envValue(env, "GOOS"))
	assert.Equal(t, "386", envValue(env, "GOARCH"))
	assert.Equal(t, "0", envValue(env, "CGO_ENABLED"))
}

func TestBuildDetectsWrongArchitecture(t *testing.T) {
	tc := &fakeToolchain{version: "go1.24.1", machine: pe.IMAGE_FILE_MACHINE_AMD64}

	_, err := New(tc).Build(context.Background(), baseOptions(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected ('32bit', 'WindowsPE')")
}

func TestBuildConsoleBinary(t *testing.T) {
	opts := baseOptions(t)
	opts.NoConsole = false

	res, err := New(&fakeToolchain{version: "go1.24.1"}).Build(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, res.Executable.GUI)
}

func TestBuildFailure(t *testing.T) {
	tc := &fakeToolchain{version: "go1.24.1", buildErr: errors.New("exit status 1")}

	_, err := New(tc).Build(context.Background(), baseOptions(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile error")
}

func TestBuildUnsupportedToolchain(t *testing.T) {
	tc := &fakeToolchain{version: "go1.26.0"}
	opts := baseOptions(t)
	opts.TargetArch = "arm"

	_, err := New(tc).Build(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "windows/arm is not supported")
	assert.Empty(t, tc.builds)
}

func TestBuildClean(t *testing.T) {
	opts := baseOptions(t)
	require.NoError(t, os.MkdirAll(opts.OutputDir, 0o755))
	stale := filepath.Join(opts.OutputDir, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	opts.Clean = true
	_, err := New(&fakeToolchain{version: "go1.24.1"}).Build(context.Background(), opts)
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
}

func TestBuildCleanRefusesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	for _, dir := range []string{".", "./", "..", wd, filepath.Dir(wd)} {
		t.Run(dir, func(t *testing.T) {
			opts := baseOptions(t)
			opts.OutputDir = dir
			opts.Clean = true

			tc := &fakeToolchain{version: "go1.24.1"}
			_, err := New(tc).Build(context.Background(), opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "refusing to clean")
			assert.Empty(t, tc.builds)
			assert.FileExists(t, filepath.Join(wd, "builder_test.go"))
		})
	}
}

func TestCheckCleanTarget(t *testing.T) {
	assert.NoError(t, checkCleanTarget(filepath.Join(t.TempDir(), "dist")))
	assert.NoError(t, checkCleanTarget("dist"))
	assert.NoError(t, checkCleanTarget("..dist"))
	assert.Error(t, checkCleanTarget("."))
}

func TestBuildWithDataBesideArtifact(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "readme.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "assets", "icon.ico"), []byte("ico"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "debug.log"), []byte("log"), 0o644))

	opts := baseOptions(t)
	opts.AddData = []DataSpec{{Source: src, Dest: "."}}
	opts.Exclude = []string{"*.log"}
	opts.Archive = true

	res, err := New(&fakeToolchain{version: "go1.24.1"}).Build(context.Background(), opts)
	require.NoError(t, err)

	sort.Strings(res.DataFiles)
	assert.Equal(t, []string{filepath.Join("assets", "icon.ico"), "readme.txt"}, res.DataFiles)
	assert.FileExists(t, filepath.Join(opts.OutputDir, "readme.txt"))
	assert.NoFileExists(t, filepath.Join(opts.OutputDir, "debug.log"))

	names := zipNames(t, res.Archive)
	assert.Equal(t, []string{"assets/icon.ico", "framesplit.exe", "readme.txt"}, names)
}

func TestBuildOneFileWithData(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "readme.txt"), []byte("hello"), 0o644))

	opts := baseOptions(t)
	opts.OneFile = true
	opts.AddData = []DataSpec{{Source: src, Dest: "docs"}}

	res, err := New(&fakeToolchain{version: "go1.24.1"}).Build(context.Background(), opts)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(opts.OutputDir, "docs", "readme.txt"))
	assert.Equal(t, filepath.Join(opts.OutputDir, "framesplit.zip"), res.Archive)
	assert.Equal(t, []string{"docs/readme.txt", "framesplit.exe"}, zipNames(t, res.Archive))
}

func TestBuildDataSkipsOutputDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.go"), []byte("package main"), 0o644))

	opts := baseOptions(t)
	opts.OutputDir = filepath.Join(src, "dist")
	opts.AddData = []DataSpec{{Source: src, Dest: "."}}

	res, err := New(&fakeToolchain{version: "go1.24.1"}).Build(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, res.DataFiles)
}

func TestBuildValidation(t *testing.T) {
	_, err := New(&fakeToolchain{}).Build(context.Background(), Options{})
	assert.Error(t, err)
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "framesplit.exe", artifactName(Options{Package: "./cmd/framesplit"}, "windows"))
	assert.Equal(t, "framesplit", artifactName(Options{Package: "./cmd/framesplit/"}, "linux"))
	assert.Equal(t, "tool.exe", artifactName(Options{Package: ".", Name: "tool.exe"}, "windows"))
	assert.Equal(t, "main", artifactName(Options{Package: "."}, "linux"))
}

func TestIsolatedEnv(t *testing.T) {
	env := isolatedEnv([]string{"PATH=/bin", "GOARCH=amd64", "GOFLAGS=-mod=vendor"}, map[string]string{
		"GOARCH":  "386",
		"GOFLAGS": "",
	})
	sort.Strings(env)
	assert.Equal(t, []string{"GOARCH=386", "PATH=/bin"}, env)
}

func zipNames(t *testing.T, path string) []string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
