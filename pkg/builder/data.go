package builder

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/moby/patternmatcher"
	"github.com/pkg/errors"
)

// DataSpec is a SRC;DST pair naming a file or directory to ship next to the
// executable.
type DataSpec struct {
	Source string
	Dest   string
}

// ParseDataSpec parses "SRC;DST". On hosts other than Windows "SRC:DST" is
// accepted as well.
func ParseDataSpec(s string) (DataSpec, error) {
	idx := strings.LastIndex(s, ";")
	if idx < 0 && runtime.GOOS != "windows" {
		idx = strings.LastIndex(s, ":")
	}
	if idx <= 0 || idx == len(s)-1 {
		return DataSpec{}, errors.Errorf("invalid data spec %q (expected SRC;DST)", s)
	}

	return DataSpec{
		Source: s[:idx],
		Dest:   s[idx+1:],
	}, nil
}

// copyData copies spec.Source into destRoot/spec.Dest, skipping paths that
// match an exclude pattern and anything under skipDir. It returns the
// copied files relative to destRoot.
func copyData(spec DataSpec, destRoot, skipDir string, excludes []string) ([]string, error) {
	pm, err := patternmatcher.New(excludes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid exclude pattern")
	}

	srcRoot, err := filepath.Abs(spec.Source)
	if err != nil {
		return nil, err
	}
	absSkip := ""
	if skipDir != "" {
		if absSkip, err = filepath.Abs(skipDir); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(srcRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "data source %s", spec.Source)
	}

	destBase := filepath.Join(destRoot, filepath.Clean(spec.Dest))

	if !info.IsDir() {
		rel, err := filepath.Rel(destRoot, filepath.Join(destBase, filepath.Base(srcRoot)))
		if err != nil {
			return nil, err
		}
		if err := copyFile(srcRoot, filepath.Join(destRoot, rel), info.Mode()); err != nil {
			return nil, err
		}
		return []string{rel}, nil
	}

	var copied []string
	err = filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if absSkip != "" && (path == absSkip || strings.HasPrefix(path, absSkip+string(filepath.Separator))) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		skip, err := pm.MatchesOrParentMatches(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if skip {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return nil
		}

		target := filepath.Join(destBase, rel)
		if err := copyFile(path, target, fi.Mode()); err != nil {
			return err
		}

		out, err := filepath.Rel(destRoot, target)
		if err != nil {
			return err
		}
		copied = append(copied, out)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to copy data from %s", spec.Source)
	}

	return copied, nil
}

func copyFile(src, dst string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
