package splitter

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/fvbommel/sortorder"
	"github.com/moby/sys/sequential"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusMismatch Status = "mismatch"
	StatusMissing  Status = "missing"
	StatusUnlisted Status = "unlisted"
)

// Result is the verification outcome for one part file.
type Result struct {
	Name     string
	Status   Status
	Expected digest.Digest
	Actual   digest.Digest
}

// Verify recomputes the digests of all parts in dir and compares them with
// the manifest. Results are in natural file name order.
func Verify(ctx context.Context, dir string) ([]Result, error) {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	onDisk, err := filepath.Glob(filepath.Join(dir, "part_*.dat"))
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(onDisk))
	for _, p := range onDisk {
		present[filepath.Base(p)] = true
	}

	listed := make(map[string]bool, len(manifest.Parts))
	var results []Result

	for _, part := range manifest.Parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		listed[part.Name] = true

		r := Result{Name: part.Name, Expected: part.Digest}
		if !present[part.Name] {
			r.Status = StatusMissing
			results = append(results, r)
			continue
		}

		r.Actual, err = fileDigest(filepath.Join(dir, part.Name))
		if err != nil {
			return nil, err
		}
		if r.Actual == part.Digest {
			r.Status = StatusOK
		} else {
			r.Status = StatusMismatch
		}
		results = append(results, r)
	}

	for name := range present {
		if !listed[name] {
			results = append(results, Result{Name: name, Status: StatusUnlisted})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return sortorder.NaturalLess(results[i].Name, results[j].Name)
	})

	return results, nil
}

func fileDigest(path string) (digest.Digest, error) {
	f, err := sequential.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	d, err := digest.Canonical.FromReader(f)
	if err != nil {
		return "", errors.Wrapf(err, "failed to hash %s", path)
	}
	return d, nil
}
