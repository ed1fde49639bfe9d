// Package splitter cuts recorder data files into parts that each begin
// on a frame header.
package splitter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"framesplit/pkg/frame"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/moby/sys/sequential"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CopyChunkSize is the largest block copied in one step.
const CopyChunkSize = 100 * 1024 * 1024

const (
	StagePlan = "plan"
	StageCopy = "copy"
)

// Progress reports how far a split has advanced.
type Progress struct {
	Stage     string
	Processed int64
	Total     int64
}

// Percent returns the progress as an integer percentage.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 100
	}
	return int(p.Processed * 100 / p.Total)
}

// Options configures Split.
type Options struct {
	Header    []byte `validate:"required,min=1"`
	MaxSize   int64  `validate:"gt=0"`
	OutputDir string `validate:"required"`
	Workers   int    `validate:"gte=0"`
	Progress  func(Progress)
}

var validate = goValidator.New()

// Validate checks the options.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return handleValidatorError(err)
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return min(runtime.NumCPU(), 4)
}

// PartName returns the file name of the n-th part, counting from 1.
func PartName(n int) string {
	return fmt.Sprintf("part_%d.dat", n)
}

// Split cuts input into parts under opts.OutputDir and writes a manifest
// describing them.
func Split(ctx context.Context, input string, opts Options) (*Manifest, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", opts.OutputDir)
	}

	src, err := sequential.Open(input)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", input)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", input)
	}
	size := info.Size()

	report := newReporter(opts.Progress)

	splits, err := Plan(ctx, src, size, opts.Header, opts.MaxSize, report.plan)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"input": input,
		"size":  size,
		"parts": len(splits) - 1,
	}).Debug("split plan computed")

	parts := make([]Part, len(splits)-1)
	for i := range parts {
		parts[i] = Part{
			Name:   PartName(i + 1),
			Offset: splits[i],
			Size:   splits[i+1] - splits[i],
		}
		if parts[i].Size > opts.MaxSize {
			logrus.WithFields(logrus.Fields{
				"part":  parts[i].Name,
				"size":  parts[i].Size,
				"limit": opts.MaxSize,
			}).Warn("part exceeds the size limit")
		}
	}

	if err := removeStaleParts(opts.OutputDir, parts); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	for i := range parts {
		part := &parts[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			d, err := copyRange(gctx, input, filepath.Join(opts.OutputDir, part.Name), part.Offset, part.Size, func(n int64) {
				report.copied(n, size)
			})
			if err != nil {
				return err
			}
			part.Digest = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	absInput, err := filepath.Abs(input)
	if err != nil {
		absInput = input
	}

	manifest := NewManifest()
	manifest.Source = absInput
	manifest.SourceSize = size
	manifest.Header = frame.FormatHeader(opts.Header)
	manifest.MaxSize = opts.MaxSize
	manifest.Parts = parts

	if err := manifest.Write(opts.OutputDir); err != nil {
		return nil, err
	}

	return manifest, nil
}

// removeStaleParts deletes part files in dir left over from an earlier
// split that the new plan does not produce.
func removeStaleParts(dir string, parts []Part) error {
	existing, err := filepath.Glob(filepath.Join(dir, "part_*.dat"))
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(parts))
	for _, p := range parts {
		keep[p.Name] = true
	}

	for _, path := range existing {
		name := filepath.Base(path)
		if keep[name] {
			continue
		}
		logrus.WithField("part", name).Debug("removing stale part")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to remove stale part %s", path)
		}
	}
	return nil
}

// copyRange copies [offset, offset+length) of input into a new file at
// dest and returns the digest of the copied bytes.
func copyRange(ctx context.Context, input, dest string, offset, length int64, onCopy func(int64)) (digest.Digest, error) {
	src, err := sequential.Open(input)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", input)
	}
	defer src.Close()

	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return "", errors.Wrapf(err, "failed to seek to %d", offset)
	}

	dst, err := sequential.Create(dest)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dest)
	}
	defer dst.Close()

	digester := digest.Canonical.Digester()
	w := io.MultiWriter(dst, digester.Hash())

	remaining := length
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		chunk := min(remaining, CopyChunkSize)
		n, err := io.CopyN(w, src, chunk)
		remaining -= n
		if onCopy != nil && n > 0 {
			onCopy(n)
		}
		if err != nil {
			return "", errors.Wrapf(err, "failed to copy into %s", dest)
		}
	}

	if err := dst.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to close %s", dest)
	}

	return digester.Digest(), nil
}

// reporter serializes progress callbacks coming from copy workers.
type reporter struct {
	mu   sync.Mutex
	fn   func(Progress)
	done int64
}

func newReporter(fn func(Progress)) *reporter {
	return &reporter{fn: fn}
}

func (r *reporter) plan(p Progress) {
	if r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fn(p)
}

func (r *reporter) copied(n, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done += n
	if r.fn != nil {
		r.fn(Progress{Stage: StageCopy, Processed: r.done, Total: total})
	}
}
