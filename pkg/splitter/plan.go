package splitter

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
)

// searchBackFactor and searchForwardFactor size the window around a split
// target, in multiples of the header length.
const (
	searchBackFactor    = 100
	searchForwardFactor = 2
)

// Plan computes split boundaries for data of the given size. The result
// always starts with 0 and ends with size; every inner boundary is the
// offset of a frame header at or before cur+maxSize.
func Plan(ctx context.Context, r io.ReaderAt, size int64, header []byte, maxSize int64, progress func(Progress)) ([]int64, error) {
	if len(header) == 0 {
		return nil, errors.New("frame header must not be empty")
	}
	if maxSize <= 0 {
		return nil, errors.Errorf("max size must be greater than zero: %d", maxSize)
	}

	headerLen := int64(len(header))
	splits := []int64{0}
	var cur int64

	for cur+maxSize < size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target := cur + maxSize
		start := max(0, target-headerLen*searchBackFactor)
		end := min(size, target+headerLen*searchForwardFactor)

		window := make([]byte, end-start)
		n, err := r.ReadAt(window, start)
		if err != nil && !(errors.Is(err, io.EOF) && n == len(window)) {
			return nil, errors.Wrapf(err, "failed to read search window at %d", start)
		}

		cut := lastHeaderBefore(window, header, start, target)
		if cut <= cur {
			return nil, &HeaderNotFoundError{Position: target}
		}

		splits = append(splits, cut)
		cur = cut

		if progress != nil {
			progress(Progress{Stage: StagePlan, Processed: cur, Total: size})
		}
	}

	return append(splits, size), nil
}

// lastHeaderBefore scans window left to right for non-overlapping header
// occurrences and returns the global offset of the last one at or before
// limit, or -1.
func lastHeaderBefore(window, header []byte, base, limit int64) int64 {
	last := int64(-1)
	pos := 0
	for pos < len(window) {
		i := bytes.Index(window[pos:], header)
		if i < 0 {
			break
		}

		global := base + int64(pos+i)
		if global > limit {
			break
		}
		last = global
		pos += i + len(header)
	}
	return last
}
