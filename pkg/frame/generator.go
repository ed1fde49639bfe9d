package frame

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

const (
	// DefaultWords is the number of counter words following each header.
	DefaultWords = 33
)

// MaxCounterWords is the number of counter values a uint32 can hold. A
// stream longer than this would repeat counters.
const MaxCounterWords = math.MaxUint32 + 1

// DefaultGeneratorHeader is the 4-byte header used for synthetic frames.
var DefaultGeneratorHeader = []byte{0x55, 0xAA, 0xBB, 0xCC}

// Generator produces synthetic recorder frames: a header followed by
// little-endian uint32 words taken from one running counter.
type Generator struct {
	Header []byte
	Words  int
}

// NewGenerator returns a Generator with the default header and word count.
func NewGenerator() *Generator {
	return &Generator{
		Header: DefaultGeneratorHeader,
		Words:  DefaultWords,
	}
}

// FrameSize returns the size of a single frame in bytes.
func (g *Generator) FrameSize() int {
	return len(g.Header) + 4*g.Words
}

// WriteFrames writes n frames to w and returns the number of bytes written.
// It fails without writing if n*Words exceeds MaxCounterWords.
func (g *Generator) WriteFrames(ctx context.Context, w io.Writer, n int) (int64, error) {
	if n < 0 {
		return 0, errors.Errorf("frame count must not be negative: %d", n)
	}
	if len(g.Header) == 0 {
		return 0, errors.New("frame header must not be empty")
	}
	if g.Words < 0 {
		return 0, errors.Errorf("word count must not be negative: %d", g.Words)
	}
	if uint64(n)*uint64(g.Words) > MaxCounterWords {
		return 0, errors.Errorf("%d frames of %d words overflow the 32-bit counter (limit %d words)", n, g.Words, uint64(MaxCounterWords))
	}

	bw := bufio.NewWriterSize(w, 64*1024)
	buf := make([]byte, g.FrameSize())
	copy(buf, g.Header)

	var (
		counter uint32
		written int64
	)
	for i := 0; i < n; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return written, err
			}
		}

		off := len(g.Header)
		for j := 0; j < g.Words; j++ {
			binary.LittleEndian.PutUint32(buf[off:], counter)
			counter++
			off += 4
		}

		m, err := bw.Write(buf)
		written += int64(m)
		if err != nil {
			return written, errors.Wrap(err, "failed to write frame")
		}
	}

	if err := bw.Flush(); err != nil {
		return written, errors.Wrap(err, "failed to flush frames")
	}

	return written, nil
}
