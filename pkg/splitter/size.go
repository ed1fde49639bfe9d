package splitter

import (
	"math"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

// ParseSize parses a part size limit. A bare number is a count of GiB, as
// in "1" or "0.5"; anything else goes through units.RAMInBytes, so "1GB"
// and "512MiB" are binary sizes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)

	var n int64
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		b := f * units.GiB
		if math.IsNaN(b) || math.IsInf(b, 0) || b >= math.MaxInt64 {
			return 0, errors.Errorf("size out of range: %q", s)
		}
		if b < 1 {
			return 0, errors.Errorf("size must be greater than zero: %q", s)
		}
		n = int64(b)
	} else {
		n, err = units.RAMInBytes(s)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid size %q", s)
		}
	}

	if n <= 0 {
		return 0, errors.Errorf("size must be greater than zero: %q", s)
	}
	return n, nil
}

// HumanSize formats a byte count for display.
func HumanSize(n int64) string {
	return units.BytesSize(float64(n))
}
