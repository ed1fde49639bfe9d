package frame

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// DefaultHeader is the frame header written by recorder firmware.
var DefaultHeader = []byte{0x55, 0xAA}

// ParseHeader converts a hex string such as "55 AA BB" into bytes.
// Spaces are ignored and case does not matter.
func ParseHeader(s string) ([]byte, error) {
	clean := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if clean == "" {
		return nil, errors.New("invalid frame header: empty")
	}

	for _, c := range clean {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return nil, errors.New("invalid frame header: contains non-hex characters")
		}
	}

	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, errors.Wrap(err, "invalid frame header")
	}

	return b, nil
}

// FormatHeader renders header bytes the way ParseHeader accepts them.
func FormatHeader(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{v}))
	}
	return strings.Join(parts, " ")
}
