package builder

import (
	"os"
	"runtime"

	"framesplit/pkg/platform"

	"github.com/pkg/errors"
)

// Force32BitEnv forces 32-bit builds when no target architecture is given.
const Force32BitEnv = "FRAMESPLIT_FORCE_32BIT"

// ResolveArch maps a target architecture selector to a GOARCH value.
// It accepts "32bit", "64bit" or any known GOARCH.
func ResolveArch(target string) (string, error) {
	switch target {
	case "":
		if v := os.Getenv(Force32BitEnv); v != "" && v != "0" {
			return "386", nil
		}
		return runtime.GOARCH, nil
	case platform.Bits32:
		return "386", nil
	case platform.Bits64:
		return "amd64", nil
	}

	if !platform.KnownArch(target) {
		return "", errors.Errorf("unknown target architecture %q (expected 32bit, 64bit or a GOARCH value)", target)
	}
	return target, nil
}
