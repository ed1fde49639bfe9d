// Package platform reports the word size and executable format of the
// running program or of an executable on disk.
package platform

import (
	"fmt"
	"runtime"
	"strconv"
)

const (
	Bits32 = "32bit"
	Bits64 = "64bit"

	LinkageWindowsPE = "WindowsPE"
	LinkageELF       = "ELF"
	LinkageMachO     = "Mach-O"
)

var archWordSize = map[string]int{
	"386":      32,
	"amd64":    64,
	"arm":      32,
	"arm64":    64,
	"loong64":  64,
	"mips":     32,
	"mipsle":   32,
	"mips64":   64,
	"mips64le": 64,
	"ppc64":    64,
	"ppc64le":  64,
	"riscv64":  64,
	"s390x":    64,
	"wasm":     32,
}

var osLinkage = map[string]string{
	"windows":   LinkageWindowsPE,
	"linux":     LinkageELF,
	"android":   LinkageELF,
	"freebsd":   LinkageELF,
	"netbsd":    LinkageELF,
	"openbsd":   LinkageELF,
	"dragonfly": LinkageELF,
	"solaris":   LinkageELF,
	"illumos":   LinkageELF,
	"darwin":    LinkageMachO,
	"ios":       LinkageMachO,
}

// Architecture is a (bits, linkage) pair such as ('32bit', 'WindowsPE').
type Architecture struct {
	Bits    string
	Linkage string
}

// String renders the pair as a tuple.
func (a Architecture) String() string {
	return fmt.Sprintf("('%s', '%s')", a.Bits, a.Linkage)
}

// Windows32 is the architecture of a 32-bit Windows executable.
var Windows32 = Architecture{Bits: Bits32, Linkage: LinkageWindowsPE}

// Current returns the architecture of the running binary.
func Current() Architecture {
	return For(runtime.GOOS, runtime.GOARCH)
}

// For returns the architecture a binary built for goos/goarch would report.
func For(goos, goarch string) Architecture {
	size, ok := archWordSize[goarch]
	if !ok {
		size = strconv.IntSize
	}
	return Architecture{
		Bits:    strconv.Itoa(size) + "bit",
		Linkage: osLinkage[goos],
	}
}

// KnownArch reports whether goarch is a GOARCH value this package knows
// the word size of.
func KnownArch(goarch string) bool {
	_, ok := archWordSize[goarch]
	return ok
}
