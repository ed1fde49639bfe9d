package platform

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned by Inspect for files that are not PE, ELF
// or Mach-O executables.
var ErrUnknownFormat = errors.New("unknown executable format")

// Executable describes an executable file on disk.
type Executable struct {
	Architecture
	// GUI is set for PE files linked for the Windows GUI subsystem, which
	// start without a console window.
	GUI bool
}

var (
	magicPE   = []byte("MZ")
	magicELF  = []byte(elf.ELFMAG)
	magicFat  = []byte{0xca, 0xfe, 0xba, 0xbe}
	machoMags = [][]byte{
		{0xfe, 0xed, 0xfa, 0xce},
		{0xce, 0xfa, 0xed, 0xfe},
		{0xfe, 0xed, 0xfa, 0xcf},
		{0xcf, 0xfa, 0xed, 0xfe},
	}
)

// Inspect reads the headers of the executable at path.
func Inspect(path string) (*Executable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", path)
	}

	var exe *Executable
	switch {
	case bytes.HasPrefix(magic, magicPE):
		exe, err = inspectPE(f)
	case bytes.Equal(magic, magicELF):
		exe, err = inspectELF(f)
	case bytes.Equal(magic, magicFat):
		exe, err = inspectFat(f)
	case isMachO(magic):
		exe, err = inspectMachO(f)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to inspect %s", path)
	}
	return exe, nil
}

func isMachO(magic []byte) bool {
	for _, m := range machoMags {
		if bytes.Equal(magic, m) {
			return true
		}
	}
	return false
}

func inspectPE(r io.ReaderAt) (*Executable, error) {
	f, err := pe.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	exe := &Executable{Architecture: Architecture{Linkage: LinkageWindowsPE}}

	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		exe.Bits = Bits32
		exe.GUI = oh.Subsystem == pe.IMAGE_SUBSYSTEM_WINDOWS_GUI
	case *pe.OptionalHeader64:
		exe.Bits = Bits64
		exe.GUI = oh.Subsystem == pe.IMAGE_SUBSYSTEM_WINDOWS_GUI
	default:
		switch f.Machine {
		case pe.IMAGE_FILE_MACHINE_I386, pe.IMAGE_FILE_MACHINE_ARMNT:
			exe.Bits = Bits32
		default:
			exe.Bits = Bits64
		}
	}

	return exe, nil
}

func inspectELF(r io.ReaderAt) (*Executable, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	exe := &Executable{Architecture: Architecture{Linkage: LinkageELF, Bits: Bits64}}
	if f.Class == elf.ELFCLASS32 {
		exe.Bits = Bits32
	}
	return exe, nil
}

func inspectMachO(r io.ReaderAt) (*Executable, error) {
	f, err := macho.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return &Executable{Architecture: Architecture{Linkage: LinkageMachO, Bits: machoBits(f.Cpu)}}, nil
}

func inspectFat(r io.ReaderAt) (*Executable, error) {
	f, err := macho.NewFatFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if len(f.Arches) == 0 {
		return nil, ErrUnknownFormat
	}
	return &Executable{Architecture: Architecture{Linkage: LinkageMachO, Bits: machoBits(f.Arches[0].Cpu)}}, nil
}

func machoBits(cpu macho.Cpu) string {
	switch cpu {
	case macho.Cpu386, macho.CpuArm, macho.CpuPpc:
		return Bits32
	default:
		return Bits64
	}
}
