// Package petest builds minimal PE images for tests.
package petest

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
)

const peOffset = 0x40

// Image returns a header-only PE file for the given machine and subsystem.
// PE32+ is used for 64-bit machines.
func Image(machine uint16, subsystem uint16) []byte {
	pe64 := machine == pe.IMAGE_FILE_MACHINE_AMD64 || machine == pe.IMAGE_FILE_MACHINE_ARM64

	var optSize uint16 = 96 + 16*8
	if pe64 {
		optSize = 112 + 16*8
	}

	buf := make([]byte, peOffset)
	buf[0], buf[1] = 'M', 'Z'
	binary.LittleEndian.PutUint32(buf[0x3C:], peOffset)

	var b bytes.Buffer
	b.Write(buf)
	b.WriteString("PE\x00\x00")

	fh := pe.FileHeader{
		Machine:              machine,
		SizeOfOptionalHeader: optSize,
		Characteristics:      pe.IMAGE_FILE_EXECUTABLE_IMAGE,
	}
	_ = binary.Write(&b, binary.LittleEndian, fh)

	opt := make([]byte, optSize)
	if pe64 {
		binary.LittleEndian.PutUint16(opt[0:], 0x20b)
		binary.LittleEndian.PutUint16(opt[68:], subsystem)
		binary.LittleEndian.PutUint32(opt[108:], 16)
	} else {
		binary.LittleEndian.PutUint16(opt[0:], 0x10b)
		binary.LittleEndian.PutUint16(opt[68:], subsystem)
		binary.LittleEndian.PutUint32(opt[92:], 16)
	}
	b.Write(opt)

	return b.Bytes()
}
