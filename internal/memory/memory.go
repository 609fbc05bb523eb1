// Package memory implements the Game Boy's address space as a flat,
// byte-addressable 64KiB array. Region boundaries (ROM, VRAM, WRAM, OAM,
// I/O, HRAM) are documented by spec.md but not enforced here — every
// address is backed by the same array, per the CORE's memory model.
package memory

// Size is the full LR35902 address space: 2^16 bytes.
const Size = 0x10000

// Memory is the CORE's flat 65,536-byte address space. Every address is
// backed by the same array — no region is enforced or write-protected, per
// spec.md's memory model. Read and write are total over the full uint16
// range; there is no way to construct an out-of-bounds access.
type Memory struct {
	data [Size]uint8
}

// New returns a Memory instance with every byte zeroed.
func New() *Memory {
	return &Memory{}
}

// ReadByte reads the byte at addr. Total over the whole address range.
func (m *Memory) ReadByte(addr uint16) uint8 {
	return m.data[addr]
}

// WriteByte writes value at addr. Total over the whole address range.
func (m *Memory) WriteByte(addr uint16, value uint8) {
	m.data[addr] = value
}

// LoadProgram copies image into the address space starting at 0x0000, up
// to len(image) bytes. Anything beyond the image's length keeps its
// current value. It is the host's responsibility to keep image within
// Size bytes; LoadProgram copies only what fits.
func (m *Memory) LoadProgram(image []byte) {
	copy(m.data[:], image)
}
