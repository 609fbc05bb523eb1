// Package register implements the Sharp LR35902 register file: the eight
// 8-bit general registers, the two 16-bit registers PC/SP, and the four
// independent status flags packed into the F register.
package register

// Flag bit positions within the packed F register. Only the upper nibble
// is ever meaningful; the lower nibble always reads as zero.
const (
	FlagZBit = 7 // Zero
	FlagNBit = 6 // Subtract
	FlagHBit = 5 // Half-carry
	FlagCBit = 4 // Carry
)

// File is the Sharp LR35902 register file. Think of it as the CPU's desk:
// eight 8-bit drawers (A..L), two 16-bit drawers (PC, SP), and four status
// lights (the flags) that every arithmetic instruction flips explicitly.
type File struct {
	A, B, C, D, E, H, L uint8
	PC, SP              uint16

	FlagZero      bool
	FlagSubtract  bool
	FlagHalfCarry bool
	FlagCarry     bool
}

// New returns a register file in its freshly-constructed state: every
// 8-bit register zero, PC at the start of cartridge code, SP at the top of
// the stack, and every flag clear.
func New() *File {
	return &File{
		PC: 0x0100,
		SP: 0xFFFE,
	}
}

// AF returns the combined AF register pair: A in the high byte, the packed
// flag byte F in the low byte.
func (f *File) AF() uint16 {
	return uint16(f.A)<<8 | uint16(f.packF())
}

// SetAF writes the AF register pair, splitting the high byte into A and
// unpacking the low byte's upper nibble into the four flags. The low
// nibble of the written value is discarded — it is never observable.
func (f *File) SetAF(value uint16) {
	f.A = uint8(value >> 8)
	f.unpackF(uint8(value))
}

// BC returns the combined BC register pair.
func (f *File) BC() uint16 { return uint16(f.B)<<8 | uint16(f.C) }

// SetBC writes the combined BC register pair.
func (f *File) SetBC(value uint16) {
	f.B = uint8(value >> 8)
	f.C = uint8(value)
}

// DE returns the combined DE register pair.
func (f *File) DE() uint16 { return uint16(f.D)<<8 | uint16(f.E) }

// SetDE writes the combined DE register pair.
func (f *File) SetDE(value uint16) {
	f.D = uint8(value >> 8)
	f.E = uint8(value)
}

// HL returns the combined HL register pair.
func (f *File) HL() uint16 { return uint16(f.H)<<8 | uint16(f.L) }

// SetHL writes the combined HL register pair.
func (f *File) SetHL(value uint16) {
	f.H = uint8(value >> 8)
	f.L = uint8(value)
}

// packF packs the four flag booleans into the upper nibble of F; the lower
// nibble is always zero.
func (f *File) packF() uint8 {
	var v uint8
	if f.FlagZero {
		v |= 1 << FlagZBit
	}
	if f.FlagSubtract {
		v |= 1 << FlagNBit
	}
	if f.FlagHalfCarry {
		v |= 1 << FlagHBit
	}
	if f.FlagCarry {
		v |= 1 << FlagCBit
	}
	return v
}

// unpackF decodes the upper nibble of value into the four flags, ignoring
// the lower nibble entirely.
func (f *File) unpackF(value uint8) {
	f.FlagZero = value&(1<<FlagZBit) != 0
	f.FlagSubtract = value&(1<<FlagNBit) != 0
	f.FlagHalfCarry = value&(1<<FlagHBit) != 0
	f.FlagCarry = value&(1<<FlagCBit) != 0
}
