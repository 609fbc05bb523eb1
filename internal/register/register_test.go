package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInitialState(t *testing.T) {
	f := New()

	assert.Equal(t, uint8(0), f.A)
	assert.Equal(t, uint8(0), f.B)
	assert.Equal(t, uint8(0), f.L)
	assert.Equal(t, uint16(0x0100), f.PC)
	assert.Equal(t, uint16(0xFFFE), f.SP)
	assert.False(t, f.FlagZero)
	assert.False(t, f.FlagSubtract)
	assert.False(t, f.FlagHalfCarry)
	assert.False(t, f.FlagCarry)
}

func TestPairAccessors(t *testing.T) {
	f := New()

	f.SetBC(0x1234)
	assert.Equal(t, uint8(0x12), f.B)
	assert.Equal(t, uint8(0x34), f.C)
	assert.Equal(t, uint16(0x1234), f.BC())

	f.SetDE(0xABCD)
	assert.Equal(t, uint16(0xABCD), f.DE())

	f.SetHL(0xFFFF)
	assert.Equal(t, uint16(0xFFFF), f.HL())
}

func TestSetAFMasksLowNibble(t *testing.T) {
	f := New()
	f.A = 0xAB

	f.SetAF(0xAB0F) // low nibble set, should be discarded
	assert.Equal(t, uint8(0), f.packF()&0x0F)
	assert.Equal(t, uint16(0xAB00), f.AF())
}

func TestSetAFUnpacksFlags(t *testing.T) {
	f := New()
	f.SetAF(0x00F0)

	assert.True(t, f.FlagZero)
	assert.True(t, f.FlagSubtract)
	assert.True(t, f.FlagHalfCarry)
	assert.True(t, f.FlagCarry)
	assert.Equal(t, uint16(0x00F0), f.AF())
}

func TestAFRoundTripIsIdentityOnFlags(t *testing.T) {
	for _, v := range []uint16{0x0000, 0x0010, 0x0020, 0x0040, 0x0080, 0x00F0, 0xFF00, 0xFFF0} {
		f := New()
		f.SetAF(v)
		assert.Equal(t, v&0xFFF0, f.AF(), "round-trip of 0x%04X", v)
	}
}
