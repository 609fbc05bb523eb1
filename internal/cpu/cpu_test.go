package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lr35902/internal/memory"
)

func newTestCPU() *CPU {
	return New(memory.New())
}

func TestNewCPUInitialState(t *testing.T) {
	c := newTestCPU()
	assert.Equal(t, uint16(0x0100), c.Registers.PC)
	assert.Equal(t, uint16(0xFFFE), c.Registers.SP)
	assert.False(t, c.IsHalted)
	assert.False(t, c.InterruptsEnabled)
}

// Scenario 1: ADD A,C with overflow.
func TestScenarioAddAWithOverflow(t *testing.T) {
	c := newTestCPU()
	c.Registers.A = 0xFE
	c.Registers.C = 0x04
	c.Bus.WriteByte(0x0100, 0x81)

	cycles, err := c.Step()
	require.NoError(t, err)

	assert.Equal(t, uint8(0x02), c.Registers.A)
	assert.True(t, c.Registers.FlagCarry)
	assert.False(t, c.Registers.FlagZero)
	assert.False(t, c.Registers.FlagSubtract)
	assert.True(t, c.Registers.FlagHalfCarry)
	assert.Equal(t, uint16(0x0101), c.Registers.PC)
	assert.Equal(t, uint8(4), cycles)
}

// Scenario 2: SUB B producing underflow.
func TestScenarioSubBWithUnderflow(t *testing.T) {
	c := newTestCPU()
	c.Registers.A = 0x02
	c.Registers.B = 0x04
	c.Bus.WriteByte(0x0100, 0x90)

	cycles, err := c.Step()
	require.NoError(t, err)

	assert.Equal(t, uint8(0xFE), c.Registers.A)
	assert.True(t, c.Registers.FlagCarry)
	assert.True(t, c.Registers.FlagSubtract)
	assert.True(t, c.Registers.FlagHalfCarry)
	assert.False(t, c.Registers.FlagZero)
	assert.Equal(t, uint16(0x0101), c.Registers.PC)
	assert.Equal(t, uint8(4), cycles)
}

// Scenario 3/4: JR NZ,+5, taken and not taken.
func TestScenarioJRNotZeroTaken(t *testing.T) {
	c := newTestCPU()
	c.Registers.FlagZero = false
	c.Bus.WriteByte(0x0100, 0x20)
	c.Bus.WriteByte(0x0101, 0x05)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0107), c.Registers.PC)
	assert.Equal(t, uint8(12), cycles)
}

func TestScenarioJRNotZeroNotTaken(t *testing.T) {
	c := newTestCPU()
	c.Registers.FlagZero = true
	c.Bus.WriteByte(0x0100, 0x20)
	c.Bus.WriteByte(0x0101, 0x05)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), c.Registers.PC)
	assert.Equal(t, uint8(8), cycles)
}

// Scenario 5: CALL 0x1234 then RET.
func TestScenarioCallThenRet(t *testing.T) {
	c := newTestCPU()
	c.Registers.SP = 0xFFFE
	c.Bus.WriteByte(0x0100, 0xCD)
	c.Bus.WriteByte(0x0101, 0x34)
	c.Bus.WriteByte(0x0102, 0x12)
	c.Bus.WriteByte(0x1234, 0xC9)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), c.Registers.PC)
	assert.Equal(t, uint16(0xFFFC), c.Registers.SP)
	assert.Equal(t, uint8(0x03), c.Bus.ReadByte(0xFFFC))
	assert.Equal(t, uint8(0x01), c.Bus.ReadByte(0xFFFD))
	assert.Equal(t, uint8(24), cycles)

	cycles, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0103), c.Registers.PC)
	assert.Equal(t, uint16(0xFFFE), c.Registers.SP)
	assert.Equal(t, uint8(16), cycles)
}

// Scenario 6: PUSH/POP AF round-trip.
func TestScenarioPushPopAFRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.Registers.A = 0xAB
	c.Registers.FlagZero = true
	c.Registers.FlagSubtract = false
	c.Registers.FlagHalfCarry = true
	c.Registers.FlagCarry = false
	c.Bus.WriteByte(0x0100, 0xF5) // PUSH AF
	c.Bus.WriteByte(0x0101, 0xF1) // POP AF

	_, err := c.Step()
	require.NoError(t, err)
	_, err = c.Step()
	require.NoError(t, err)

	assert.Equal(t, uint8(0xAB), c.Registers.A)
	assert.True(t, c.Registers.FlagZero)
	assert.False(t, c.Registers.FlagSubtract)
	assert.True(t, c.Registers.FlagHalfCarry)
	assert.False(t, c.Registers.FlagCarry)
	assert.Equal(t, uint16(0xFFFE), c.Registers.SP)
}

// Scenario 7: CB-prefixed SWAP B.
func TestScenarioSwapB(t *testing.T) {
	c := newTestCPU()
	c.Registers.B = 0x3C
	c.Bus.WriteByte(0x0100, 0xCB)
	c.Bus.WriteByte(0x0101, 0x30)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xC3), c.Registers.B)
	assert.False(t, c.Registers.FlagZero)
	assert.False(t, c.Registers.FlagSubtract)
	assert.False(t, c.Registers.FlagHalfCarry)
	assert.False(t, c.Registers.FlagCarry)
	assert.Equal(t, uint16(0x0102), c.Registers.PC)
	assert.Equal(t, uint8(8), cycles)
}

// Scenario 8: BIT 7,H.
func TestScenarioBit7H(t *testing.T) {
	c := newTestCPU()
	c.Registers.H = 0x80
	c.Registers.FlagCarry = true
	c.Bus.WriteByte(0x0100, 0xCB)
	c.Bus.WriteByte(0x0101, 0x7C)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.False(t, c.Registers.FlagZero)
	assert.False(t, c.Registers.FlagSubtract)
	assert.True(t, c.Registers.FlagHalfCarry)
	assert.True(t, c.Registers.FlagCarry, "BIT must not touch carry")
	assert.Equal(t, uint16(0x0102), c.Registers.PC)
	assert.Equal(t, uint8(8), cycles)
}

func TestStepFailsFatallyOnIllegalOpcode(t *testing.T) {
	c := newTestCPU()
	c.Bus.WriteByte(0x0100, 0xD3)

	cycles, err := c.Step()
	require.Error(t, err)
	assert.Equal(t, uint8(0), cycles)
	assert.Equal(t, uint16(0x0100), c.Registers.PC, "PC must not advance past a failed decode")

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, uint8(0xD3), decodeErr.Byte)
}

func TestBCDEHLPairRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.Registers.SetBC(0x1234)
	assert.Equal(t, uint16(0x1234), c.Registers.BC())
	assert.Equal(t, uint8(0x12), c.Registers.B)

	c.Registers.SetDE(0xABCD)
	assert.Equal(t, uint16(0xABCD), c.Registers.DE())

	c.Registers.SetHL(0xFFFF)
	assert.Equal(t, uint16(0xFFFF), c.Registers.HL())
}

func TestHaltSetsIsHalted(t *testing.T) {
	c := newTestCPU()
	c.Bus.WriteByte(0x0100, 0x76)
	cycles, err := c.Step()
	require.NoError(t, err)
	assert.True(t, c.IsHalted)
	assert.Equal(t, uint8(4), cycles)
}

func TestDIEIToggleInterruptsEnabled(t *testing.T) {
	c := newTestCPU()
	c.InterruptsEnabled = true
	c.Bus.WriteByte(0x0100, 0xF3) // DI
	_, err := c.Step()
	require.NoError(t, err)
	assert.False(t, c.InterruptsEnabled)

	c.Bus.WriteByte(0x0101, 0xFB) // EI
	_, err = c.Step()
	require.NoError(t, err)
	assert.True(t, c.InterruptsEnabled)
}

func TestLoadImmediateWordAndIndirectFromA(t *testing.T) {
	c := newTestCPU()
	c.Registers.A = 0x42
	// LD HL,0xC000
	c.Bus.WriteByte(0x0100, 0x21)
	c.Bus.WriteByte(0x0101, 0x00)
	c.Bus.WriteByte(0x0102, 0xC0)
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xC000), c.Registers.HL())

	// LD (HL+),A
	c.Bus.WriteByte(0x0103, 0x22)
	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), c.Bus.ReadByte(0xC000))
	assert.Equal(t, uint16(0xC001), c.Registers.HL())
}

func TestRstPushesReturnAddress(t *testing.T) {
	c := newTestCPU()
	c.Registers.SP = 0xFFFE
	c.Bus.WriteByte(0x0100, 0xEF) // RST 28H

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0028), c.Registers.PC)
	assert.Equal(t, uint16(0xFFFC), c.Registers.SP)
	assert.Equal(t, uint8(0x01), c.Bus.ReadByte(0xFFFD))
	assert.Equal(t, uint8(0x01), c.Bus.ReadByte(0xFFFC))
}
