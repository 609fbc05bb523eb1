package cpu

import "lr35902/internal/register"

// Bus is the memory surface the CPU drives: byte-granular read/write over
// the full 16-bit address space. memory.Memory satisfies it; tests are
// free to supply a smaller fake.
type Bus interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, value uint8)
}

// CPU owns a register file and a bus exclusively for the lifetime of a
// Step call; nothing outside this package ever writes Registers or Bus
// concurrently (spec.md §5 — single-threaded, no shared resources).
type CPU struct {
	Registers *register.File
	Bus       Bus

	// IsHalted and InterruptsEnabled are observed, never acted on, by this
	// package: interrupt dispatch is a host-level concern (spec.md §1, §3).
	IsHalted          bool
	InterruptsEnabled bool
}

// New constructs a CPU wired to bus, with a freshly initialized register
// file (PC=0x0100, SP=0xFFFE, all other registers and flags zero/false).
func New(bus Bus) *CPU {
	return &CPU{
		Registers: register.New(),
		Bus:       bus,
	}
}

// readNextByte reads the byte immediately following the current opcode,
// i.e. at PC+1. Used by D8/A8 operand forms; does not itself move PC.
func (c *CPU) readNextByte() uint8 {
	return c.Bus.ReadByte(c.Registers.PC + 1)
}

// readNextWord reads the little-endian word following the current opcode,
// i.e. at PC+1/PC+2.
func (c *CPU) readNextWord() uint16 {
	low := c.Bus.ReadByte(c.Registers.PC + 1)
	high := c.Bus.ReadByte(c.Registers.PC + 2)
	return uint16(high)<<8 | uint16(low)
}

// Step advances the machine by exactly one instruction: fetch, decode,
// execute, then overwrite PC with the executor's returned next_pc. It
// returns the number of T-state cycles the instruction consumed. A decode
// failure (an illegal opcode) is fatal and returned as *DecodeError — PC is
// left unmodified so the caller can report exactly where execution died.
func (c *CPU) Step() (uint8, error) {
	opcode := c.Bus.ReadByte(c.Registers.PC)
	prefixed := opcode == 0xCB
	if prefixed {
		opcode = c.Bus.ReadByte(c.Registers.PC + 1)
	}

	instruction, err := Decode(opcode, prefixed)
	if err != nil {
		return 0, err
	}

	nextPC, cycles := c.Execute(instruction)
	c.Registers.PC = nextPC
	return cycles, nil
}

// Execute runs a single already-decoded instruction and returns the next
// PC value and the cycle count it consumed, without touching c.Registers.PC
// itself — callers (Step, or tests exercising Execute directly) decide
// whether and how to apply next_pc.
func (c *CPU) Execute(instruction Instruction) (uint16, uint8) {
	return execute(c, instruction)
}
