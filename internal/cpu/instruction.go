// Package cpu implements the Sharp LR35902 fetch-decode-execute engine: the
// instruction decoder, the ALU primitive library, the per-variant executor,
// and the CPU type that ties a register.File to a memory bus and drives the
// step loop.
package cpu

// Kind identifies which instruction variant an Instruction carries. Go has
// no native tagged union, so Instruction is a single struct with a Kind
// discriminant plus one field per operand family — only the fields relevant
// to Kind are populated, mirroring the Rust enum this package is
// transliterated from one field at a time instead of one variant at a time.
type Kind int

const (
	ADD Kind = iota
	ADC
	SUB
	SBC
	AND
	OR
	XOR
	CP
	INC
	DEC
	DAA
	CPL
	ADDHL
	ADDSP
	CCF
	SCF
	RLCA
	RLA
	RRCA
	RRA
	LD
	JP
	JR
	JPI
	PUSH
	POP
	CALL
	RET
	RETI
	RST
	NOP
	HALT
	STOP
	DI
	EI
	BIT
	RES
	SET
	SRL
	RR
	RL
	RRC
	RLC
	SRA
	SLA
	SWAP
)

// ArithmeticTarget is the operand of ADD/ADC/SUB/SBC/AND/OR/XOR/CP.
type ArithmeticTarget int

const (
	ArithA ArithmeticTarget = iota
	ArithB
	ArithC
	ArithD
	ArithE
	ArithH
	ArithL
	ArithHLI // indirect via HL
	ArithD8  // immediate byte
)

// IncDecTarget is the operand of INC/DEC: the seven 8-bit registers, the
// HL-indirect byte, and the four 16-bit register pairs.
type IncDecTarget int

const (
	IncDecA IncDecTarget = iota
	IncDecB
	IncDecC
	IncDecD
	IncDecE
	IncDecH
	IncDecL
	IncDecHLI
	IncDecBC
	IncDecDE
	IncDecHL
	IncDecSP
)

// ADDHLTarget is the operand of ADD HL,rr.
type ADDHLTarget int

const (
	ADDHLBC ADDHLTarget = iota
	ADDHLDE
	ADDHLHL
	ADDHLSP
)

// LoadByteSource is the source operand of an 8-bit LD.
type LoadByteSource int

const (
	LoadByteSrcA LoadByteSource = iota
	LoadByteSrcB
	LoadByteSrcC
	LoadByteSrcD
	LoadByteSrcE
	LoadByteSrcH
	LoadByteSrcL
	LoadByteSrcHLI
	LoadByteSrcD8
)

// LoadByteTarget is the destination operand of an 8-bit LD.
type LoadByteTarget int

const (
	LoadByteDstA LoadByteTarget = iota
	LoadByteDstB
	LoadByteDstC
	LoadByteDstD
	LoadByteDstE
	LoadByteDstH
	LoadByteDstL
	LoadByteDstHLI
)

// LoadWordTarget is the destination operand of a 16-bit immediate LD.
type LoadWordTarget int

const (
	LoadWordBC LoadWordTarget = iota
	LoadWordDE
	LoadWordHL
	LoadWordSP
)

// Indirect names an address-forming mode used by the AFromIndirect and
// IndirectFromA load subvariants: a register pair holding an address,
// HL with post-increment/decrement, a word immediate following the
// opcode, or 0xFF00 + C.
type Indirect int

const (
	IndirectBC Indirect = iota
	IndirectDE
	IndirectHLIncrement
	IndirectHLDecrement
	IndirectWord
	IndirectOffsetC // (0xFF00 + C)
)

// StackTarget is the operand of PUSH/POP.
type StackTarget int

const (
	StackAF StackTarget = iota
	StackBC
	StackDE
	StackHL
)

// JumpTest is the branch condition of JP/JR/CALL/RET.
type JumpTest int

const (
	JumpNotZero JumpTest = iota
	JumpZero
	JumpNotCarry
	JumpCarry
	JumpAlways
)

// PrefixTarget is the operand of every CB-prefixed instruction.
type PrefixTarget int

const (
	PrefixA PrefixTarget = iota
	PrefixB
	PrefixC
	PrefixD
	PrefixE
	PrefixH
	PrefixL
	PrefixHLI
)

// BitPosition selects one of the 8 bits BIT/RES/SET operate on.
type BitPosition uint8

// RstLocation is one of the 8 fixed RST jump vectors.
type RstLocation uint8

const (
	Rst00 RstLocation = 0x00
	Rst08 RstLocation = 0x08
	Rst10 RstLocation = 0x10
	Rst18 RstLocation = 0x18
	Rst20 RstLocation = 0x20
	Rst28 RstLocation = 0x28
	Rst30 RstLocation = 0x30
	Rst38 RstLocation = 0x38
)

// LoadKind discriminates the LD instruction's many subvariants — a load
// instruction sub-tag, nested one level inside Instruction's own Kind.
type LoadKind int

const (
	LoadByte LoadKind = iota
	LoadWord
	LoadAFromIndirect
	LoadIndirectFromA
	LoadByteAddressFromA // (0xFF00+a8) <- A
	LoadAFromByteAddress // A <- (0xFF00+a8)
	LoadSPFromHL
	LoadIndirectFromSP
	LoadHLFromSPN
)

// LoadType carries the operands for every LD subvariant. Only the fields
// relevant to Kind are meaningful.
type LoadType struct {
	Kind LoadKind

	ByteTarget LoadByteTarget
	ByteSource LoadByteSource

	WordTarget LoadWordTarget

	Indirect Indirect
}

// Instruction is a single decoded opcode: a Kind tag plus whichever operand
// fields that Kind consumes. The executor's dispatch switches on Kind and
// reads only the fields its case needs.
type Instruction struct {
	Kind Kind

	Arith  ArithmeticTarget
	IncDec IncDecTarget
	ADDHL  ADDHLTarget
	Jump   JumpTest
	Stack  StackTarget
	Rst    RstLocation
	Prefix PrefixTarget
	Bit    BitPosition
	Load   LoadType
}
