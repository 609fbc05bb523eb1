package cpu

import "fmt"

// DecodeError reports a byte that does not correspond to a legal opcode.
// The Sharp LR35902 leaves 11 unprefixed opcodes undefined; decoding one is
// fatal, since continuing would desynchronise PC from the instruction
// stream (spec §7). There is no lenient "treat as NOP" recovery here — that
// is a decision left to the host, not the decoder.
type DecodeError struct {
	Byte     uint8
	Prefixed bool
}

func (e *DecodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: illegal prefixed opcode 0xCB 0x%02X", e.Byte)
	}
	return fmt.Sprintf("cpu: illegal opcode 0x%02X", e.Byte)
}

// the shared B,C,D,E,H,L,(HL),A operand order used by the LD r,r' block,
// the 0x80-0xBF arithmetic block, and the entire CB-prefixed table.
func arithmeticTargetFromIndex(i uint8) ArithmeticTarget {
	switch i {
	case 0:
		return ArithB
	case 1:
		return ArithC
	case 2:
		return ArithD
	case 3:
		return ArithE
	case 4:
		return ArithH
	case 5:
		return ArithL
	case 6:
		return ArithHLI
	default:
		return ArithA
	}
}

func prefixTargetFromIndex(i uint8) PrefixTarget {
	switch i {
	case 0:
		return PrefixB
	case 1:
		return PrefixC
	case 2:
		return PrefixD
	case 3:
		return PrefixE
	case 4:
		return PrefixH
	case 5:
		return PrefixL
	case 6:
		return PrefixHLI
	default:
		return PrefixA
	}
}

func loadByteSourceFromIndex(i uint8) LoadByteSource {
	switch i {
	case 0:
		return LoadByteSrcB
	case 1:
		return LoadByteSrcC
	case 2:
		return LoadByteSrcD
	case 3:
		return LoadByteSrcE
	case 4:
		return LoadByteSrcH
	case 5:
		return LoadByteSrcL
	case 6:
		return LoadByteSrcHLI
	default:
		return LoadByteSrcA
	}
}

func loadByteTargetFromIndex(i uint8) LoadByteTarget {
	switch i {
	case 0:
		return LoadByteDstB
	case 1:
		return LoadByteDstC
	case 2:
		return LoadByteDstD
	case 3:
		return LoadByteDstE
	case 4:
		return LoadByteDstH
	case 5:
		return LoadByteDstL
	case 6:
		return LoadByteDstHLI
	default:
		return LoadByteDstA
	}
}

// illegal holds the 11 opcodes the manual leaves undefined.
var illegal = map[uint8]bool{
	0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
	0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
}

// Decode maps a byte (plus the "this follows a 0xCB prefix" flag) to an
// Instruction. It is a pure lookup: no side effects, no byte consumption
// beyond the opcode itself — operand bytes are read later, by the executor.
func Decode(b uint8, prefixed bool) (Instruction, error) {
	if prefixed {
		return decodePrefixed(b), nil
	}
	if illegal[b] {
		return Instruction{}, &DecodeError{Byte: b, Prefixed: false}
	}
	return decodeUnprefixed(b), nil
}

func decodePrefixed(b uint8) Instruction {
	reg := prefixTargetFromIndex(b & 0x07)
	group := (b >> 3) & 0x07

	switch {
	case b < 0x40:
		kinds := [8]Kind{RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL}
		return Instruction{Kind: kinds[group], Prefix: reg}
	case b < 0x80:
		return Instruction{Kind: BIT, Prefix: reg, Bit: BitPosition(group)}
	case b < 0xC0:
		return Instruction{Kind: RES, Prefix: reg, Bit: BitPosition(group)}
	default:
		return Instruction{Kind: SET, Prefix: reg, Bit: BitPosition(group)}
	}
}

func decodeUnprefixed(b uint8) Instruction {
	switch {
	case b == 0x00:
		return Instruction{Kind: NOP}
	case b == 0x10:
		return Instruction{Kind: STOP}
	case b == 0x76:
		return Instruction{Kind: HALT}
	case b >= 0x40 && b <= 0x7F:
		dst := loadByteTargetFromIndex((b >> 3) & 0x07)
		src := loadByteSourceFromIndex(b & 0x07)
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: dst, ByteSource: src}}
	case b >= 0x80 && b <= 0xBF:
		group := (b >> 3) & 0x07
		target := arithmeticTargetFromIndex(b & 0x07)
		kinds := [8]Kind{ADD, ADC, SUB, SBC, AND, XOR, OR, CP}
		return Instruction{Kind: kinds[group], Arith: target}
	}

	switch b {
	case 0x01:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadWord, WordTarget: LoadWordBC}}
	case 0x11:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadWord, WordTarget: LoadWordDE}}
	case 0x21:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadWord, WordTarget: LoadWordHL}}
	case 0x31:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadWord, WordTarget: LoadWordSP}}

	case 0x02:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadIndirectFromA, Indirect: IndirectBC}}
	case 0x12:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadIndirectFromA, Indirect: IndirectDE}}
	case 0x22:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadIndirectFromA, Indirect: IndirectHLIncrement}}
	case 0x32:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadIndirectFromA, Indirect: IndirectHLDecrement}}

	case 0x0A:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadAFromIndirect, Indirect: IndirectBC}}
	case 0x1A:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadAFromIndirect, Indirect: IndirectDE}}
	case 0x2A:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadAFromIndirect, Indirect: IndirectHLIncrement}}
	case 0x3A:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadAFromIndirect, Indirect: IndirectHLDecrement}}

	case 0x03:
		return Instruction{Kind: INC, IncDec: IncDecBC}
	case 0x13:
		return Instruction{Kind: INC, IncDec: IncDecDE}
	case 0x23:
		return Instruction{Kind: INC, IncDec: IncDecHL}
	case 0x33:
		return Instruction{Kind: INC, IncDec: IncDecSP}
	case 0x0B:
		return Instruction{Kind: DEC, IncDec: IncDecBC}
	case 0x1B:
		return Instruction{Kind: DEC, IncDec: IncDecDE}
	case 0x2B:
		return Instruction{Kind: DEC, IncDec: IncDecHL}
	case 0x3B:
		return Instruction{Kind: DEC, IncDec: IncDecSP}

	case 0x04:
		return Instruction{Kind: INC, IncDec: IncDecB}
	case 0x0C:
		return Instruction{Kind: INC, IncDec: IncDecC}
	case 0x14:
		return Instruction{Kind: INC, IncDec: IncDecD}
	case 0x1C:
		return Instruction{Kind: INC, IncDec: IncDecE}
	case 0x24:
		return Instruction{Kind: INC, IncDec: IncDecH}
	case 0x2C:
		return Instruction{Kind: INC, IncDec: IncDecL}
	case 0x34:
		return Instruction{Kind: INC, IncDec: IncDecHLI}
	case 0x3C:
		return Instruction{Kind: INC, IncDec: IncDecA}

	case 0x05:
		return Instruction{Kind: DEC, IncDec: IncDecB}
	case 0x0D:
		return Instruction{Kind: DEC, IncDec: IncDecC}
	case 0x15:
		return Instruction{Kind: DEC, IncDec: IncDecD}
	case 0x1D:
		return Instruction{Kind: DEC, IncDec: IncDecE}
	case 0x25:
		return Instruction{Kind: DEC, IncDec: IncDecH}
	case 0x2D:
		return Instruction{Kind: DEC, IncDec: IncDecL}
	case 0x35:
		return Instruction{Kind: DEC, IncDec: IncDecHLI}
	case 0x3D:
		return Instruction{Kind: DEC, IncDec: IncDecA}

	case 0x06:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: LoadByteDstB, ByteSource: LoadByteSrcD8}}
	case 0x0E:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: LoadByteDstC, ByteSource: LoadByteSrcD8}}
	case 0x16:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: LoadByteDstD, ByteSource: LoadByteSrcD8}}
	case 0x1E:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: LoadByteDstE, ByteSource: LoadByteSrcD8}}
	case 0x26:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: LoadByteDstH, ByteSource: LoadByteSrcD8}}
	case 0x2E:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: LoadByteDstL, ByteSource: LoadByteSrcD8}}
	case 0x36:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: LoadByteDstHLI, ByteSource: LoadByteSrcD8}}
	case 0x3E:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByte, ByteTarget: LoadByteDstA, ByteSource: LoadByteSrcD8}}

	case 0x07:
		return Instruction{Kind: RLCA}
	case 0x17:
		return Instruction{Kind: RLA}
	case 0x0F:
		return Instruction{Kind: RRCA}
	case 0x1F:
		return Instruction{Kind: RRA}
	case 0x27:
		return Instruction{Kind: DAA}
	case 0x2F:
		return Instruction{Kind: CPL}
	case 0x37:
		return Instruction{Kind: SCF}
	case 0x3F:
		return Instruction{Kind: CCF}

	case 0x08:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadIndirectFromSP}}
	case 0xF9:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadSPFromHL}}
	case 0xF8:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadHLFromSPN}}

	case 0x09:
		return Instruction{Kind: ADDHL, ADDHL: ADDHLBC}
	case 0x19:
		return Instruction{Kind: ADDHL, ADDHL: ADDHLDE}
	case 0x29:
		return Instruction{Kind: ADDHL, ADDHL: ADDHLHL}
	case 0x39:
		return Instruction{Kind: ADDHL, ADDHL: ADDHLSP}
	case 0xE8:
		return Instruction{Kind: ADDSP}

	case 0x18:
		return Instruction{Kind: JR, Jump: JumpAlways}
	case 0x20:
		return Instruction{Kind: JR, Jump: JumpNotZero}
	case 0x28:
		return Instruction{Kind: JR, Jump: JumpZero}
	case 0x30:
		return Instruction{Kind: JR, Jump: JumpNotCarry}
	case 0x38:
		return Instruction{Kind: JR, Jump: JumpCarry}

	case 0xC3:
		return Instruction{Kind: JP, Jump: JumpAlways}
	case 0xC2:
		return Instruction{Kind: JP, Jump: JumpNotZero}
	case 0xCA:
		return Instruction{Kind: JP, Jump: JumpZero}
	case 0xD2:
		return Instruction{Kind: JP, Jump: JumpNotCarry}
	case 0xDA:
		return Instruction{Kind: JP, Jump: JumpCarry}
	case 0xE9:
		return Instruction{Kind: JPI}

	case 0xCD:
		return Instruction{Kind: CALL, Jump: JumpAlways}
	case 0xC4:
		return Instruction{Kind: CALL, Jump: JumpNotZero}
	case 0xCC:
		return Instruction{Kind: CALL, Jump: JumpZero}
	case 0xD4:
		return Instruction{Kind: CALL, Jump: JumpNotCarry}
	case 0xDC:
		return Instruction{Kind: CALL, Jump: JumpCarry}

	case 0xC9:
		return Instruction{Kind: RET, Jump: JumpAlways}
	case 0xC0:
		return Instruction{Kind: RET, Jump: JumpNotZero}
	case 0xC8:
		return Instruction{Kind: RET, Jump: JumpZero}
	case 0xD0:
		return Instruction{Kind: RET, Jump: JumpNotCarry}
	case 0xD8:
		return Instruction{Kind: RET, Jump: JumpCarry}
	case 0xD9:
		return Instruction{Kind: RETI}

	case 0xC5:
		return Instruction{Kind: PUSH, Stack: StackBC}
	case 0xD5:
		return Instruction{Kind: PUSH, Stack: StackDE}
	case 0xE5:
		return Instruction{Kind: PUSH, Stack: StackHL}
	case 0xF5:
		return Instruction{Kind: PUSH, Stack: StackAF}
	case 0xC1:
		return Instruction{Kind: POP, Stack: StackBC}
	case 0xD1:
		return Instruction{Kind: POP, Stack: StackDE}
	case 0xE1:
		return Instruction{Kind: POP, Stack: StackHL}
	case 0xF1:
		return Instruction{Kind: POP, Stack: StackAF}

	case 0xC7:
		return Instruction{Kind: RST, Rst: Rst00}
	case 0xCF:
		return Instruction{Kind: RST, Rst: Rst08}
	case 0xD7:
		return Instruction{Kind: RST, Rst: Rst10}
	case 0xDF:
		return Instruction{Kind: RST, Rst: Rst18}
	case 0xE7:
		return Instruction{Kind: RST, Rst: Rst20}
	case 0xEF:
		return Instruction{Kind: RST, Rst: Rst28}
	case 0xF7:
		return Instruction{Kind: RST, Rst: Rst30}
	case 0xFF:
		return Instruction{Kind: RST, Rst: Rst38}

	case 0xC6:
		return Instruction{Kind: ADD, Arith: ArithD8}
	case 0xCE:
		return Instruction{Kind: ADC, Arith: ArithD8}
	case 0xD6:
		return Instruction{Kind: SUB, Arith: ArithD8}
	case 0xDE:
		return Instruction{Kind: SBC, Arith: ArithD8}
	case 0xE6:
		return Instruction{Kind: AND, Arith: ArithD8}
	case 0xEE:
		return Instruction{Kind: XOR, Arith: ArithD8}
	case 0xF6:
		return Instruction{Kind: OR, Arith: ArithD8}
	case 0xFE:
		return Instruction{Kind: CP, Arith: ArithD8}

	case 0xE0:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadByteAddressFromA}}
	case 0xF0:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadAFromByteAddress}}
	case 0xE2:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadIndirectFromA, Indirect: IndirectOffsetC}}
	case 0xF2:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadAFromIndirect, Indirect: IndirectOffsetC}}
	case 0xEA:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadIndirectFromA, Indirect: IndirectWord}}
	case 0xFA:
		return Instruction{Kind: LD, Load: LoadType{Kind: LoadAFromIndirect, Indirect: IndirectWord}}

	case 0xF3:
		return Instruction{Kind: DI}
	case 0xFB:
		return Instruction{Kind: EI}

	default:
		return Instruction{Kind: NOP}
	}
}
