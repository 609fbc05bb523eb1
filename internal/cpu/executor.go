package cpu

// execute dispatches a decoded Instruction: performs its register/memory
// effects and returns (next_pc, cycles), per spec.md §4.5. It never writes
// c.Registers.PC itself — Step is the only caller that commits next_pc.
func execute(c *CPU, instruction Instruction) (uint16, uint8) {
	regs := c.Registers
	pc := regs.PC

	switch instruction.Kind {

	case ADD, ADC, SUB, SBC, AND, OR, XOR, CP:
		value := c.readArithmeticOperand(instruction.Arith)
		switch instruction.Kind {
		case ADD:
			regs.A = aluAdd(regs, regs.A, value, false)
		case ADC:
			regs.A = aluAdd(regs, regs.A, value, regs.FlagCarry)
		case SUB:
			regs.A = aluSub(regs, regs.A, value, false)
		case SBC:
			regs.A = aluSub(regs, regs.A, value, regs.FlagCarry)
		case AND:
			regs.A = aluAnd(regs, regs.A, value)
		case OR:
			regs.A = aluOr(regs, regs.A, value)
		case XOR:
			regs.A = aluXor(regs, regs.A, value)
		case CP:
			aluSub(regs, regs.A, value, false)
		}
		delta, cycles := arithmeticPCCycles(instruction.Arith)
		return pc + delta, cycles

	case INC, DEC:
		return c.executeIncDec(instruction)

	case DAA:
		regs.A = aluDAA(regs, regs.A)
		return pc + 1, 4

	case CPL:
		regs.A = ^regs.A
		regs.FlagSubtract = true
		regs.FlagHalfCarry = true
		return pc + 1, 4

	case ADDHL:
		var operand uint16
		switch instruction.ADDHL {
		case ADDHLBC:
			operand = regs.BC()
		case ADDHLDE:
			operand = regs.DE()
		case ADDHLHL:
			operand = regs.HL()
		case ADDHLSP:
			operand = regs.SP
		}
		regs.SetHL(aluAddHL(regs, regs.HL(), operand))
		return pc + 1, 8

	case ADDSP:
		e := int8(c.readNextByte())
		regs.SP = aluAddSPSigned(regs, regs.SP, e)
		return pc + 2, 16

	case CCF:
		regs.FlagSubtract = false
		regs.FlagHalfCarry = false
		regs.FlagCarry = !regs.FlagCarry
		return pc + 1, 4

	case SCF:
		regs.FlagSubtract = false
		regs.FlagHalfCarry = false
		regs.FlagCarry = true
		return pc + 1, 4

	case RLCA:
		regs.A = aluRLC(regs, regs.A)
		regs.FlagZero = false
		return pc + 1, 4
	case RLA:
		regs.A = aluRL(regs, regs.A)
		regs.FlagZero = false
		return pc + 1, 4
	case RRCA:
		regs.A = aluRRC(regs, regs.A)
		regs.FlagZero = false
		return pc + 1, 4
	case RRA:
		regs.A = aluRR(regs, regs.A)
		regs.FlagZero = false
		return pc + 1, 4

	case LD:
		return c.executeLoad(instruction.Load)

	case JP:
		word := c.readNextWord()
		if c.jumpTaken(instruction.Jump) {
			return word, 16
		}
		return pc + 3, 12

	case JR:
		offset := int8(c.readNextByte())
		if c.jumpTaken(instruction.Jump) {
			return uint16(int32(pc+2) + int32(offset)), 12
		}
		return pc + 2, 8

	case JPI:
		return regs.HL(), 4

	case PUSH:
		c.push16(c.readStack(instruction.Stack))
		return pc + 1, 16

	case POP:
		c.writeStack(instruction.Stack, c.pop16())
		return pc + 1, 12

	case CALL:
		word := c.readNextWord()
		if c.jumpTaken(instruction.Jump) {
			c.push16(pc + 3)
			return word, 24
		}
		return pc + 3, 12

	case RET:
		if instruction.Jump == JumpAlways {
			return c.pop16(), 16
		}
		if c.jumpTaken(instruction.Jump) {
			return c.pop16(), 20
		}
		return pc + 1, 8

	case RETI:
		c.InterruptsEnabled = true
		return c.pop16(), 16

	case RST:
		c.push16(pc + 1)
		return uint16(instruction.Rst), 16

	case NOP:
		return pc + 1, 4

	case HALT:
		c.IsHalted = true
		return pc + 1, 4

	case STOP:
		return pc + 1, 4

	case DI:
		c.InterruptsEnabled = false
		return pc + 1, 4

	case EI:
		c.InterruptsEnabled = true
		return pc + 1, 4

	case BIT, RES, SET, SRL, RR, RL, RRC, RLC, SRA, SLA, SWAP:
		return c.executePrefixed(instruction)
	}

	return pc + 1, 4
}

// readArithmeticOperand fetches the operand byte for ADD/ADC/SUB/SBC/AND/
// OR/XOR/CP, per the ArithmeticTarget family.
func (c *CPU) readArithmeticOperand(t ArithmeticTarget) uint8 {
	regs := c.Registers
	switch t {
	case ArithA:
		return regs.A
	case ArithB:
		return regs.B
	case ArithC:
		return regs.C
	case ArithD:
		return regs.D
	case ArithE:
		return regs.E
	case ArithH:
		return regs.H
	case ArithL:
		return regs.L
	case ArithHLI:
		return c.Bus.ReadByte(regs.HL())
	default: // ArithD8
		return c.readNextByte()
	}
}

// arithmeticPCCycles returns the PC delta and cycle cost for an
// ADD/ADC/SUB/SBC/AND/OR/XOR/CP instruction, keyed by operand family.
func arithmeticPCCycles(t ArithmeticTarget) (uint16, uint8) {
	switch t {
	case ArithHLI:
		return 1, 8
	case ArithD8:
		return 2, 8
	default:
		return 1, 4
	}
}

func (c *CPU) executeIncDec(instruction Instruction) (uint16, uint8) {
	regs := c.Registers
	pc := regs.PC
	inc := instruction.Kind == INC

	apply8 := func(v uint8) uint8 {
		if inc {
			return aluInc8(regs, v)
		}
		return aluDec8(regs, v)
	}

	switch instruction.IncDec {
	case IncDecA:
		regs.A = apply8(regs.A)
	case IncDecB:
		regs.B = apply8(regs.B)
	case IncDecC:
		regs.C = apply8(regs.C)
	case IncDecD:
		regs.D = apply8(regs.D)
	case IncDecE:
		regs.E = apply8(regs.E)
	case IncDecH:
		regs.H = apply8(regs.H)
	case IncDecL:
		regs.L = apply8(regs.L)
	case IncDecHLI:
		addr := regs.HL()
		c.Bus.WriteByte(addr, apply8(c.Bus.ReadByte(addr)))
		return pc + 1, 12
	case IncDecBC:
		if inc {
			regs.SetBC(regs.BC() + 1)
		} else {
			regs.SetBC(regs.BC() - 1)
		}
		return pc + 1, 8
	case IncDecDE:
		if inc {
			regs.SetDE(regs.DE() + 1)
		} else {
			regs.SetDE(regs.DE() - 1)
		}
		return pc + 1, 8
	case IncDecHL:
		if inc {
			regs.SetHL(regs.HL() + 1)
		} else {
			regs.SetHL(regs.HL() - 1)
		}
		return pc + 1, 8
	case IncDecSP:
		if inc {
			regs.SP++
		} else {
			regs.SP--
		}
		return pc + 1, 8
	}
	return pc + 1, 4
}

func (c *CPU) jumpTaken(test JumpTest) bool {
	switch test {
	case JumpNotZero:
		return !c.Registers.FlagZero
	case JumpZero:
		return c.Registers.FlagZero
	case JumpNotCarry:
		return !c.Registers.FlagCarry
	case JumpCarry:
		return c.Registers.FlagCarry
	default: // JumpAlways
		return true
	}
}

// push16 writes v onto the stack: high byte at SP-1, low byte at SP-2,
// leaving SP at the low byte's address. Little-endian in memory with SP
// growing downward (spec.md §4.5).
func (c *CPU) push16(v uint16) {
	c.Registers.SP--
	c.Bus.WriteByte(c.Registers.SP, uint8(v>>8))
	c.Registers.SP--
	c.Bus.WriteByte(c.Registers.SP, uint8(v))
}

// pop16 reads the low byte from SP, then the high byte from SP+1, and
// advances SP by 2.
func (c *CPU) pop16() uint16 {
	low := c.Bus.ReadByte(c.Registers.SP)
	high := c.Bus.ReadByte(c.Registers.SP + 1)
	c.Registers.SP += 2
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) readStack(t StackTarget) uint16 {
	switch t {
	case StackAF:
		return c.Registers.AF()
	case StackBC:
		return c.Registers.BC()
	case StackDE:
		return c.Registers.DE()
	default: // StackHL
		return c.Registers.HL()
	}
}

func (c *CPU) writeStack(t StackTarget, v uint16) {
	switch t {
	case StackAF:
		c.Registers.SetAF(v) // re-masks F's low nibble to zero
	case StackBC:
		c.Registers.SetBC(v)
	case StackDE:
		c.Registers.SetDE(v)
	default: // StackHL
		c.Registers.SetHL(v)
	}
}

// indirectAddress resolves a LoadType's Indirect operand to an address,
// applying HL+/HL- post-increment/decrement as a side effect.
func (c *CPU) indirectAddress(ind Indirect) uint16 {
	regs := c.Registers
	switch ind {
	case IndirectBC:
		return regs.BC()
	case IndirectDE:
		return regs.DE()
	case IndirectHLIncrement:
		addr := regs.HL()
		regs.SetHL(addr + 1)
		return addr
	case IndirectHLDecrement:
		addr := regs.HL()
		regs.SetHL(addr - 1)
		return addr
	case IndirectWord:
		return c.readNextWord()
	default: // IndirectOffsetC
		return 0xFF00 + uint16(regs.C)
	}
}

func indirectPCCycles(ind Indirect) (uint16, uint8) {
	if ind == IndirectWord {
		return 3, 16
	}
	return 1, 8
}

func (c *CPU) readLoadByteSource(s LoadByteSource) uint8 {
	regs := c.Registers
	switch s {
	case LoadByteSrcA:
		return regs.A
	case LoadByteSrcB:
		return regs.B
	case LoadByteSrcC:
		return regs.C
	case LoadByteSrcD:
		return regs.D
	case LoadByteSrcE:
		return regs.E
	case LoadByteSrcH:
		return regs.H
	case LoadByteSrcL:
		return regs.L
	case LoadByteSrcHLI:
		return c.Bus.ReadByte(regs.HL())
	default: // LoadByteSrcD8
		return c.readNextByte()
	}
}

func (c *CPU) writeLoadByteTarget(t LoadByteTarget, v uint8) {
	regs := c.Registers
	switch t {
	case LoadByteDstA:
		regs.A = v
	case LoadByteDstB:
		regs.B = v
	case LoadByteDstC:
		regs.C = v
	case LoadByteDstD:
		regs.D = v
	case LoadByteDstE:
		regs.E = v
	case LoadByteDstH:
		regs.H = v
	case LoadByteDstL:
		regs.L = v
	case LoadByteDstHLI:
		c.Bus.WriteByte(regs.HL(), v)
	}
}

// executeLoad dispatches the nine LD subvariants, each with its own PC
// delta and cycle cost per spec.md §4.5.
func (c *CPU) executeLoad(load LoadType) (uint16, uint8) {
	regs := c.Registers
	pc := regs.PC

	switch load.Kind {
	case LoadByte:
		value := c.readLoadByteSource(load.ByteSource)
		c.writeLoadByteTarget(load.ByteTarget, value)
		delta := uint16(1)
		cycles := uint8(4)
		if load.ByteSource == LoadByteSrcHLI || load.ByteTarget == LoadByteDstHLI {
			cycles += 4
		}
		if load.ByteSource == LoadByteSrcD8 {
			delta = 2
			cycles += 4
		}
		return pc + delta, cycles

	case LoadWord:
		value := c.readNextWord()
		switch load.WordTarget {
		case LoadWordBC:
			regs.SetBC(value)
		case LoadWordDE:
			regs.SetDE(value)
		case LoadWordHL:
			regs.SetHL(value)
		case LoadWordSP:
			regs.SP = value
		}
		return pc + 3, 12

	case LoadAFromIndirect:
		addr := c.indirectAddress(load.Indirect)
		regs.A = c.Bus.ReadByte(addr)
		delta, cycles := indirectPCCycles(load.Indirect)
		return pc + delta, cycles

	case LoadIndirectFromA:
		addr := c.indirectAddress(load.Indirect)
		c.Bus.WriteByte(addr, regs.A)
		delta, cycles := indirectPCCycles(load.Indirect)
		return pc + delta, cycles

	case LoadByteAddressFromA: // LDH (a8),A
		offset := c.readNextByte()
		c.Bus.WriteByte(0xFF00+uint16(offset), regs.A)
		return pc + 2, 12

	case LoadAFromByteAddress: // LDH A,(a8)
		offset := c.readNextByte()
		regs.A = c.Bus.ReadByte(0xFF00 + uint16(offset))
		return pc + 2, 12

	case LoadSPFromHL:
		regs.SP = regs.HL()
		return pc + 1, 8

	case LoadIndirectFromSP:
		addr := c.readNextWord()
		c.Bus.WriteByte(addr, uint8(regs.SP))
		c.Bus.WriteByte(addr+1, uint8(regs.SP>>8))
		return pc + 3, 20

	default: // LoadHLFromSPN
		e := int8(c.readNextByte())
		regs.SetHL(aluAddSPSigned(regs, regs.SP, e))
		return pc + 2, 12
	}
}

func (c *CPU) readPrefixTarget(t PrefixTarget) uint8 {
	regs := c.Registers
	switch t {
	case PrefixA:
		return regs.A
	case PrefixB:
		return regs.B
	case PrefixC:
		return regs.C
	case PrefixD:
		return regs.D
	case PrefixE:
		return regs.E
	case PrefixH:
		return regs.H
	case PrefixL:
		return regs.L
	default: // PrefixHLI
		return c.Bus.ReadByte(regs.HL())
	}
}

func (c *CPU) writePrefixTarget(t PrefixTarget, v uint8) {
	regs := c.Registers
	switch t {
	case PrefixA:
		regs.A = v
	case PrefixB:
		regs.B = v
	case PrefixC:
		regs.C = v
	case PrefixD:
		regs.D = v
	case PrefixE:
		regs.E = v
	case PrefixH:
		regs.H = v
	case PrefixL:
		regs.L = v
	default: // PrefixHLI
		c.Bus.WriteByte(regs.HL(), v)
	}
}

// executePrefixed dispatches every CB-prefixed instruction: PC always
// advances by 2 (the prefix byte plus the opcode); cycles are 8 for a
// register operand, 16 for (HL).
func (c *CPU) executePrefixed(instruction Instruction) (uint16, uint8) {
	regs := c.Registers
	pc := regs.PC
	cycles := uint8(8)
	if instruction.Prefix == PrefixHLI {
		cycles = 16
	}

	switch instruction.Kind {
	case BIT:
		aluBit(regs, c.readPrefixTarget(instruction.Prefix), instruction.Bit)
	case RES:
		c.writePrefixTarget(instruction.Prefix, aluRes(c.readPrefixTarget(instruction.Prefix), instruction.Bit))
	case SET:
		c.writePrefixTarget(instruction.Prefix, aluSet(c.readPrefixTarget(instruction.Prefix), instruction.Bit))
	case RLC:
		c.writePrefixTarget(instruction.Prefix, aluRLC(regs, c.readPrefixTarget(instruction.Prefix)))
	case RRC:
		c.writePrefixTarget(instruction.Prefix, aluRRC(regs, c.readPrefixTarget(instruction.Prefix)))
	case RL:
		c.writePrefixTarget(instruction.Prefix, aluRL(regs, c.readPrefixTarget(instruction.Prefix)))
	case RR:
		c.writePrefixTarget(instruction.Prefix, aluRR(regs, c.readPrefixTarget(instruction.Prefix)))
	case SLA:
		c.writePrefixTarget(instruction.Prefix, aluSLA(regs, c.readPrefixTarget(instruction.Prefix)))
	case SRA:
		c.writePrefixTarget(instruction.Prefix, aluSRA(regs, c.readPrefixTarget(instruction.Prefix)))
	case SRL:
		c.writePrefixTarget(instruction.Prefix, aluSRL(regs, c.readPrefixTarget(instruction.Prefix)))
	case SWAP:
		c.writePrefixTarget(instruction.Prefix, aluSwap(regs, c.readPrefixTarget(instruction.Prefix)))
	}

	return pc + 2, cycles
}
