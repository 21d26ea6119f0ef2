package cpu

// AddressingMode selects how an opcode's operand address is computed.
type AddressingMode uint8

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// resolveAddress computes the effective address for mode, advancing PC past
// the instruction's operand bytes and recording whether a page boundary was
// crossed in c.crossed (consulted by Tick to apply the page-cross penalty).
// Accumulator mode sets c.accumulator so operations know to act on A rather
// than dereference c.addr; Implied mode returns 0 and sets nothing.
func (c *CPU) resolveAddress(bus Bus, mode AddressingMode) uint16 {
	switch mode {
	case Implied:
		return 0

	case Accumulator:
		c.accumulator = true
		return 0

	case Immediate:
		addr := c.PC
		c.PC++
		return addr

	case ZeroPage:
		addr := uint16(bus.Read(c.PC))
		c.PC++
		return addr

	case ZeroPageX:
		base := bus.Read(c.PC)
		c.PC++
		return uint16(base + c.X)

	case ZeroPageY:
		base := bus.Read(c.PC)
		c.PC++
		return uint16(base + c.Y)

	case Relative:
		// Branch ops decide for themselves whether the branch is taken and
		// charge the page-cross penalty only in that case, so crossed is
		// left for the op to set rather than computed here.
		offset := int8(bus.Read(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(offset))

	case Absolute:
		lo := uint16(bus.Read(c.PC))
		hi := uint16(bus.Read(c.PC + 1))
		c.PC += 2
		return hi<<8 | lo

	case AbsoluteX:
		lo := uint16(bus.Read(c.PC))
		hi := uint16(bus.Read(c.PC + 1))
		c.PC += 2
		base := hi<<8 | lo
		addr := base + uint16(c.X)
		c.crossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	case AbsoluteY:
		lo := uint16(bus.Read(c.PC))
		hi := uint16(bus.Read(c.PC + 1))
		c.PC += 2
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		c.crossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	case Indirect: // JMP only; reproduces the page-wrap bug
		lo := uint16(bus.Read(c.PC))
		hi := uint16(bus.Read(c.PC + 1))
		c.PC += 2
		ptr := hi<<8 | lo
		var effLo, effHi uint16
		effLo = uint16(bus.Read(ptr))
		if ptr&0x00FF == 0x00FF {
			effHi = uint16(bus.Read(ptr & 0xFF00))
		} else {
			effHi = uint16(bus.Read(ptr + 1))
		}
		return effHi<<8 | effLo

	case IndexedIndirect:
		base := bus.Read(c.PC)
		c.PC++
		ptr := base + c.X
		lo := uint16(bus.Read(uint16(ptr)))
		hi := uint16(bus.Read(uint16(ptr + 1)))
		return hi<<8 | lo

	case IndirectIndexed:
		ptr := bus.Read(c.PC)
		c.PC++
		lo := uint16(bus.Read(uint16(ptr)))
		hi := uint16(bus.Read(uint16(ptr + 1)))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		c.crossed = (base & 0xFF00) != (addr & 0xFF00)
		return addr

	default:
		return 0
	}
}
