package cpu

// Addressing-mode helpers. Each reads exactly the operand bytes its
// mode requires, advancing PC past them, and returns the effective
// address the opcode handler should read or write. Order matters:
// operand fetch happens here, strictly before the caller's
// operand-value read or write-back, per the core's defined memory
// ordering.

// addrImmediate returns the address of the operand byte itself and
// advances PC past it.
func (c *CPU) addrImmediate() uint16 {
	addr := c.PC
	c.PC++
	return addr
}

// addrZeroPage reads one operand byte as a zero-page address.
func (c *CPU) addrZeroPage() uint16 {
	addr := uint16(c.Bus.Read(c.PC))
	c.PC++
	return addr
}

// addrZeroPageX reads one operand byte and indexes it by X with 8 bit
// wraparound, so it never leaves page zero.
func (c *CPU) addrZeroPageX() uint16 {
	v := c.Bus.Read(c.PC)
	c.PC++
	return uint16(v + c.X)
}

// addrZeroPageY is addrZeroPageX indexed by Y instead, used only by
// LDX/STX's zero-page,Y forms.
func (c *CPU) addrZeroPageY() uint16 {
	v := c.Bus.Read(c.PC)
	c.PC++
	return uint16(v + c.Y)
}

// addrAbsolute reads a little-endian 16 bit operand.
func (c *CPU) addrAbsolute() uint16 {
	lo := c.Bus.Read(c.PC)
	c.PC++
	hi := c.Bus.Read(c.PC)
	c.PC++
	return uint16(hi)<<8 | uint16(lo)
}

// addrAbsoluteX is an absolute address indexed by X. No page-cross
// penalty is modeled, matching the base cycle table.
func (c *CPU) addrAbsoluteX() uint16 {
	return c.addrAbsolute() + uint16(c.X)
}

// addrAbsoluteY is an absolute address indexed by Y.
func (c *CPU) addrAbsoluteY() uint16 {
	return c.addrAbsolute() + uint16(c.Y)
}

// addrIndirectX reads a zero-page pointer indexed by X (wrapping within
// page zero) and dereferences it to get the effective address. The
// pointer's high byte also wraps within page zero.
func (c *CPU) addrIndirectX() uint16 {
	v := c.Bus.Read(c.PC)
	c.PC++
	ptr := uint16(v + c.X)
	lo := c.Bus.Read(ptr)
	hi := c.Bus.Read(uint16(uint8(ptr) + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// addrIndirectY reads a zero-page pointer, dereferences it, then adds Y
// to the resulting 16 bit address.
func (c *CPU) addrIndirectY() uint16 {
	v := c.Bus.Read(c.PC)
	c.PC++
	ptr := uint16(v)
	lo := c.Bus.Read(ptr)
	hi := c.Bus.Read(uint16(uint8(ptr) + 1))
	base := uint16(hi)<<8 | uint16(lo)
	return base + uint16(c.Y)
}

// addrIndirectJMP resolves JMP's indirect operand, reproducing the
// classic page-boundary bug: when the pointer's low byte is 0xFF, the
// high byte is fetched from the start of the same page rather than the
// next one.
func (c *CPU) addrIndirectJMP() uint16 {
	ptr := c.addrAbsolute()
	lo := c.Bus.Read(ptr)
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := c.Bus.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// readRelative reads the signed branch displacement and advances PC
// past it, without applying it — branch() decides whether to.
func (c *CPU) readRelative() int8 {
	v := c.Bus.Read(c.PC)
	c.PC++
	return int8(v)
}
