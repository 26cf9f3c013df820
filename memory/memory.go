// Package memory defines the basic interface for working with a 6502
// address space. The core only ever sees the Bus interface; how an
// address maps to RAM, ROM, or memory-mapped I/O is entirely up to the
// implementation that's plugged in.
package memory

import (
	"math/rand"
	"time"
)

// Bus is the 16 bit addressable byte surface the CPU reads and writes
// through. Every address in 0x0000-0xFFFF must be serviceable; there is
// no error channel, matching real hardware where a bus access always
// completes.
type Bus interface {
	// Read returns the byte stored at addr.
	Read(addr uint16) uint8
	// Write stores val at addr. Implementations backed by ROM may
	// silently discard the write.
	Write(addr uint16, val uint8)
	// PowerOn resets the bus to its power-on state. Implementation
	// specific as to whether that's randomized or all zeros.
	PowerOn()
}

// flat implements Bus as a single contiguous 64k byte array. This is
// the common case for hosting a bare 6502 core without a surrounding
// memory map (bank switching, mirroring, I/O windows, etc).
type flat struct {
	ram [1 << 16]uint8
}

// NewFlatBus returns a Bus backed by a flat, fully addressable 64k of
// RAM.
func NewFlatBus() Bus {
	return &flat{}
}

// Read implements Bus.
func (f *flat) Read(addr uint16) uint8 {
	return f.ram[addr]
}

// Write implements Bus.
func (f *flat) Write(addr uint16, val uint8) {
	f.ram[addr] = val
}

// PowerOn implements Bus and randomizes RAM contents, matching real
// hardware where SRAM doesn't start at a defined value.
func (f *flat) PowerOn() {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range f.ram {
		f.ram[i] = uint8(rnd.Intn(256))
	}
}

// LoadAt copies b into the bus starting at addr, wrapping at 0xFFFF.
// Used by loaders (cmd/run6502, cmd/disasm6502) to stage a program
// image before stepping or disassembling it.
func LoadAt(bus Bus, addr uint16, b []byte) {
	for i, v := range b {
		bus.Write(addr+uint16(i), v)
	}
}
