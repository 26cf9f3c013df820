package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"go6502/timekeeper"
	"go6502/vmcall"
)

// flatMemory is a 64k RAM-backed memory.Bus used throughout these
// tests, the same fixture shape as the teacher's flatMemory in
// cpu_test.go.
type flatMemory struct {
	addr [65536]uint8
}

func (r *flatMemory) Read(addr uint16) uint8     { return r.addr[addr] }
func (r *flatMemory) Write(addr uint16, v uint8) { r.addr[addr] = v }
func (r *flatMemory) PowerOn()                   {}

func newTestCPU(t *testing.T) (*CPU, *flatMemory) {
	t.Helper()
	mem := &flatMemory{}
	c, err := New(mem, &timekeeper.Counter{}, vmcall.NoopHost{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, mem
}

func (r *flatMemory) loadAt(addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		r.addr[addr+uint16(i)] = b
	}
}

func cycles(c *CPU) uint64 {
	return c.Clock.(*timekeeper.Counter).Cycles
}

// --- literal end-to-end scenarios from the spec ---

func TestImmediateLoadAndFlags(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	mem.loadAt(0x8000, 0xA9, 0x80) // LDA #$80
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x80 {
		t.Errorf("A = %#02x, want 0x80", c.A)
	}
	if c.Zero() {
		t.Errorf("Z set, want clear: %s", spew.Sdump(c))
	}
	if !c.Negative() {
		t.Errorf("N clear, want set")
	}
	if c.PC != 0x8002 {
		t.Errorf("PC = %#04x, want 0x8002", c.PC)
	}
	if got, want := cycles(c), uint64(2); got != want {
		t.Errorf("cycles = %d, want %d", got, want)
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	c.A = 0x50
	c.SetCarry(false)
	mem.loadAt(0x8000, 0x69, 0x50) // ADC #$50
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0xA0 {
		t.Errorf("A = %#02x, want 0xA0", c.A)
	}
	if c.Carry() {
		t.Errorf("C set, want clear")
	}
	if !c.Overflow() {
		t.Errorf("V clear, want set")
	}
	if !c.Negative() {
		t.Errorf("N clear, want set")
	}
	if c.Zero() {
		t.Errorf("Z set, want clear")
	}
	if c.PC != 0x8002 {
		t.Errorf("PC = %#04x, want 0x8002", c.PC)
	}
	if got, want := cycles(c), uint64(2); got != want {
		t.Errorf("cycles = %d, want %d", got, want)
	}
}

func TestZeroPageIndexedWrap(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	c.A = 0x00
	c.X = 0x01
	mem.loadAt(0x8000, 0xB5, 0xFF) // LDA $FF,X
	mem.loadAt(0x0000, 0x77)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x77 {
		t.Errorf("A = %#02x, want 0x77", c.A)
	}
	if c.PC != 0x8002 {
		t.Errorf("PC = %#04x, want 0x8002", c.PC)
	}
	if got, want := cycles(c), uint64(4); got != want {
		t.Errorf("cycles = %d, want %d", got, want)
	}
}

func TestJMPIndirectPageBoundaryBug(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	mem.loadAt(0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	mem.loadAt(0x02FF, 0x34)
	mem.loadAt(0x0200, 0x12)
	mem.loadAt(0x0300, 0xAB)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x1234 {
		t.Errorf("PC = %#04x, want 0x1234", c.PC)
	}
	if got, want := cycles(c), uint64(5); got != want {
		t.Errorf("cycles = %d, want %d", got, want)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, mem := newTestCPU(t)
	c.SP = 0xFD
	c.PC = 0x8000
	mem.loadAt(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	mem.loadAt(0x9000, 0x60)             // RTS
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step 1: %v", err)
	}
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step 2: %v", err)
	}
	if c.PC != 0x8003 {
		t.Errorf("PC = %#04x, want 0x8003", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %#02x, want 0xFD", c.SP)
	}
	if got, want := cycles(c), uint64(12); got != want {
		t.Errorf("cycles = %d, want %d", got, want)
	}
}

func TestBRKAndVector(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	c.SP = 0xFF
	c.P = 0x24
	mem.loadAt(0x8000, 0x00)
	mem.loadAt(0xFFFE, 0x00, 0x90)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x9000 {
		t.Errorf("PC = %#04x, want 0x9000", c.PC)
	}
	if !c.Interrupt() {
		t.Errorf("I clear, want set")
	}
	if got, want := mem.addr[0x01FF], uint8(0x80); got != want {
		t.Errorf("stack[01FF] = %#02x, want %#02x", got, want)
	}
	if got, want := mem.addr[0x01FE], uint8(0x02); got != want {
		t.Errorf("stack[01FE] = %#02x, want %#02x", got, want)
	}
	if got, want := mem.addr[0x01FD], uint8(0x34); got != want {
		t.Errorf("stack[01FD] = %#02x, want %#02x", got, want)
	}
	if c.SP != 0xFC {
		t.Errorf("SP = %#02x, want 0xFC", c.SP)
	}
	if got, want := cycles(c), uint64(7); got != want {
		t.Errorf("cycles = %d, want %d", got, want)
	}
}

// --- round-trip laws ---

func TestPHAPLARoundTrip(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	c.SP = 0xFD
	c.A = 0x42
	mem.loadAt(0x8000, 0x48, 0x68) // PHA, PLA
	startSP := c.SP
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	c.A = 0x00 // clobber to prove PLA restores it
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.A != 0x42 {
		t.Errorf("A = %#02x, want 0x42", c.A)
	}
	if c.SP != startSP {
		t.Errorf("SP = %#02x, want %#02x", c.SP, startSP)
	}
}

// TestPushPullLeavesStackUnchanged snapshots the stack page before and
// after a push/pull pair with no intervening stack operations and
// diffs them with deep.Equal, the same diffing idiom the teacher's
// cpu_test.go uses for register-state comparisons.
func TestPushPullLeavesStackUnchanged(t *testing.T) {
	c, mem := newTestCPU(t)
	c.SP = 0xFD
	c.A = 0x99
	// The only byte a push/pull pair may touch is the slot the push
	// writes to; everywhere else in the stack page must read back
	// exactly as it started.
	beforeSnapshot := append([]uint8{}, mem.addr[0x0100:0x0200]...)
	touched := int(c.SP) // offset within the page push will write to

	c.push(c.A)
	_ = c.pull()

	afterSnapshot := append([]uint8{}, mem.addr[0x0100:0x0200]...)
	beforeSnapshot[touched] = afterSnapshot[touched]
	if diff := deep.Equal(beforeSnapshot, afterSnapshot); diff != nil {
		t.Errorf("stack page changed outside the touched slot: %v", diff)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %#02x, want 0xFD", c.SP)
	}
}

func TestASLLSRInverse(t *testing.T) {
	c, _ := newTestCPU(t)
	c.A = 0x55 // bit 7 clear
	c.opASLAcc()
	c.opLSRAcc()
	if c.A != 0x55&0x7F {
		t.Errorf("A = %#02x, want %#02x", c.A, 0x55&0x7F)
	}

	c2, _ := newTestCPU(t)
	c2.A = 0x54 // bit 0 clear
	c2.opLSRAcc()
	c2.opASLAcc()
	if c2.A != 0x54&0xFE {
		t.Errorf("A = %#02x, want %#02x", c2.A, 0x54&0xFE)
	}
}

func TestROLEightTimes(t *testing.T) {
	for _, a := range []uint8{0x00, 0x01, 0x55, 0x80, 0xFF, 0x40} {
		c, _ := newTestCPU(t)
		c.A = a
		c.SetCarry(false)
		// ROL rotates the 9-bit (C, A) ring, so eight rotations leave it
		// rotated right by one: old bit 0 of A lands in C and the
		// starting carry (clear) lands in bit 7.
		wantA := a >> 1
		wantCarry := a&0x01 != 0
		for i := 0; i < 8; i++ {
			c.opROLAcc()
		}
		if c.A != wantA {
			t.Errorf("a=%#02x: after 8 ROLs A = %#02x, want %#02x", a, c.A, wantA)
		}
		if c.Carry() != wantCarry {
			t.Errorf("a=%#02x: after 8 ROLs C = %v, want %v", a, c.Carry(), wantCarry)
		}
	}
}

// --- boundary and invariant checks ---

func TestBranchWrapNearBoundary(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	c.SetCarry(false)
	mem.loadAt(0x8000, 0x90, 0x7F) // BCC +127
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x8002+0x7F {
		t.Errorf("PC = %#04x, want %#04x", c.PC, 0x8002+0x7F)
	}

	c2, mem2 := newTestCPU(t)
	c2.PC = 0x8000
	c2.SetCarry(false)
	mem2.loadAt(0x8000, 0x90, 0x80) // BCC -128
	if _, err := c2.Step(); err != nil {
		t.Fatal(err)
	}
	if c2.PC != 0x8002-128 {
		t.Errorf("PC = %#04x, want %#04x", c2.PC, 0x8002-128)
	}
}

func TestPLPAndRTIFlagMasking(t *testing.T) {
	c, mem := newTestCPU(t)
	c.SP = 0xFD
	c.P = 0x30 // B and unused set on the live CPU
	c.push(0x00)
	c.PC = 0x9000
	mem.loadAt(0x9000, 0x28) // PLP
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.P&0x30 != 0x30 {
		t.Errorf("P&0x30 = %#02x, want 0x30 (preserved from live CPU)", c.P&0x30)
	}

	c2, mem2 := newTestCPU(t)
	c2.SP = 0xFD
	c2.P = 0x10 // B set, unused clear, on the live CPU
	c2.push16(0x1234)
	c2.push(0x00) // stack status has both bits clear
	c2.PC = 0x9000
	mem2.loadAt(0x9000, 0x40) // RTI
	if _, err := c2.Step(); err != nil {
		t.Fatal(err)
	}
	if c2.P&0x10 == 0 {
		t.Errorf("B flag not preserved by RTI")
	}
	if c2.P&0x20 != 0 {
		t.Errorf("unused bit should come from the stack (0) for RTI, got set")
	}
	if c2.PC != 0x1234 {
		t.Errorf("PC = %#04x, want 0x1234", c2.PC)
	}
}

func TestUnknownOpcodeSilentlyIgnored(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	c.A, c.X, c.Y = 0x11, 0x22, 0x33
	mem.loadAt(0x8000, 0x02) // not a documented opcode
	res, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if res != StepOK {
		t.Errorf("res = %v, want StepOK", res)
	}
	if c.A != 0x11 || c.X != 0x22 || c.Y != 0x33 {
		t.Errorf("registers mutated by unknown opcode: %s", spew.Sdump(c))
	}
	if c.PC != 0x8001 {
		t.Errorf("PC = %#04x, want 0x8001", c.PC)
	}
}

func TestVMCallInvokesHost(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x8000
	c.A = 'X'
	host := &recordingHost{}
	c.VMCall = host
	mem.loadAt(0x8000, 0x80, 0x07) // VMCALL selector 0x07
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if len(host.selectors) != 1 || host.selectors[0] != 0x07 {
		t.Errorf("selectors = %v, want [0x07]", host.selectors)
	}
	if c.PC != 0x8002 {
		t.Errorf("PC = %#04x, want 0x8002", c.PC)
	}
}

type recordingHost struct {
	selectors []uint8
}

func (r *recordingHost) Handle(_ interface{}, selector uint8) error {
	r.selectors = append(r.selectors, selector)
	return nil
}

func TestLoadSetsNZForAllResultBytes(t *testing.T) {
	for _, v := range []uint8{0x00, 0x01, 0x7F, 0x80, 0xFF} {
		c, mem := newTestCPU(t)
		c.PC = 0x8000
		mem.loadAt(0x8000, 0xA9, v) // LDA #v
		if _, err := c.Step(); err != nil {
			t.Fatal(err)
		}
		if c.Zero() != (v == 0) {
			t.Errorf("v=%#02x: Z = %v, want %v", v, c.Zero(), v == 0)
		}
		if c.Negative() != (v&0x80 != 0) {
			t.Errorf("v=%#02x: N = %v, want %v", v, c.Negative(), v&0x80 != 0)
		}
	}
}
