// Package vmcall defines the host-call interface the core invokes when
// it decodes opcode 0x80. 0x80 is officially undocumented on the NMOS
// 6502; this emulator repurposes it as a trap into host code, the same
// way a hosted VM exposes syscalls to guest bytecode.
package vmcall

import "github.com/pkg/errors"

// Host receives VMCALL traps raised by the stepper. Implementations
// decide what each selector means; the core only supplies the selector
// byte that followed the opcode.
type Host interface {
	// Handle services one VMCALL trap for the given selector. cpu is
	// passed as an untyped pointer to avoid an import cycle between
	// this package and cpu; callers type-assert to *cpu.CPU.
	Handle(cpu interface{}, selector uint8) error
}

// ErrUnknownSelector is wrapped with the offending selector and
// returned by host implementations that don't recognize it.
var ErrUnknownSelector = errors.New("vmcall: unknown selector")

// NoopHost implements Host by ignoring every selector. It's the default
// wired into a CPU that hasn't been given a real host, matching the
// spec's requirement that an unconfigured VMCALL be harmless rather
// than a crash.
type NoopHost struct{}

// Handle implements Host.
func (NoopHost) Handle(_ interface{}, _ uint8) error {
	return nil
}

// Selector-numbered host used by the cmd/ drivers: a minimal set of
// calls sufficient to let hand-assembled test programs interact with
// the outside world without pulling in a video/audio chip this core
// doesn't model.
const (
	// SelectorPutChar writes the byte in the A register to stdout.
	SelectorPutChar uint8 = 0x01
	// SelectorHalt requests the driver loop stop stepping.
	SelectorHalt uint8 = 0x02
	// SelectorExitCode sets the process exit code from the A register.
	SelectorExitCode uint8 = 0x03
)

// Accumulator is the minimal view of CPU state a Host needs without
// importing the cpu package directly.
type Accumulator interface {
	GetA() uint8
}

// Console is a small Host implementation used by the CLI drivers. It
// writes SelectorPutChar bytes to Out, and SelectorHalt/SelectorExitCode
// flip Halted/ExitCode so the driving loop can observe them after Step
// returns.
type Console struct {
	Out      interface {
		Write(p []byte) (int, error)
	}
	Halted   bool
	ExitCode int
}

// Handle implements Host.
func (c *Console) Handle(cpuState interface{}, selector uint8) error {
	acc, ok := cpuState.(Accumulator)
	if !ok {
		return errors.Wrapf(ErrUnknownSelector, "selector 0x%02X: cpu does not expose A", selector)
	}
	switch selector {
	case SelectorPutChar:
		if c.Out != nil {
			_, err := c.Out.Write([]byte{acc.GetA()})
			return err
		}
		return nil
	case SelectorHalt:
		c.Halted = true
		return nil
	case SelectorExitCode:
		c.ExitCode = int(acc.GetA())
		return nil
	default:
		return errors.Wrapf(ErrUnknownSelector, "selector 0x%02X", selector)
	}
}
