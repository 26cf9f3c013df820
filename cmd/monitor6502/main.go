// Command monitor6502 is an interactive terminal debugger: it loads a
// flat binary image, single-steps it one instruction per keypress, and
// renders the surrounding memory page, register file, and next
// instruction's disassembly.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go6502/cpu"
	"go6502/disasm"
	"go6502/memory"
	"go6502/timekeeper"
	"go6502/vmcall"
)

var (
	image = flag.String("image", "", "Path to a flat binary image to load")
	load  = flag.Uint("load_addr", 0x8000, "Address to load the image at")
)

type model struct {
	chip *cpu.CPU
	bus  memory.Bus

	prevPC     uint16
	lastCycles uint64
	clock      *timekeeper.Counter
	err        error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "j":
		m.prevPC = m.chip.PC
		if _, err := m.chip.Step(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.lastCycles = m.clock.Cycles
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		v := m.bus.Read(addr)
		if addr == m.chip.PC {
			s += fmt.Sprintf("[%02X] ", v)
		} else {
			s += fmt.Sprintf(" %02X  ", v)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01X  ", b)
	}
	lines := []string{header}
	base := m.chip.PC &^ 0x000F
	for p := -2; p <= 2; p++ {
		lines = append(lines, m.renderPage(uint16(int(base)+p*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	flagBits := []struct {
		name string
		set  bool
	}{
		{"N", m.chip.Negative()},
		{"V", m.chip.Overflow()},
		{"B", m.chip.P&cpu.FlagBreak != 0},
		{"D", m.chip.Decimal()},
		{"I", m.chip.Interrupt()},
		{"Z", m.chip.Zero()},
		{"C", m.chip.Carry()},
	}
	var names, marks strings.Builder
	for _, f := range flagBits {
		fmt.Fprintf(&names, "%s ", f.name)
		if f.set {
			marks.WriteString("1 ")
		} else {
			marks.WriteString("0 ")
		}
	}
	return fmt.Sprintf(
		"PC: %04X (was %04X)\nA:  %02X\nX:  %02X\nY:  %02X\nSP: %02X\ncycles: %d\n%s\n%s",
		m.chip.PC, m.prevPC, m.chip.A, m.chip.X, m.chip.Y, m.chip.SP, m.lastCycles,
		names.String(), marks.String(),
	)
}

func (m model) nextInstruction() string {
	buf := make([]byte, 32)
	n := disasm.Disassemble(m.chip, m.chip.PC, buf)
	if n == 0 {
		return "(unknown opcode)"
	}
	return string(buf[:n])
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("stopped: %v\n", m.err)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), "   "+strings.ReplaceAll(m.status(), "\n", "\n   ")),
		"",
		"next: "+m.nextInstruction(),
		"",
		"space/j: step   q: quit",
	)
}

func main() {
	flag.Parse()
	if *image == "" {
		log.Fatalf("-image is required")
	}

	rom, err := os.ReadFile(*image)
	if err != nil {
		log.Fatalf("can't read image: %v", err)
	}

	bus := memory.NewFlatBus()
	bus.PowerOn()
	memory.LoadAt(bus, uint16(*load), rom)

	clock := &timekeeper.Counter{}
	chip, err := cpu.New(bus, clock, vmcall.NoopHost{})
	if err != nil {
		log.Fatalf("can't create cpu: %v", err)
	}
	chip.PowerOn()
	chip.PC = uint16(*load)

	m := model{chip: chip, bus: bus, clock: clock}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatalf("monitor exited: %v", err)
	}
}
