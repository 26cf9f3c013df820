// Command disasm6502 disassembles a flat binary image and prints one
// line per instruction, in the listing format the core's disasm
// package produces.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"go6502/cpu"
	"go6502/disasm"
	"go6502/memory"
	"go6502/timekeeper"
	"go6502/vmcall"

	"gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:    "disasm6502",
		Usage:   "Disassemble a flat 6502 binary image",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "image",
				Aliases:  []string{"i"},
				Usage:    "path to the flat binary image to disassemble",
				Required: true,
			},
			&cli.UintFlag{
				Name:    "load",
				Aliases: []string{"l"},
				Usage:   "address the image is loaded at",
				Value:   0x8000,
			},
			&cli.UintFlag{
				Name:  "count",
				Usage: "number of instructions to disassemble; 0 disassembles the whole image",
				Value: 0,
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	imagePath := c.String("image")
	load := uint16(c.Uint("load"))
	count := c.Uint("count")

	rom, err := os.ReadFile(imagePath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("can't read image: %v", err), 1)
	}

	bus := memory.NewFlatBus()
	memory.LoadAt(bus, load, rom)

	chip, err := cpu.New(bus, &timekeeper.Counter{}, vmcall.NoopHost{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("can't create cpu: %v", err), 1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	buf := make([]byte, 64)
	var n uint
	for off := 0; off < len(rom); {
		if count > 0 && n >= count {
			break
		}
		addr := load + uint16(off)
		chip.PC = addr
		clear(buf)
		length := disasm.Disassemble(chip, addr, buf)
		fmt.Fprintln(w, string(buf[:length]))
		step := 1
		if s := instructionLength(bus.Read(addr)); s > 0 {
			step = s
		}
		off += step
		n++
	}
	return nil
}

// instructionLength returns the byte width disasm.Disassemble consumed
// for op, so the caller can advance addr without redecoding the mode.
func instructionLength(op uint8) int {
	switch op {
	case 0x0A, 0x4A, 0x2A, 0x6A, // accumulator shifts
		0x08, 0x18, 0x28, 0x38, 0x40, 0x48, 0x58, 0x60, 0x68,
		0x78, 0x88, 0x8A, 0x98, 0x9A, 0xA8, 0xAA, 0xB8, 0xBA, 0xC8,
		0xCA, 0xD8, 0xE8, 0xEA, 0xF8: // implied/stack/transfer, 1 byte
		return 1
	case 0x4C, 0x6C, 0x20, // JMP abs, JMP (ind), JSR
		0x0D, 0x0E, 0x1D, 0x1E, 0x19, 0x2C, 0x2D, 0x2E, 0x39, 0x3D, 0x3E,
		0x4D, 0x4E, 0x59, 0x5D, 0x5E, 0x6D, 0x6E, 0x79, 0x7D, 0x7E,
		0x8C, 0x8D, 0x8E, 0x99, 0x9D, 0xAC, 0xAD, 0xAE, 0xB9, 0xBC,
		0xBD, 0xBE, 0xCC, 0xCD, 0xCE, 0xD9, 0xDD, 0xDE, 0xEC, 0xED,
		0xEE, 0xF9, 0xFD, 0xFE: // absolute-family, 3 bytes
		return 3
	default:
		return 2
	}
}
