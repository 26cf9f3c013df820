// Command run6502 loads a flat binary image into memory and steps a CPU
// against it until VMCALL halt or an instruction limit is reached,
// printing a final register and cycle summary. A VMCALL error stops it
// with a fatal log; unknown opcodes do not stop it.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"go6502/cpu"
	"go6502/memory"
	"go6502/timekeeper"
	"go6502/vmcall"
)

var (
	image   = flag.String("image", "", "Path to a flat binary image to load")
	load    = flag.Uint("load_addr", 0x8000, "Address to load the image at")
	start   = flag.Uint("start_addr", 0x8000, "Initial PC; ignored if -use_reset_vector is set")
	useRst  = flag.Bool("use_reset_vector", false, "If true, PC is taken from the reset vector after load instead of -start_addr")
	hz      = flag.Uint64("hz", 0, "Target clock rate in Hz; 0 runs unthrottled")
	limit   = flag.Uint64("max_instructions", 0, "Stop after this many instructions; 0 means unlimited")
	debug   = flag.Bool("debug", false, "If true, print each executed instruction's register state")
	port    = flag.Int("port", 6060, "Port to run the HTTP server for pprof")
)

func main() {
	flag.Parse()

	if *image == "" {
		log.Fatalf("-image is required")
	}

	go func() {
		log.Println(http.ListenAndServe(fmt.Sprintf("localhost:%d", *port), nil))
	}()

	rom, err := os.ReadFile(*image)
	if err != nil {
		log.Fatalf("can't load image: %v from path: %s", err, *image)
	}

	bus := memory.NewFlatBus()
	bus.PowerOn()
	memory.LoadAt(bus, uint16(*load), rom)

	console := &vmcall.Console{Out: os.Stdout}
	clock := timekeeper.NewWallClock(*hz)

	c, err := cpu.New(bus, clock, console)
	if err != nil {
		log.Fatalf("can't create CPU: %v", err)
	}
	c.PowerOn()
	if !*useRst {
		c.PC = uint16(*start)
	}

	var n uint64
	for {
		if *limit > 0 && n >= *limit {
			break
		}
		pc := c.PC
		if _, err := c.Step(); err != nil {
			log.Fatalf("step error at PC=%#04x: %v", pc, err)
		}
		n++
		if *debug {
			fmt.Printf("PC=%#04x A=%#02x X=%#02x Y=%#02x SP=%#02x P=%#02x cycles=%d\n",
				pc, c.A, c.X, c.Y, c.SP, c.P, clock.Cycles())
		}
		if console.Halted {
			break
		}
	}

	fmt.Printf("halted after %d instructions, %d cycles: A=%#02x X=%#02x Y=%#02x SP=%#02x PC=%#04x P=%#02x\n",
		n, clock.Cycles(), c.A, c.X, c.Y, c.SP, c.PC, c.P)
	os.Exit(console.ExitCode)
}
