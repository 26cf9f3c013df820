// Package timekeeper defines the interface the stepper uses to report
// elapsed cycles after each completed instruction. Keeping this as a
// separate interface (rather than a field the CPU mutates directly)
// lets a host throttle to a real clock rate, drive a PPU/APU off cycle
// counts, or simply count instructions in tests, without the core
// knowing which.
package timekeeper

import "time"

// Timekeeper receives cycle-count advances, one call per completed
// Step.
type Timekeeper interface {
	// Advance is called once per completed instruction with that
	// instruction's base cycle cost.
	Advance(cycles uint32)
}

// Counter is the simplest Timekeeper: it just accumulates total cycles
// and instruction count, suitable for tests and for cmd/ drivers that
// report a final cycle total.
type Counter struct {
	Cycles       uint64
	Instructions uint64
}

// Advance implements Timekeeper.
func (c *Counter) Advance(cycles uint32) {
	c.Cycles += uint64(cycles)
	c.Instructions++
}

// WallClock paces Advance calls to approximate a target clock rate by
// sleeping off the difference between the wall time an instruction's
// cycles should have taken and the wall time that's actually elapsed
// since the clock was started. It's a simplified relative of the
// teacher's Chip.SetClock/getClockAverage delay-loop approach, using
// time.Sleep instead of a busy delay loop since this core isn't chasing
// sub-microsecond jitter.
type WallClock struct {
	HzPerCycle time.Duration // wall-clock duration of one cycle at the target rate.

	start      time.Time
	underlying timekeeper
}

type timekeeper = Counter

// NewWallClock returns a WallClock ticking at the given cycles-per-second
// rate. A zero rate disables pacing (Advance becomes a no-op beyond
// counting), matching the teacher's "clock == 0 means unthrottled"
// convention in Chip.SetClock.
func NewWallClock(hz uint64) *WallClock {
	w := &WallClock{start: time.Now()}
	if hz > 0 {
		w.HzPerCycle = time.Second / time.Duration(hz)
	}
	return w
}

// Advance implements Timekeeper.
func (w *WallClock) Advance(cycles uint32) {
	w.underlying.Advance(cycles)
	if w.HzPerCycle == 0 {
		return
	}
	target := w.start.Add(w.HzPerCycle * time.Duration(w.underlying.Cycles))
	if d := time.Until(target); d > 0 {
		time.Sleep(d)
	}
}

// Cycles returns the total cycles advanced so far.
func (w *WallClock) Cycles() uint64 { return w.underlying.Cycles }
