package sim

import (
	"math"
	"time"
)

// Config holds the real-time tunables of the controller together with the
// tick frequency they are measured against. All durations are converted to
// tick counts once, when a Controller is built, so the same configuration
// works at any deployment tick rate.
type Config struct {
	// TickHz is the number of simulation ticks per second.
	TickHz int

	Debounce   time.Duration // stable window before a button level commits
	ShowResult time.Duration // how long Low/High/Win stays on screen
	WinAnim    time.Duration // duration of the win animation
	WinStats   time.Duration // duration of the post-win stats screen
	DigitDwell time.Duration // how long each digit stays selected
	AnimFrame  time.Duration // time between animation frames
}

// DefaultConfig returns the reference timings: a 10 kHz tick with a 20 ms
// debounce window, 1 ms digit dwell and the second-scale game delays.
func DefaultConfig() Config {
	return Config{
		TickHz:     10_000,
		Debounce:   20 * time.Millisecond,
		ShowResult: 2 * time.Second,
		WinAnim:    4 * time.Second,
		WinStats:   3 * time.Second,
		DigitDwell: time.Millisecond,
		AnimFrame:  250 * time.Millisecond,
	}
}

// Timing is Config with every duration resolved to a tick count.
type Timing struct {
	DebounceTicks   uint32
	ShowResultTicks uint32
	WinAnimTicks    uint32
	WinStatsTicks   uint32
	DwellTicks      uint32
	AnimFrameTicks  uint32
}

// Timing derives tick counts from the configured durations. Every count is
// clamped to at least one tick so a too-coarse tick rate degrades to
// "next tick" rather than zero-length waits.
func (c Config) Timing() Timing {
	return Timing{
		DebounceTicks:   c.ticks(c.Debounce),
		ShowResultTicks: c.ticks(c.ShowResult),
		WinAnimTicks:    c.ticks(c.WinAnim),
		WinStatsTicks:   c.ticks(c.WinStats),
		DwellTicks:      c.ticks(c.DigitDwell),
		AnimFrameTicks:  c.ticks(c.AnimFrame),
	}
}

func (c Config) ticks(d time.Duration) uint32 {
	n := math.Round(d.Seconds() * float64(c.TickHz))
	if n < 1 {
		return 1
	}
	return uint32(n)
}
