// Package sim implements a number-guessing game controller as a synchronous,
// tick-stepped simulation: three debounced buttons, a 4-bit LFSR, a game
// state machine and a 4-digit multiplexed seven-segment display driver.
//
// The whole controller advances in lockstep. Controller.Step computes every
// component's next state from the frozen prior snapshot and returns the new
// snapshot, so no component ever observes another's same-tick update. That
// mirrors register semantics: reads see last-tick values, writes land for
// the tick after.
package sim

// Inputs is everything the environment supplies on a tick: raw (bouncy)
// button levels plus a reset that takes priority over normal stepping.
type Inputs struct {
	Reset     bool
	Start     bool
	Increment bool
	Submit    bool
}

// Outputs is what the display-scanning peripheral samples each tick: a
// 4-bit one-hot active-low digit select and an 8-bit active-low segment
// pattern for the selected position.
type Outputs struct {
	DigitSelect uint8
	Segments    uint8
}

// Controller is the full controller state. It is a value type; Step returns
// a new Controller rather than mutating in place.
type Controller struct {
	StartBtn     Debouncer
	IncrementBtn Debouncer
	SubmitBtn    Debouncer
	RNG          LFSR
	Game         Game
	Display      Display

	timing Timing
}

// New builds a controller in its reset state with tick counts derived from
// cfg.
func New(cfg Config) Controller {
	return Controller{
		RNG:    lfsrSeed,
		Game:   newGame(),
		timing: cfg.Timing(),
	}
}

// Timing exposes the resolved tick counts the controller runs with.
func (c Controller) Timing() Timing { return c.timing }

// reset returns the initial snapshot, keeping the configured timing.
func (c Controller) reset() Controller {
	n := Controller{RNG: lfsrSeed, Game: newGame(), timing: c.timing}
	return n
}

// Step advances the controller by one tick and returns the committed
// snapshot together with the outputs valid for that tick.
//
// Reset short-circuits everything: when asserted the returned snapshot is
// the initial state regardless of the other inputs.
func (c Controller) Step(in Inputs) (Controller, Outputs) {
	if in.Reset {
		n := c.reset()
		return n, n.Display.render(n.Game)
	}

	// Every next-state below reads only c, the prior-tick snapshot. The
	// game consumes edges computed from the debouncers as they were before
	// this tick, so an edge reaches it one tick after the level commits.
	n := c
	n.StartBtn = c.StartBtn.step(in.Start, c.timing.DebounceTicks)
	n.IncrementBtn = c.IncrementBtn.step(in.Increment, c.timing.DebounceTicks)
	n.SubmitBtn = c.SubmitBtn.step(in.Submit, c.timing.DebounceTicks)
	n.RNG = c.RNG.step()
	n.Game = c.Game.step(edges{
		start:     c.StartBtn.Edge(),
		increment: c.IncrementBtn.Edge(),
		submit:    c.SubmitBtn.Edge(),
	}, c.RNG.Value(), c.timing)
	n.Display = c.Display.step(c.Game, c.timing)

	return n, n.Display.render(n.Game)
}

// Panel models the external display-scanning peripheral: it watches the
// per-tick outputs and latches the segment pattern most recently driven at
// each digit position, giving consumers a stable four-glyph frame.
type Panel struct {
	Glyphs [4]uint8
}

// NewPanel returns a panel with every position blank.
func NewPanel() Panel {
	return Panel{Glyphs: [4]uint8{glyphBlank, glyphBlank, glyphBlank, glyphBlank}}
}

// Observe latches the segment pattern for whichever position the digit
// select currently addresses.
func (p *Panel) Observe(out Outputs) {
	for i := uint8(0); i < 4; i++ {
		if out.DigitSelect&(1<<i) == 0 {
			p.Glyphs[i] = out.Segments
		}
	}
}
