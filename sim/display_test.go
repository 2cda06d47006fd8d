package sim

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayRefreshScansAllPositions(t *testing.T) {
	var d Display
	g := newGame()
	selected := make(map[uint8]int)
	cycle := int(testTiming.DwellTicks) * 4
	for i := 0; i < cycle*5; i++ {
		out := d.render(g)
		// One-hot, active low: exactly one cleared bit in the low nibble.
		low := ^out.DigitSelect & 0x0F
		require.Equal(t, 1, bits.OnesCount8(low), "digit select not one-hot: %04b", out.DigitSelect)
		selected[d.Digit]++
		d = d.step(g, testTiming)
	}
	for pos := uint8(0); pos < 4; pos++ {
		assert.Equal(t, cycle*5/4, selected[pos], "position %d dwell share", pos)
	}
}

func TestDisplayGlyphEncodingActiveLow(t *testing.T) {
	assert.Equal(t, uint8(0x80), digitGlyph(8), "8 lights all seven segments")
	assert.Equal(t, uint8(0xC0), digitGlyph(0))
	assert.Equal(t, uint8(0xF9), digitGlyph(1))
	assert.Equal(t, uint8(0xFF), uint8(glyphBlank))
}

func TestDisplayGuessReadout(t *testing.T) {
	var d Display
	g := Game{State: StatePlaying, Guess: 7, Target: 3, Attempts: 0, Result: ResultEntering}

	assert.Equal(t, digitGlyph(7), d.Glyph(0, g))
	assert.Equal(t, uint8(glyphBlank), d.Glyph(1, g))
	assert.Equal(t, uint8(glyphBlank), d.Glyph(2, g), "attempts tens blank below 10")
	assert.Equal(t, digitGlyph(0), d.Glyph(3, g), "attempts units always visible")
}

func TestDisplayGuessTenRendersTwoDigits(t *testing.T) {
	var d Display
	g := Game{State: StatePlaying, Guess: 10, Result: ResultEntering}
	assert.Equal(t, digitGlyph(0), d.Glyph(0, g))
	assert.Equal(t, digitGlyph(1), d.Glyph(1, g))
}

func TestDisplayLowHighIndicators(t *testing.T) {
	var d Display
	g := Game{State: StateShowResult, Guess: 2, Target: 8, Result: ResultLow}
	assert.Equal(t, uint8(glyphL), d.Glyph(0, g))
	assert.Equal(t, uint8(glyphO), d.Glyph(1, g))

	g.Result = ResultHigh
	assert.Equal(t, uint8(glyphH), d.Glyph(0, g))
	assert.Equal(t, uint8(glyphI), d.Glyph(1, g))
}

func TestDisplayAttemptsTens(t *testing.T) {
	var d Display
	g := Game{State: StatePlaying, Guess: 1, Attempts: 13, Result: ResultEntering}
	assert.Equal(t, digitGlyph(1), d.Glyph(2, g))
	assert.Equal(t, digitGlyph(3), d.Glyph(3, g))
}

func TestDisplayWinStatsShowsTarget(t *testing.T) {
	var d Display
	g := Game{State: StateWinStats, Target: 6, Attempts: 2, Result: ResultWin}
	assert.Equal(t, digitGlyph(6), d.Glyph(0, g))
	assert.Equal(t, uint8(glyphBlank), d.Glyph(1, g))
	assert.Equal(t, digitGlyph(2), d.Glyph(3, g))

	g.Target = 10
	assert.Equal(t, digitGlyph(0), d.Glyph(0, g))
	assert.Equal(t, digitGlyph(1), d.Glyph(1, g))
}

func TestDisplayWinAnimationPath(t *testing.T) {
	g := Game{State: StateWinAnim, Result: ResultWin}
	want := [8]uint8{0, 1, 2, 3, 2, 1, 0, 1}

	var d Display
	for frame := uint8(0); frame < 8; frame++ {
		d.AnimFrame = frame
		for pos := uint8(0); pos < 4; pos++ {
			glyph := d.Glyph(pos, g)
			if pos == want[frame] {
				assert.Equal(t, uint8(glyphBar), glyph, "frame %d position %d", frame, pos)
			} else {
				assert.Equal(t, uint8(glyphBlank), glyph, "frame %d position %d", frame, pos)
			}
		}
	}
}

func TestDisplayAnimationAdvancesOnlyInWinState(t *testing.T) {
	var d Display
	playing := Game{State: StatePlaying, Result: ResultEntering}
	for i := uint32(0); i < testTiming.AnimFrameTicks*3; i++ {
		d = d.step(playing, testTiming)
	}
	assert.Zero(t, d.AnimFrame, "animation must hold at frame 0 outside the win state")
	assert.Zero(t, d.AnimCount)

	win := Game{State: StateWinAnim, Result: ResultWin}
	for i := uint32(0); i < testTiming.AnimFrameTicks; i++ {
		d = d.step(win, testTiming)
	}
	assert.Equal(t, uint8(1), d.AnimFrame)

	// Leaving the win state snaps the animation back to frame 0.
	d = d.step(playing, testTiming)
	assert.Zero(t, d.AnimFrame)
}
