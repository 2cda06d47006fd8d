package sim

// Segment patterns are 8 bits, active low: a cleared bit lights a segment.
// Bit order is dp g f e d c b a (bit 0 = segment a, bit 7 = decimal point).
// glyph complements an active-high segment mask into the wire encoding.
func glyph(on uint8) uint8 { return ^on }

// digitGlyphs holds the active-high masks for 0-9.
var digitGlyphs = [10]uint8{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
}

const (
	glyphBlank = uint8(0xFF)  // every segment off
	glyphL     = ^uint8(0x38) // f e d
	glyphH     = ^uint8(0x76) // f e g b c
	glyphO     = ^uint8(0x5C) // lowercase o: c d e g
	glyphI     = ^uint8(0x04) // lowercase i: c
	glyphBar   = ^uint8(0x40) // middle segment, the animation bar
)

func digitGlyph(d uint8) uint8 { return glyph(digitGlyphs[d%10]) }

// animPath maps the win-animation frame index to the lit digit position.
// The sequence is almost a ping-pong over the four positions; frame 7 lands
// on position 1 instead of returning to 0, which breaks the symmetry. That
// is what the shipped hardware does, so it is kept as-is.
var animPath = [8]uint8{0, 1, 2, 3, 2, 1, 0, 1}

// Display multiplexes the four digit positions and runs the win animation.
// It never writes game state; each tick it re-renders from the Game value it
// is handed.
type Display struct {
	Digit        uint8  // active position, 0 = rightmost ... 3 = leftmost
	RefreshCount uint32 // ticks the active position has been selected
	AnimFrame    uint8  // win animation frame, 0-7
	AnimCount    uint32 // ticks within the current animation frame
}

// step advances the refresh scan and, in StateWinAnim only, the animation
// sub-counter. Outside the win state the animation is held at frame 0.
func (d Display) step(g Game, t Timing) Display {
	n := d
	n.RefreshCount = d.RefreshCount + 1
	if n.RefreshCount >= t.DwellTicks {
		n.RefreshCount = 0
		n.Digit = (d.Digit + 1) & 3
	}

	if g.State == StateWinAnim {
		n.AnimCount = d.AnimCount + 1
		if n.AnimCount >= t.AnimFrameTicks {
			n.AnimCount = 0
			n.AnimFrame = (d.AnimFrame + 1) & 7
		}
	} else {
		n.AnimCount = 0
		n.AnimFrame = 0
	}
	return n
}

// render produces the two per-tick outputs: a one-hot active-low digit
// select and the segment pattern for the selected position.
func (d Display) render(g Game) Outputs {
	return Outputs{
		DigitSelect: ^(uint8(1) << (d.Digit & 3)) & 0x0F,
		Segments:    d.Glyph(d.Digit&3, g),
	}
}

// Glyph computes the segment pattern shown at a digit position for the given
// game state. Position roles:
//
//	0 (rightmost)  guess readout, or L/H indicator, or target in win stats
//	1              companion: the "1" of a 10, o/i of Lo/Hi, target tens
//	2              attempts tens digit, blank below 10
//	3 (leftmost)   attempts units digit, always visible
//
// During the win animation every position shows the bar when the animation
// frame lands on it and blank otherwise.
func (d Display) Glyph(pos uint8, g Game) uint8 {
	if g.State == StateWinAnim {
		if pos == animPath[d.AnimFrame&7] {
			return glyphBar
		}
		return glyphBlank
	}

	switch pos & 3 {
	case 0:
		if g.State == StateWinStats {
			return digitGlyph(g.Target % 10)
		}
		switch g.Result {
		case ResultLow:
			return glyphL
		case ResultHigh:
			return glyphH
		}
		return digitGlyph(g.Guess % 10)

	case 1:
		if g.State == StateWinStats {
			if g.Target == 10 {
				return digitGlyph(1)
			}
			return glyphBlank
		}
		switch g.Result {
		case ResultLow:
			return glyphO
		case ResultHigh:
			return glyphI
		}
		if g.Guess == 10 {
			return digitGlyph(1)
		}
		return glyphBlank

	case 2:
		if g.Attempts >= 10 {
			return digitGlyph(g.Attempts / 10)
		}
		return glyphBlank

	default: // position 3
		return digitGlyph(g.Attempts % 10)
	}
}
