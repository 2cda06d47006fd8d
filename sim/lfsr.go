package sim

// LFSR is a 4-bit linear feedback shift register with taps on bits 3 and 2.
// That tap pair is maximal-length: from any non-zero value the register
// cycles through all 15 non-zero 4-bit states. Zero is the one absorbing
// state, so the seed must be non-zero and step preserves non-zero-ness.
type LFSR uint8

// lfsrSeed is the reset value. Any non-zero nibble would do.
const lfsrSeed LFSR = 0b1011

// step shifts left and inserts bit3 XOR bit2 at the bottom.
func (l LFSR) step() LFSR {
	bit := ((l >> 3) ^ (l >> 2)) & 1
	return ((l << 1) | bit) & 0x0F
}

// Value returns the current 4-bit register contents.
func (l LFSR) Value() uint8 { return uint8(l) }
