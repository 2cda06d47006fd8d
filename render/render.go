// Package render draws latched seven-segment patterns as three-row terminal
// art, styled with lipgloss for the interactive front-ends.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment bits in wire order (bit 0 = a ... bit 6 = g, bit 7 = decimal
// point). Patterns on the wire are active low; rendering works on the
// complemented, lit mask.
const (
	segA = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
	segDP
)

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	litStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Rows converts one active-low segment pattern into three rows of ASCII art:
//
//	 _
//	|_|
//	|_|.
//
// Each row is four characters wide; the last column carries the decimal
// point.
func Rows(pattern uint8) [3]string {
	on := ^pattern

	pick := func(mask uint8, lit string) string {
		if on&mask != 0 {
			return lit
		}
		return " "
	}

	var rows [3]string
	rows[0] = " " + pick(segA, "_") + "  "
	rows[1] = pick(segF, "|") + pick(segG, "_") + pick(segB, "|") + " "
	rows[2] = pick(segE, "|") + pick(segD, "_") + pick(segC, "|") + pick(segDP, ".")
	return rows
}

// Board renders four digit positions left to right, position 3 (leftmost)
// first, inside a bordered panel. glyphs is indexed by position, 0 being the
// rightmost.
func Board(glyphs [4]uint8) string {
	var rows [3]strings.Builder
	for pos := 3; pos >= 0; pos-- {
		art := Rows(glyphs[pos])
		for r := 0; r < 3; r++ {
			rows[r].WriteString(art[r])
		}
	}
	body := litStyle.Render(rows[0].String()) + "\n" +
		litStyle.Render(rows[1].String()) + "\n" +
		litStyle.Render(rows[2].String())
	return boardStyle.Render(body)
}

// Status styles a secondary status line shown under the display board.
func Status(text string) string {
	return statusStyle.Render(text)
}
