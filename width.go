package tuinix

import "github.com/mattn/go-runewidth"

// CharWidthMeasurer computes the display width of a character in terminal
// cells. Frames consult a measurer while laying out text so that
// applications talking to terminals with unusual width behavior (or
// fixed-cell fonts) can substitute their own rules.
type CharWidthMeasurer interface {
	// CharWidth returns the number of cells r occupies: 0 for
	// zero-width characters, 2 for wide characters, 1 otherwise.
	CharWidth(r rune) int
}

// DefaultCharWidthMeasurer measures East-Asian display width. It is used
// by NewTerminalFrame and NewCell.
var DefaultCharWidthMeasurer CharWidthMeasurer = eastAsianMeasurer{}

// eastAsianMeasurer reports Unicode East-Asian display widths.
type eastAsianMeasurer struct{}

func (eastAsianMeasurer) CharWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w > 2 {
		w = 2
	}
	return w
}

// FixedCharWidthMeasurer reports the same width for every character.
// Useful for tests and for terminals rendering all glyphs in single
// cells.
type FixedCharWidthMeasurer struct {
	Width int
}

// CharWidth returns the fixed width regardless of the character.
func (m FixedCharWidthMeasurer) CharWidth(rune) int {
	return m.Width
}
