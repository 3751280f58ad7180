package tuinix

// TerminalCell is a single character cell in a frame's grid.
// Wide characters (CJK, most emoji) occupy two adjacent cells; the first
// cell holds the rune, the trailing cell is marked as a continuation with
// Width 0 and the same style.
type TerminalCell struct {
	Rune  rune
	Style TerminalStyle
	Width uint8
}

// NewCell creates a cell with automatic width detection using the default
// East-Asian width measurer.
func NewCell(r rune, style TerminalStyle) TerminalCell {
	return TerminalCell{
		Rune:  r,
		Style: style,
		Width: uint8(DefaultCharWidthMeasurer.CharWidth(r)),
	}
}

// NewCellWithWidth creates a cell with an explicit width. Use this for
// continuation cells (width 0) or when the width is already known.
func NewCellWithWidth(r rune, style TerminalStyle, width uint8) TerminalCell {
	return TerminalCell{
		Rune:  r,
		Style: style,
		Width: width,
	}
}

// blankCell returns the cell a fresh frame is filled with.
func blankCell() TerminalCell {
	return TerminalCell{Rune: ' ', Width: 1}
}

// IsContinuation reports whether this cell is the trailing half of a wide
// character.
func (c TerminalCell) IsContinuation() bool {
	return c.Width == 0
}

// Equal reports whether both cells are identical.
func (c TerminalCell) Equal(other TerminalCell) bool {
	return c.Rune == other.Rune && c.Width == other.Width && c.Style.Equal(other.Style)
}

// validCellRune reports whether r may be stored in a cell. Control
// characters (below 0x20, and DEL) are forbidden.
func validCellRune(r rune) bool {
	return r >= 0x20 && r != 0x7f
}
