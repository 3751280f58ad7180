package tuinix

// renderDiff appends to esc the minimal control sequences that transform
// the previously displayed frame into next. Both frames must share the
// same size; the caller handles size changes by clearing the screen and
// substituting a blank frame for prev.
//
// The walk is row-major. A pen position and pen style model what the
// terminal currently holds; both start unknown, forcing an explicit move
// and style before the first written cell. Styles are emitted in absolute
// form (see escBuilder.SetStyle) and a trailing reset leaves the terminal
// in a predictable state.
func renderDiff(esc *escBuilder, prev, next *TerminalFrame) {
	var (
		pen           TerminalPosition
		penKnown      bool
		penStyle      TerminalStyle
		penStyleKnown bool
		wrote         bool
	)

	for row := 0; row < next.size.Rows; row++ {
		for col := 0; col < next.size.Cols; {
			idx := row*next.size.Cols + col
			cell := next.cells[idx]
			if cell.Equal(prev.cells[idx]) || cell.IsContinuation() {
				col++
				continue
			}

			pos := TerminalPosition{Row: row, Col: col}
			if !penKnown || pen != pos {
				esc.MoveTo(pos)
			}
			if !penStyleKnown || !penStyle.Equal(cell.Style) {
				esc.SetStyle(cell.Style)
				penStyle = cell.Style
				penStyleKnown = true
			}
			if cell.Rune == 0 {
				esc.WriteRune(' ')
			} else {
				esc.WriteRune(cell.Rune)
			}

			width := int(cell.Width)
			if width < 1 {
				width = 1
			}
			// A wide cell's continuation is covered by the glyph itself.
			pen = TerminalPosition{Row: row, Col: col + width}
			penKnown = true
			wrote = true
			col += width
		}
	}

	if wrote && !penStyle.IsZero() {
		esc.ResetStyle()
	}
}
