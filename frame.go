package tuinix

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TerminalFrame is a fixed-size grid of styled cells built up by
// sequential text writing. It implements io.Writer: written text flows
// through an internal cursor with newline, carriage-return, and tab
// handling, and any Select-Graphic-Rendition sequences embedded in the
// stream (such as those produced by TerminalStyle.String) update the
// composition style applied to subsequent cells.
//
// Frames are plain values owned by the caller until handed to
// Terminal.Draw.
type TerminalFrame struct {
	size     TerminalSize
	cells    []TerminalCell
	cursor   TerminalPosition
	style    TerminalStyle
	measurer CharWidthMeasurer

	// pending holds a trailing partial UTF-8 or escape sequence split
	// across Write calls.
	pending []byte
}

// maxPendingEscape bounds how many bytes an unterminated escape sequence
// may buffer before being discarded as malformed.
const maxPendingEscape = 64

// NewTerminalFrame allocates a frame of the given size with every cell
// set to a space in the default style. The cursor starts at (0,0).
func NewTerminalFrame(size TerminalSize) *TerminalFrame {
	return NewTerminalFrameWithMeasurer(size, DefaultCharWidthMeasurer)
}

// NewTerminalFrameWithMeasurer allocates a frame that lays out text using
// the given width measurer instead of the default East-Asian one.
func NewTerminalFrameWithMeasurer(size TerminalSize, m CharWidthMeasurer) *TerminalFrame {
	if size.Rows < 0 {
		size.Rows = 0
	}
	if size.Cols < 0 {
		size.Cols = 0
	}
	if m == nil {
		m = DefaultCharWidthMeasurer
	}
	cells := make([]TerminalCell, size.Rows*size.Cols)
	blank := blankCell()
	for i := range cells {
		cells[i] = blank
	}
	return &TerminalFrame{
		size:     size,
		cells:    cells,
		measurer: m,
	}
}

// Size returns the frame dimensions.
func (f *TerminalFrame) Size() TerminalSize {
	return f.size
}

// Cursor returns the current writer cursor position. The column may equal
// the frame width when the last written cell filled the row; the row may
// equal the frame height once output has been clipped at the bottom.
func (f *TerminalFrame) Cursor() TerminalPosition {
	return f.cursor
}

// SetCursor moves the writer cursor. The column may range over [0, cols]
// and the row over [0, rows); anything else returns ErrOutOfBounds.
func (f *TerminalFrame) SetCursor(pos TerminalPosition) error {
	if pos.Row < 0 || pos.Row >= f.size.Rows || pos.Col < 0 || pos.Col > f.size.Cols {
		return fmt.Errorf("set cursor to %s in %s frame: %w", pos, f.size, ErrOutOfBounds)
	}
	f.cursor = pos
	return nil
}

// Style returns the current composition style.
func (f *TerminalFrame) Style() TerminalStyle {
	return f.style
}

// SetStyle sets the composition style applied to subsequently written
// cells. Equivalent to embedding the style value in the text stream.
func (f *TerminalFrame) SetStyle(style TerminalStyle) {
	if style.IsReset() {
		style = NewStyle()
	}
	f.style = style
}

// Cell returns the cell at the given position, or a blank cell when the
// position lies outside the grid.
func (f *TerminalFrame) Cell(pos TerminalPosition) TerminalCell {
	if !f.size.Contains(pos) {
		return blankCell()
	}
	return f.cells[pos.Row*f.size.Cols+pos.Col]
}

// PutCell places a cell directly, bypassing the sequential writer.
// Placement outside the grid (including a wide cell whose continuation
// would fall outside) returns ErrOutOfBounds; control characters are not
// representable and are rejected. A wide cell's continuation is written
// automatically.
func (f *TerminalFrame) PutCell(pos TerminalPosition, cell TerminalCell) error {
	if !f.size.Contains(pos) {
		return fmt.Errorf("put cell at %s in %s frame: %w", pos, f.size, ErrOutOfBounds)
	}
	if !validCellRune(cell.Rune) {
		return fmt.Errorf("put cell at %s: control character %q is not representable", pos, cell.Rune)
	}
	if cell.Width > 2 {
		cell.Width = 2
	}
	if cell.Width == 2 && pos.Col+1 >= f.size.Cols {
		return fmt.Errorf("put wide cell at %s in %s frame: %w", pos, f.size, ErrOutOfBounds)
	}
	f.setCell(pos, cell)
	return nil
}

// setCell writes a cell and keeps the wide-character invariant intact:
// overwriting either half of an existing wide character clears the other
// half, and a width-2 cell gets its continuation written.
func (f *TerminalFrame) setCell(pos TerminalPosition, cell TerminalCell) {
	f.clearOverlap(pos)
	if cell.Width == 2 {
		next := TerminalPosition{Row: pos.Row, Col: pos.Col + 1}
		f.clearOverlap(next)
		f.cells[next.Row*f.size.Cols+next.Col] = TerminalCell{Style: cell.Style}
	}
	f.cells[pos.Row*f.size.Cols+pos.Col] = cell
}

// clearOverlap restores the cells around pos to blanks when pos currently
// holds half of a wide character.
func (f *TerminalFrame) clearOverlap(pos TerminalPosition) {
	cur := f.Cell(pos)
	blank := blankCell()
	idx := func(p TerminalPosition) int { return p.Row*f.size.Cols + p.Col }
	if cur.IsContinuation() && cur.Rune == 0 {
		if pos.Col > 0 {
			f.cells[idx(TerminalPosition{Row: pos.Row, Col: pos.Col - 1})] = blank
		}
		f.cells[idx(pos)] = blank
	} else if cur.Width == 2 {
		f.cells[idx(pos)] = blank
		if pos.Col+1 < f.size.Cols {
			f.cells[idx(TerminalPosition{Row: pos.Row, Col: pos.Col + 1})] = blank
		}
	}
}

// Write implements io.Writer. Text flows through the sequential writer;
// embedded SGR sequences update the composition style; malformed input is
// dropped rather than surfaced as an error. Write always reports the full
// length as consumed.
func (f *TerminalFrame) Write(p []byte) (int, error) {
	data := p
	if len(f.pending) > 0 {
		data = append(f.pending, p...)
		f.pending = nil
	}

	i := 0
	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			consumed, complete := f.consumeEscape(data[i:])
			if !complete {
				if len(data)-i <= maxPendingEscape {
					f.pending = append(f.pending[:0], data[i:]...)
				}
				return len(p), nil
			}
			i += consumed
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			if !utf8.FullRune(data[i:]) && len(data)-i < utf8.UTFMax {
				// Trailing partial UTF-8 sequence; keep for the next write.
				f.pending = append(f.pending[:0], data[i:]...)
				return len(p), nil
			}
			i++ // invalid byte, drop
			continue
		}
		i += size

		switch r {
		case '\n':
			f.cursor.Col = 0
			if f.cursor.Row < f.size.Rows {
				f.cursor.Row++
			}
		case '\r':
			f.cursor.Col = 0
		case '\t':
			col := (f.cursor.Col/8 + 1) * 8
			if col > f.size.Cols {
				col = f.size.Cols
			}
			f.cursor.Col = col
		default:
			if r < 0x20 || r == 0x7f {
				continue // other control characters are dropped
			}
			f.writeRune(r)
		}
	}
	return len(p), nil
}

// WriteString writes s through the sequential writer.
func (f *TerminalFrame) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// consumeEscape handles an escape sequence starting at data[0] (which is
// ESC). It returns the number of bytes consumed and whether the sequence
// was complete. Recognized SGR sequences update the composition style;
// any other complete sequence is dropped.
func (f *TerminalFrame) consumeEscape(data []byte) (int, bool) {
	if len(data) < 2 {
		return 0, false
	}
	if data[1] != '[' {
		// Not a CSI sequence; drop the lone escape byte.
		return 1, true
	}
	i := 2
	for i < len(data) {
		b := data[i]
		if b >= 0x40 && b <= 0x7e {
			if b == 'm' {
				f.applySGR(data[2:i])
			}
			return i + 1, true
		}
		if (b < '0' || b > '9') && b != ';' {
			// Malformed parameter byte; drop the sequence up to here.
			return i + 1, true
		}
		i++
	}
	return 0, false
}

// applySGR sets the composition style to the style described by SGR
// parameters (the bytes between "ESC [" and "m"), starting from the
// default style. Unknown parameters are ignored.
func (f *TerminalFrame) applySGR(params []byte) {
	var values []int
	for _, part := range strings.Split(string(params), ";") {
		n := 0
		for _, c := range part {
			if c < '0' || c > '9' {
				return
			}
			n = n*10 + int(c-'0')
		}
		values = append(values, n)
	}
	if len(values) == 0 {
		values = []int{0}
	}

	style := NewStyle()
	for i := 0; i < len(values); i++ {
		switch v := values[i]; {
		case v == 0:
			style = NewStyle()
		case v == 1:
			style = style.Bold()
		case v == 2:
			style = style.Dim()
		case v == 3:
			style = style.Italic()
		case v == 4:
			style = style.Underline()
		case v == 5:
			style = style.Blink()
		case v == 7:
			style = style.Reverse()
		case v == 9:
			style = style.Strikethrough()
		case v == 39:
			style = style.Foreground(DefaultColor())
		case v == 49:
			style = style.Background(DefaultColor())
		case v >= 30 && v <= 37:
			style = style.Foreground(NamedColor(uint8(v-30), false))
		case v >= 90 && v <= 97:
			style = style.Foreground(NamedColor(uint8(v-90), true))
		case v >= 40 && v <= 47:
			style = style.Background(NamedColor(uint8(v-40), false))
		case v >= 100 && v <= 107:
			style = style.Background(NamedColor(uint8(v-100), true))
		case v == 38 || v == 48:
			color, consumed, ok := decodeExtendedColor(values[i+1:])
			if !ok {
				return
			}
			if v == 38 {
				style = style.Foreground(color)
			} else {
				style = style.Background(color)
			}
			i += consumed
		}
	}
	f.style = style
}

// decodeExtendedColor decodes the parameters following SGR 38/48:
// "5;n" for a palette color or "2;r;g;b" for a direct color.
func decodeExtendedColor(values []int) (TerminalColor, int, bool) {
	if len(values) >= 2 && values[0] == 5 && values[1] <= 255 {
		return PaletteColor(uint8(values[1])), 2, true
	}
	if len(values) >= 4 && values[0] == 2 &&
		values[1] <= 255 && values[2] <= 255 && values[3] <= 255 {
		return RGBColor(uint8(values[1]), uint8(values[2]), uint8(values[3])), 4, true
	}
	return TerminalColor{}, 0, false
}

// writeRune places one printable rune at the cursor, wrapping and
// clipping per the frame's layout rules.
func (f *TerminalFrame) writeRune(r rune) {
	w := f.measurer.CharWidth(r)
	if w <= 0 {
		return // zero-width scalars are discarded
	}
	if w > 2 {
		w = 2
	}
	if f.cursor.Row >= f.size.Rows {
		return // clipped below the last row
	}
	if f.cursor.Col >= f.size.Cols {
		f.wrap()
		if f.cursor.Row >= f.size.Rows {
			return
		}
	}
	if w == 2 && f.cursor.Col+1 >= f.size.Cols {
		// A wide character that does not fit pads the trailing cell
		// with a space in the current style, then wraps.
		f.setCell(f.cursor, TerminalCell{Rune: ' ', Style: f.style, Width: 1})
		f.wrap()
		if f.cursor.Row >= f.size.Rows {
			return
		}
	}
	f.setCell(f.cursor, TerminalCell{Rune: r, Style: f.style, Width: uint8(w)})
	f.cursor.Col += w
}

func (f *TerminalFrame) wrap() {
	f.cursor.Col = 0
	f.cursor.Row++
}

// Equal reports whether both frames have the same size and identical
// cells.
func (f *TerminalFrame) Equal(other *TerminalFrame) bool {
	if f.size != other.size {
		return false
	}
	for i := range f.cells {
		if !f.cells[i].Equal(other.cells[i]) {
			return false
		}
	}
	return true
}

// String renders the frame's text content for debugging. Continuation
// cells are skipped; styles are not rendered.
func (f *TerminalFrame) String() string {
	var sb strings.Builder
	for row := 0; row < f.size.Rows; row++ {
		for col := 0; col < f.size.Cols; col++ {
			cell := f.cells[row*f.size.Cols+col]
			if cell.IsContinuation() {
				continue
			}
			if cell.Rune == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(cell.Rune)
			}
		}
		if row < f.size.Rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
