package tuinix

import (
	"fmt"
	"testing"
	"unicode/utf8"
)

// vtScreen interprets the renderer's output the way a VT100/xterm
// terminal would, so tests can assert visual equivalence rather than
// byte-exact output.
type vtScreen struct {
	size  TerminalSize
	cells []TerminalCell
	pos   TerminalPosition

	// styleFrame reuses the frame's SGR decoding for the pen style.
	styleFrame *TerminalFrame
}

func newVTScreen(size TerminalSize) *vtScreen {
	s := &vtScreen{
		size:       size,
		cells:      make([]TerminalCell, size.Rows*size.Cols),
		styleFrame: NewTerminalFrame(TerminalSize{}),
	}
	s.clear()
	return s
}

func (s *vtScreen) clear() {
	blank := blankCell()
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *vtScreen) apply(t *testing.T, data []byte) {
	t.Helper()
	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			if i+1 >= len(data) || data[i+1] != '[' {
				t.Fatalf("unsupported escape at offset %d in %q", i, data)
			}
			j := i + 2
			for j < len(data) && (data[j] < 0x40 || data[j] > 0x7e) {
				j++
			}
			if j == len(data) {
				t.Fatalf("unterminated control sequence in %q", data)
			}
			params := data[i+2 : j]
			switch data[j] {
			case 'H':
				row, col := 1, 1
				if _, err := fmt.Sscanf(string(params), "%d;%d", &row, &col); err != nil && len(params) > 0 {
					t.Fatalf("bad cursor move %q", params)
				}
				s.pos = RowCol(row-1, col-1)
			case 'J':
				s.clear()
			case 'm':
				s.styleFrame.style = NewStyle()
				s.styleFrame.applySGR(params)
			case 'h', 'l':
				// Mode changes do not affect the grid.
			default:
				t.Fatalf("unsupported control sequence final %q", data[j])
			}
			i = j + 1
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		i += size
		w := DefaultCharWidthMeasurer.CharWidth(r)
		if !s.size.Contains(s.pos) {
			t.Fatalf("glyph %q written outside the screen at %v", r, s.pos)
		}
		style := s.styleFrame.style
		s.cells[s.pos.Row*s.size.Cols+s.pos.Col] = TerminalCell{Rune: r, Style: style, Width: uint8(w)}
		if w == 2 {
			s.cells[s.pos.Row*s.size.Cols+s.pos.Col+1] = TerminalCell{Style: style}
		}
		s.pos.Col += w
	}
}

func (s *vtScreen) equalsFrame(f *TerminalFrame) (TerminalPosition, bool) {
	for row := 0; row < s.size.Rows; row++ {
		for col := 0; col < s.size.Cols; col++ {
			if !s.cells[row*s.size.Cols+col].Equal(f.cells[row*s.size.Cols+col]) {
				return RowCol(row, col), false
			}
		}
	}
	return TerminalPosition{}, true
}

func renderBytes(prev, next *TerminalFrame) []byte {
	esc := newEscBuilder(1024)
	renderDiff(esc, prev, next)
	out := make([]byte, esc.Len())
	copy(out, esc.Bytes())
	return out
}

// Changing a single cell emits exactly one cursor move, one style
// selection, and the new glyph.
func TestRenderDiff_SingleCellChange(t *testing.T) {
	size := RowsCols(24, 80)
	frameA := NewTerminalFrame(size)
	fmt.Fprint(frameA, "Hello")
	frameB := NewTerminalFrame(size)
	fmt.Fprint(frameB, "HellO")

	got := string(renderBytes(frameA, frameB))
	want := "\x1b[1;5H\x1b[0mO"
	if got != want {
		t.Errorf("diff bytes = %q, want %q", got, want)
	}
}

// Drawing the same frame twice writes nothing the second time.
func TestRenderDiff_Idempotent(t *testing.T) {
	size := RowsCols(5, 20)
	frame := NewTerminalFrame(size)
	fmt.Fprintf(frame, "%sstatus:%s ok", NewStyle().Bold(), StyleReset)

	first := renderBytes(NewTerminalFrame(size), frame)
	if len(first) == 0 {
		t.Fatal("first draw emitted nothing")
	}
	second := renderBytes(frame, frame)
	if len(second) != 0 {
		t.Errorf("second draw emitted %q, want nothing", second)
	}
}

// Adjacent cells reuse the pen position: no extra cursor moves between
// consecutive glyphs, and a wide glyph advances the pen past its
// continuation.
func TestRenderDiff_AdjacentCellsSkipMoves(t *testing.T) {
	size := RowsCols(1, 6)
	frame := NewTerminalFrame(size)
	fmt.Fprint(frame, "世x")

	got := string(renderBytes(NewTerminalFrame(size), frame))
	want := "\x1b[1;1H\x1b[0m世x"
	if got != want {
		t.Errorf("diff bytes = %q, want %q", got, want)
	}
}

// A non-default pen style is reset after the last cell so the terminal
// is left in a predictable state.
func TestRenderDiff_TrailingReset(t *testing.T) {
	size := RowsCols(1, 4)
	frame := NewTerminalFrame(size)
	fmt.Fprintf(frame, "%sab", NewStyle().Bold())

	got := string(renderBytes(NewTerminalFrame(size), frame))
	want := "\x1b[1;1H\x1b[0;1mab\x1b[0m"
	if got != want {
		t.Errorf("diff bytes = %q, want %q", got, want)
	}
}

// Styles are emitted only when the pen style changes, and each emission
// is absolute.
func TestRenderDiff_StyleRuns(t *testing.T) {
	size := RowsCols(1, 8)
	frame := NewTerminalFrame(size)
	bold := NewStyle().Bold()
	fmt.Fprintf(frame, "%sab%scd", bold, StyleReset)

	got := string(renderBytes(NewTerminalFrame(size), frame))
	want := "\x1b[1;1H\x1b[0;1mab\x1b[0mcd"
	if got != want {
		t.Errorf("diff bytes = %q, want %q", got, want)
	}
}

// Regardless of the diff path taken, the visible grid always equals the
// frame drawn last.
func TestRenderDiff_ConvergesToLastFrame(t *testing.T) {
	size := RowsCols(6, 14)
	screen := newVTScreen(size)

	frames := []*TerminalFrame{
		func() *TerminalFrame {
			f := NewTerminalFrame(size)
			fmt.Fprintf(f, "%stitle%s\nbody text 世界\n\nfooter", NewStyle().Bold().Foreground(ColorGreen), StyleReset)
			return f
		}(),
		func() *TerminalFrame {
			f := NewTerminalFrame(size)
			fmt.Fprintf(f, "title\n%sbody text%s 界世\nrow\nfooter!", NewStyle().Reverse(), StyleReset)
			return f
		}(),
		func() *TerminalFrame {
			f := NewTerminalFrame(size)
			fmt.Fprint(f, "\n\nonly this")
			return f
		}(),
		NewTerminalFrame(size),
	}

	prev := NewTerminalFrame(size)
	for i, frame := range frames {
		screen.apply(t, renderBytes(prev, frame))
		if pos, ok := screen.equalsFrame(frame); !ok {
			t.Fatalf("after drawing frame %d the screen differs at %v", i, pos)
		}
		prev = frame
	}
}
