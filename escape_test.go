package tuinix

import "testing"

func TestEscBuilder_Sequences(t *testing.T) {
	tests := []struct {
		name  string
		build func(*escBuilder)
		want  string
	}{
		{"move to origin", func(e *escBuilder) { e.MoveTo(RowCol(0, 0)) }, "\x1b[1;1H"},
		{"move", func(e *escBuilder) { e.MoveTo(RowCol(4, 9)) }, "\x1b[5;10H"},
		{"clear screen", (*escBuilder).ClearScreen, "\x1b[2J"},
		{"hide cursor", (*escBuilder).HideCursor, "\x1b[?25l"},
		{"show cursor", (*escBuilder).ShowCursor, "\x1b[?25h"},
		{"enter alt screen", (*escBuilder).EnterAltScreen, "\x1b[?1049h"},
		{"exit alt screen", (*escBuilder).ExitAltScreen, "\x1b[?1049l"},
		{"disable wrap", (*escBuilder).DisableWrap, "\x1b[?7l"},
		{"enable wrap", (*escBuilder).EnableWrap, "\x1b[?7h"},
		{"reset style", (*escBuilder).ResetStyle, "\x1b[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEscBuilder(32)
			tt.build(e)
			if got := string(e.Bytes()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// SetStyle emits the absolute form: a leading reset parameter followed by
// everything the style carries, so the result never depends on what the
// terminal held before.
func TestEscBuilder_SetStyleAbsolute(t *testing.T) {
	tests := []struct {
		name  string
		style TerminalStyle
		want  string
	}{
		{"default", NewStyle(), "\x1b[0m"},
		{"reset", StyleReset, "\x1b[0m"},
		{"bold", NewStyle().Bold(), "\x1b[0;1m"},
		{
			"colored",
			NewStyle().Underline().Foreground(ColorRed).Background(PaletteColor(17)),
			"\x1b[0;4;31;48;5;17m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEscBuilder(32)
			e.SetStyle(tt.style)
			if got := string(e.Bytes()); got != tt.want {
				t.Errorf("SetStyle(%v) = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestEscBuilder_Reset(t *testing.T) {
	e := newEscBuilder(16)
	e.ClearScreen()
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", e.Len())
	}
}

func TestEscBuilder_WriteRune(t *testing.T) {
	e := newEscBuilder(16)
	e.WriteRune('世')
	if got := string(e.Bytes()); got != "世" {
		t.Errorf("WriteRune = %q, want %q", got, "世")
	}
}
