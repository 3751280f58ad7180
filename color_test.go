package tuinix

import "testing"

func TestColor_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b TerminalColor
		want bool
	}{
		{"default equals default", DefaultColor(), DefaultColor(), true},
		{"zero value is default", TerminalColor{}, DefaultColor(), true},
		{"named equals named", NamedColor(3, false), ColorYellow, true},
		{"bright differs from normal", NamedColor(3, true), NamedColor(3, false), false},
		{"named differs from palette", NamedColor(3, false), PaletteColor(3), false},
		{"palette equals palette", PaletteColor(100), PaletteColor(100), true},
		{"palette differs", PaletteColor(100), PaletteColor(101), false},
		{"rgb equals rgb", RGBColor(9, 8, 7), RGBColor(9, 8, 7), true},
		{"rgb differs", RGBColor(9, 8, 7), RGBColor(9, 8, 8), false},
		{"default differs from rgb", DefaultColor(), RGBColor(0, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColor_Accessors(t *testing.T) {
	if !DefaultColor().IsDefault() {
		t.Error("DefaultColor().IsDefault() = false")
	}
	if c := NamedColor(5, true); c.Index() != 5 || !c.Bright() {
		t.Errorf("NamedColor(5, true) accessors = (%d, %v)", c.Index(), c.Bright())
	}
	if c := PaletteColor(200); c.Index() != 200 || c.Bright() {
		t.Errorf("PaletteColor(200) accessors = (%d, %v)", c.Index(), c.Bright())
	}
	r, g, b := RGBColor(1, 2, 3).RGB()
	if r != 1 || g != 2 || b != 3 {
		t.Errorf("RGBColor(1,2,3).RGB() = (%d, %d, %d)", r, g, b)
	}
}

func TestColor_NamedIndexMasked(t *testing.T) {
	// Named colors are the sixteen ANSI colors only; indexes wrap into
	// the low three bits.
	if c := NamedColor(9, false); c.Index() != 1 {
		t.Errorf("NamedColor(9, false).Index() = %d, want 1", c.Index())
	}
}

func TestColor_IndexPanicsOnRGB(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Index() on an RGB color did not panic")
		}
	}()
	RGBColor(1, 2, 3).Index()
}

func TestColor_RGBPanicsOnNamed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RGB() on a named color did not panic")
		}
	}()
	ColorRed.RGB()
}
