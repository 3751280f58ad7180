package tuinix

import "strconv"

// ColorType distinguishes between terminal color representations.
type ColorType uint8

const (
	// ColorTypeDefault represents the terminal's configured default color.
	ColorTypeDefault ColorType = iota
	// ColorTypeNamed represents one of the sixteen ANSI colors
	// (index 0-7, optionally bright).
	ColorTypeNamed
	// ColorTypePalette represents a 256-color palette entry.
	ColorTypePalette
	// ColorTypeRGB represents a direct 24-bit color.
	ColorTypeRGB
)

// TerminalColor is a terminal color value. The zero value is the
// terminal's default color. Equality is structural; use Equal.
type TerminalColor struct {
	typ    ColorType
	bright bool
	// For Named and Palette: index holds the palette index.
	// For RGB: r, g, b hold the color components.
	index   uint8
	r, g, b uint8
}

// DefaultColor returns the terminal's configured default color.
func DefaultColor() TerminalColor {
	return TerminalColor{}
}

// NamedColor returns one of the sixteen ANSI colors. The index selects
// among the eight base colors (0-7); bright selects the high-intensity
// variant. Indexes above 7 are masked to the low three bits.
func NamedColor(index uint8, bright bool) TerminalColor {
	return TerminalColor{typ: ColorTypeNamed, index: index & 7, bright: bright}
}

// PaletteColor returns an entry of the 256-color palette.
func PaletteColor(index uint8) TerminalColor {
	return TerminalColor{typ: ColorTypePalette, index: index}
}

// RGBColor returns a direct 24-bit color.
func RGBColor(r, g, b uint8) TerminalColor {
	return TerminalColor{typ: ColorTypeRGB, r: r, g: g, b: b}
}

// Type returns the ColorType of this color.
func (c TerminalColor) Type() ColorType {
	return c.typ
}

// IsDefault reports whether this is the terminal's default color.
func (c TerminalColor) IsDefault() bool {
	return c.typ == ColorTypeDefault
}

// Index returns the palette index of a Named or Palette color.
// Panics for other color types.
func (c TerminalColor) Index() uint8 {
	if c.typ != ColorTypeNamed && c.typ != ColorTypePalette {
		panic("TerminalColor.Index() called on non-indexed color")
	}
	return c.index
}

// Bright reports whether a Named color is the high-intensity variant.
func (c TerminalColor) Bright() bool {
	return c.typ == ColorTypeNamed && c.bright
}

// RGB returns the red, green, and blue components.
// Panics if the color is not an RGB color.
func (c TerminalColor) RGB() (r, g, b uint8) {
	if c.typ != ColorTypeRGB {
		panic("TerminalColor.RGB() called on non-RGB color")
	}
	return c.r, c.g, c.b
}

// Equal reports whether both colors are identical.
func (c TerminalColor) Equal(other TerminalColor) bool {
	if c.typ != other.typ {
		return false
	}
	switch c.typ {
	case ColorTypeDefault:
		return true
	case ColorTypeNamed:
		return c.index == other.index && c.bright == other.bright
	case ColorTypePalette:
		return c.index == other.index
	case ColorTypeRGB:
		return c.r == other.r && c.g == other.g && c.b == other.b
	}
	return false
}

// appendSGRParams appends the SGR parameter bytes selecting this color to
// dst. bg selects the background parameter space. The caller supplies the
// surrounding CSI framing and separators.
func (c TerminalColor) appendSGRParams(dst []byte, bg bool) []byte {
	switch c.typ {
	case ColorTypeDefault:
		if bg {
			return append(dst, '4', '9')
		}
		return append(dst, '3', '9')
	case ColorTypeNamed:
		base := 30
		if c.bright {
			base = 90
		}
		if bg {
			base += 10
		}
		return strconv.AppendInt(dst, int64(base+int(c.index)), 10)
	case ColorTypePalette:
		if bg {
			dst = append(dst, '4', '8', ';', '5', ';')
		} else {
			dst = append(dst, '3', '8', ';', '5', ';')
		}
		return strconv.AppendInt(dst, int64(c.index), 10)
	case ColorTypeRGB:
		if bg {
			dst = append(dst, '4', '8', ';', '2', ';')
		} else {
			dst = append(dst, '3', '8', ';', '2', ';')
		}
		dst = strconv.AppendInt(dst, int64(c.r), 10)
		dst = append(dst, ';')
		dst = strconv.AppendInt(dst, int64(c.g), 10)
		dst = append(dst, ';')
		return strconv.AppendInt(dst, int64(c.b), 10)
	}
	return dst
}

// The sixteen ANSI colors.
var (
	ColorBlack   = NamedColor(0, false)
	ColorRed     = NamedColor(1, false)
	ColorGreen   = NamedColor(2, false)
	ColorYellow  = NamedColor(3, false)
	ColorBlue    = NamedColor(4, false)
	ColorMagenta = NamedColor(5, false)
	ColorCyan    = NamedColor(6, false)
	ColorWhite   = NamedColor(7, false)

	ColorBrightBlack   = NamedColor(0, true)
	ColorBrightRed     = NamedColor(1, true)
	ColorBrightGreen   = NamedColor(2, true)
	ColorBrightYellow  = NamedColor(3, true)
	ColorBrightBlue    = NamedColor(4, true)
	ColorBrightMagenta = NamedColor(5, true)
	ColorBrightCyan    = NamedColor(6, true)
	ColorBrightWhite   = NamedColor(7, true)
)
