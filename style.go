package tuinix

// Attr represents text attributes as a bitfield for efficient comparison
// and storage.
type Attr uint8

const (
	// AttrNone represents no text attributes.
	AttrNone Attr = 0
	// AttrBold makes text bold/bright.
	AttrBold Attr = 1 << iota
	// AttrDim makes text dimmed/faint.
	AttrDim
	// AttrItalic makes text italic.
	AttrItalic
	// AttrUnderline underlines the text.
	AttrUnderline
	// AttrBlink makes text blink (rarely supported).
	AttrBlink
	// AttrReverse swaps foreground and background colors.
	AttrReverse
	// AttrStrikethrough draws a line through the text.
	AttrStrikethrough
)

// TerminalStyle bundles optional foreground and background colors with
// text attributes. Styles are immutable values; the builder-style setters
// return a new style. The zero value carries nothing and renders as the
// empty string; StyleReset is the distinguished value that disables all
// attributes and restores default colors.
type TerminalStyle struct {
	fg, bg       TerminalColor
	fgSet, bgSet bool
	attrs        Attr
	reset        bool
}

// StyleReset disables all attributes and restores the default colors.
// It renders as "ESC [ 0 m".
var StyleReset = TerminalStyle{reset: true}

// NewStyle returns a style with default colors and no attributes.
func NewStyle() TerminalStyle {
	return TerminalStyle{}
}

// Foreground returns a new style with the given foreground color.
func (s TerminalStyle) Foreground(c TerminalColor) TerminalStyle {
	s.fg = c
	s.fgSet = true
	s.reset = false
	return s
}

// Background returns a new style with the given background color.
func (s TerminalStyle) Background(c TerminalColor) TerminalStyle {
	s.bg = c
	s.bgSet = true
	s.reset = false
	return s
}

// Bold returns a new style with the bold attribute set.
func (s TerminalStyle) Bold() TerminalStyle { return s.withAttr(AttrBold) }

// Dim returns a new style with the dim attribute set.
func (s TerminalStyle) Dim() TerminalStyle { return s.withAttr(AttrDim) }

// Italic returns a new style with the italic attribute set.
func (s TerminalStyle) Italic() TerminalStyle { return s.withAttr(AttrItalic) }

// Underline returns a new style with the underline attribute set.
func (s TerminalStyle) Underline() TerminalStyle { return s.withAttr(AttrUnderline) }

// Blink returns a new style with the blink attribute set.
func (s TerminalStyle) Blink() TerminalStyle { return s.withAttr(AttrBlink) }

// Reverse returns a new style with the reverse attribute set.
func (s TerminalStyle) Reverse() TerminalStyle { return s.withAttr(AttrReverse) }

// Strikethrough returns a new style with the strikethrough attribute set.
func (s TerminalStyle) Strikethrough() TerminalStyle { return s.withAttr(AttrStrikethrough) }

func (s TerminalStyle) withAttr(a Attr) TerminalStyle {
	s.attrs |= a
	s.reset = false
	return s
}

// HasAttr reports whether the style has the given attribute(s) set.
func (s TerminalStyle) HasAttr(a Attr) bool {
	return s.attrs&a == a
}

// ForegroundColor returns the foreground color and whether one is set.
func (s TerminalStyle) ForegroundColor() (TerminalColor, bool) {
	return s.fg, s.fgSet
}

// BackgroundColor returns the background color and whether one is set.
func (s TerminalStyle) BackgroundColor() (TerminalColor, bool) {
	return s.bg, s.bgSet
}

// IsReset reports whether this is the distinguished reset value.
func (s TerminalStyle) IsReset() bool {
	return s.reset
}

// IsZero reports whether the style carries no attributes, no colors, and
// is not the reset value.
func (s TerminalStyle) IsZero() bool {
	return !s.reset && s.attrs == AttrNone && !s.fgSet && !s.bgSet
}

// Equal reports whether both styles are identical.
func (s TerminalStyle) Equal(other TerminalStyle) bool {
	if s.reset != other.reset || s.attrs != other.attrs {
		return false
	}
	if s.fgSet != other.fgSet || s.bgSet != other.bgSet {
		return false
	}
	if s.fgSet && !s.fg.Equal(other.fg) {
		return false
	}
	if s.bgSet && !s.bg.Equal(other.bg) {
		return false
	}
	return true
}

// attrSGRCodes maps each attribute bit to its SGR parameter, in emission
// order.
var attrSGRCodes = []struct {
	attr Attr
	code byte
}{
	{AttrBold, '1'},
	{AttrDim, '2'},
	{AttrItalic, '3'},
	{AttrUnderline, '4'},
	{AttrBlink, '5'},
	{AttrReverse, '7'},
	{AttrStrikethrough, '9'},
}

// appendSGRParams appends the style's SGR parameters to dst, separated by
// semicolons. The parameters select exactly what the style carries; the
// caller supplies the CSI framing.
func (s TerminalStyle) appendSGRParams(dst []byte) []byte {
	first := true
	sep := func(dst []byte) []byte {
		if first {
			first = false
			return dst
		}
		return append(dst, ';')
	}
	for _, ac := range attrSGRCodes {
		if s.HasAttr(ac.attr) {
			dst = sep(dst)
			dst = append(dst, ac.code)
		}
	}
	if s.fgSet {
		dst = sep(dst)
		dst = s.fg.appendSGRParams(dst, false)
	}
	if s.bgSet {
		dst = sep(dst)
		dst = s.bg.appendSGRParams(dst, true)
	}
	return dst
}

// String renders the style as a Select-Graphic-Rendition control
// sequence. The sequence sets exactly the attributes and colors the style
// carries; it is not a diff against any previous style. The reset value
// renders as "\x1b[0m" and a style carrying nothing renders as the empty
// string, so styles can be embedded directly into a frame's text stream
// with the fmt verbs.
func (s TerminalStyle) String() string {
	if s.reset {
		return "\x1b[0m"
	}
	if s.IsZero() {
		return ""
	}
	buf := make([]byte, 0, 24)
	buf = append(buf, '\x1b', '[')
	buf = s.appendSGRParams(buf)
	buf = append(buf, 'm')
	return string(buf)
}

// Apply wraps text with this style's control sequence and a trailing
// reset.
func (s TerminalStyle) Apply(text string) string {
	return s.String() + text + StyleReset.String()
}
