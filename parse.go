package tuinix

import "unicode/utf8"

// keyParser decodes the raw terminal byte stream into KeyInput values.
// It is a small deterministic state machine over a byte buffer: every
// call consumes complete sequences from the front and leaves incomplete
// ones buffered, so the parser never blocks.
type keyParser struct {
	buf []byte
}

// feed appends raw bytes to the parse buffer.
func (p *keyParser) feed(data []byte) {
	p.buf = append(p.buf, data...)
}

// pending reports whether undecoded bytes remain buffered.
func (p *keyParser) pending() bool {
	return len(p.buf) > 0
}

// pendingEscape reports whether the buffer starts with an escape byte
// that has not yet resolved into a complete sequence.
func (p *keyParser) pendingEscape() bool {
	return len(p.buf) > 0 && p.buf[0] == 0x1b
}

// next returns the first complete key event from the buffer. flushEscape
// forces a leading lone ESC to resolve as the Escape key; it is set once
// the coalescing window for a follow-up byte has elapsed.
func (p *keyParser) next(flushEscape bool) (KeyInput, bool) {
	for len(p.buf) > 0 {
		input, consumed, ok := parseKey(p.buf, flushEscape)
		if consumed == 0 {
			return KeyInput{}, false // incomplete; keep buffered
		}
		p.buf = append(p.buf[:0], p.buf[consumed:]...)
		if ok {
			return input, true
		}
		// Unrecognized bytes are discarded silently.
	}
	return KeyInput{}, false
}

// parseKey decodes the first key event in data. It returns the event, the
// number of bytes consumed, and whether the consumed bytes produced an
// event. consumed == 0 means the data is an incomplete sequence.
func parseKey(data []byte, flushEscape bool) (KeyInput, int, bool) {
	if len(data) == 0 {
		return KeyInput{}, 0, false
	}

	switch b := data[0]; {
	case b == 0x7f || b == 0x08:
		return KeyInput{Code: KeyBackspace}, 1, true
	case b == '\t':
		return KeyInput{Code: KeyTab}, 1, true
	case b == '\r' || b == '\n':
		return KeyInput{Code: KeyEnter}, 1, true
	case b == 0x1b:
		return parseEscape(data, flushEscape)
	case b < 0x20:
		if b >= 0x01 && b <= 0x1a {
			return KeyInput{Code: KeyChar, Char: rune('a' + b - 0x01), Ctrl: true}, 1, true
		}
		return KeyInput{}, 1, false // other control bytes are dropped
	}

	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size == 1 {
		if !utf8.FullRune(data) && len(data) < utf8.UTFMax {
			return KeyInput{}, 0, false // wait for the rest of the rune
		}
		return KeyInput{}, 1, false // invalid byte, dropped
	}
	return KeyInput{Code: KeyChar, Char: r}, size, true
}

// parseEscape decodes a sequence starting with ESC.
func parseEscape(data []byte, flushEscape bool) (KeyInput, int, bool) {
	if len(data) == 1 {
		if flushEscape {
			return KeyInput{Code: KeyEscape}, 1, true
		}
		return KeyInput{}, 0, false
	}

	switch b := data[1]; {
	case b == '[':
		return parseCSI(data)
	case b == 'O':
		return parseSS3(data)
	case b == 0x1b:
		// ESC ESC: report the first escape, leave the second buffered.
		return KeyInput{Code: KeyEscape}, 1, true
	case b == 0x7f || b == 0x08:
		return KeyInput{Code: KeyBackspace, Alt: true}, 2, true
	case b == '\t':
		return KeyInput{Code: KeyTab, Alt: true}, 2, true
	case b == '\r' || b == '\n':
		return KeyInput{Code: KeyEnter, Alt: true}, 2, true
	case b < 0x20:
		if b >= 0x01 && b <= 0x1a {
			return KeyInput{Code: KeyChar, Char: rune('a' + b - 0x01), Ctrl: true, Alt: true}, 2, true
		}
		return KeyInput{}, 2, false
	case b < 0x80:
		return KeyInput{Code: KeyChar, Char: rune(b), Alt: true}, 2, true
	}

	// Alt + multibyte character.
	r, size := utf8.DecodeRune(data[1:])
	if r == utf8.RuneError && size == 1 {
		if !utf8.FullRune(data[1:]) && len(data[1:]) < utf8.UTFMax {
			return KeyInput{}, 0, false
		}
		return KeyInput{}, 2, false
	}
	return KeyInput{Code: KeyChar, Char: r, Alt: true}, 1 + size, true
}

// parseSS3 decodes an "ESC O" function key sequence.
func parseSS3(data []byte) (KeyInput, int, bool) {
	if len(data) < 3 {
		return KeyInput{}, 0, false
	}
	var code KeyCode
	switch data[2] {
	case 'P':
		code = KeyF1
	case 'Q':
		code = KeyF2
	case 'R':
		code = KeyF3
	case 'S':
		code = KeyF4
	case 'A':
		code = KeyUp
	case 'B':
		code = KeyDown
	case 'C':
		code = KeyRight
	case 'D':
		code = KeyLeft
	case 'H':
		code = KeyHome
	case 'F':
		code = KeyEnd
	default:
		return KeyInput{}, 3, false
	}
	return KeyInput{Code: code}, 3, true
}

// parseCSI decodes an "ESC [" control sequence. Parameters are numbers
// separated by semicolons; the sequence ends with a final byte in the
// 0x40-0x7e range.
func parseCSI(data []byte) (KeyInput, int, bool) {
	var params []int
	current := 0
	hasDigits := false
	intermediate := false

	i := 2
	for ; i < len(data); i++ {
		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			current = current*10 + int(b-'0')
			hasDigits = true
		case b == ';':
			params = append(params, current)
			current = 0
			hasDigits = false
		case b >= 0x40 && b <= 0x7e:
			if intermediate {
				return KeyInput{}, i + 1, false
			}
			if hasDigits {
				params = append(params, current)
			}
			code, ctrl, alt, shift, ok := decodeCSI(params, b)
			if !ok {
				return KeyInput{}, i + 1, false
			}
			return KeyInput{Code: code, Ctrl: ctrl, Alt: alt, Shift: shift}, i + 1, true
		case b >= 0x20 && b <= 0x3f:
			// Intermediate and private parameter bytes (e.g. mouse
			// reports) are scanned through and the sequence dropped.
			intermediate = true
			hasDigits = false
			current = -1
		default:
			return KeyInput{}, i + 1, false
		}
	}
	return KeyInput{}, 0, false // incomplete
}

// decodeCSI maps a complete CSI sequence to a key. The second parameter,
// when present, carries the xterm modifier encoding.
func decodeCSI(params []int, final byte) (code KeyCode, ctrl, alt, shift, ok bool) {
	if len(params) >= 2 {
		ctrl, alt, shift = decodeModifier(params[1])
	}
	for _, p := range params {
		if p < 0 {
			return KeyNone, false, false, false, false
		}
	}

	switch final {
	case 'A':
		return KeyUp, ctrl, alt, shift, true
	case 'B':
		return KeyDown, ctrl, alt, shift, true
	case 'C':
		return KeyRight, ctrl, alt, shift, true
	case 'D':
		return KeyLeft, ctrl, alt, shift, true
	case 'H':
		return KeyHome, ctrl, alt, shift, true
	case 'F':
		return KeyEnd, ctrl, alt, shift, true
	case 'Z':
		return KeyBackTab, ctrl, alt, shift, true
	case 'P':
		return KeyF1, ctrl, alt, shift, true
	case 'Q':
		return KeyF2, ctrl, alt, shift, true
	case 'R':
		return KeyF3, ctrl, alt, shift, true
	case 'S':
		return KeyF4, ctrl, alt, shift, true
	case '~':
		if len(params) == 0 {
			return KeyNone, false, false, false, false
		}
		if code, found := tildeKeys[params[0]]; found {
			return code, ctrl, alt, shift, true
		}
	}
	return KeyNone, false, false, false, false
}

// tildeKeys maps the parameter of "CSI n ~" sequences to keys, per the
// standard xterm layout.
var tildeKeys = map[int]KeyCode{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// decodeModifier decodes the xterm modifier parameter, encoded as
// 1 + (shift ? 1 : 0) + (alt ? 2 : 0) + (ctrl ? 4 : 0).
func decodeModifier(param int) (ctrl, alt, shift bool) {
	if param <= 1 {
		return false, false, false
	}
	flags := param - 1
	return flags&4 != 0, flags&2 != 0, flags&1 != 0
}
