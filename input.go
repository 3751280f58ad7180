package tuinix

import "strings"

// KeyCode identifies a key reported by the terminal.
type KeyCode uint16

const (
	// KeyNone represents no key (zero value).
	KeyNone KeyCode = iota

	// KeyChar represents a printable character. Check KeyInput.Char for
	// the character.
	KeyChar

	// Special keys
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyDelete
	KeyInsert
	KeyBackTab

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyCodeNames = map[KeyCode]string{
	KeyNone:      "None",
	KeyChar:      "Char",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyBackTab:   "BackTab",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// String returns a human-readable representation of the key code.
func (k KeyCode) String() string {
	if name, ok := keyCodeNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KeyInput is a single decoded keystroke. Shift is reported only for
// named keys where the terminal reports it; shifted letters arrive as
// their shifted Char.
type KeyInput struct {
	Code  KeyCode
	Char  rune // set when Code is KeyChar
	Ctrl  bool
	Alt   bool
	Shift bool
}

// String returns a human-readable representation such as "Ctrl+Up" or
// "Alt+x".
func (k KeyInput) String() string {
	var parts []string
	if k.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if k.Alt {
		parts = append(parts, "Alt")
	}
	if k.Shift {
		parts = append(parts, "Shift")
	}
	if k.Code == KeyChar {
		parts = append(parts, string(k.Char))
	} else {
		parts = append(parts, k.Code.String())
	}
	return strings.Join(parts, "+")
}

// TerminalEvent is an event produced by Terminal.PollEvent: a keystroke,
// a terminal resize, or readiness of a caller-supplied file descriptor.
type TerminalEvent interface {
	isTerminalEvent()
}

// InputEvent reports a decoded keystroke.
type InputEvent struct {
	Input KeyInput
}

// ResizeEvent reports the terminal's new size after a window change.
type ResizeEvent struct {
	Size TerminalSize
}

// FdReadyEvent reports readiness of a caller-supplied file descriptor
// passed to Terminal.PollEvent.
type FdReadyEvent struct {
	Fd       int
	Readable bool
	Writable bool
}

func (InputEvent) isTerminalEvent()   {}
func (ResizeEvent) isTerminalEvent()  {}
func (FdReadyEvent) isTerminalEvent() {}
