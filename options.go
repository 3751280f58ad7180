package tuinix

import "github.com/rs/zerolog"

// TerminalOption configures a Terminal during construction.
type TerminalOption func(*Terminal)

// WithLogger wires a structured logger into the terminal. The library
// logs lifecycle steps at debug level and best-effort restoration
// failures at error level; it never writes to the standard streams on
// its own. The default is a no-op logger.
func WithLogger(logger zerolog.Logger) TerminalOption {
	return func(t *Terminal) {
		t.logger = logger
	}
}

// WithCharWidthMeasurer sets the width measurer used by frames created
// through Terminal.NewFrame. The default measures East-Asian display
// width.
func WithCharWidthMeasurer(m CharWidthMeasurer) TerminalOption {
	return func(t *Terminal) {
		if m != nil {
			t.measurer = m
		}
	}
}
