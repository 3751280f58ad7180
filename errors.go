package tuinix

import "errors"

// Errors returned by the terminal controller and frame operations.
var (
	// ErrNotATTY is returned by NewTerminal when neither /dev/tty nor the
	// standard streams refer to a terminal device.
	ErrNotATTY = errors.New("tuinix: not a terminal")

	// ErrAlreadyActive is returned by NewTerminal when another Terminal
	// instance is live in this process.
	ErrAlreadyActive = errors.New("tuinix: terminal instance already exists")

	// ErrOutOfBounds is returned by explicit cell placement outside the
	// frame's grid.
	ErrOutOfBounds = errors.New("tuinix: position out of frame bounds")
)
