package tuinix

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// escCoalesceWindow is how long a lone ESC byte may wait for a follow-up
// before being reported as the Escape key. Terminals deliver the bytes of
// an escape sequence essentially back-to-back, so a short window is
// enough to tell a typed Escape from the start of a sequence.
const escCoalesceWindow = 5 * time.Millisecond

// inputReader pulls raw bytes from the terminal input descriptor and
// feeds them through the key parser. Unconsumed bytes stay buffered
// between calls.
type inputReader struct {
	fd     int
	parser keyParser
	tmp    [256]byte

	// escAt records when a still-unresolved leading ESC was first seen,
	// anchoring the coalescing window.
	escAt time.Time
}

func newInputReader(fd int) *inputReader {
	return &inputReader{fd: fd}
}

// fill performs one read from the descriptor and feeds the parser.
// It returns the number of bytes read; zero with a nil error means no
// data was available (the terminal is configured with VMIN=0).
func (r *inputReader) fill() (int, error) {
	n, err := unix.Read(r.fd, r.tmp[:])
	if err != nil {
		return 0, fmt.Errorf("read terminal input: %w", err)
	}
	if n > 0 {
		r.parser.feed(r.tmp[:n])
		r.touchEscape()
	}
	return n, nil
}

// next returns the next complete key event, if any.
func (r *inputReader) next(flushEscape bool) (KeyInput, bool) {
	input, ok := r.parser.next(flushEscape)
	r.touchEscape()
	return input, ok
}

// buffered reports whether a complete event may already be decodable
// from buffered bytes.
func (r *inputReader) buffered() bool {
	return r.parser.pending()
}

// escPending reports whether the buffer is blocked on a lone escape
// prefix.
func (r *inputReader) escPending() bool {
	return r.parser.pendingEscape()
}

// escExpired reports whether the coalescing window for a pending escape
// has elapsed.
func (r *inputReader) escExpired(now time.Time) bool {
	return r.escPending() && !r.escAt.IsZero() && now.Sub(r.escAt) >= escCoalesceWindow
}

// escRemaining returns how long the pending escape may still wait for a
// follow-up byte.
func (r *inputReader) escRemaining(now time.Time) time.Duration {
	if !r.escPending() || r.escAt.IsZero() {
		return 0
	}
	remaining := escCoalesceWindow - now.Sub(r.escAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// touchEscape maintains the escape-window anchor across buffer changes.
func (r *inputReader) touchEscape() {
	if r.parser.pendingEscape() {
		if r.escAt.IsZero() {
			r.escAt = time.Now()
		}
	} else {
		r.escAt = time.Time{}
	}
}
