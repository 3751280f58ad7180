package tuinix

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// PollEvent waits for the next terminal event with a timeout: a decoded
// keystroke, a terminal resize, or readiness of one of the
// caller-supplied descriptors (readable polls for input, writable for
// output capacity).
//
// A negative timeout blocks indefinitely; zero performs a non-blocking
// probe. PollEvent returns (nil, nil) when the timeout expires without
// an event.
//
// When several descriptors are ready in the same wake-up, delivery order
// is: the resize notification first, then terminal input, then the user
// descriptors in the order supplied. At most one event is returned per
// call; remaining readiness stays pending for the next call.
func (t *Terminal) PollEvent(readable, writable []int, timeout time.Duration) (TerminalEvent, error) {
	// Bytes buffered from an earlier read may already decode completely.
	if input, ok := t.reader.next(false); ok {
		return InputEvent{Input: input}, nil
	}

	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}

	pfds := make([]unix.PollFd, 0, 2+len(readable)+len(writable))
	for {
		now := time.Now()

		// A buffered lone ESC resolves as the Escape key once its
		// coalescing window elapses.
		if t.reader.escExpired(now) {
			if input, ok := t.reader.next(true); ok {
				return InputEvent{Input: input}, nil
			}
		}

		waitMs := -1
		if timeout >= 0 {
			remaining := deadline.Sub(now)
			if remaining < 0 {
				remaining = 0
			}
			waitMs = ceilMilliseconds(remaining)
		}
		if esc := t.reader.escRemaining(now); esc > 0 {
			if ms := ceilMilliseconds(esc); waitMs < 0 || ms < waitMs {
				waitMs = ms
			}
		}

		pfds = pfds[:0]
		pfds = append(pfds,
			unix.PollFd{Fd: int32(t.SignalFd()), Events: unix.POLLIN},
			unix.PollFd{Fd: int32(t.InputFd()), Events: unix.POLLIN},
		)
		for _, fd := range readable {
			pfds = append(pfds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
		}
		for _, fd := range writable {
			pfds = append(pfds, unix.PollFd{Fd: int32(fd), Events: unix.POLLOUT})
		}

		n, err := unix.Poll(pfds, waitMs)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return nil, fmt.Errorf("poll terminal events: %w", err)
		}

		if n == 0 {
			now = time.Now()
			if t.reader.escExpired(now) {
				if input, ok := t.reader.next(true); ok {
					return InputEvent{Input: input}, nil
				}
			}
			if timeout >= 0 && !now.Before(deadline) {
				return nil, nil
			}
			continue
		}

		// Resize first: coalesced signals collapse into one event with
		// the freshly queried size.
		if pfds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0 {
			size, err := t.consumeResize()
			if err != nil {
				return nil, err
			}
			return ResizeEvent{Size: size}, nil
		}

		if pfds[1].Revents&(unix.POLLIN|unix.POLLHUP) != 0 {
			if _, err := t.reader.fill(); err != nil {
				return nil, err
			}
			if input, ok := t.reader.next(false); ok {
				return InputEvent{Input: input}, nil
			}
			// An incomplete sequence stays buffered; wait for the rest.
		}

		for i, fd := range readable {
			if pfds[2+i].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
				continue
			}
			event := FdReadyEvent{Fd: fd, Readable: true}
			for j, wfd := range writable {
				if wfd == fd && pfds[2+len(readable)+j].Revents&unix.POLLOUT != 0 {
					event.Writable = true
				}
			}
			return event, nil
		}
		for i, fd := range writable {
			if pfds[2+len(readable)+i].Revents&(unix.POLLOUT|unix.POLLERR) != 0 {
				return FdReadyEvent{Fd: fd, Writable: true}, nil
			}
		}
	}
}

// PollInput is the convenience form of PollEvent without user
// descriptors: it delivers only keystrokes and resizes.
func (t *Terminal) PollInput(timeout time.Duration) (TerminalEvent, error) {
	return t.PollEvent(nil, nil, timeout)
}

// ReadInput decodes the next keystroke from the terminal input
// descriptor. It reads whatever bytes are available (the terminal is
// configured with polling reads, so this does not wait for input beyond
// the short escape-coalescing window) and reports ok=false when no
// complete key event could be decoded yet; undecoded bytes remain
// buffered for the next call.
//
// With the descriptor switched to non-blocking mode via SetNonblocking,
// a drained descriptor surfaces an error satisfying IsWouldBlock.
func (t *Terminal) ReadInput() (KeyInput, bool, error) {
	if input, ok := t.reader.next(false); ok {
		return input, true, nil
	}
	if _, err := t.reader.fill(); err != nil {
		return KeyInput{}, false, err
	}
	if input, ok := t.reader.next(false); ok {
		return input, true, nil
	}

	if t.reader.escPending() {
		// Give a trailing escape its coalescing window to grow into a
		// full sequence before reporting the Escape key.
		pfd := []unix.PollFd{{Fd: int32(t.InputFd()), Events: unix.POLLIN}}
		if n, err := unix.Poll(pfd, ceilMilliseconds(escCoalesceWindow)); err == nil && n > 0 {
			if _, err := t.reader.fill(); err != nil {
				return KeyInput{}, false, err
			}
			if input, ok := t.reader.next(false); ok {
				return input, true, nil
			}
		}
		if input, ok := t.reader.next(true); ok {
			return input, true, nil
		}
	}
	return KeyInput{}, false, nil
}

// WaitForResize blocks until a window-change notification arrives, then
// re-queries and returns the terminal size. Pending notifications are
// drained so coalesced signals produce a single result.
//
// With the signal descriptor switched to non-blocking mode via
// SetNonblocking, an empty pipe surfaces an error satisfying
// IsWouldBlock.
func (t *Terminal) WaitForResize() (TerminalSize, error) {
	var drain [128]byte
	for {
		_, err := unix.Read(t.pipeR, drain[:])
		if err == nil {
			break
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return TerminalSize{}, fmt.Errorf("read resize notification: %w", err)
	}
	if err := t.updateSize(); err != nil {
		return TerminalSize{}, err
	}
	return t.size, nil
}

// consumeResize drains the ready self-pipe and refreshes the cached
// size. Called from PollEvent once the pipe reported readable.
func (t *Terminal) consumeResize() (TerminalSize, error) {
	var drain [128]byte
	for {
		_, err := unix.Read(t.pipeR, drain[:])
		if err == nil || errors.Is(err, unix.EAGAIN) {
			break
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return TerminalSize{}, fmt.Errorf("read resize notification: %w", err)
	}
	if err := t.updateSize(); err != nil {
		return TerminalSize{}, err
	}
	return t.size, nil
}

// ceilMilliseconds converts a duration to whole milliseconds, rounding
// up so short positive waits never degrade to busy polling.
func ceilMilliseconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	ms := int((d + time.Millisecond - 1) / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return ms
}
