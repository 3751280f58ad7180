package tuinix

import (
	"errors"

	"golang.org/x/sys/unix"
)

// SetNonblocking puts a file descriptor into non-blocking mode by
// setting O_NONBLOCK. Use this on Terminal.InputFd and Terminal.SignalFd
// when integrating with an external event loop, then call
// Terminal.ReadInput and Terminal.WaitForResize until IsWouldBlock
// reports the descriptor drained.
func SetNonblocking(fd int) error {
	return unix.SetNonblock(fd, true)
}

// IsWouldBlock reports whether err is the "operation would block" error
// from a non-blocking descriptor. Every other error (including nil) is
// reported as false and should be handled by the caller.
func IsWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

// IsInterrupted reports whether err is the "interrupted system call"
// error raised when a signal arrives during a blocking operation.
// Callers driving their own poll loops typically retry on it.
func IsInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}
