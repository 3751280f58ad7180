//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package tuinix

import "golang.org/x/sys/unix"

// ioctl requests for reading and writing termios on BSD-derived systems.
// The write request is the TCSAFLUSH variant: pending output is drained
// and unread input discarded before the new attributes apply.
const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETAF
)
