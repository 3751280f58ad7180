//go:build linux

package tuinix

import "golang.org/x/sys/unix"

// ioctl requests for reading and writing termios on Linux. The write
// request is the TCSAFLUSH variant: pending output is drained and unread
// input discarded before the new attributes apply.
const (
	ioctlReadTermios  = unix.TCGETS
	ioctlWriteTermios = unix.TCSETSF
)
