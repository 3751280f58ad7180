package tuinix

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// terminalActive is the process-wide controller slot. The signal handler
// and saved termios are inherently process-global, so at most one live
// Terminal may exist; construction acquires the slot and Close releases
// it.
var terminalActive atomic.Bool

// Terminal owns the TTY and the terminal's global state: raw mode, the
// alternate screen buffer, cursor visibility, and the SIGWINCH
// notification pipe. Construction switches the terminal into raw
// alternate-screen mode; Close restores everything in reverse order and
// is idempotent, so `defer term.Close()` also restores the terminal
// during panic unwinding.
//
// A Terminal is single-owner state and must not be used from multiple
// goroutines concurrently. Frames, styles, and events are plain values
// and safe to share.
type Terminal struct {
	in, out *os.File
	ownsTTY bool

	origTermios unix.Termios

	sigCh        chan os.Signal
	sigDone      chan struct{}
	pipeR, pipeW int

	reader *inputReader
	esc    *escBuilder

	size        TerminalSize
	sizeChanged bool
	last        *TerminalFrame

	cursor      *TerminalPosition
	cursorShown bool

	measurer CharWidthMeasurer
	logger   zerolog.Logger
	closed   bool
}

// NewTerminal takes control of the process's terminal. It opens /dev/tty
// (falling back to the standard streams when both are terminals), saves
// the current termios, installs the window-change signal notification,
// switches to the alternate screen with the cursor hidden and line wrap
// disabled, applies raw mode, and queries the initial size.
//
// Construction failures leave no partial state. NewTerminal returns
// ErrAlreadyActive while another Terminal is live and ErrNotATTY when no
// terminal device is available.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	if !terminalActive.CompareAndSwap(false, true) {
		return nil, ErrAlreadyActive
	}
	in, out, owns, err := openControllingTTY()
	if err != nil {
		terminalActive.Store(false)
		return nil, err
	}
	t, err := configureTerminal(in, out, owns, opts...)
	if err != nil {
		if owns {
			in.Close()
		}
		terminalActive.Store(false)
		return nil, err
	}
	return t, nil
}

// newTerminalWithFiles builds a Terminal on explicit descriptors. It
// exists for tests driving a pseudo-terminal; the regular entry point is
// NewTerminal.
func newTerminalWithFiles(in, out *os.File, opts ...TerminalOption) (*Terminal, error) {
	if !terminalActive.CompareAndSwap(false, true) {
		return nil, ErrAlreadyActive
	}
	t, err := configureTerminal(in, out, false, opts...)
	if err != nil {
		terminalActive.Store(false)
		return nil, err
	}
	return t, nil
}

// openControllingTTY opens the terminal device for exclusive use.
func openControllingTTY() (in, out *os.File, owns bool, err error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err == nil {
		if !term.IsTerminal(int(tty.Fd())) {
			tty.Close()
			return nil, nil, false, ErrNotATTY
		}
		return tty, tty, true, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return os.Stdin, os.Stdout, false, nil
	}
	return nil, nil, false, ErrNotATTY
}

// configureTerminal performs the state transitions of construction.
// Every step undone on failure so construction leaves no partial state.
func configureTerminal(in, out *os.File, owns bool, opts ...TerminalOption) (*Terminal, error) {
	t := &Terminal{
		in:       in,
		out:      out,
		ownsTTY:  owns,
		measurer: DefaultCharWidthMeasurer,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if !term.IsTerminal(t.inputFd()) || !term.IsTerminal(t.outputFd()) {
		return nil, ErrNotATTY
	}

	termios, err := unix.IoctlGetTermios(t.inputFd(), ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("read terminal attributes: %w", err)
	}
	t.origTermios = *termios

	if err := t.installResizeNotification(); err != nil {
		return nil, err
	}

	t.esc = newEscBuilder(4096)
	t.esc.Reset()
	t.esc.EnterAltScreen()
	t.esc.HideCursor()
	t.esc.DisableWrap()
	if err := t.writeAll(t.esc.Bytes()); err != nil {
		t.removeResizeNotification()
		return nil, err
	}

	if err := t.applyRawMode(); err != nil {
		t.writeRestoreSequences()
		t.removeResizeNotification()
		return nil, err
	}

	if err := t.updateSize(); err != nil {
		t.writeRestoreSequences()
		t.restoreTermios()
		t.removeResizeNotification()
		return nil, err
	}

	t.reader = newInputReader(t.inputFd())
	t.logger.Debug().
		Int("rows", t.size.Rows).
		Int("cols", t.size.Cols).
		Msg("terminal entered raw alternate-screen mode")
	return t, nil
}

// installResizeNotification creates the self-pipe and starts forwarding
// SIGWINCH into it. The write end is non-blocking so a burst of
// coalesced signals can never stall the forwarder.
func (t *Terminal) installResizeNotification() error {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return fmt.Errorf("create resize pipe: %w", err)
	}
	t.pipeR, t.pipeW = fds[0], fds[1]
	unix.CloseOnExec(t.pipeR)
	unix.CloseOnExec(t.pipeW)
	if err := unix.SetNonblock(t.pipeW, true); err != nil {
		unix.Close(t.pipeR)
		unix.Close(t.pipeW)
		return fmt.Errorf("configure resize pipe: %w", err)
	}

	t.sigCh = make(chan os.Signal, 1)
	t.sigDone = make(chan struct{})
	signal.Notify(t.sigCh, syscall.SIGWINCH)

	pipeW := t.pipeW
	go func() {
		defer close(t.sigDone)
		wake := []byte{0}
		for range t.sigCh {
			// Best effort: a full pipe already guarantees a pending
			// wake-up, so EAGAIN is ignored.
			unix.Write(pipeW, wake)
		}
	}()
	return nil
}

// removeResizeNotification stops signal forwarding and closes the pipe.
func (t *Terminal) removeResizeNotification() {
	signal.Stop(t.sigCh)
	close(t.sigCh)
	<-t.sigDone
	unix.Close(t.pipeR)
	unix.Close(t.pipeW)
}

// applyRawMode applies the raw termios configuration: no canonical line
// discipline, no echo, no signal generation (Ctrl-C arrives as a
// keystroke), no flow control or CR translation, no output processing,
// and polling reads (VMIN=0, VTIME=0).
func (t *Terminal) applyRawMode() error {
	raw := t.origTermios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(t.inputFd(), ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("apply raw mode: %w", err)
	}
	return nil
}

// restoreTermios puts back the attributes saved at construction.
func (t *Terminal) restoreTermios() error {
	if err := unix.IoctlSetTermios(t.inputFd(), ioctlWriteTermios, &t.origTermios); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}
	return nil
}

// writeRestoreSequences emits the control sequences leaving raw
// alternate-screen mode: cursor visible, wrap re-enabled, main screen.
func (t *Terminal) writeRestoreSequences() error {
	t.esc.Reset()
	t.esc.ShowCursor()
	t.esc.EnableWrap()
	t.esc.ExitAltScreen()
	return t.writeAll(t.esc.Bytes())
}

// Close restores the terminal: control sequences first, then the
// original termios, the original signal disposition, and the self-pipe.
// Close is idempotent; restoration is best-effort and failures are
// reported through both the returned error and the configured logger.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	if err := t.writeRestoreSequences(); err != nil {
		t.logger.Error().Err(err).Msg("restore terminal screen state")
		firstErr = err
	}
	if err := t.restoreTermios(); err != nil {
		t.logger.Error().Err(err).Msg("restore terminal attributes")
		if firstErr == nil {
			firstErr = err
		}
	}
	t.removeResizeNotification()
	if t.ownsTTY {
		if err := t.in.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	terminalActive.Store(false)
	t.logger.Debug().Msg("terminal restored")
	return firstErr
}

// Size returns the cached terminal size. The cache is refreshed before a
// ResizeEvent is delivered, so consumers observe a consistent size at
// the moment of the event.
func (t *Terminal) Size() TerminalSize {
	return t.size
}

// NewFrame allocates a frame matching the current terminal size, using
// the terminal's width measurer.
func (t *Terminal) NewFrame() *TerminalFrame {
	return NewTerminalFrameWithMeasurer(t.size, t.measurer)
}

// InputFd returns the terminal input descriptor for integration with
// external event loops.
func (t *Terminal) InputFd() int {
	return t.inputFd()
}

// OutputFd returns the terminal output descriptor.
func (t *Terminal) OutputFd() int {
	return t.outputFd()
}

// SignalFd returns the read end of the self-pipe that receives one byte
// per window-change signal. Poll it together with InputFd when driving
// an external event loop.
func (t *Terminal) SignalFd() int {
	return t.pipeR
}

func (t *Terminal) inputFd() int  { return int(t.in.Fd()) }
func (t *Terminal) outputFd() int { return int(t.out.Fd()) }

// SetCursor makes the cursor visible at the given position after the
// next Draw.
func (t *Terminal) SetCursor(pos TerminalPosition) {
	p := pos
	t.cursor = &p
}

// ClearCursor hides the cursor again after the next Draw.
func (t *Terminal) ClearCursor() {
	t.cursor = nil
}

// Draw renders a frame, emitting only the control sequences needed to
// transform the previously displayed frame into this one. All bytes for
// the frame go out in a single write. On failure the retained frame is
// left unchanged so the next Draw reconverges from the last known-good
// state. The frame is consumed: the caller must not modify it after a
// successful Draw.
func (t *Terminal) Draw(frame *TerminalFrame) error {
	t.esc.Reset()
	if t.cursorShown {
		t.esc.HideCursor()
	}

	prev := t.last
	if prev == nil || prev.size != frame.size || t.sizeChanged {
		t.esc.ClearScreen()
		prev = NewTerminalFrame(frame.size)
	}
	renderDiff(t.esc, prev, frame)

	showCursor := false
	if t.cursor != nil && frame.size.Contains(*t.cursor) {
		t.esc.MoveTo(*t.cursor)
		t.esc.ShowCursor()
		showCursor = true
	}

	if err := t.writeAll(t.esc.Bytes()); err != nil {
		return err
	}
	t.last = frame
	t.sizeChanged = false
	t.cursorShown = showCursor
	return nil
}

// writeAll writes b to the terminal, retrying on partial writes and
// interrupted system calls.
func (t *Terminal) writeAll(b []byte) error {
	fd := t.outputFd()
	for len(b) > 0 {
		n, err := unix.Write(fd, b)
		if n > 0 {
			b = b[n:]
		}
		if err != nil && !errors.Is(err, unix.EINTR) {
			return fmt.Errorf("write to terminal: %w", err)
		}
	}
	return nil
}

// updateSize refreshes the cached size from the kernel.
func (t *Terminal) updateSize() error {
	ws, err := unix.IoctlGetWinsize(t.outputFd(), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("query terminal size: %w", err)
	}
	size := TerminalSize{Rows: int(ws.Row), Cols: int(ws.Col)}
	if size != t.size {
		t.size = size
		t.sizeChanged = true
	}
	return nil
}
