// Package tuinix provides a lightweight foundation for building terminal
// user interfaces on Unix systems.
//
// The library takes exclusive control of the terminal (raw mode plus the
// alternate screen buffer), renders full-screen UIs as grids of styled
// character cells with differential updates, and multiplexes keyboard
// input, terminal resize notifications, and caller-supplied file
// descriptors through a single poll-based wait. It deliberately imposes
// no event loop and no widget model; the application drives redraws.
//
// A minimal program looks like:
//
//	term, err := tuinix.NewTerminal()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer term.Close()
//
//	frame := term.NewFrame()
//	style := tuinix.NewStyle().Bold().Foreground(tuinix.ColorGreen)
//	fmt.Fprintf(frame, "%sHello, terminal!%s\n", style, tuinix.StyleReset)
//	if err := term.Draw(frame); err != nil {
//		log.Fatal(err)
//	}
//
//	for {
//		ev, err := term.PollInput(100 * time.Millisecond)
//		if err != nil {
//			log.Fatal(err)
//		}
//		switch ev := ev.(type) {
//		case tuinix.InputEvent:
//			if ev.Input.Code == tuinix.KeyChar && ev.Input.Char == 'q' {
//				return
//			}
//		case tuinix.ResizeEvent:
//			// Rebuild the UI for ev.Size.
//		}
//	}
//
// Only one Terminal may exist per process at a time. The terminal state
// (termios, alternate screen, cursor visibility, the SIGWINCH handler)
// is restored by Close, which is idempotent and safe to defer so that
// restoration also runs during panic unwinding.
//
// For integration with external event loops, the input and resize file
// descriptors are exposed through Terminal.InputFd and Terminal.SignalFd
// together with the non-blocking helpers SetNonblocking, IsWouldBlock,
// and IsInterrupted.
package tuinix
