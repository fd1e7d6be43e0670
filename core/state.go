package core

import "sync/atomic"

// State holds the interpreter's mutable status. All fields except the
// foreground-only flag are touched only from the main loop; the flag is also
// flipped from the signal watcher and so lives behind an atomic.
type State struct {
	lastExitCode   int
	lastSignal     int
	foregroundOnly atomic.Bool
}

// SetExitCode records a normal foreground termination. The terminating-signal
// field is cleared; exactly one of the pair is meaningful at a time.
func (s *State) SetExitCode(code int) {
	s.lastExitCode = code
	s.lastSignal = 0
}

// SetSignal records a signal-terminated foreground command.
func (s *State) SetSignal(sig int) {
	s.lastSignal = sig
	s.lastExitCode = 0
}

// LastExitCode returns the exit code of the last foreground command, 0 if
// none has run.
func (s *State) LastExitCode() int {
	return s.lastExitCode
}

// LastSignal returns the signal that killed the last foreground command, 0 if
// it exited normally.
func (s *State) LastSignal() int {
	return s.lastSignal
}

// ForegroundOnly reports whether background requests are currently ignored.
func (s *State) ForegroundOnly() bool {
	return s.foregroundOnly.Load()
}

// ToggleForegroundOnly flips foreground-only mode and returns the new value.
// Safe to call from the signal watcher.
func (s *State) ToggleForegroundOnly() bool {
	for {
		old := s.foregroundOnly.Load()
		if s.foregroundOnly.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
