package core

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

const (
	enteringForegroundOnlyMsg = "Entering foreground-only mode (& is now ignored)"
	exitingForegroundOnlyMsg  = "Exiting foreground-only mode"
)

// SignalPolicy owns the interpreter's signal dispositions.
//
// The interpreter consumes SIGINT itself and forwards it to the foreground
// child's process group, if any; every child runs in its own process group so
// terminal-generated signals never reach background jobs directly. SIGTSTP
// toggles foreground-only mode and is never forwarded, so no child ever
// observes it.
type SignalPolicy struct {
	state *State
	out   io.Writer

	// fgPid holds the pid (== pgid) of the running foreground child, 0 when
	// the interpreter is between commands.
	fgPid atomic.Int32

	sigs chan os.Signal
}

// NewSignalPolicy creates a policy writing mode-toggle messages to out.
func NewSignalPolicy(state *State, out io.Writer) *SignalPolicy {
	return &SignalPolicy{state: state, out: out}
}

// Install begins watching SIGINT and SIGTSTP for the rest of the process's
// life (or until Uninstall).
func (p *SignalPolicy) Install() {
	p.sigs = make(chan os.Signal, 8)
	signal.Notify(p.sigs, unix.SIGINT, unix.SIGTSTP)
	go p.watch()
}

// Uninstall restores the default dispositions and stops the watcher.
func (p *SignalPolicy) Uninstall() {
	signal.Stop(p.sigs)
	close(p.sigs)
}

// SetForeground marks pid as the current foreground child so SIGINT gets
// forwarded to it. Call ClearForeground once the child has been waited for.
func (p *SignalPolicy) SetForeground(pid int) {
	p.fgPid.Store(int32(pid))
}

// ClearForeground marks the interpreter as having no foreground child.
func (p *SignalPolicy) ClearForeground() {
	p.fgPid.Store(0)
}

// watch handles deliveries. It touches only the atomic mode flag, the atomic
// foreground pid, and the output writer.
func (p *SignalPolicy) watch() {
	for sig := range p.sigs {
		switch sig {
		case unix.SIGINT:
			// The interpreter itself is immune; the foreground child's
			// disposition is the default one, so forwarding kills it.
			if pid := p.fgPid.Load(); pid != 0 {
				_ = unix.Kill(-int(pid), unix.SIGINT)
			}

		case unix.SIGTSTP:
			if p.state.ToggleForegroundOnly() {
				fmt.Fprintln(p.out, enteringForegroundOnlyMsg)
			} else {
				fmt.Fprintln(p.out, exitingForegroundOnlyMsg)
			}
		}
	}
}
