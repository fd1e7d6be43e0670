package core

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"josephlewis.net/smallsh/core/shell"
)

// runExternal executes a non-builtin command as a new OS process.
//
// The child is placed in its own process group so terminal signals only ever
// reach the interpreter, which forwards SIGINT to the foreground child (see
// SignalPolicy). Redirection is bound before the program starts; any setup
// failure reports a diagnostic and yields status 1 without running the
// program.
func (s *Shell) runExternal(cmd *shell.Command) {
	background := cmd.Background && !s.state.ForegroundOnly()

	proc := exec.Command(cmd.Name(), cmd.Argv[1:]...)
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	proc.Stderr = s.childStderr

	// Input stream.
	switch {
	case cmd.InputPath != "":
		fd, err := os.Open(cmd.InputPath)
		if err != nil {
			fmt.Fprintf(s.errOut, "cannot open %s for input\n", cmd.InputPath)
			s.failSpawn(background)
			return
		}
		defer fd.Close()
		proc.Stdin = fd
	case background:
		// A nil stdin binds the null device, so the job can't block on
		// interactive input.
	default:
		proc.Stdin = s.childStdin
	}

	// Output stream, configured independently of input.
	switch {
	case cmd.OutputPath != "":
		fd, err := os.OpenFile(cmd.OutputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Fprintf(s.errOut, "cannot open %s for output\n", cmd.OutputPath)
			s.failSpawn(background)
			return
		}
		defer fd.Close()
		proc.Stdout = fd
	case background:
		// Null device, as with stdin.
	default:
		proc.Stdout = s.childStdout
	}

	if err := proc.Start(); err != nil {
		fmt.Fprintf(s.errOut, "%s: %v\n", cmd.Name(), err)
		s.failSpawn(background)
		return
	}
	pid := proc.Process.Pid
	s.recorder.ProcessStarted(pid, cmd.Argv, background)

	if background {
		fmt.Fprintf(s.out, "background pid is %d\n", pid)
		// A full table means the job runs untracked; that's deliberate.
		s.jobs.Add(pid)
		return
	}

	s.waitForeground(proc, pid)
}

// failSpawn records a failed launch. Background failures never touch the
// last exit/signal pair.
func (s *Shell) failSpawn(background bool) {
	if !background {
		s.state.SetExitCode(1)
	}
}

// waitForeground blocks until the foreground child terminates and records
// how it went.
func (s *Shell) waitForeground(proc *exec.Cmd, pid int) {
	s.signals.SetForeground(pid)
	err := proc.Wait()
	s.signals.ClearForeground()

	if proc.ProcessState == nil {
		// The wait itself failed; no status to report.
		fmt.Fprintf(s.errOut, "wait failed: %v\n", err)
		s.state.SetExitCode(1)
		return
	}

	ws := proc.ProcessState.Sys().(syscall.WaitStatus)
	if ws.Signaled() {
		sig := int(ws.Signal())
		fmt.Fprintf(s.out, "terminated by signal %d\n", sig)
		s.state.SetSignal(sig)
		s.recorder.ProcessExited(pid, 0, sig)
		return
	}

	s.state.SetExitCode(ws.ExitStatus())
	s.recorder.ProcessExited(pid, ws.ExitStatus(), 0)
}
