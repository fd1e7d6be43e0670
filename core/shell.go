// Package core implements the interpreter: builtin dispatch, process
// spawning with redirection, background job tracking, and signal policy.
package core

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"josephlewis.net/smallsh/core/config"
	"josephlewis.net/smallsh/core/shell"
)

// Shell is one interactive interpreter session. It owns the job table, the
// signal policy and the interpreter state; all of them are driven from the
// single Run loop.
type Shell struct {
	config   *config.Configuration
	state    *State
	jobs     *JobTable
	signals  *SignalPolicy
	recorder *Recorder
	parser   shell.Parser

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// Streams inherited by foreground children. These must be real files so
	// children write the terminal directly rather than through the
	// interpreter.
	childStdin  *os.File
	childStdout *os.File
	childStderr *os.File
}

// NewShell builds a shell on the process's standard streams. A nil recorder
// disables session logging.
func NewShell(configuration *config.Configuration, recorder *Recorder) *Shell {
	state := &State{}
	return &Shell{
		config:   configuration,
		state:    state,
		jobs:     NewJobTable(configuration.MaxBackgroundJobs, os.Stdout),
		signals:  NewSignalPolicy(state, os.Stdout),
		recorder: recorder,
		parser: shell.Parser{
			MaxLineLength: configuration.MaxLineLength,
			MaxArgs:       configuration.MaxArgs,
		},
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		errOut:      os.Stderr,
		childStdin:  os.Stdin,
		childStdout: os.Stdout,
		childStderr: os.Stderr,
	}
}

// Run reads and dispatches commands until exit or end of input. Each
// iteration reaps finished background jobs before prompting.
func (s *Shell) Run() error {
	s.signals.Install()
	defer s.signals.Uninstall()

	prevMode := s.state.ForegroundOnly()
	for {
		s.jobs.Reap()

		// The toggle happens asynchronously; note it in the session log once
		// the loop observes it.
		if mode := s.state.ForegroundOnly(); mode != prevMode {
			s.recorder.ModeToggled(mode)
			prevMode = mode
		}

		fmt.Fprint(s.out, s.prompt())

		line, err := s.in.ReadString('\n')
		if line != "" {
			if s.dispatch(line) {
				return nil
			}
		}
		switch {
		case err == io.EOF:
			// End of input quits the same way exit does.
			s.shutdown()
			return nil
		case err != nil:
			s.shutdown()
			return err
		}
	}
}

// dispatch handles one raw line. It reports true when the interpreter should
// stop.
func (s *Shell) dispatch(line string) (quit bool) {
	cmd, err := s.parser.Parse(line)
	if err != nil {
		fmt.Fprintln(s.errOut, err)
		return false
	}
	if cmd == nil {
		// Blank or comment line.
		return false
	}

	if IsBuiltin(cmd.Name()) {
		s.recorder.CommandDispatched(cmd.Argv, true)
		if s.runBuiltin(cmd) == errExit {
			s.shutdown()
			return true
		}
		return false
	}

	s.recorder.CommandDispatched(cmd.Argv, false)
	s.runExternal(cmd)
	return false
}

func (s *Shell) prompt() string {
	if s.config.Prompt != "" {
		return s.config.Prompt
	}
	return ": "
}

// shutdown terminates every tracked background job and closes the session
// log.
func (s *Shell) shutdown() {
	s.jobs.Shutdown(s.config.KillGrace())
	s.recorder.Close()
}
