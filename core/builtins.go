package core

import (
	"errors"
	"fmt"
	"os"

	"josephlewis.net/smallsh/core/shell"
)

// errExit unwinds the main loop when the exit builtin runs.
var errExit = errors.New("exit")

// IsBuiltin reports whether name is handled inside the interpreter itself.
func IsBuiltin(name string) bool {
	switch name {
	case "exit", "cd", "status":
		return true
	}
	return false
}

// runBuiltin executes a builtin synchronously. The command's background flag
// is ignored; builtins never update the last exit/signal pair.
func (s *Shell) runBuiltin(cmd *shell.Command) error {
	switch cmd.Name() {
	case "exit":
		return errExit
	case "cd":
		s.builtinCd(cmd.Argv)
	case "status":
		s.builtinStatus()
	}
	return nil
}

func (s *Shell) builtinCd(args []string) {
	var target string
	switch len(args) {
	case 1:
		home, ok := os.LookupEnv("HOME")
		if !ok {
			fmt.Fprintln(s.errOut, "cd: HOME environment variable not set")
			return
		}
		target = home
	case 2:
		target = args[1]
	default:
		fmt.Fprintf(s.errOut, "%s: too many arguments\n", args[0])
		return
	}

	// On failure the working directory is left unchanged.
	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(s.errOut, "%s: %v\n", args[0], err)
	}
}

func (s *Shell) builtinStatus() {
	if sig := s.state.LastSignal(); sig != 0 {
		fmt.Fprintf(s.out, "terminated by signal %d\n", sig)
		return
	}
	fmt.Fprintf(s.out, "exit value %d\n", s.state.LastExitCode())
}
