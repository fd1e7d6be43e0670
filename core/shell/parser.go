// Package shell parses single command lines into their structured form.
//
// The grammar matches a classic interactive shell line:
//
//	command [arg ...] [< input_file] [> output_file] [&]
//
// Quoting is honored during tokenization; there is no globbing, variable
// expansion, or pipeline support.
package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anmitsu/go-shlex"
)

const (
	// DefaultMaxLineLength bounds the raw input line, terminator included.
	DefaultMaxLineLength = 2048
	// DefaultMaxArgs bounds the argument vector, command name included.
	DefaultMaxArgs = 512
)

// ErrSyntax indicates the line couldn't be tokenized, e.g. an unterminated
// quote.
var ErrSyntax = errors.New("syntax error: unexpected end of file")

// Command is the structured form of one input line. It is immutable once
// returned by Parse.
type Command struct {
	// Argv holds the command name followed by its arguments.
	Argv []string
	// InputPath is the input redirection target, empty if none.
	InputPath string
	// OutputPath is the output redirection target, empty if none.
	OutputPath string
	// Background reports whether the line ended with a lone "&".
	Background bool
}

// Name returns the command name.
func (c *Command) Name() string {
	return c.Argv[0]
}

// Parser splits lines into Commands. The zero value uses the default limits.
type Parser struct {
	// MaxLineLength overrides DefaultMaxLineLength when positive.
	MaxLineLength int
	// MaxArgs overrides DefaultMaxArgs when positive.
	MaxArgs int
}

func (p *Parser) maxLineLength() int {
	if p.MaxLineLength > 0 {
		return p.MaxLineLength
	}
	return DefaultMaxLineLength
}

func (p *Parser) maxArgs() int {
	if p.MaxArgs > 0 {
		return p.MaxArgs
	}
	return DefaultMaxArgs
}

// Parse converts one raw line into a Command. Blank lines and comment lines
// (first non-blank character '#') produce a nil Command and nil error.
func (p *Parser) Parse(line string) (*Command, error) {
	if len(line) > p.maxLineLength() {
		return nil, fmt.Errorf("command line too long (max %d characters)", p.maxLineLength())
	}

	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" || trimmed == "\n" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	tokens, err := shlex.Split(strings.TrimRight(line, "\n"), true)
	if err != nil {
		return nil, ErrSyntax
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	cmd := &Command{}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "<":
			if i+1 >= len(tokens) {
				return nil, errors.New("missing filename for input redirection")
			}
			i++
			cmd.InputPath = tokens[i]

		case tok == ">":
			if i+1 >= len(tokens) {
				return nil, errors.New("missing filename for output redirection")
			}
			i++
			cmd.OutputPath = tokens[i]

		case tok == "&" && i == len(tokens)-1:
			cmd.Background = true

		default:
			// A "&" anywhere but the end is an ordinary argument.
			cmd.Argv = append(cmd.Argv, tok)
		}
	}

	if len(cmd.Argv) == 0 {
		return nil, errors.New("missing command name")
	}
	if len(cmd.Argv) > p.maxArgs() {
		return nil, fmt.Errorf("too many arguments (max %d)", p.maxArgs())
	}

	return cmd, nil
}
