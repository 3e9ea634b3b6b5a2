// Package format runs an external code formatter over files that cnote has
// rewritten.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// DefaultCommand is the formatter used when none is configured.
const DefaultCommand = "clang-format -i"

// Formatter formats a file in place.
type Formatter interface {
	Format(ctx context.Context, path, style string) error
}

// ErrEmptyCommand is returned by ParseCommand for a blank command line.
var ErrEmptyCommand = errors.New("empty formatter command")

// ToolError describes a formatter run that could not start or exited with a
// failure status. The file it was given has already been written.
type ToolError struct {
	Path   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("formatter %s failed on %s: %v", e.Args[0], e.Path, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Command runs a program with the file path as its last argument.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a shell-like command line such as
// `clang-format -i --fallback-style="Google"` into a Command. Environment
// variables are expanded from the process environment.
func ParseCommand(line string) (*Command, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrEmptyCommand
	}
	fields, err := shell.Fields(line, nil)
	if err != nil {
		return nil, fmt.Errorf("parse formatter command %q: %w", line, err)
	}
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Command{Name: fields[0], Args: fields[1:]}, nil
}

// Argv returns the full argument list used to format path.
func (c *Command) Argv(path, style string) []string {
	argv := make([]string, 0, len(c.Args)+3)
	argv = append(argv, c.Name)
	argv = append(argv, c.Args...)
	if style != "" {
		argv = append(argv, "--style="+style)
	}
	return append(argv, path)
}

func (c *Command) Format(ctx context.Context, path, style string) error {
	argv := c.Argv(path, style)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ToolError{
			Path:   path,
			Args:   argv,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}

func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Nop is a Formatter that does nothing.
type Nop struct{}

func (Nop) Format(context.Context, string, string) error { return nil }

// New returns the Formatter for a configured command line. An empty line
// selects DefaultCommand.
func New(line string) (Formatter, error) {
	if strings.TrimSpace(line) == "" {
		line = DefaultCommand
	}
	return ParseCommand(line)
}
