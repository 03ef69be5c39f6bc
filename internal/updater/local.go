package updater

import (
	"context"
	"fmt"
	"os/exec"
	"unicode/utf8"
)

// Runner executes a program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run starts name with args and waits for it to exit.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CommandSource asks the installed binary for its version.
type CommandSource struct {
	binary string
	flag   string
	runner Runner
}

// NewCommandSource creates a source that runs "binary flag". A nil runner
// selects ExecRunner.
func NewCommandSource(binary, flag string, runner Runner) *CommandSource {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &CommandSource{binary: binary, flag: flag, runner: runner}
}

// RawVersion runs the binary and returns its standard output.
func (s *CommandSource) RawVersion(ctx context.Context) (string, error) {
	out, err := s.runner.Run(ctx, s.binary, s.flag)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %w", ErrProcessInvocation, s.binary, s.flag, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: %s %s printed non UTF-8 output", ErrTextDecoding, s.binary, s.flag)
	}
	return string(out), nil
}
