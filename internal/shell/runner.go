// Package shell runs external processes on behalf of templates and the
// Markdown filter. Only stdout is ever captured.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// DefaultShell interprets command text.
const DefaultShell = "/bin/sh"

// Runner executes shell text with `<shell> -c`. Processes run to completion;
// the only deadline is whatever the caller's context carries.
type Runner struct {
	shell  string
	dir    string
	env    []string
	logger interfaces.Logger
}

var (
	_ interfaces.CommandRunner = (*Runner)(nil)
	_ interfaces.Filter        = (*Runner)(nil)
)

// Option configures a Runner.
type Option func(*Runner)

// WithShell overrides the interpreter used for command text.
func WithShell(shell string) Option {
	return func(r *Runner) {
		if trimmed := strings.TrimSpace(shell); trimmed != "" {
			r.shell = trimmed
		}
	}
}

// WithDir sets the working directory for spawned processes.
func WithDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) Option {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.Ensure(logger)
	}
}

// NewRunner constructs a Runner using DefaultShell.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		shell:  DefaultShell,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run executes command and returns its stdout. A spawn failure or non-zero
// exit is returned alongside whatever was written before the failure.
func (r *Runner) Run(ctx context.Context, command string) ([]byte, error) {
	return r.Filter(ctx, command, nil)
}

// Filter executes command with input on stdin and returns its stdout.
func (r *Runner) Filter(ctx context.Context, command string, input []byte) ([]byte, error) {
	cmd := r.command(ctx, command)
	if input != nil {
		cmd.Stdin = bytes.NewReader(input)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	err := cmd.Run()
	if err != nil {
		r.logger.Debug("shell.command.failed", "command", command, "error", err)
	}
	return stdout.Bytes(), err
}

// Interactive runs name with args attached to the caller's terminal. It is
// used to hand a fresh draft to an editor.
func (r *Runner) Interactive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	cmd.Env = r.environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (r *Runner) command(ctx context.Context, command string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Dir = r.dir
	cmd.Env = r.environ()
	return cmd
}

func (r *Runner) environ() []string {
	if len(r.env) == 0 {
		return nil
	}
	return append(os.Environ(), r.env...)
}
