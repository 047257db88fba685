package template

import (
	"context"
	"strings"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Includer resolves `@include name` to the assembled output of a layout,
// rendered against the same scope.
type Includer interface {
	Include(ctx context.Context, env *Env, name string) (string, error)
}

// Option configures an Engine.
type Option func(*Engine)

// Engine parses and renders template lines. It holds no per-render state.
type Engine struct {
	includer Includer
	runner   interfaces.CommandRunner
	logger   interfaces.Logger
}

// New constructs an Engine. Without an includer or a runner, `@include` and
// `@cmd` lines render as empty lines.
func New(opts ...Option) *Engine {
	e := &Engine{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// WithIncluder sets the resolver used for `@include`.
func WithIncluder(includer Includer) Option {
	return func(e *Engine) {
		e.includer = includer
	}
}

// WithCommandRunner sets the runner used for `@cmd`.
func WithCommandRunner(runner interfaces.CommandRunner) Option {
	return func(e *Engine) {
		e.runner = runner
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.Ensure(logger)
	}
}

// Render parses lines and renders them against env.
func (e *Engine) Render(ctx context.Context, env *Env, lines []string) (string, error) {
	nodes, err := Parse(lines)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	if err := e.Execute(ctx, env, nodes, &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Execute walks a parsed tree left to right, writing to out.
func (e *Engine) Execute(ctx context.Context, env *Env, nodes []Node, out *strings.Builder) error {
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch node.Kind {
		case NodeText:
			writeLine(out, interpolate(env, node.Segments))
		case NodeInclude:
			err = e.include(ctx, env, node, out)
		case NodeCommand:
			e.command(ctx, node, out)
		case NodeIf:
			err = e.renderIf(ctx, env, node, out)
		case NodeFor:
			err = e.renderFor(ctx, env, node, out)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) renderIf(ctx context.Context, env *Env, node Node, out *strings.Builder) error {
	if env.Truthy(node.Name) == node.Negate {
		return nil
	}
	return e.Execute(ctx, env, node.Children, out)
}

// renderFor binds the loop variable with Set and leaves the last element
// bound once the loop is done.
func (e *Engine) renderFor(ctx context.Context, env *Env, node Node, out *strings.Builder) error {
	for _, value := range env.Sequence(node.Name) {
		env.Set(node.Item, value)
		if err := e.Execute(ctx, env, node.Children, out); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) include(ctx context.Context, env *Env, node Node, out *strings.Builder) error {
	if e.includer == nil {
		e.logger.Warn("template.include.unavailable", "name", node.Name, "line", node.Line)
		writeLine(out, "")
		return nil
	}
	e.logger.Debug("template.include", "name", node.Name, "line", node.Line)
	content, err := e.includer.Include(ctx, env, node.Name)
	if err != nil {
		return err
	}
	writeLine(out, strings.TrimRight(content, "\n"))
	return nil
}

// command splices in stdout. Failures are logged and whatever output the
// process produced is used as-is.
func (e *Engine) command(ctx context.Context, node Node, out *strings.Builder) {
	if e.runner == nil {
		e.logger.Warn("template.command.unavailable", "line", node.Line)
		writeLine(out, "")
		return
	}
	e.logger.Debug("template.command", "command", node.Command, "line", node.Line)
	stdout, err := e.runner.Run(ctx, node.Command)
	if err != nil {
		e.logger.Debug("template.command.failed", "command", node.Command, "line", node.Line, "error", err)
	}
	writeLine(out, strings.TrimRight(string(stdout), "\n"))
}

func interpolate(env *Env, segments []Segment) string {
	if len(segments) == 1 && segments[0].Variable == "" {
		return segments[0].Literal
	}
	var b strings.Builder
	for _, seg := range segments {
		if seg.Variable == "" {
			b.WriteString(seg.Literal)
			continue
		}
		binding, _ := env.Lookup(seg.Variable)
		if binding.Raw {
			b.WriteString(binding.Value)
			continue
		}
		b.WriteString(EscapeHTML(binding.Value))
	}
	return b.String()
}

func writeLine(out *strings.Builder, line string) {
	out.WriteString(line)
	out.WriteByte('\n')
}
