package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a site command: it validates the message, logs the run and
// tags failures with a category and text code. Rendering waits on external
// processes, so there is no deadline unless WithTimeout sets one.
type Handler[T command.Message] struct {
	run       command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    func(T) map[string]any
	now       func() time.Time
}

// NewHandler wraps fn as a go-command Commander.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{run: fn, logger: logging.NoOp(), now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithTimeout bounds each execution. Zero or negative disables the bound.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger sets the logger. Nil selects a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = logging.Ensure(logger)
	}
}

// WithOperation names the operation in every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields adds per-message fields to every log entry.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// Execute satisfies command.Commander[T].
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return invalidMessage(err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	logger := logging.WithFields(h.logger, h.logFields(msg))
	if err := ctx.Err(); err != nil {
		return classify(err).wrap(err)
	}

	started := h.now()
	logger.Debug("command.start")
	err := h.run(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}
	elapsed := h.now().Sub(started)

	if err != nil {
		f := classify(err)
		logger.Error("command.failed", "code", f.code, "elapsed", elapsed, "error", err)
		return f.wrap(err)
	}
	logger.Info("command.done", "elapsed", elapsed)
	return nil
}

func (h *Handler[T]) logFields(msg T) map[string]any {
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		for key, value := range h.fields(msg) {
			fields[key] = value
		}
	}
	return fields
}
