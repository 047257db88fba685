package sitecmd

import (
	"context"
	"fmt"
	"io"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-press/internal/commands"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/publish"
	"github.com/goliatone/go-press/pkg/interfaces"
)

const (
	publishOperation = "site.publish"
	draftOperation   = "site.draft"
	renderOperation  = "site.render"
)

// Service is the site surface the handlers drive.
type Service interface {
	Publish(ctx context.Context) (*publish.Result, error)
	Draft(ctx context.Context, req publish.DraftRequest) (string, error)
	Render(ctx context.Context, name string) (string, error)
}

var (
	_ command.Commander[PublishCommand] = (*PublishHandler)(nil)
	_ command.Commander[DraftCommand]   = (*DraftHandler)(nil)
	_ command.Commander[RenderCommand]  = (*RenderHandler)(nil)
)

// PublishHandler runs a publish through the shared command handler.
type PublishHandler struct {
	inner *commands.Handler[PublishCommand]
}

// NewPublishHandler binds a publish handler to service.
func NewPublishHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishCommand]) *PublishHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg PublishCommand) error {
		result, err := service.Publish(ctx)
		if err != nil {
			return err
		}
		for _, written := range result.Written {
			if msg.Out != nil {
				fmt.Fprintln(msg.Out, written)
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"build_id":      result.BuildID,
			"written_count": len(result.Written),
			"skipped_count": len(result.Skipped),
		}).Info("site.command.publish.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[PublishCommand]{
		commands.WithLogger[PublishCommand](baseLogger),
		commands.WithOperation[PublishCommand](publishOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[PublishCommand].
func (h *PublishHandler) Execute(ctx context.Context, msg PublishCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DraftHandler creates drafts through the shared command handler.
type DraftHandler struct {
	inner *commands.Handler[DraftCommand]
}

// NewDraftHandler binds a draft handler to service.
func NewDraftHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[DraftCommand]) *DraftHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg DraftCommand) error {
		name, err := service.Draft(ctx, publish.DraftRequest{Title: msg.Title, Edit: msg.Edit})
		if name != "" && msg.Out != nil {
			fmt.Fprintln(msg.Out, name)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[DraftCommand]{
		commands.WithLogger[DraftCommand](baseLogger),
		commands.WithOperation[DraftCommand](draftOperation),
		commands.WithMessageFields(func(msg DraftCommand) map[string]any {
			fields := map[string]any{"title": msg.Title}
			if msg.Edit {
				fields["edit"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DraftHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[DraftCommand].
func (h *DraftHandler) Execute(ctx context.Context, msg DraftCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RenderHandler assembles a single document through the shared command
// handler.
type RenderHandler struct {
	inner *commands.Handler[RenderCommand]
}

// NewRenderHandler binds a render handler to service.
func NewRenderHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[RenderCommand]) *RenderHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg RenderCommand) error {
		page, err := service.Render(ctx, msg.Document)
		if err != nil {
			return err
		}
		_, err = io.WriteString(msg.Out, page)
		return err
	}

	handlerOpts := []commands.HandlerOption[RenderCommand]{
		commands.WithLogger[RenderCommand](baseLogger),
		commands.WithOperation[RenderCommand](renderOperation),
		commands.WithMessageFields(func(msg RenderCommand) map[string]any {
			return map[string]any{"document": msg.Document}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RenderCommand].
func (h *RenderHandler) Execute(ctx context.Context, msg RenderCommand) error {
	return h.inner.Execute(ctx, msg)
}
