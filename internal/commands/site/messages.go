package sitecmd

import (
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	publishMessageType = "press.site.publish"
	draftMessageType   = "press.site.draft"
	renderMessageType  = "press.site.render"
)

// PublishCommand renders every non-draft post into the output directory.
type PublishCommand struct {
	// Out receives one line per written page. Optional.
	Out io.Writer `json:"-"`
}

// Type implements command.Message.
func (PublishCommand) Type() string { return publishMessageType }

// Validate implements command.Message.
func (PublishCommand) Validate() error { return nil }

// DraftCommand creates a new draft post.
type DraftCommand struct {
	Title string `json:"title,omitempty"`
	// Edit opens the new post in the configured editor.
	Edit bool `json:"edit,omitempty"`
	// Out receives the new post path. Optional.
	Out io.Writer `json:"-"`
}

// Type implements command.Message.
func (DraftCommand) Type() string { return draftMessageType }

// Validate rejects titles that would break the front matter block.
func (cmd DraftCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Title, validation.By(func(value any) error {
			if strings.ContainsAny(value.(string), "\r\n") {
				return validation.NewError("press.site.draft.title_multiline", "title must be a single line")
			}
			return nil
		})),
	)
}

// RenderCommand assembles one document and writes the page to Out.
type RenderCommand struct {
	Document string    `json:"document"`
	Out      io.Writer `json:"-"`
}

// Type implements command.Message.
func (RenderCommand) Type() string { return renderMessageType }

// Validate ensures a document and a destination are present.
func (cmd RenderCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(cmd.Document) == "" {
		errs["document"] = validation.NewError("press.site.render.document_required", "document is required")
	}
	if cmd.Out == nil {
		errs["out"] = validation.NewError("press.site.render.output_required", "output writer is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
