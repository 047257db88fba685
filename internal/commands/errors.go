package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-press/internal/layout"
	"github.com/goliatone/go-press/internal/publish"
	"github.com/goliatone/go-press/internal/template"
)

// Text codes attached to command failures.
const (
	CodeInvalidMessage   = "COMMAND_VALIDATION_FAILED"
	CodeInvalidTemplate  = "SITE_TEMPLATE_INVALID"
	CodeDocumentNotFound = "SITE_DOCUMENT_NOT_FOUND"
	CodeDraftExists      = "SITE_DRAFT_EXISTS"
	CodeCanceled         = "COMMAND_CONTEXT_CANCELED"
	CodeDeadline         = "COMMAND_CONTEXT_TIMEOUT"
	CodeExecutionFailed  = "COMMAND_EXECUTION_FAILED"
)

// failure is how a command error is reported. Validation failures are the
// author's to fix; the rest are command failures.
type failure struct {
	validation bool
	code       string
	message    string
}

// classify maps an execution error onto a failure. Author mistakes in
// templates, paths and draft titles are validation failures; everything else
// is a command failure.
func classify(err error) failure {
	switch {
	case template.IsSyntaxError(err), errors.Is(err, layout.ErrLayoutCycle):
		return failure{true, CodeInvalidTemplate, "template is malformed"}
	case errors.Is(err, layout.ErrDocumentNotFound):
		return failure{true, CodeDocumentNotFound, "document not found"}
	case errors.Is(err, publish.ErrDraftExists):
		return failure{true, CodeDraftExists, "draft already exists"}
	case errors.Is(err, context.Canceled):
		return failure{false, CodeCanceled, "command cancelled"}
	case errors.Is(err, context.DeadlineExceeded):
		return failure{false, CodeDeadline, "command deadline exceeded"}
	default:
		return failure{false, CodeExecutionFailed, "command execution failed"}
	}
}

func (f failure) wrap(err error) error {
	if f.validation {
		return goerrors.Wrap(err, goerrors.CategoryValidation, f.message).WithTextCode(f.code)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, f.message).WithTextCode(f.code)
}

// invalidMessage tags a message that failed its own Validate.
func invalidMessage(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return failure{true, CodeInvalidMessage, "invalid command message"}.wrap(err)
}
