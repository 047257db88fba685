package template

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrUnmatchedEnd       = errors.New("template: @end without an open block")
	ErrUnterminatedBlock  = errors.New("template: block is missing its @end")
	ErrMalformedDirective = errors.New("template: malformed directive")
)

const (
	codeUnmatchedEnd       = "TEMPLATE_UNMATCHED_END"
	codeUnterminatedBlock  = "TEMPLATE_UNTERMINATED_BLOCK"
	codeMalformedDirective = "TEMPLATE_MALFORMED_DIRECTIVE"
)

var errorCodes = map[error]string{
	ErrUnmatchedEnd:       codeUnmatchedEnd,
	ErrUnterminatedBlock:  codeUnterminatedBlock,
	ErrMalformedDirective: codeMalformedDirective,
}

// syntaxError tags a template failure with the validation category and the
// 1-based line it was found on.
func syntaxError(sentinel error, line int, text string) error {
	return goerrors.Wrap(sentinel, goerrors.CategoryValidation, fmt.Sprintf("line %d: %q", line, text)).
		WithTextCode(errorCodes[sentinel])
}

// IsSyntaxError reports whether err is a malformed template failure.
func IsSyntaxError(err error) bool {
	return errors.Is(err, ErrUnmatchedEnd) ||
		errors.Is(err, ErrUnterminatedBlock) ||
		errors.Is(err, ErrMalformedDirective)
}
