package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// Converter kinds accepted by New.
const (
	KindGoldmark = "goldmark"
	KindCommand  = "command"
	KindNone     = "none"
)

var (
	ErrConverterUnknown  = errors.New("markdown: unknown converter")
	ErrCommandRequired   = errors.New("markdown: command converter requires a command")
	ErrFilterUnavailable = errors.New("markdown: command converter requires a process filter")
)

// Identity returns its input unchanged.
var Identity interfaces.MarkdownConverter = identity{}

type identity struct{}

func (identity) Convert(_ context.Context, source []byte) ([]byte, error) {
	return source, nil
}

// CommandConverter pipes the body through an external program. Its stderr is
// discarded and its output is not validated.
type CommandConverter struct {
	filter  interfaces.Filter
	command string
}

var _ interfaces.MarkdownConverter = (*CommandConverter)(nil)

// NewCommandConverter builds a converter around the shell text command.
func NewCommandConverter(filter interfaces.Filter, command string) *CommandConverter {
	return &CommandConverter{filter: filter, command: command}
}

// Convert runs the filter. On failure the partial output is returned together
// with the error so callers can keep it.
func (c *CommandConverter) Convert(ctx context.Context, source []byte) ([]byte, error) {
	out, err := c.filter.Filter(ctx, c.command, source)
	if err != nil {
		return out, fmt.Errorf("markdown filter %q: %w", c.command, err)
	}
	return out, nil
}

// Config selects and configures a converter.
type Config struct {
	Kind    string
	Command string
	Options interfaces.ConvertOptions
}

// New builds the converter described by cfg. filter is only used by the
// command converter.
func New(cfg Config, filter interfaces.Filter) (interfaces.MarkdownConverter, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindGoldmark:
		return NewGoldmarkConverter(cfg.Options), nil
	case KindCommand:
		if strings.TrimSpace(cfg.Command) == "" {
			return nil, ErrCommandRequired
		}
		if filter == nil {
			return nil, ErrFilterUnavailable
		}
		return NewCommandConverter(filter, cfg.Command), nil
	case KindNone:
		return Identity, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrConverterUnknown, cfg.Kind)
	}
}
