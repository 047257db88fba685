package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// GoldmarkConverter renders Markdown in process. The engine is built once and
// is safe to reuse.
type GoldmarkConverter struct {
	engine goldmark.Markdown
}

var _ interfaces.MarkdownConverter = (*GoldmarkConverter)(nil)

// NewGoldmarkConverter builds a converter with GFM extensions and raw HTML
// passthrough unless SafeMode is set. Layouts embed child HTML, so raw HTML
// must survive by default.
func NewGoldmarkConverter(opts interfaces.ConvertOptions) *GoldmarkConverter {
	return &GoldmarkConverter{engine: newGoldmarkEngine(opts)}
}

// Convert renders source into HTML.
func (c *GoldmarkConverter) Convert(_ context.Context, source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.ConvertOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// collectExtensions maps names onto goldmark extenders, each registered
// once even when named through aliases. Unknown names are skipped; an empty
// list selects GFM.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[goldmark.Extender]struct{}{}
	for _, name := range names {
		ext, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		extenders = append(extenders, ext)
		seen[ext] = struct{}{}
	}
	return extenders
}

// KnownExtension reports whether name is a registered goldmark extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
