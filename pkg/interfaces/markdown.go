package interfaces

import "context"

// MarkdownConverter turns a rendered document body into HTML. The layout
// chain invokes it once per document it visits.
type MarkdownConverter interface {
	Convert(ctx context.Context, source []byte) ([]byte, error)
}

// ConvertOptions customises in-process Markdown conversion, keeping option
// names readable for configuration files and CLI flags.
type ConvertOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}
