package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goliatone/go-press/internal/logging/gologger"
	"github.com/goliatone/go-press/internal/markdown"
)

var ErrPostsDirRequired = errors.New("press config: posts directory is required")
var ErrLayoutsDirRequired = errors.New("press config: layouts directory is required")
var ErrOutputDirRequired = errors.New("press config: output directory is required")

// ErrOutputDirOverlaps guards sources from the output directory being
// removed on every publish.
var ErrOutputDirOverlaps = errors.New("press config: output directory must not contain posts or layouts")
var ErrExtensionInvalid = errors.New("press config: extensions must start with a dot")
var ErrYieldVariableInvalid = errors.New("press config: yield variable must match [a-z_]+")
var ErrMaxDepthInvalid = errors.New("press config: max depth must be positive")
var ErrMarkdownConverterUnknown = errors.New("press config: markdown converter is invalid")
var ErrMarkdownCommandRequired = errors.New("press config: markdown command is required for the command converter")
var ErrMarkdownExtensionUnknown = errors.New("press config: markdown extension is invalid")
var ErrLoggingProviderUnknown = errors.New("press config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("press config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("press config: logging format is invalid")

var variablePattern = regexp.MustCompile(`^[a-z_]+$`)

// Config aggregates the directory layout, renderer and logging options of a
// site.
type Config struct {
	PostsDir        string
	LayoutsDir      string
	OutputDir       string
	Extension       string
	OutputExtension string
	YieldVariable   string
	MaxDepth        int
	// Editor opens new drafts. Empty falls back to $EDITOR.
	Editor   string
	Shell    string
	Markdown MarkdownConfig
	Logging  LoggingConfig
}

// MarkdownConfig selects how rendered bodies are converted to HTML.
type MarkdownConfig struct {
	Converter  string
	Command    string
	Extensions []string
	HardWraps  bool
	// Unsafe lets raw HTML in bodies through the goldmark renderer. Layouts
	// rely on it to embed child output.
	Unsafe bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider string
	Level    string
	Format   string
}

// DefaultConfig returns the conventional site layout.
func DefaultConfig() Config {
	return Config{
		PostsDir:        "posts",
		LayoutsDir:      "layouts",
		OutputDir:       "public",
		Extension:       ".md",
		OutputExtension: ".html",
		YieldVariable:   "yield",
		MaxDepth:        32,
		Shell:           "/bin/sh",
		Markdown: MarkdownConfig{
			Converter: markdown.KindGoldmark,
			Unsafe:    true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "warn",
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.PostsDir) == "" {
		return ErrPostsDirRequired
	}
	if strings.TrimSpace(cfg.LayoutsDir) == "" {
		return ErrLayoutsDirRequired
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	for _, source := range []string{cfg.PostsDir, cfg.LayoutsDir} {
		if contains(cfg.OutputDir, source) {
			return fmt.Errorf("%w: %s", ErrOutputDirOverlaps, source)
		}
	}
	for _, ext := range []string{cfg.Extension, cfg.OutputExtension} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %q", ErrExtensionInvalid, ext)
		}
	}
	if !variablePattern.MatchString(cfg.YieldVariable) {
		return fmt.Errorf("%w: %q", ErrYieldVariableInvalid, cfg.YieldVariable)
	}
	if cfg.MaxDepth <= 0 {
		return ErrMaxDepthInvalid
	}

	switch normalize(cfg.Markdown.Converter) {
	case markdown.KindGoldmark, markdown.KindNone:
	case markdown.KindCommand:
		if strings.TrimSpace(cfg.Markdown.Command) == "" {
			return ErrMarkdownCommandRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrMarkdownConverterUnknown, cfg.Markdown.Converter)
	}
	for _, ext := range cfg.Markdown.Extensions {
		if !markdown.KnownExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !gologger.ValidLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// contains reports whether dir is parent or equal to other.
func contains(dir, other string) bool {
	dir = filepath.Clean(dir)
	other = filepath.Clean(other)
	if dir == other {
		return true
	}
	rel, err := filepath.Rel(dir, other)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
