// Package press publishes a directory of posts through recursive,
// block-structured templates and their layout chains.
package press

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-press/internal/layout"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/logging/gologger"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/internal/publish"
	"github.com/goliatone/go-press/internal/shell"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Option customises a Site.
type Option func(*siteOptions)

type siteOptions struct {
	root      string
	provider  interfaces.LoggerProvider
	converter interfaces.MarkdownConverter
	runner    interfaces.CommandRunner
	editor    publish.Editor
	now       func() time.Time
}

// WithRoot sets the site directory. Defaults to the working directory.
func WithRoot(dir string) Option {
	return func(o *siteOptions) {
		o.root = dir
	}
}

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *siteOptions) {
		o.provider = provider
	}
}

// WithConverter overrides the converter selected by Config.Markdown.
func WithConverter(converter interfaces.MarkdownConverter) Option {
	return func(o *siteOptions) {
		o.converter = converter
	}
}

// WithCommandRunner replaces the shell used for `@cmd` lines.
func WithCommandRunner(runner interfaces.CommandRunner) Option {
	return func(o *siteOptions) {
		o.runner = runner
	}
}

// WithEditor replaces the program launcher used to open drafts.
func WithEditor(editor publish.Editor) Option {
	return func(o *siteOptions) {
		o.editor = editor
	}
}

// WithClock sets the clock used to date drafts.
func WithClock(now func() time.Time) Option {
	return func(o *siteOptions) {
		o.now = now
	}
}

// Site is a configured press site rooted in one directory.
type Site struct {
	cfg       Config
	root      string
	assembler *layout.Assembler
	publisher *publish.Publisher
	drafter   *publish.Drafter
	provider  interfaces.LoggerProvider
}

// New validates cfg and wires the renderer, publisher and drafter.
func New(cfg Config, opts ...Option) (*Site, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := siteOptions{root: "."}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	provider := o.provider
	if provider == nil {
		p, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	sh := shell.NewRunner(
		shell.WithShell(cfg.Shell),
		shell.WithDir(o.root),
		shell.WithLogger(logging.ModuleLogger(provider, "press.shell")),
	)

	runner := o.runner
	if runner == nil {
		runner = sh
	}

	converter := o.converter
	if converter == nil {
		c, err := markdown.New(markdown.Config{
			Kind:    cfg.Markdown.Converter,
			Command: cfg.Markdown.Command,
			Options: interfaces.ConvertOptions{
				Extensions: cfg.Markdown.Extensions,
				HardWraps:  cfg.Markdown.HardWraps,
				SafeMode:   !cfg.Markdown.Unsafe,
			},
		}, sh)
		if err != nil {
			return nil, err
		}
		converter = c
	}

	editor := o.editor
	if editor == nil {
		editor = sh
	}

	fsys := os.DirFS(o.root)
	assembler := layout.NewAssembler(layout.Config{
		FS:             fsys,
		LayoutsDir:     cfg.LayoutsDir,
		Extension:      cfg.Extension,
		YieldVariable:  cfg.YieldVariable,
		MaxDepth:       cfg.MaxDepth,
		Converter:      converter,
		Runner:         runner,
		Logger:         logging.LayoutLogger(provider),
		TemplateLogger: logging.TemplateLogger(provider),
	})

	publishLogger := logging.PublishLogger(provider)
	publisher := publish.NewPublisher(publish.Config{
		Root:            o.root,
		PostsDir:        cfg.PostsDir,
		OutputDir:       cfg.OutputDir,
		Extension:       cfg.Extension,
		OutputExtension: cfg.OutputExtension,
		Logger:          publishLogger,
	}, fsys, assembler)

	drafter := publish.NewDrafter(publish.DraftConfig{
		Root:      o.root,
		PostsDir:  cfg.PostsDir,
		Extension: cfg.Extension,
		Editor:    cfg.Editor,
		Logger:    publishLogger,
		Now:       o.now,
	}, editor)

	return &Site{
		cfg:       cfg,
		root:      o.root,
		assembler: assembler,
		publisher: publisher,
		drafter:   drafter,
		provider:  provider,
	}, nil
}

// Config returns the validated site configuration.
func (s *Site) Config() Config {
	return s.cfg
}

// LoggerProvider returns the provider the site logs through. It is nil when
// logging is disabled.
func (s *Site) LoggerProvider() interfaces.LoggerProvider {
	return s.provider
}

// Render assembles the document at name, relative to the site root, through
// its layout chain and returns the final page.
func (s *Site) Render(ctx context.Context, name string) (string, error) {
	rel, err := s.relative(name)
	if err != nil {
		return "", err
	}
	return s.assembler.Assemble(ctx, rel)
}

// Publish writes every non-draft post to the output directory.
func (s *Site) Publish(ctx context.Context) (*PublishResult, error) {
	return s.publisher.Publish(ctx)
}

// Draft creates a new draft post and returns its path relative to the site
// root.
func (s *Site) Draft(ctx context.Context, req DraftRequest) (string, error) {
	return s.drafter.Draft(ctx, req)
}

func (s *Site) relative(name string) (string, error) {
	if filepath.IsAbs(name) {
		root, err := filepath.Abs(s.root)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(root, name)
		if err != nil {
			return "", err
		}
		name = rel
	}
	name = path.Clean(filepath.ToSlash(name))
	if name == ".." || strings.HasPrefix(name, "../") {
		return "", fmt.Errorf("%w: %s is outside the site root", ErrDocumentNotFound, name)
	}
	return name, nil
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "none":
		return nil, nil
	default:
		return gologger.NewProvider(gologger.Config{
			Level:  cfg.Level,
			Format: cfg.Format,
		})
	}
}
