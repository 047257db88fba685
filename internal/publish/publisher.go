package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/goliatone/go-press/internal/document"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

var ErrOutputDirRequired = errors.New("publish: output directory is required")

// Renderer assembles a document through its layout chain.
type Renderer interface {
	Assemble(ctx context.Context, name string) (string, error)
}

// Config locates posts and output. Root is the site directory on disk; the
// other paths are relative to it.
type Config struct {
	Root            string
	PostsDir        string
	OutputDir       string
	Extension       string
	OutputExtension string
	Logger          interfaces.Logger
}

// Result reports one publish run. Paths are relative to the site root.
type Result struct {
	BuildID string
	Written []string
	Skipped []string
}

// Publisher renders posts one at a time in directory-listing order.
type Publisher struct {
	cfg      Config
	fsys     fs.FS
	renderer Renderer
	logger   interfaces.Logger
}

// NewPublisher reads posts from fsys, which must be rooted at cfg.Root.
func NewPublisher(cfg Config, fsys fs.FS, renderer Renderer) *Publisher {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Extension == "" {
		cfg.Extension = ".md"
	}
	if cfg.OutputExtension == "" {
		cfg.OutputExtension = ".html"
	}
	return &Publisher{
		cfg:      cfg,
		fsys:     fsys,
		renderer: renderer,
		logger:   logging.Ensure(cfg.Logger),
	}
}

// Publish recreates the output directory and writes a page for every post
// whose draft field is empty. The first failing post stops the run; nothing
// is written for it.
func (p *Publisher) Publish(ctx context.Context) (*Result, error) {
	if strings.TrimSpace(p.cfg.OutputDir) == "" {
		return nil, ErrOutputDirRequired
	}

	result := &Result{BuildID: uuid.NewString()}
	logger := logging.WithFields(p.logger, map[string]any{"build_id": result.BuildID})

	entries, err := fs.ReadDir(p.fsys, p.cfg.PostsDir)
	if err != nil {
		return result, fmt.Errorf("read posts %s: %w", p.cfg.PostsDir, err)
	}

	outDir := filepath.Join(p.cfg.Root, filepath.FromSlash(p.cfg.OutputDir))
	if err := os.RemoveAll(outDir); err != nil {
		return result, fmt.Errorf("clean output %s: %w", p.cfg.OutputDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("create output %s: %w", p.cfg.OutputDir, err)
	}
	logger.Info("publish.start", "posts", p.cfg.PostsDir, "output", p.cfg.OutputDir)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if entry.IsDir() || path.Ext(entry.Name()) != p.cfg.Extension {
			continue
		}

		source := path.Join(p.cfg.PostsDir, entry.Name())
		doc, err := document.Load(p.fsys, source)
		if err != nil {
			return result, fmt.Errorf("publish %s: %w", source, err)
		}
		if doc.Draft() {
			logger.Debug("publish.skip_draft", "document", source)
			result.Skipped = append(result.Skipped, source)
			continue
		}

		page, err := p.renderer.Assemble(ctx, source)
		if err != nil {
			logger.Error("publish.render_failed", "document", source, "error", err)
			return result, fmt.Errorf("publish %s: %w", source, err)
		}

		name := strings.TrimSuffix(entry.Name(), p.cfg.Extension) + p.cfg.OutputExtension
		target := filepath.Join(outDir, name)
		if err := atomic.WriteFile(target, strings.NewReader(page)); err != nil {
			return result, fmt.Errorf("write %s: %w", target, err)
		}
		written := path.Join(p.cfg.OutputDir, name)
		logger.Info("publish.write", "document", source, "output", written)
		result.Written = append(result.Written, written)
	}

	logger.Info("publish.complete", "written", len(result.Written), "skipped", len(result.Skipped))
	return result, nil
}
