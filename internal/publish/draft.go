package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

const (
	DefaultDraftLayout = "post"
	defaultTitle       = "Untitled"
	defaultSlug        = "untitled"
	dateLayout         = "2006-01-02"
)

var ErrDraftExists = errors.New("publish: draft already exists")

// Editor opens a file for interactive editing.
type Editor interface {
	Interactive(ctx context.Context, name string, args ...string) error
}

// DraftConfig controls where drafts go and how they are opened.
type DraftConfig struct {
	Root      string
	PostsDir  string
	Extension string
	Layout    string
	// Editor is the program, with optional leading arguments, used to open
	// new drafts. Empty means $EDITOR.
	Editor string
	Logger interfaces.Logger
	Now    func() time.Time
}

// DraftRequest describes one new post.
type DraftRequest struct {
	Title string
	Edit  bool
}

// Drafter creates draft posts from a front matter skeleton.
type Drafter struct {
	cfg    DraftConfig
	editor Editor
	logger interfaces.Logger
}

// NewDrafter returns a drafter. editor may be nil when drafts are never
// opened.
func NewDrafter(cfg DraftConfig, editor Editor) *Drafter {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Extension == "" {
		cfg.Extension = ".md"
	}
	if cfg.Layout == "" {
		cfg.Layout = DefaultDraftLayout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Drafter{cfg: cfg, editor: editor, logger: logging.Ensure(cfg.Logger)}
}

// FileName builds the `YYYY-MM-DD-<slug>` post name for title.
func (d *Drafter) FileName(title string, at time.Time) string {
	return at.Format(dateLayout) + "-" + slugify(title) + d.cfg.Extension
}

// Draft writes the skeleton and optionally opens it in the editor. It returns
// the new post's path relative to the site root and never overwrites.
func (d *Drafter) Draft(ctx context.Context, req DraftRequest) (string, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle
	}
	now := d.cfg.Now()

	name := path.Join(d.cfg.PostsDir, d.FileName(title, now))
	target := filepath.Join(d.cfg.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create posts dir: %w", err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrDraftExists, name)
	}
	if err != nil {
		return "", fmt.Errorf("create draft: %w", err)
	}
	if _, err := f.WriteString(skeleton(title, now, d.cfg.Layout)); err != nil {
		f.Close()
		return "", fmt.Errorf("write draft: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write draft: %w", err)
	}
	d.logger.Info("draft.created", "document", name)

	if !req.Edit {
		return name, nil
	}
	editor := d.editorCommand()
	if len(editor) == 0 || d.editor == nil {
		d.logger.Warn("draft.editor.unavailable", "document", name)
		return name, nil
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return name, err
	}
	args := append(append([]string(nil), editor[1:]...), abs)
	if err := d.editor.Interactive(ctx, editor[0], args...); err != nil {
		return name, fmt.Errorf("open editor %s: %w", editor[0], err)
	}
	return name, nil
}

// editorCommand splits the configured editor, or $EDITOR, into the program
// and its leading arguments, e.g. `code --wait`.
func (d *Drafter) editorCommand() []string {
	if editor := strings.Fields(d.cfg.Editor); len(editor) > 0 {
		return editor
	}
	return strings.Fields(os.Getenv("EDITOR"))
}

func skeleton(title string, at time.Time, layout string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", title)
	fmt.Fprintf(&b, "date: %s\n", at.Format(dateLayout))
	fmt.Fprintf(&b, "layout: %s\n", layout)
	b.WriteString("draft: true\n")
	b.WriteString("---\n\n")
	return b.String()
}

func slugify(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		return defaultSlug
	}
	return normalized
}
