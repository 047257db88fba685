// Package layout assembles a document through its chain of parent layouts.
package layout

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-press/internal/document"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/template"
	"github.com/goliatone/go-press/pkg/interfaces"
)

const (
	DefaultYieldVariable = "yield"
	DefaultExtension     = ".md"
	DefaultMaxDepth      = 32
)

var (
	ErrDocumentNotFound = errors.New("layout: document not found")
	ErrLayoutCycle      = errors.New("layout: layout chain too deep")
)

const codeLayoutCycle = "TEMPLATE_LAYOUT_CYCLE"

// Config wires the assembler's collaborators.
type Config struct {
	FS             fs.FS
	LayoutsDir     string
	Extension      string
	YieldVariable  string
	MaxDepth       int
	Converter      interfaces.MarkdownConverter
	Runner         interfaces.CommandRunner
	Logger         interfaces.Logger
	// TemplateLogger receives render events. Defaults to Logger.
	TemplateLogger interfaces.Logger
}

// Assembler renders documents and walks their layout chains.
type Assembler struct {
	fsys       fs.FS
	layoutsDir string
	extension  string
	yield      string
	maxDepth   int
	converter  interfaces.MarkdownConverter
	runner     interfaces.CommandRunner
	logger     interfaces.Logger
	engineLog  interfaces.Logger
}

// NewAssembler applies defaults to cfg. A nil converter leaves bodies as
// rendered.
func NewAssembler(cfg Config) *Assembler {
	a := &Assembler{
		fsys:       cfg.FS,
		layoutsDir: strings.TrimSpace(cfg.LayoutsDir),
		extension:  cfg.Extension,
		yield:      strings.TrimSpace(cfg.YieldVariable),
		maxDepth:   cfg.MaxDepth,
		converter:  cfg.Converter,
		runner:     cfg.Runner,
		logger:     logging.Ensure(cfg.Logger),
		engineLog:  cfg.TemplateLogger,
	}
	if a.engineLog == nil {
		a.engineLog = logging.WithFields(a.logger, map[string]any{"component": "template"})
	}
	if a.layoutsDir == "" {
		a.layoutsDir = "layouts"
	}
	if a.extension == "" {
		a.extension = DefaultExtension
	}
	if a.yield == "" {
		a.yield = DefaultYieldVariable
	}
	if a.maxDepth <= 0 {
		a.maxDepth = DefaultMaxDepth
	}
	return a
}

// YieldVariable names the binding that carries child output into layouts.
func (a *Assembler) YieldVariable() string {
	return a.yield
}

// LayoutPath resolves a layout name to its document path, or "" for an empty
// name.
func (a *Assembler) LayoutPath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return path.Join(a.layoutsDir, name+a.extension)
}

// Assemble renders the document at name through its layout chain with a
// fresh scope and returns the final page.
func (a *Assembler) Assemble(ctx context.Context, name string) (string, error) {
	return a.AssembleWith(ctx, template.NewEnv(), name)
}

// AssembleWith is Assemble against a caller supplied scope, which is left
// holding every field of every document visited.
func (a *Assembler) AssembleWith(ctx context.Context, env *template.Env, name string) (string, error) {
	if !document.Exists(a.fsys, name) {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	c := &chain{assembler: a, env: env}
	return c.assemble(ctx, name)
}

// chain carries the scope and nesting depth of one top-level assembly. It
// also serves `@include` for the documents it renders.
type chain struct {
	assembler *Assembler
	env       *template.Env
	depth     int
}

func (c *chain) assemble(ctx context.Context, name string) (string, error) {
	a := c.assembler
	engine := template.New(
		template.WithIncluder(c),
		template.WithCommandRunner(a.runner),
		template.WithLogger(a.engineLog),
	)

	var output string
	for name != "" {
		if c.depth >= a.maxDepth {
			return "", layoutCycleError(name, a.maxDepth)
		}

		doc, err := document.Load(a.fsys, name)
		if document.IsNotExist(err) {
			break
		}
		if err != nil {
			return "", err
		}

		logger := logging.WithDocumentContext(a.logger, doc.Path, doc.Layout())
		logger.Debug("layout.step", "depth", c.depth)

		c.env.LoadDocument(doc)
		rendered, err := engine.Render(ctx, c.env, doc.Body())
		if err != nil {
			return "", fmt.Errorf("render %s: %w", doc.Path, err)
		}

		output = a.convert(ctx, logger, rendered)
		c.env.SetRaw(a.yield, output)

		name = a.LayoutPath(doc.Layout())
		c.depth++
	}
	return output, nil
}

// Include assembles the named layout against the shared scope. The caller's
// yield binding is restored afterwards so it keeps embedding its own child.
func (c *chain) Include(ctx context.Context, env *template.Env, name string) (string, error) {
	a := c.assembler
	saved, existed := env.Lookup(a.yield)
	defer env.Restore(a.yield, saved, existed)

	nested := &chain{assembler: a, env: env, depth: c.depth + 1}
	target := a.LayoutPath(name)
	if !document.Exists(a.fsys, target) {
		a.logger.Warn("layout.include.missing", "name", name, "path", target)
		return "", nil
	}
	return nested.assemble(ctx, target)
}

// convert runs the Markdown converter. A failing converter is not fatal: its
// partial output is used.
func (a *Assembler) convert(ctx context.Context, logger interfaces.Logger, rendered string) string {
	if a.converter == nil {
		return rendered
	}
	out, err := a.converter.Convert(ctx, []byte(rendered))
	if err != nil {
		logger.Warn("layout.convert.failed", "error", err)
	}
	return string(out)
}

func layoutCycleError(name string, limit int) error {
	return goerrors.Wrap(ErrLayoutCycle, goerrors.CategoryValidation,
		fmt.Sprintf("%s: more than %d nested layouts or includes", name, limit)).
		WithTextCode(codeLayoutCycle)
}
