package document

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

const (
	// LayoutField names the parent layout of a document.
	LayoutField = "layout"
	// DraftField marks a document as excluded from publishing.
	DraftField = "draft"
)

// Document is a parsed source file.
type Document struct {
	Path    string
	headers *headerSet
	body    []string
}

// Parse builds a Document from raw source bytes.
func Parse(path string, source []byte) (*Document, error) {
	headers, body, err := parseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", path, err)
	}
	return &Document{
		Path:    path,
		headers: headers,
		body:    splitLines(string(body)),
	}, nil
}

// Load reads and parses name from fsys. Missing files surface fs.ErrNotExist.
func Load(fsys fs.FS, name string) (*Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("document load %s: %w", name, err)
	}
	return Parse(name, data)
}

// Exists reports whether name resolves to a regular file in fsys.
func Exists(fsys fs.FS, name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsNotExist reports whether err was caused by a missing document.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Headers returns the front matter entries in order of first appearance.
func (d *Document) Headers() []Header {
	if d == nil || d.headers == nil {
		return nil
	}
	return append([]Header(nil), d.headers.entries...)
}

// Header returns the space-trimmed value of name, or "" when absent.
func (d *Document) Header(name string) string {
	if d == nil || d.headers == nil {
		return ""
	}
	pos, ok := d.headers.index[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(d.headers.entries[pos].Value)
}

// Body returns the lines following the front matter.
func (d *Document) Body() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.body...)
}

// Layout is the parent layout named by this document, if any.
func (d *Document) Layout() string {
	return d.Header(LayoutField)
}

// Draft reports whether the document is excluded from publishing. Any
// non-empty draft value counts; values are never coerced.
func (d *Document) Draft() bool {
	return d.Header(DraftField) != ""
}
