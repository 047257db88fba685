package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

const delimiter = "---"

// headerFormat teaches adrg/frontmatter the `---` fenced block used by press
// documents. Values are not YAML: each line is split on its first colon.
var headerFormat = &frontmatter.Format{
	Start:     delimiter,
	End:       delimiter,
	Unmarshal: unmarshalHeaders,
}

// Header is a single front matter entry. Value keeps the raw text after the
// first colon, including surrounding spaces.
type Header struct {
	Key   string
	Value string
}

type headerSet struct {
	entries []Header
	index   map[string]int
}

func newHeaderSet() *headerSet {
	return &headerSet{index: map[string]int{}}
}

func (s *headerSet) add(key, value string) {
	if pos, ok := s.index[key]; ok {
		s.entries[pos].Value = value
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Header{Key: key, Value: value})
}

func unmarshalHeaders(data []byte, v any) error {
	set, ok := v.(*headerSet)
	if !ok {
		return fmt.Errorf("document: unexpected front matter target %T", v)
	}
	for _, line := range splitLines(string(data)) {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		set.add(key, value)
	}
	return nil
}

// parseFrontMatter splits source into its header set and body. Sources that
// do not open with a delimiter, or never close it, have no headers and the
// whole content is body.
func parseFrontMatter(source []byte) (*headerSet, []byte, error) {
	set := newHeaderSet()
	bounds, ok := locateFrontMatter(source)
	if !ok {
		return set, source, nil
	}

	// The library trims lines before matching delimiters, so a block holding
	// an indented `---` is read directly.
	header := source[bounds.headerStart:bounds.headerEnd]
	if hasLooseDelimiter(header) {
		if err := unmarshalHeaders(header, set); err != nil {
			return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
		}
		return set, source[bounds.end:], nil
	}

	block := source[bounds.open:bounds.end]
	if _, err := frontmatter.Parse(bytes.NewReader(block), set, headerFormat); err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return set, source[bounds.end:], nil
}

// frontMatterBounds holds byte offsets into the source: open is the start of
// the opening delimiter line, header spans the lines between the delimiters
// and end is just past the closing delimiter line.
type frontMatterBounds struct {
	open        int
	headerStart int
	headerEnd   int
	end         int
}

// locateFrontMatter finds the two delimiter lines. Only lines equal to
// exactly `---` count, and the first one must open the document after any
// blank lines.
func locateFrontMatter(source []byte) (frontMatterBounds, bool) {
	var (
		bounds frontMatterBounds
		opened bool
	)
	for offset := 0; offset < len(source); {
		lineEnd, next := len(source), len(source)
		if idx := bytes.IndexByte(source[offset:], '\n'); idx >= 0 {
			lineEnd = offset + idx
			next = lineEnd + 1
		}
		line := strings.TrimSuffix(string(source[offset:lineEnd]), "\r")

		switch {
		case line == delimiter && !opened:
			bounds.open = offset
			bounds.headerStart = next
			opened = true
		case line == delimiter:
			bounds.headerEnd = offset
			bounds.end = next
			return bounds, true
		case !opened && strings.TrimSpace(line) != "":
			return frontMatterBounds{}, false
		}
		offset = next
	}
	return frontMatterBounds{}, false
}

func hasLooseDelimiter(header []byte) bool {
	for _, line := range splitLines(string(header)) {
		if strings.TrimSpace(line) == delimiter {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
