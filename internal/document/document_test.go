package document

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestParseSplitsHeadersAndBody(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	doc, err := Parse("testdata/basic.md", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantKeys := []string{"title", "layout", "tags_1", "tags_2", "summary"}
	var gotKeys []string
	for _, header := range doc.Headers() {
		gotKeys = append(gotKeys, header.Key)
	}
	if diff := cmp.Diff(wantKeys, gotKeys); diff != "" {
		t.Fatalf("header keys mismatch (-want +got):\n%s", diff)
	}

	if got := doc.Header("title"); got != "Sample: Document" {
		t.Fatalf("expected title split on first colon, got %q", got)
	}
	if got := doc.Header("summary"); got != "padded value" {
		t.Fatalf("expected trimmed summary, got %q", got)
	}
	if got := doc.Header("missing"); got != "" {
		t.Fatalf("expected empty value for missing header, got %q", got)
	}
	if doc.Layout() != "base" {
		t.Fatalf("expected layout base, got %q", doc.Layout())
	}

	wantBody := []string{"# {{ title }}", "", "Body text."}
	if diff := cmp.Diff(wantBody, doc.Body()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKeepsRawHeaderValue(t *testing.T) {
	doc, err := Parse("raw.md", []byte("---\nname:  spaced \n---\nbody\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	headers := doc.Headers()
	if len(headers) != 1 || headers[0].Value != "  spaced " {
		t.Fatalf("expected raw value to be preserved, got %#v", headers)
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	cases := map[string]string{
		"no delimiters":   "just text\nmore text\n",
		"single delimiter": "---\ntitle: nope\nbody\n",
		"late delimiters":  "intro\n---\ntitle: x\n---\n",
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse("doc.md", []byte(source))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(doc.Headers()) != 0 {
				t.Fatalf("expected no headers, got %#v", doc.Headers())
			}
			if diff := cmp.Diff(splitLines(source), doc.Body()); diff != "" {
				t.Fatalf("expected whole source as body (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDelimitersMustMatchExactly(t *testing.T) {
	cases := map[string]string{
		"indented":        "---\ntitle: a\n  ---\nauthor: b\n---\nbody\n",
		"trailing space":  "---\ntitle: a\n--- \nauthor: b\n---\nbody\n",
		"crlf delimiters": "---\r\ntitle: a\r\n\t---\r\nauthor: b\r\n---\r\nbody\r\n",
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse("doc.md", []byte(source))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if doc.Header("title") != "a" || doc.Header("author") != "b" {
				t.Fatalf("expected both headers, got %#v", doc.Headers())
			}
			if diff := cmp.Diff([]string{"body"}, doc.Body()); diff != "" {
				t.Fatalf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRequiresLeadingDelimiter(t *testing.T) {
	source := "Preface line.\n---\ntitle: late\nlayout: base\n---\nbody\n"

	doc, err := Parse("late.md", []byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Header("title") != "" || doc.Layout() != "" {
		t.Fatalf("expected front matter after text to be ignored, got %#v", doc.Headers())
	}
	want := []string{"Preface line.", "---", "title: late", "layout: base", "---", "body"}
	if diff := cmp.Diff(want, doc.Body()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}

	doc, err = Parse("blank.md", []byte("\n\n---\ntitle: early\n---\nbody\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Header("title") != "early" {
		t.Fatalf("expected leading blank lines to be skipped, got %#v", doc.Headers())
	}
}

func TestParseEmptyFrontMatterAndBody(t *testing.T) {
	doc, err := Parse("empty.md", []byte("---\n---\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Headers()) != 0 {
		t.Fatalf("expected no headers, got %#v", doc.Headers())
	}
	if len(doc.Body()) != 0 {
		t.Fatalf("expected empty body, got %#v", doc.Body())
	}
}

func TestDraftIsAnyNonEmptyValue(t *testing.T) {
	cases := map[string]bool{
		"---\ndraft: true\n---\n":  true,
		"---\ndraft: false\n---\n": true,
		"---\ndraft:\n---\n":       false,
		"---\ntitle: x\n---\n":     false,
	}
	for source, want := range cases {
		doc, err := Parse("draft.md", []byte(source))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if doc.Draft() != want {
			t.Fatalf("Draft() for %q = %v, want %v", source, doc.Draft(), want)
		}
	}
}

func TestLoadAndExists(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/base.md": {Data: []byte("---\ntitle: Base\n---\n{{ yield }}\n")},
	}

	if !Exists(fsys, "layouts/base.md") {
		t.Fatal("expected layout to exist")
	}
	if Exists(fsys, "layouts/missing.md") || Exists(fsys, "") || Exists(fsys, "layouts") {
		t.Fatal("expected missing paths and directories to report false")
	}

	doc, err := Load(fsys, "layouts/base.md")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Path != "layouts/base.md" || doc.Header("title") != "Base" {
		t.Fatalf("unexpected document %#v", doc)
	}

	if _, err := Load(fsys, "layouts/missing.md"); !IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
