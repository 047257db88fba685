package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSiteFile(t *testing.T, root, name, content string) {
	t.Helper()
	target := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", name, err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func quietSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSiteFile(t, root, "press.hcl", "markdown {\n  converter = \"none\"\n}\n\nlogging {\n  provider = \"none\"\n}\n")
	return root
}

func TestRunWithoutCommandPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"deploy"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "deploy") {
		t.Fatalf("expected error to name the command, got %q", stderr.String())
	}
}

func TestRunPublish(t *testing.T) {
	root := quietSite(t)
	writeSiteFile(t, root, "layouts/base.md", "---\n---\n<main>{{ yield }}</main>\n")
	writeSiteFile(t, root, "posts/a.md", "---\ntitle: A\nlayout: base\n---\n{{ title }}\n")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--root", root, "publish"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	if stdout.String() != "public/a.html\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	page, err := os.ReadFile(filepath.Join(root, "public", "a.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if string(page) != "<main>A\n</main>\n" {
		t.Fatalf("unexpected page %q", page)
	}
}

func TestRunPublishUnmatchedEndFails(t *testing.T) {
	root := quietSite(t)
	writeSiteFile(t, root, "posts/bad.md", "---\ntitle: Bad\n---\ntext\n@end\n")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--root", root, "publish"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(root, "public", "bad.html")); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err %v", err)
	}
}

func TestRunRender(t *testing.T) {
	root := quietSite(t)
	writeSiteFile(t, root, "posts/a.md", "---\ntitle: Tom & Jerry\n---\n<h1>{{ title }}</h1>\n")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"render", "--root", root, "posts/a.md"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	if stdout.String() != "<h1>Tom &amp; Jerry</h1>\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestRunRenderRequiresDocument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"render"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunDraft(t *testing.T) {
	root := quietSite(t)

	var stdout, stderr bytes.Buffer
	args := []string{"--root", root, "draft", "--no-edit", "--title", "First Post"}
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	name := strings.TrimSpace(stdout.String())
	if !strings.HasPrefix(name, "posts/") || !strings.HasSuffix(name, "-first-post.md") {
		t.Fatalf("unexpected draft name %q", name)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(name))); err != nil {
		t.Fatalf("expected draft file: %v", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	root := t.TempDir()
	writeSiteFile(t, root, "press.hcl", "output_dir = \"posts\"\n")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--root", root, "publish"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
