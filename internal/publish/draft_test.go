package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-press/internal/document"
	"github.com/goliatone/go-press/internal/shell"
)

type recordingEditor struct {
	name string
	args []string
	err  error
}

func (r *recordingEditor) Interactive(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)
}

func TestDraftWritesSkeleton(t *testing.T) {
	root := t.TempDir()
	d := NewDrafter(DraftConfig{Root: root, PostsDir: "posts", Now: fixedClock}, nil)

	name, err := d.Draft(context.Background(), DraftRequest{Title: "Hello World"})
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if name != "posts/2024-03-09-hello-world.md" {
		t.Fatalf("unexpected draft name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(root, "posts", "2024-03-09-hello-world.md"))
	if err != nil {
		t.Fatalf("read draft: %v", err)
	}
	doc, err := document.Parse(name, data)
	if err != nil {
		t.Fatalf("parse draft: %v", err)
	}
	if got := doc.Header("title"); got != "Hello World" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := doc.Header("date"); got != "2024-03-09" {
		t.Fatalf("unexpected date %q", got)
	}
	if doc.Layout() != DefaultDraftLayout {
		t.Fatalf("unexpected layout %q", doc.Layout())
	}
	if !doc.Draft() {
		t.Fatalf("expected new post to be a draft")
	}
}

func TestDraftRefusesToOverwrite(t *testing.T) {
	root := t.TempDir()
	d := NewDrafter(DraftConfig{Root: root, PostsDir: "posts", Now: fixedClock}, nil)

	if _, err := d.Draft(context.Background(), DraftRequest{Title: "Same"}); err != nil {
		t.Fatalf("first Draft: %v", err)
	}
	if _, err := d.Draft(context.Background(), DraftRequest{Title: "Same"}); !errors.Is(err, ErrDraftExists) {
		t.Fatalf("expected ErrDraftExists, got %v", err)
	}
}

func TestDraftUntitled(t *testing.T) {
	root := t.TempDir()
	d := NewDrafter(DraftConfig{Root: root, PostsDir: "posts", Now: fixedClock}, nil)

	name, err := d.Draft(context.Background(), DraftRequest{Title: "   "})
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if name != "posts/2024-03-09-untitled.md" {
		t.Fatalf("unexpected draft name %q", name)
	}
}

func TestDraftOpensEditor(t *testing.T) {
	root := t.TempDir()
	editor := &recordingEditor{}
	d := NewDrafter(DraftConfig{Root: root, PostsDir: "posts", Editor: "nano", Now: fixedClock}, editor)

	if _, err := d.Draft(context.Background(), DraftRequest{Title: "Edit me", Edit: true}); err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if editor.name != "nano" {
		t.Fatalf("expected nano, got %q", editor.name)
	}
	want := filepath.Join(root, "posts", "2024-03-09-edit-me.md")
	if len(editor.args) != 1 || editor.args[0] != want {
		t.Fatalf("expected editor to open %s, got %v", want, editor.args)
	}
}

func TestDraftEditorWithArguments(t *testing.T) {
	root := t.TempDir()
	editor := &recordingEditor{}
	d := NewDrafter(DraftConfig{Root: root, PostsDir: "posts", Editor: "  code --wait  -n ", Now: fixedClock}, editor)

	if _, err := d.Draft(context.Background(), DraftRequest{Title: "Args", Edit: true}); err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if editor.name != "code" {
		t.Fatalf("expected program code, got %q", editor.name)
	}
	want := []string{"--wait", "-n", filepath.Join(root, "posts", "2024-03-09-args.md")}
	if diff := cmp.Diff(want, editor.args); diff != "" {
		t.Fatalf("editor args mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftEditorFromEnvironment(t *testing.T) {
	t.Setenv("EDITOR", "vim -u NONE")
	editor := &recordingEditor{}
	d := NewDrafter(DraftConfig{Root: t.TempDir(), PostsDir: "posts", Now: fixedClock}, editor)

	if _, err := d.Draft(context.Background(), DraftRequest{Title: "Env", Edit: true}); err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if editor.name != "vim" || len(editor.args) != 3 || editor.args[0] != "-u" || editor.args[1] != "NONE" {
		t.Fatalf("unexpected editor invocation %q %v", editor.name, editor.args)
	}
}

func TestDraftRunsEditorWithArgumentsThroughShell(t *testing.T) {
	root := t.TempDir()
	d := NewDrafter(DraftConfig{Root: root, PostsDir: "posts", Editor: "true --wait", Now: fixedClock}, shell.NewRunner())

	if _, err := d.Draft(context.Background(), DraftRequest{Title: "Real", Edit: true}); err != nil {
		t.Fatalf("Draft: %v", err)
	}
}

func TestDraftEditorFailureKeepsFile(t *testing.T) {
	root := t.TempDir()
	editor := &recordingEditor{err: errors.New("exit status 1")}
	d := NewDrafter(DraftConfig{Root: root, PostsDir: "posts", Editor: "vi", Now: fixedClock}, editor)

	name, err := d.Draft(context.Background(), DraftRequest{Title: "Kept", Edit: true})
	if err == nil {
		t.Fatalf("expected editor error")
	}
	if _, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(name))); statErr != nil {
		t.Fatalf("expected draft to remain, stat err %v", statErr)
	}
}

func TestDraftSkipsEditorWhenNotRequested(t *testing.T) {
	editor := &recordingEditor{}
	d := NewDrafter(DraftConfig{Root: t.TempDir(), PostsDir: "posts", Editor: "vi", Now: fixedClock}, editor)

	if _, err := d.Draft(context.Background(), DraftRequest{Title: "Quiet"}); err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if editor.name != "" {
		t.Fatalf("expected editor not to run, got %q", editor.name)
	}
}
