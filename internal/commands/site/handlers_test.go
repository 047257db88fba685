package sitecmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-press/internal/publish"
)

type stubService struct {
	publishCalls int
	draftCalls   []publish.DraftRequest
	renderCalls  []string

	publishResult *publish.Result
	draftName     string
	page          string

	publishErr error
	draftErr   error
	renderErr  error
}

func (s *stubService) Publish(context.Context) (*publish.Result, error) {
	s.publishCalls++
	if s.publishErr != nil {
		return nil, s.publishErr
	}
	return s.publishResult, nil
}

func (s *stubService) Draft(_ context.Context, req publish.DraftRequest) (string, error) {
	s.draftCalls = append(s.draftCalls, req)
	return s.draftName, s.draftErr
}

func (s *stubService) Render(_ context.Context, name string) (string, error) {
	s.renderCalls = append(s.renderCalls, name)
	return s.page, s.renderErr
}

func TestPublishHandlerListsWrittenPages(t *testing.T) {
	service := &stubService{publishResult: &publish.Result{
		BuildID: "build-1",
		Written: []string{"public/a.html", "public/b.html"},
		Skipped: []string{"posts/c.md"},
	}}
	var out bytes.Buffer

	if err := NewPublishHandler(service, nil).Execute(context.Background(), PublishCommand{Out: &out}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if service.publishCalls != 1 {
		t.Fatalf("expected one publish call, got %d", service.publishCalls)
	}
	if got := out.String(); got != "public/a.html\npublic/b.html\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPublishHandlerWrapsFailures(t *testing.T) {
	service := &stubService{publishErr: errors.New("disk full")}

	err := NewPublishHandler(service, nil).Execute(context.Background(), PublishCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestDraftHandlerForwardsRequest(t *testing.T) {
	service := &stubService{draftName: "posts/2024-01-01-hi.md"}
	var out bytes.Buffer

	err := NewDraftHandler(service, nil).Execute(context.Background(), DraftCommand{Title: "Hi", Edit: true, Out: &out})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(service.draftCalls) != 1 || service.draftCalls[0] != (publish.DraftRequest{Title: "Hi", Edit: true}) {
		t.Fatalf("unexpected draft calls %+v", service.draftCalls)
	}
	if out.String() != "posts/2024-01-01-hi.md\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestDraftHandlerRejectsMultilineTitle(t *testing.T) {
	service := &stubService{}

	err := NewDraftHandler(service, nil).Execute(context.Background(), DraftCommand{Title: "a\nlayout: evil"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.draftCalls) != 0 {
		t.Fatalf("expected service not to be called")
	}
}

func TestRenderHandlerWritesPage(t *testing.T) {
	service := &stubService{page: "<html></html>\n"}
	var out bytes.Buffer

	err := NewRenderHandler(service, nil).Execute(context.Background(), RenderCommand{Document: "posts/a.md", Out: &out})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "<html></html>\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if len(service.renderCalls) != 1 || service.renderCalls[0] != "posts/a.md" {
		t.Fatalf("unexpected render calls %v", service.renderCalls)
	}
}

func TestRenderHandlerValidation(t *testing.T) {
	cases := map[string]RenderCommand{
		"missing document": {Out: &bytes.Buffer{}},
		"missing output":   {Document: "posts/a.md"},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			service := &stubService{}
			err := NewRenderHandler(service, nil).Execute(context.Background(), msg)
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
			if len(service.renderCalls) != 0 {
				t.Fatalf("expected service not to be called")
			}
		})
	}
}

func TestRenderHandlerDoesNotWriteOnFailure(t *testing.T) {
	service := &stubService{page: "partial", renderErr: errors.New("unmatched @end")}
	var out bytes.Buffer

	if err := NewRenderHandler(service, nil).Execute(context.Background(), RenderCommand{Document: "posts/a.md", Out: &out}); err == nil {
		t.Fatalf("expected error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}
