package mcpserver

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"docsearch/internal/search"
	searchmocks "docsearch/internal/search/mocks"
	"docsearch/internal/service"
	storagemocks "docsearch/internal/storage/mocks"
	"docsearch/internal/tools"
	toolmocks "docsearch/internal/tools/mocks"
)

func newTestServer(t *testing.T, caps []string) (*Server, *toolmocks.MockIngestor, *searchmocks.MockEngine) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ingestor := toolmocks.NewMockIngestor(ctrl)
	engine := searchmocks.NewMockEngine(ctrl)
	metadata := storagemocks.NewMockDocumentStore(ctrl)

	registry := tools.NewRegistry()
	tools.NewDocumentTools(ingestor, engine, metadata).RegisterOperations(registry)

	s, err := NewServer(registry, caps, "mcp-session")
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s, ingestor, engine
}

func TestNewServer_RequiresRegistry(t *testing.T) {
	if _, err := NewServer(nil, []string{"read"}, "x"); err == nil {
		t.Error("NewServer(nil) expected error, got nil")
	}
}

func TestServer_HandleUpload(t *testing.T) {
	s, ingestor, _ := newTestServer(t, []string{"read", "write"})

	ingestor.EXPECT().
		Ingest(gomock.Any(), []byte("hello"), "hello.txt", "docs", "mcp-session").
		Return("doc-1", nil)

	_, out, err := s.handleUpload(context.Background(), nil, UploadInput{
		Base64Content: base64.StdEncoding.EncodeToString([]byte("hello")),
		Filename:      "hello.txt",
		Tags:          "docs",
	})
	if err != nil {
		t.Fatalf("handleUpload() error = %v", err)
	}
	if out.DocumentID != "doc-1" {
		t.Errorf("handleUpload() documentId = %q, want doc-1", out.DocumentID)
	}
	if out.Message != "Uploaded successfully" {
		t.Errorf("handleUpload() message = %q, want Uploaded successfully", out.Message)
	}
}

func TestServer_HandleUpload_WithoutWriteCapability(t *testing.T) {
	s, _, _ := newTestServer(t, []string{"read"})

	_, _, err := s.handleUpload(context.Background(), nil, UploadInput{
		Base64Content: base64.StdEncoding.EncodeToString([]byte("x")),
		Filename:      "x.txt",
	})
	if !errors.Is(err, service.ErrForbidden) {
		t.Errorf("handleUpload() error = %v, want ErrForbidden", err)
	}
}

func TestServer_HandleSearch(t *testing.T) {
	s, _, engine := newTestServer(t, []string{"read"})

	engine.EXPECT().
		Search(gomock.Any(), "embedding models", 2).
		Return([]search.Result{
			{Title: "a.md", Content: "first"},
			{Title: "b.md", Content: "second"},
		}, nil)

	limit := 2
	_, out, err := s.handleSearch(context.Background(), nil, SearchInput{
		Query: "embedding models",
		Limit: &limit,
	})
	if err != nil {
		t.Fatalf("handleSearch() error = %v", err)
	}
	if out.Count != 2 || len(out.Results) != 2 {
		t.Fatalf("handleSearch() count = %d with %d results, want 2 and 2", out.Count, len(out.Results))
	}
	if out.Results[0].Title != "a.md" {
		t.Errorf("handleSearch() first title = %q, want a.md", out.Results[0].Title)
	}
}

func TestServer_HandleSearch_AbsentLimitUsesDefault(t *testing.T) {
	s, _, engine := newTestServer(t, []string{"read"})

	engine.EXPECT().
		Search(gomock.Any(), "anything", tools.DefaultSearchLimit).
		Return([]search.Result{}, nil)

	_, out, err := s.handleSearch(context.Background(), nil, SearchInput{Query: "anything"})
	if err != nil {
		t.Fatalf("handleSearch() error = %v", err)
	}
	if out.Count != 0 {
		t.Errorf("handleSearch() count = %d, want 0", out.Count)
	}
}

func TestServer_HandleSearch_ExplicitNonPositiveLimitRejected(t *testing.T) {
	s, _, _ := newTestServer(t, []string{"read"})

	for _, limit := range []int{0, -3} {
		_, _, err := s.handleSearch(context.Background(), nil, SearchInput{
			Query: "anything",
			Limit: &limit,
		})

		var ve *service.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("handleSearch() with limit %d error = %v, want *service.ValidationError", limit, err)
		}
		if ve.Field != "limit" {
			t.Errorf("handleSearch() validation field = %q, want limit", ve.Field)
		}
	}
}
