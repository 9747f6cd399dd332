package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"docsearch/internal/search"
	searchmocks "docsearch/internal/search/mocks"
	"docsearch/internal/storage"
	storagemocks "docsearch/internal/storage/mocks"
	"docsearch/internal/tools"
	toolmocks "docsearch/internal/tools/mocks"
)

func newTestServer(t *testing.T) (*httptest.Server, *toolmocks.MockIngestor, *searchmocks.MockEngine, *storagemocks.MockDocumentStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ingestor := toolmocks.NewMockIngestor(ctrl)
	engine := searchmocks.NewMockEngine(ctrl)
	metadata := storagemocks.NewMockDocumentStore(ctrl)

	registry := tools.NewRegistry()
	tools.NewDocumentTools(ingestor, engine, metadata).RegisterOperations(registry)

	srv := httptest.NewServer(NewRouter(&Deps{Registry: registry}))
	t.Cleanup(srv.Close)
	return srv, ingestor, engine, metadata
}

func TestRouter_Health(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/health status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestRouter_UploadFlowsHeadersToPipeline(t *testing.T) {
	srv, ingestor, _, _ := newTestServer(t)

	ingestor.EXPECT().
		Ingest(gomock.Any(), []byte("hello"), "hello.txt", "docs", "alice").
		Return("doc-1", nil)

	body, _ := json.Marshal(tools.UploadInput{
		Base64Content: base64.StdEncoding.EncodeToString([]byte("hello")),
		Filename:      "hello.txt",
		Tags:          "docs",
	})
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/documents", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Principal", "alice")
	req.Header.Set("X-Scopes", "read,write")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/documents error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("POST /api/documents status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var out tools.UploadOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("response decode error: %v", err)
	}
	if out.DocumentID != "doc-1" {
		t.Errorf("documentId = %q, want doc-1", out.DocumentID)
	}
}

func TestRouter_UploadWithoutWriteScope(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	body, _ := json.Marshal(tools.UploadInput{
		Base64Content: base64.StdEncoding.EncodeToString([]byte("hello")),
		Filename:      "hello.txt",
	})
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/documents", bytes.NewReader(body))
	req.Header.Set("X-Scopes", "read")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/documents error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("POST /api/documents status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
}

func TestRouter_Search(t *testing.T) {
	srv, _, engine, _ := newTestServer(t)

	engine.EXPECT().
		Search(gomock.Any(), "chunking strategy", tools.DefaultSearchLimit).
		Return([]search.Result{{Title: "chunks.md", Content: "Split on word boundaries."}}, nil)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/search",
		bytes.NewReader([]byte(`{"query":"chunking strategy"}`)))
	req.Header.Set("X-Scopes", "read")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/search error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("POST /api/search status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var results []tools.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		t.Fatalf("response decode error: %v", err)
	}
	if len(results) != 1 || results[0].Title != "chunks.md" {
		t.Errorf("results = %+v, want one result for chunks.md", results)
	}
}

func TestRouter_GetDocument(t *testing.T) {
	srv, _, _, metadata := newTestServer(t)

	metadata.EXPECT().
		GetByDocumentID(gomock.Any(), "doc-1").
		Return(&storage.DocumentMetadata{
			DocumentID: "doc-1",
			Title:      "notes.txt",
			FileType:   "txt",
			Tags:       []string{"go"},
			UploadedBy: "alice",
		}, nil)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/documents/doc-1", nil)
	req.Header.Set("X-Scopes", "read")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/documents/doc-1 error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/documents/doc-1 status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var detail tools.DocumentDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("response decode error: %v", err)
	}
	if detail.DocumentID != "doc-1" || detail.Title != "notes.txt" {
		t.Errorf("response = %+v, want the doc-1 record", detail)
	}
}

func TestRouter_GetDocument_Missing(t *testing.T) {
	srv, _, _, metadata := newTestServer(t)

	metadata.EXPECT().
		GetByDocumentID(gomock.Any(), "doc-gone").
		Return(nil, storage.ErrNotFound)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/documents/doc-gone", nil)
	req.Header.Set("X-Scopes", "read")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/documents/doc-gone error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /api/documents/doc-gone status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/unknown")
	if err != nil {
		t.Fatalf("GET /api/unknown error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /api/unknown status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
