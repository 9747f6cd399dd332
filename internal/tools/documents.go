package tools

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingestor.go -package=mocks docsearch/internal/tools Ingestor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"docsearch/internal/contextutil"
	"docsearch/internal/search"
	"docsearch/internal/service"
	"docsearch/internal/storage"
)

// Operation names registered by DocumentTools.
const (
	OpUploadDocument  = "uploadDocument"
	OpSearchDocuments = "searchDocuments"
	OpListDocuments   = "listDocuments"
	OpGetDocument     = "getDocument"
)

// DefaultSearchLimit applies when a search request leaves the limit
// unspecified.
const DefaultSearchLimit = 5

// Ingestor is the part of the ingestion pipeline the tools need.
type Ingestor interface {
	Ingest(ctx context.Context, content []byte, filename, tags, principal string) (string, error)
}

// UploadInput is the payload of the uploadDocument operation.
type UploadInput struct {
	Base64Content string `json:"base64Content"`
	Filename      string `json:"filename"`
	Tags          string `json:"tags,omitempty"` // Comma-separated, optional
}

// UploadOutput is the result of the uploadDocument operation.
type UploadOutput struct {
	DocumentID string `json:"documentId"`
	Message    string `json:"message"`
}

// SearchInput is the payload of the searchDocuments operation.
// A nil Limit means "use the default"; an explicit non-positive limit is a
// validation error.
type SearchInput struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

// SearchResult is one entry of the searchDocuments result.
type SearchResult struct {
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ListInput is the payload of the listDocuments operation. Exactly one of
// Uploader or Tag selects the read path; both empty is a validation error.
type ListInput struct {
	Uploader string `json:"uploader,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// GetInput is the payload of the getDocument operation.
type GetInput struct {
	DocumentID string `json:"documentId"`
}

// DocumentDetail is the result of the getDocument operation: the full
// metadata record for one document.
type DocumentDetail struct {
	DocumentID  string    `json:"documentId"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	FileType    string    `json:"fileType"`
	FileSize    int64     `json:"fileSizeBytes"`
	StoragePath string    `json:"storagePath"`
	Summary     string    `json:"summary,omitempty"`
	Tags        []string  `json:"tags"`
	UploadedAt  time.Time `json:"uploadedAt"`
	UploadedBy  string    `json:"uploadedBy"`
}

// DocumentSummary is one entry of the listDocuments result.
type DocumentSummary struct {
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	FileType   string    `json:"fileType"`
	Tags       []string  `json:"tags"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy string    `json:"uploadedBy"`
}

// DocumentTools implements the caller-facing document operations on top of
// the ingestion pipeline, the query engine, and the metadata store.
type DocumentTools struct {
	ingestor Ingestor
	engine   search.Engine
	metadata storage.DocumentStore
}

// NewDocumentTools creates the document operations.
func NewDocumentTools(ingestor Ingestor, engine search.Engine, metadata storage.DocumentStore) *DocumentTools {
	return &DocumentTools{
		ingestor: ingestor,
		engine:   engine,
		metadata: metadata,
	}
}

// RegisterOperations registers uploadDocument, searchDocuments,
// listDocuments, and getDocument with their required capabilities.
func (t *DocumentTools) RegisterOperations(r *Registry) {
	r.Register(OpUploadDocument, CapabilityWrite, t.handleUpload)
	r.Register(OpSearchDocuments, CapabilityRead, t.handleSearch)
	r.Register(OpListDocuments, CapabilityRead, t.handleList)
	r.Register(OpGetDocument, CapabilityRead, t.handleGet)
}

func (t *DocumentTools) handleUpload(ctx context.Context, input json.RawMessage) (any, error) {
	var in UploadInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, &service.ValidationError{Field: "input", Message: "malformed JSON payload"}
	}
	return t.UploadDocument(ctx, in)
}

// UploadDocument decodes the payload and runs the ingestion pipeline.
// The acting principal is taken from the request context.
func (t *DocumentTools) UploadDocument(ctx context.Context, in UploadInput) (*UploadOutput, error) {
	if in.Filename == "" {
		return nil, &service.ValidationError{Field: "filename", Message: "must not be empty"}
	}

	content, err := base64.StdEncoding.DecodeString(in.Base64Content)
	if err != nil {
		return nil, &service.ValidationError{Field: "base64Content", Message: "content is not valid base64"}
	}

	principal := contextutil.PrincipalFromContext(ctx)
	documentID, err := t.ingestor.Ingest(ctx, content, in.Filename, in.Tags, principal)
	if err != nil {
		return nil, err
	}

	return &UploadOutput{
		DocumentID: documentID,
		Message:    "Uploaded successfully",
	}, nil
}

func (t *DocumentTools) handleSearch(ctx context.Context, input json.RawMessage) (any, error) {
	var in SearchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, &service.ValidationError{Field: "input", Message: "malformed JSON payload"}
	}
	return t.SearchDocuments(ctx, in)
}

// SearchDocuments runs a semantic query. A nil limit falls back to
// DefaultSearchLimit.
func (t *DocumentTools) SearchDocuments(ctx context.Context, in SearchInput) ([]SearchResult, error) {
	if in.Query == "" {
		return nil, &service.ValidationError{Field: "query", Message: "must not be empty"}
	}

	limit := DefaultSearchLimit
	if in.Limit != nil {
		if *in.Limit <= 0 {
			return nil, &service.ValidationError{Field: "limit", Message: "must be a positive integer"}
		}
		limit = *in.Limit
	}

	found, err := t.engine.Search(ctx, in.Query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(found))
	for i, r := range found {
		results[i] = SearchResult{
			Title:      r.Title,
			Author:     r.Author,
			Content:    r.Content,
			Tags:       r.Tags,
			UploadedAt: r.UploadedAt,
		}
	}
	return results, nil
}

func (t *DocumentTools) handleGet(ctx context.Context, input json.RawMessage) (any, error) {
	var in GetInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, &service.ValidationError{Field: "input", Message: "malformed JSON payload"}
	}
	return t.GetDocument(ctx, in)
}

// GetDocument returns the full metadata record for one document. A missing
// record is a MetadataNotFoundError, not a storage failure.
func (t *DocumentTools) GetDocument(ctx context.Context, in GetInput) (*DocumentDetail, error) {
	if in.DocumentID == "" {
		return nil, &service.ValidationError{Field: "documentId", Message: "must not be empty"}
	}

	doc, err := t.metadata.GetByDocumentID(ctx, in.DocumentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &service.MetadataNotFoundError{DocumentID: in.DocumentID}
	}
	if err != nil {
		return nil, &service.StorageError{Op: "get document", Err: err}
	}

	return &DocumentDetail{
		DocumentID:  doc.DocumentID,
		Title:       doc.Title,
		Author:      doc.Author,
		FileType:    doc.FileType,
		FileSize:    doc.FileSize,
		StoragePath: doc.StoragePath,
		Summary:     doc.Summary,
		Tags:        doc.Tags,
		UploadedAt:  doc.UploadedAt,
		UploadedBy:  doc.UploadedBy,
	}, nil
}

func (t *DocumentTools) handleList(ctx context.Context, input json.RawMessage) (any, error) {
	var in ListInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, &service.ValidationError{Field: "input", Message: "malformed JSON payload"}
	}
	return t.ListDocuments(ctx, in)
}

// ListDocuments returns metadata summaries by uploader or by tag.
func (t *DocumentTools) ListDocuments(ctx context.Context, in ListInput) ([]DocumentSummary, error) {
	var (
		docs []*storage.DocumentMetadata
		err  error
	)
	switch {
	case in.Uploader != "":
		docs, err = t.metadata.ListByUploader(ctx, in.Uploader)
	case in.Tag != "":
		docs, err = t.metadata.ListByTag(ctx, in.Tag)
	default:
		return nil, &service.ValidationError{Field: "uploader", Message: "either uploader or tag must be set"}
	}
	if err != nil {
		return nil, &service.StorageError{Op: "list documents", Err: err}
	}

	summaries := make([]DocumentSummary, len(docs))
	for i, d := range docs {
		summaries[i] = DocumentSummary{
			DocumentID: d.DocumentID,
			Title:      d.Title,
			FileType:   d.FileType,
			Tags:       d.Tags,
			UploadedAt: d.UploadedAt,
			UploadedBy: d.UploadedBy,
		}
	}
	return summaries, nil
}
