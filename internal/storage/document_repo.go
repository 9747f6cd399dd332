package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docsearch/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document metadata operations.
type DocumentStore interface {
	// Insert persists a new metadata record. The DocumentID must be set
	// before calling; inserting a duplicate DocumentID is an error.
	Insert(ctx context.Context, doc *DocumentMetadata) error
	// GetByDocumentID gets a record by its external document id.
	// Returns nil and ErrNotFound if not found.
	GetByDocumentID(ctx context.Context, documentID string) (*DocumentMetadata, error)
	// ListByUploader returns all records uploaded by the given principal.
	ListByUploader(ctx context.Context, uploadedBy string) ([]*DocumentMetadata, error)
	// ListByTag returns all records carrying the given tag.
	ListByTag(ctx context.Context, tag string) ([]*DocumentMetadata, error)
}

// DocumentRepo provides methods for document metadata operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert persists a new metadata record.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentMetadata) error {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (document_id, title, author, file_type, file_size, storage_path, summary, tags, uploaded_at, uploaded_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.DocumentID, doc.Title, doc.Author, doc.FileType, doc.FileSize,
		doc.StoragePath, doc.Summary, string(tagsJSON),
		doc.UploadedAt.UTC().Format(time.RFC3339Nano), doc.UploadedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document metadata: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		doc.ID = id
	}
	return nil
}

// GetByDocumentID gets a record by its external document id.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetByDocumentID(ctx context.Context, documentID string) (*DocumentMetadata, error) {
	row := r.db.QueryRowContext(ctx,
		selectColumns+" FROM documents WHERE document_id = ?",
		documentID,
	)
	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document metadata: %w", err)
	}
	return doc, nil
}

// ListByUploader returns all records uploaded by the given principal,
// newest first.
func (r *DocumentRepo) ListByUploader(ctx context.Context, uploadedBy string) ([]*DocumentMetadata, error) {
	return r.list(ctx,
		selectColumns+" FROM documents WHERE uploaded_by = ? ORDER BY uploaded_at DESC",
		uploadedBy,
	)
}

// ListByTag returns all records carrying the given tag, newest first.
// Tags are stored as a JSON array, so membership is matched against the
// quoted form of the tag, with LIKE metacharacters in the tag escaped so a
// tag like "100%" matches literally.
func (r *DocumentRepo) ListByTag(ctx context.Context, tag string) ([]*DocumentMetadata, error) {
	pattern := `%"` + escapeLike(tag) + `"%`
	return r.list(ctx,
		selectColumns+` FROM documents WHERE tags LIKE ? ESCAPE '\' ORDER BY uploaded_at DESC`,
		pattern,
	)
}

// escapeLike escapes the LIKE wildcards and the escape character itself.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

const selectColumns = "SELECT id, document_id, title, author, file_type, file_size, storage_path, summary, tags, uploaded_at, uploaded_by"

func (r *DocumentRepo) list(ctx context.Context, query string, args ...any) ([]*DocumentMetadata, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*DocumentMetadata
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

// scanDocument decodes one documents row, including the JSON tags column and
// the RFC3339 uploaded_at timestamp.
func scanDocument(scan func(dest ...any) error) (*DocumentMetadata, error) {
	var doc DocumentMetadata
	var tagsJSON, uploadedAt string

	err := scan(&doc.ID, &doc.DocumentID, &doc.Title, &doc.Author, &doc.FileType,
		&doc.FileSize, &doc.StoragePath, &doc.Summary, &tagsJSON, &uploadedAt, &doc.UploadedBy)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &doc.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	doc.UploadedAt, err = time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		doc.UploadedAt, err = time.Parse("2006-01-02 15:04:05", uploadedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse uploaded_at timestamp: %w", err)
		}
	}

	return &doc, nil
}
