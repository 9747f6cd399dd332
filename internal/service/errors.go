package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller lacks the capability an operation requires.
	ErrForbidden = errors.New("forbidden")
	// ErrUnknownOperation is returned when an operation name has no registered handler.
	ErrUnknownOperation = errors.New("unknown operation")
)

// ValidationError represents malformed caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// StorageError represents a failed object-store or relational-store operation.
// It is surfaced to the caller as-is; the core does not retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ExtractionError represents a recognized file type that failed to parse.
// An unsupported file type is not an error (extraction degrades to empty text).
type ExtractionError struct {
	FileType string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s file: %v", e.FileType, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmbeddingError represents a failed embedding call (timeout, rate limit,
// invalid input). It is fatal to the ingestion it occurred in.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// MetadataNotFoundError represents a chunk whose documentId has no metadata
// record at query time.
type MetadataNotFoundError struct {
	DocumentID string
}

func (e *MetadataNotFoundError) Error() string {
	return fmt.Sprintf("metadata not found for document %s", e.DocumentID)
}

func (e *MetadataNotFoundError) Unwrap() error { return ErrNotFound }

// IngestionError identifies the stage at which an ingestion failed. The
// pipeline does not roll back partially written state, so the caller must
// treat the named documentId as indeterminate.
type IngestionError struct {
	Stage      string
	DocumentID string
	Err        error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion failed at stage %s (document %s): %v", e.Stage, e.DocumentID, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }
