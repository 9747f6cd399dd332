package storage

import "time"

// DocumentMetadata is the record kept for every ingested document.
// It is created once at upload time and never mutated afterwards; the
// DocumentID is the external key every chunk refers back to.
type DocumentMetadata struct {
	ID          int64     // Store-assigned row id
	DocumentID  string    // UUID, globally unique
	Title       string    // Original filename
	Author      string
	FileType    string    // Extension tag: pdf, txt, md, ...
	FileSize    int64     // Size of the raw upload in bytes
	StoragePath string    // Object-store path: <bucket>/<documentId>/<filename>
	Summary     string
	Tags        []string  // Never nil; empty slice when untagged
	UploadedAt  time.Time
	UploadedBy  string    // Acting principal, "system" when absent
}
