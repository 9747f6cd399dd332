// Package ingest turns raw uploaded bytes into persisted metadata and
// searchable, embedded chunks.
package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docsearch/internal/contextutil"
	"docsearch/internal/embedding"
	"docsearch/internal/extract"
	"docsearch/internal/objectstore"
	"docsearch/internal/service"
	"docsearch/internal/storage"
	"docsearch/internal/vectorstore"
)

// SystemPrincipal is recorded as the uploader when no acting principal is
// supplied.
const SystemPrincipal = "system"

// Stage names carried by IngestionError to identify where an ingest failed.
const (
	StageObjectStore = "object-store"
	StageExtract     = "extract"
	StageMetadata    = "metadata"
	StageEmbedding   = "embedding"
	StageVectorStore = "vector-store"
)

// Pipeline orchestrates one-way ingestion: raw bytes are persisted to the
// object store, extracted to text, recorded as metadata, then chunked,
// embedded, and inserted into the vector store.
//
// The metadata and vector stores are independent systems with no cross-store
// transaction. A failure mid-ingest leaves whatever was already written in
// place; callers retry by re-ingesting (producing a fresh documentId) or run
// an explicit cleanup pass.
type Pipeline struct {
	objects       objectstore.ObjectStore
	metadata      storage.DocumentStore
	vectors       vectorstore.VectorStore
	embedder      embedding.Embedder
	extractors    *extract.Registry
	bucket        string
	maxChunkWords int
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	objects objectstore.ObjectStore,
	metadata storage.DocumentStore,
	vectors vectorstore.VectorStore,
	embedder embedding.Embedder,
	extractors *extract.Registry,
	bucket string,
	maxChunkWords int,
) *Pipeline {
	return &Pipeline{
		objects:       objects,
		metadata:      metadata,
		vectors:       vectors,
		embedder:      embedder,
		extractors:    extractors,
		bucket:        bucket,
		maxChunkWords: maxChunkWords,
	}
}

// Ingest processes one document and returns its newly assigned documentId.
// The id is random, never content-derived: two ingests of identical bytes
// produce two independent documents.
func (p *Pipeline) Ingest(ctx context.Context, content []byte, filename, tags, principal string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	documentID := uuid.New().String()

	if err := p.objects.EnsureBucket(ctx, p.bucket); err != nil {
		return "", p.fail(StageObjectStore, documentID, &service.StorageError{Op: "ensure bucket", Err: err})
	}

	key := documentID + "/" + filename
	storagePath, err := p.objects.Put(ctx, p.bucket, key, content, "application/octet-stream")
	if err != nil {
		return "", p.fail(StageObjectStore, documentID, &service.StorageError{Op: "put object", Err: err})
	}

	fileType := fileExtension(filename)
	text, err := p.extractors.Extract(content, fileType)
	if err != nil {
		return "", p.fail(StageExtract, documentID, err)
	}

	if principal == "" {
		principal = SystemPrincipal
	}
	meta := &storage.DocumentMetadata{
		DocumentID:  documentID,
		Title:       filename,
		FileType:    fileType,
		FileSize:    int64(len(content)),
		StoragePath: storagePath,
		Tags:        splitTags(tags),
		UploadedAt:  time.Now().UTC(),
		UploadedBy:  principal,
	}
	if err := p.metadata.Insert(ctx, meta); err != nil {
		return "", p.fail(StageMetadata, documentID, &service.StorageError{Op: "insert metadata", Err: err})
	}

	// Chunk indices are fixed here, before any embedding work, so the
	// 0..n-1 range stays contiguous no matter how the calls below are
	// scheduled.
	chunks := SplitWords(text, p.maxChunkWords)
	for i, chunkText := range chunks {
		vec, err := p.embedder.EmbedText(ctx, chunkText)
		if err != nil {
			// Fatal to the whole ingest: a document with missing chunks
			// must not become silently searchable as incomplete.
			return "", p.fail(StageEmbedding, documentID, &service.EmbeddingError{Err: err})
		}

		chunk := &vectorstore.Chunk{
			DocumentID: documentID,
			Content:    chunkText,
			Embedding:  vec,
			ChunkIndex: i,
			ChunkSize:  WordCount(chunkText),
		}
		if err := p.vectors.Insert(ctx, chunk); err != nil {
			return "", p.fail(StageVectorStore, documentID, &service.StorageError{Op: "insert chunk", Err: err})
		}
	}

	logger.InfoContext(ctx, "ingested document",
		"document_id", documentID, "title", filename, "file_type", fileType, "chunks", len(chunks))
	return documentID, nil
}

func (p *Pipeline) fail(stage, documentID string, err error) error {
	return &service.IngestionError{Stage: stage, DocumentID: documentID, Err: err}
}

// fileExtension returns the lowercased extension of filename without the dot,
// used as the file-type tag for extraction and metadata.
func fileExtension(filename string) string {
	ext := filepath.Ext(filename)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// splitTags parses a comma-separated tag string into a set of trimmed,
// non-empty tags. A missing tag string yields an empty set, never nil.
func splitTags(tags string) []string {
	out := []string{}
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
