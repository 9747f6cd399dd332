package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docsearch/internal/vectorstore VectorStore

import "context"

// Chunk is one embedded fragment of a document's extracted text.
// Chunks are written in a batch during ingestion and never mutated; a chunk
// holds only a weak reference to its document's metadata record.
type Chunk struct {
	ID         int64  // Store-assigned identifier
	DocumentID string // Back-reference to DocumentMetadata
	Content    string
	Embedding  []float32 // Always exactly the configured dimension
	ChunkIndex int       // Zero-based position within the document
	ChunkSize  int       // Word count of Content at creation time
}

// ScoredChunk pairs a chunk with its cosine distance to a query vector.
// Lower distance means more similar.
type ScoredChunk struct {
	Chunk
	Distance float64
}

// VectorStore defines the interface for chunk storage and nearest-neighbor
// search.
type VectorStore interface {
	// Insert appends one chunk record, including its embedding.
	// An embedding of the wrong dimension is rejected.
	Insert(ctx context.Context, chunk *Chunk) error
	// Search returns at most limit chunks ordered by ascending cosine
	// distance to query, ties broken by store-assigned id. limit must be
	// positive.
	Search(ctx context.Context, query []float32, limit int) ([]ScoredChunk, error)
}
