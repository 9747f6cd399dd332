// Package search answers natural-language queries by ranking stored chunks
// via vector similarity and joining them against document metadata.
package search

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks docsearch/internal/search Engine

import (
	"context"
	"errors"
	"time"

	"docsearch/internal/contextutil"
	"docsearch/internal/embedding"
	"docsearch/internal/service"
	"docsearch/internal/storage"
	"docsearch/internal/vectorstore"
)

// Result is one ranked answer: the matched chunk's text joined with its
// document's metadata.
type Result struct {
	Title      string
	Author     string
	Content    string
	Tags       []string
	UploadedAt time.Time
}

// Engine resolves a query to ranked, metadata-enriched results.
type Engine interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

type engine struct {
	embedder embedding.Embedder
	vectors  vectorstore.VectorStore
	metadata storage.DocumentStore
}

// NewEngine creates a query engine over the given collaborators.
func NewEngine(embedder embedding.Embedder, vectors vectorstore.VectorStore, metadata storage.DocumentStore) Engine {
	return &engine{
		embedder: embedder,
		vectors:  vectors,
		metadata: metadata,
	}
}

// Search embeds the query, finds the nearest chunks, and joins each against
// its document's metadata.
//
// The metadata and vector stores are not transactionally coupled, so a chunk
// can exist without a metadata record (for example while an ingest is in
// flight, or after a partial failure). Such orphans are skipped with a
// warning rather than failing the whole query.
func (e *engine) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if limit <= 0 {
		return nil, &service.ValidationError{Field: "limit", Message: "must be a positive integer"}
	}

	vec, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, &service.EmbeddingError{Err: err}
	}

	scored, err := e.vectors.Search(ctx, vec, limit)
	if err != nil {
		return nil, &service.StorageError{Op: "vector search", Err: err}
	}

	results := make([]Result, 0, len(scored))
	for _, sc := range scored {
		meta, err := e.metadata.GetByDocumentID(ctx, sc.DocumentID)
		if errors.Is(err, storage.ErrNotFound) {
			logger.WarnContext(ctx, "skipping orphan chunk without metadata",
				"document_id", sc.DocumentID, "chunk_id", sc.ID)
			continue
		}
		if err != nil {
			return nil, &service.StorageError{Op: "metadata lookup", Err: err}
		}

		results = append(results, Result{
			Title:      meta.Title,
			Author:     meta.Author,
			Content:    sc.Content,
			Tags:       meta.Tags,
			UploadedAt: meta.UploadedAt,
		})
	}

	logger.DebugContext(ctx, "search completed", "limit", limit, "results", len(results))
	return results, nil
}
