package vectorstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"docsearch/internal/contextutil"
)

// ErrDimensionMismatch is returned when a vector does not have the store's
// configured dimension. A stored vector of any other length would be a
// data-corruption condition, so it is rejected at the boundary.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// PostgresStore implements VectorStore on PostgreSQL with the pgvector
// extension. Distances use the cosine operator (<=>).
type PostgresStore struct {
	db  *sql.DB
	dim int
}

// NewPostgresStore opens a connection pool to the vector database.
// dim is the embedding dimension every stored vector must have.
func NewPostgresStore(dsn string, dim int) (*PostgresStore, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("vector dimension must be positive, got %d", dim)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping vector database: %w", err)
	}

	return &PostgresStore{db: db, dim: dim}, nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Dim returns the configured embedding dimension.
func (s *PostgresStore) Dim() int {
	return s.dim
}

// Migrate creates the pgvector extension, the chunk table, and an ivfflat
// index for approximate cosine search. It is idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS document_chunks (
			id BIGSERIAL PRIMARY KEY,
			document_id TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			chunk_index INTEGER NOT NULL,
			chunk_size INTEGER NOT NULL
		)`, s.dim),
		`CREATE INDEX IF NOT EXISTS idx_document_chunks_document_id ON document_chunks (document_id)`,
		// Approximate index: trades recall for latency, tune lists per corpus size.
		`CREATE INDEX IF NOT EXISTS idx_document_chunks_embedding ON document_chunks
			USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("vector store migration failed: %w", err)
		}
	}
	return nil
}

// Insert appends one chunk record, including its embedding.
func (s *PostgresStore) Insert(ctx context.Context, chunk *Chunk) error {
	if err := s.checkDimension(chunk.Embedding); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO document_chunks (document_id, content, embedding, chunk_index, chunk_size)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		chunk.DocumentID, chunk.Content, pgvector.NewVector(chunk.Embedding),
		chunk.ChunkIndex, chunk.ChunkSize,
	).Scan(&chunk.ID)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// Search returns at most limit chunks ordered by ascending cosine distance,
// ties broken by id so results are deterministic.
func (s *PostgresStore) Search(ctx context.Context, query []float32, limit int) ([]ScoredChunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0, got %d", limit)
	}
	if err := s.checkDimension(query); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, content, embedding, chunk_index, chunk_size,
		        embedding <=> $1 AS distance
		 FROM document_chunks
		 ORDER BY embedding <=> $1, id
		 LIMIT $2`,
		pgvector.NewVector(query), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []ScoredChunk
	for rows.Next() {
		sc, err := scanScoredChunk(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	logger.DebugContext(ctx, "vector search completed", "limit", limit, "results", len(results))
	return results, nil
}

// scanScoredChunk decodes one result row. The embedding column arrives in
// pgvector's wire representation and is translated back into the fixed-length
// float32 slice the rest of the system works with.
func scanScoredChunk(rows *sql.Rows) (*ScoredChunk, error) {
	var sc ScoredChunk
	var embedding pgvector.Vector

	err := rows.Scan(&sc.ID, &sc.DocumentID, &sc.Content, &embedding,
		&sc.ChunkIndex, &sc.ChunkSize, &sc.Distance)
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunk row: %w", err)
	}

	sc.Embedding = embedding.Slice()
	return &sc, nil
}

func (s *PostgresStore) checkDimension(vec []float32) error {
	if len(vec) != s.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), s.dim)
	}
	return nil
}
