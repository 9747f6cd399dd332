package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	embedmocks "docsearch/internal/embedding/mocks"
	"docsearch/internal/service"
	"docsearch/internal/storage"
	storagemocks "docsearch/internal/storage/mocks"
	"docsearch/internal/vectorstore"
	vectormocks "docsearch/internal/vectorstore/mocks"
)

type engineMocks struct {
	embedder *embedmocks.MockEmbedder
	vectors  *vectormocks.MockVectorStore
	metadata *storagemocks.MockDocumentStore
}

func newTestEngine(ctrl *gomock.Controller) (Engine, engineMocks) {
	m := engineMocks{
		embedder: embedmocks.NewMockEmbedder(ctrl),
		vectors:  vectormocks.NewMockVectorStore(ctrl),
		metadata: storagemocks.NewMockDocumentStore(ctrl),
	}
	return NewEngine(m.embedder, m.vectors, m.metadata), m
}

func scoredChunk(id int64, docID, content string, distance float64) vectorstore.ScoredChunk {
	return vectorstore.ScoredChunk{
		Chunk: vectorstore.Chunk{
			ID:         id,
			DocumentID: docID,
			Content:    content,
		},
		Distance: distance,
	}
}

func TestEngine_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := newTestEngine(ctrl)

	queryVec := []float32{0.1, 0.2}
	uploadedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	m.embedder.EXPECT().
		EmbedText(gomock.Any(), "quantum computing").
		Return(queryVec, nil)
	m.vectors.EXPECT().
		Search(gomock.Any(), queryVec, 5).
		Return([]vectorstore.ScoredChunk{
			scoredChunk(1, "doc-1", "Qubits hold superpositions.", 0.12),
			scoredChunk(2, "doc-2", "Entanglement links particle states.", 0.30),
		}, nil)
	m.metadata.EXPECT().
		GetByDocumentID(gomock.Any(), "doc-1").
		Return(&storage.DocumentMetadata{
			Title:      "quantum.pdf",
			Author:     "alice",
			Tags:       []string{"physics"},
			UploadedAt: uploadedAt,
		}, nil)
	m.metadata.EXPECT().
		GetByDocumentID(gomock.Any(), "doc-2").
		Return(&storage.DocumentMetadata{
			Title:      "entanglement.md",
			UploadedAt: uploadedAt,
		}, nil)

	results, err := e.Search(context.Background(), "quantum computing", 5)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}

	// Vector-store ordering is preserved through the metadata join.
	if results[0].Title != "quantum.pdf" || results[1].Title != "entanglement.md" {
		t.Errorf("Search() titles = %q, %q, want quantum.pdf, entanglement.md",
			results[0].Title, results[1].Title)
	}
	if results[0].Content != "Qubits hold superpositions." {
		t.Errorf("Search() content = %q, want chunk text", results[0].Content)
	}
	if results[0].Author != "alice" {
		t.Errorf("Search() author = %q, want alice", results[0].Author)
	}
	if len(results[0].Tags) != 1 || results[0].Tags[0] != "physics" {
		t.Errorf("Search() tags = %v, want [physics]", results[0].Tags)
	}
	if !results[0].UploadedAt.Equal(uploadedAt) {
		t.Errorf("Search() uploadedAt = %v, want %v", results[0].UploadedAt, uploadedAt)
	}
}

func TestEngine_Search_SkipsOrphanChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := newTestEngine(ctrl)

	m.embedder.EXPECT().EmbedText(gomock.Any(), "query").Return([]float32{0.5}, nil)
	m.vectors.EXPECT().
		Search(gomock.Any(), gomock.Any(), 3).
		Return([]vectorstore.ScoredChunk{
			scoredChunk(1, "doc-live", "kept", 0.1),
			scoredChunk(2, "doc-gone", "orphan", 0.2),
		}, nil)
	m.metadata.EXPECT().
		GetByDocumentID(gomock.Any(), "doc-live").
		Return(&storage.DocumentMetadata{Title: "live.txt"}, nil)
	m.metadata.EXPECT().
		GetByDocumentID(gomock.Any(), "doc-gone").
		Return(nil, storage.ErrNotFound)

	results, err := e.Search(context.Background(), "query", 3)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d results, want 1 after skipping orphan", len(results))
	}
	if results[0].Title != "live.txt" {
		t.Errorf("Search() result title = %q, want live.txt", results[0].Title)
	}
}

func TestEngine_Search_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		query     string
		limit     int
		setup     func(m engineMocks)
		wantErrAs func(error) bool
	}{
		{
			name:  "non-positive limit",
			query: "query",
			limit: 0,
			setup: func(m engineMocks) {},
			wantErrAs: func(err error) bool {
				var ve *service.ValidationError
				return errors.As(err, &ve) && ve.Field == "limit"
			},
		},
		{
			name:  "embedding failure",
			query: "query",
			limit: 5,
			setup: func(m engineMocks) {
				m.embedder.EXPECT().EmbedText(gomock.Any(), "query").Return(nil, boom)
			},
			wantErrAs: func(err error) bool {
				var ee *service.EmbeddingError
				return errors.As(err, &ee) && errors.Is(err, boom)
			},
		},
		{
			name:  "vector search failure",
			query: "query",
			limit: 5,
			setup: func(m engineMocks) {
				m.embedder.EXPECT().EmbedText(gomock.Any(), "query").Return([]float32{0.5}, nil)
				m.vectors.EXPECT().Search(gomock.Any(), gomock.Any(), 5).Return(nil, boom)
			},
			wantErrAs: func(err error) bool {
				var se *service.StorageError
				return errors.As(err, &se) && errors.Is(err, boom)
			},
		},
		{
			name:  "metadata lookup failure other than not-found",
			query: "query",
			limit: 5,
			setup: func(m engineMocks) {
				m.embedder.EXPECT().EmbedText(gomock.Any(), "query").Return([]float32{0.5}, nil)
				m.vectors.EXPECT().
					Search(gomock.Any(), gomock.Any(), 5).
					Return([]vectorstore.ScoredChunk{scoredChunk(1, "doc-1", "text", 0.1)}, nil)
				m.metadata.EXPECT().GetByDocumentID(gomock.Any(), "doc-1").Return(nil, boom)
			},
			wantErrAs: func(err error) bool {
				var se *service.StorageError
				return errors.As(err, &se) && errors.Is(err, boom)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			e, m := newTestEngine(ctrl)
			tt.setup(m)

			_, err := e.Search(context.Background(), tt.query, tt.limit)
			if err == nil {
				t.Fatal("Search() expected error, got nil")
			}
			if !tt.wantErrAs(err) {
				t.Errorf("Search() error = %v, wrong type or missing wrapped cause", err)
			}
		})
	}
}

func TestEngine_Search_EmptyStoreReturnsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := newTestEngine(ctrl)

	m.embedder.EXPECT().EmbedText(gomock.Any(), "anything").Return([]float32{0.5}, nil)
	m.vectors.EXPECT().Search(gomock.Any(), gomock.Any(), 5).Return([]vectorstore.ScoredChunk{}, nil)

	results, err := e.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() returned %d results, want 0", len(results))
	}
}
