package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docsearch/internal/config"
	"docsearch/internal/embedding"
	"docsearch/internal/extract"
	"docsearch/internal/http"
	"docsearch/internal/ingest"
	"docsearch/internal/objectstore"
	"docsearch/internal/search"
	"docsearch/internal/storage"
	"docsearch/internal/tools"
	"docsearch/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	ctx := context.Background()

	// Metadata store (SQLite)
	db, err := storage.New(cfg.MetadataDBPath)
	if err != nil {
		log.Fatalf("Failed to open metadata database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run metadata migrations: %v", err)
	}
	documentRepo := storage.NewDocumentRepo(db)
	slog.Info("Metadata store initialized", "path", cfg.MetadataDBPath)

	// Vector store (PostgreSQL + pgvector)
	vectorStore, err := vectorstore.NewPostgresStore(cfg.VectorDBDSN, cfg.EmbeddingDim)
	if err != nil {
		log.Fatalf("Failed to open vector database: %v", err)
	}
	defer func() {
		_ = vectorStore.Close()
	}()
	if err := vectorStore.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run vector store migrations: %v", err)
	}
	slog.Info("Vector store initialized", "dim", cfg.EmbeddingDim)

	// Object store (MinIO)
	objectStore, err := objectstore.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to create object store client: %v", err)
	}
	if err := objectStore.EnsureBucket(ctx, cfg.DocumentsBucket); err != nil {
		log.Fatalf("Failed to ensure documents bucket: %v", err)
	}
	slog.Info("Object store ready", "bucket", cfg.DocumentsBucket)

	// Embedding client: validate vector size against the store (fail-fast)
	embedder := embedding.NewClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingDim)
	testVec, err := embedder.EmbedText(ctx, "test")
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testVec) != cfg.EmbeddingDim {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.EmbeddingDim, len(testVec))
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModelName, "dim", cfg.EmbeddingDim)

	// Pipelines
	pipeline := ingest.NewPipeline(
		objectStore,
		documentRepo,
		vectorStore,
		embedder,
		extract.NewRegistry(),
		cfg.DocumentsBucket,
		cfg.MaxChunkWords,
	)
	engine := search.NewEngine(embedder, vectorStore, documentRepo)

	// Operation registry
	registry := tools.NewRegistry()
	tools.NewDocumentTools(pipeline, engine, documentRepo).RegisterOperations(registry)
	slog.Info("Operations registered", "operations", registry.Operations())

	router := http.NewRouter(&http.Deps{Registry: registry})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
