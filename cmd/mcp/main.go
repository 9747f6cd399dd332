// Command mcp runs the document operations as an MCP server over stdio.
// Logs go to stderr so stdout stays clean for the protocol.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"docsearch/internal/config"
	"docsearch/internal/embedding"
	"docsearch/internal/extract"
	"docsearch/internal/ingest"
	"docsearch/internal/mcpserver"
	"docsearch/internal/objectstore"
	"docsearch/internal/search"
	"docsearch/internal/storage"
	"docsearch/internal/tools"
	"docsearch/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	objectStore, err := objectstore.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to create object store client: %v", err)
	}

	embedder := embedding.NewClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingDim)

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

	registry := tools.NewRegistry()
	tools.NewDocumentTools(pipeline, engine, documentRepo).RegisterOperations(registry)

	// A stdio session is a single local caller; grant both capabilities.
	// Override with MCP_SCOPES to run a read-only server.
	caps := []string{tools.CapabilityRead, tools.CapabilityWrite}
	if scopes := os.Getenv("MCP_SCOPES"); scopes != "" {
		caps = strings.Fields(strings.ReplaceAll(scopes, ",", " "))
	}
	principal := os.Getenv("MCP_PRINCIPAL")

	server, err := mcpserver.NewServer(registry, caps, principal)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	slog.Info("Starting MCP server on stdio", "capabilities", caps)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server exited with error: %v", err)
	}
}
