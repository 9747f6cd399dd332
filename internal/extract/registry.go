// Package extract converts raw document bytes to plain text.
package extract

import (
	"log/slog"
	"strings"

	"docsearch/internal/service"
)

// Extractor extracts plain text from the raw bytes of one file format.
type Extractor interface {
	Extract(content []byte) (string, error)
}

// Registry maps a file-type tag (extension without the dot) to an Extractor.
// Unsupported tags degrade to empty text instead of failing the pipeline.
type Registry struct {
	extractors map[string]Extractor
	logger     *slog.Logger
}

// NewRegistry returns a Registry with the default extractors registered:
// PDF, markdown, and plain-text passthrough.
func NewRegistry() *Registry {
	r := &Registry{
		extractors: make(map[string]Extractor),
		logger:     slog.Default(),
	}
	r.Register("pdf", &PDFExtractor{})
	r.Register("md", NewMarkdownExtractor())
	r.Register("markdown", NewMarkdownExtractor())
	r.Register("txt", &PlainExtractor{})
	r.Register("text", &PlainExtractor{})
	return r
}

// Register adds or replaces the extractor for a file-type tag.
func (r *Registry) Register(fileType string, e Extractor) {
	r.extractors[strings.ToLower(fileType)] = e
}

// Supported reports whether an extractor is registered for the tag.
func (r *Registry) Supported(fileType string) bool {
	_, ok := r.extractors[strings.ToLower(fileType)]
	return ok
}

// Extract converts content to plain text using the extractor registered for
// fileType. An unknown tag is not an error: it yields empty text and a
// warning. A parse failure on a supported tag yields an ExtractionError.
func (r *Registry) Extract(content []byte, fileType string) (string, error) {
	e, ok := r.extractors[strings.ToLower(fileType)]
	if !ok {
		r.logger.Warn("unsupported file type, storing document without text", "file_type", fileType)
		return "", nil
	}

	text, err := e.Extract(content)
	if err != nil {
		return "", &service.ExtractionError{FileType: fileType, Err: err}
	}
	return text, nil
}
