package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"docsearch/internal/contextutil"
	"docsearch/internal/tools"
)

// UploadInput is the input schema for the upload_document tool.
type UploadInput struct {
	Base64Content string `json:"base64Content" jsonschema:"base64 encoded file content"`
	Filename      string `json:"filename" jsonschema:"original filename"`
	Tags          string `json:"tags,omitempty" jsonschema:"tags (comma-separated)"`
}

// UploadOutput is the output schema for the upload_document tool.
type UploadOutput struct {
	DocumentID string `json:"documentId"`
	Message    string `json:"message"`
}

// SearchInput is the input schema for the search_documents tool. A nil Limit
// means "use the default"; an explicit non-positive limit is rejected.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query"`
	Limit *int   `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	Results []tools.SearchResult `json:"results"`
	Count   int                  `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_document",
		Description: "Upload a document and store it with metadata",
	}, s.handleUpload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search documents by semantic similarity",
	}, s.handleSearch)
}

// handleUpload handles the upload_document tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	ctx = contextutil.WithPrincipal(ctx, s.principal)

	raw, err := json.Marshal(tools.UploadInput{
		Base64Content: input.Base64Content,
		Filename:      input.Filename,
		Tags:          input.Tags,
	})
	if err != nil {
		return nil, UploadOutput{}, err
	}

	out, err := s.registry.Dispatch(ctx, tools.OpUploadDocument, s.capabilities, raw)
	if err != nil {
		return nil, UploadOutput{}, err
	}

	res, ok := out.(*tools.UploadOutput)
	if !ok {
		return nil, UploadOutput{}, fmt.Errorf("unexpected result type %T", out)
	}
	return nil, UploadOutput{DocumentID: res.DocumentID, Message: res.Message}, nil
}

// handleSearch handles the search_documents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	// Forward the limit untouched so an explicit non-positive value is
	// rejected by the operation instead of falling back to the default.
	raw, err := json.Marshal(tools.SearchInput{Query: input.Query, Limit: input.Limit})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	out, err := s.registry.Dispatch(ctx, tools.OpSearchDocuments, s.capabilities, raw)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	results, ok := out.([]tools.SearchResult)
	if !ok {
		return nil, SearchOutput{}, fmt.Errorf("unexpected result type %T", out)
	}
	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}
