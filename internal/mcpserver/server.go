// Package mcpserver exposes the document operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"docsearch/internal/tools"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for docsearch. Every tool call is dispatched
// through the operation registry, so the same capability checks apply as on
// the HTTP surface. The capability set is fixed at construction: an MCP
// session has whatever grants its transport was started with.
type Server struct {
	registry     *tools.Registry
	capabilities []string
	principal    string
	server       *mcp.Server
}

// NewServer creates an MCP server over the given registry. caps is the
// capability set granted to the session, principal the identity recorded as
// uploader.
func NewServer(registry *tools.Registry, caps []string, principal string) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry must not be nil")
	}

	impl := &mcp.Implementation{
		Name:    "docsearch",
		Version: Version,
	}

	s := &Server{
		registry:     registry,
		capabilities: caps,
		principal:    principal,
		server:       mcp.NewServer(impl, nil),
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
