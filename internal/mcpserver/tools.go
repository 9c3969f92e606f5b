package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/docsmcp/internal/apperr"
)

const (
	toolListDocs = "list_docs"
	toolReadDoc  = "read_doc"
)

func listDocsTool() mcp.Tool {
	return mcp.NewTool(toolListDocs,
		mcp.WithDescription("List all available documentation files."),
	)
}

func readDocTool() mcp.Tool {
	return mcp.NewTool(toolReadDoc,
		mcp.WithDescription("Read the content of a documentation file."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the documentation file (without .md extension)")),
	)
}

// CallTool dispatches a tool call by name. Failures are reported in-band as
// error results, never as a Go error.
func (s *Server) CallTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch req.Params.Name {
	case toolListDocs:
		return s.listDocs(ctx, req)
	case toolReadDoc:
		return s.readDoc(ctx, req)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Unknown tool: %s", req.Params.Name)), nil
	}
}

func (s *Server) listDocs(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.docs.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lines := make([]string, len(docs))
	for i, d := range docs {
		lines[i] = "- " + d.Name
	}
	return mcp.NewToolResultText("Available documentation:\n" + strings.Join(lines, "\n")), nil
}

func (s *Server) readDoc(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := s.docs.Read(name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Documentation not found: %s", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}
