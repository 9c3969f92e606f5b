// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the docs directory as docs:// resources and, optionally, as the
// list_docs and read_doc tools.
package mcpserver

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/docsmcp/internal/catalog"
	"github.com/starford/docsmcp/internal/session"
)

const (
	// ServerName is the name reported during initialization.
	ServerName = "docs-mcp-server"
	// ServerVersion is the version reported during initialization.
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the docs resources and tools.
type Server struct {
	mcp          *server.MCPServer
	docsTemplate mcp.ResourceTemplate
	docs         catalog.Provider
	logger       *slog.Logger
	sessions     *session.Registry
	transport    string
	tools        bool
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithTools enables the list_docs and read_doc tools.
func WithTools(enabled bool) Option {
	return func(s *Server) {
		s.tools = enabled
	}
}

// WithLogger sets the logger used for hook diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSessions records every transport session in reg, tagged with transport.
func WithSessions(reg *session.Registry, transport string) Option {
	return func(s *Server) {
		s.sessions = reg
		s.transport = transport
	}
}

// New creates a new MCP server over docs.
func New(docs catalog.Provider, opts ...Option) *Server {
	s := &Server{docs: docs, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	hooks := &server.Hooks{}
	hooks.AddAfterListResources(s.afterListResources)
	hooks.AddAfterListResourceTemplates(s.afterListResourceTemplates)
	hooks.AddBeforeReadResource(s.beforeReadResource)
	hooks.AddOnRegisterSession(s.onRegisterSession)
	hooks.AddOnUnregisterSession(s.onUnregisterSession)
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, _ any, err error) {
		s.logger.Debug("mcp: request failed",
			slog.String("method", string(method)),
			slog.Any("id", id),
			slog.String("error", err.Error()))
	})

	serverOpts := []server.ServerOption{
		server.WithResourceCapabilities(false, true),
		server.WithHooks(hooks),
		server.WithRecovery(),
		server.WithResourceRecovery(),
	}
	if s.tools {
		serverOpts = append(serverOpts, server.WithToolCapabilities(false))
	}
	s.mcp = server.NewMCPServer(ServerName, ServerVersion, serverOpts...)

	s.docsTemplate = newDocsTemplate("")
	s.mcp.AddResourceTemplate(s.docsTemplate, s.readResource)
	s.mcp.AddResourceTemplate(newEscapedTemplate(), s.readEscapedResource)

	if s.tools {
		s.mcp.AddTool(listDocsTool(), s.CallTool)
		s.mcp.AddTool(readDocTool(), s.CallTool)
	}

	return s
}

// ServeStdio serves the MCP protocol over in/out until in is exhausted or
// ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

// MCPServer returns the underlying server for transports and tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ToolsEnabled reports whether the tools are registered.
func (s *Server) ToolsEnabled() bool {
	return s.tools
}

// NotifyResourcesChanged tells every connected client that the resource list
// has changed.
func (s *Server) NotifyResourcesChanged() {
	s.mcp.SendNotificationToAllClients(mcp.MethodNotificationResourcesListChanged, nil)
}

func (s *Server) onRegisterSession(_ context.Context, cs server.ClientSession) {
	s.logger.Debug("mcp: session registered",
		slog.String("session_id", cs.SessionID()),
		slog.String("transport", s.transport))
	if s.sessions != nil {
		s.sessions.Register(session.Info{ID: cs.SessionID(), Transport: s.transport})
	}
}

func (s *Server) onUnregisterSession(_ context.Context, cs server.ClientSession) {
	s.logger.Debug("mcp: session unregistered", slog.String("session_id", cs.SessionID()))
	if s.sessions != nil {
		s.sessions.Unregister(cs.SessionID())
	}
}
