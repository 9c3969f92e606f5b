// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/starford/docsmcp/internal/api"
	"github.com/starford/docsmcp/internal/catalog"
	"github.com/starford/docsmcp/internal/mcpserver"
	"github.com/starford/docsmcp/internal/session"
	"github.com/starford/docsmcp/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Stdout carries protocol frames in stdio mode, so logs go to stderr there.
	logOut := app.stdout
	if !cfg.Transport.IsHTTP() {
		logOut = app.stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("transport", cfg.Transport.Mode),
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("docs_path", cfg.Docs.Path),
		slog.Bool("docs_watch", cfg.Docs.Watch),
		slog.Bool("tools_enabled", cfg.Tools.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	docs, err := catalog.New(cfg.Docs.Path)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}

	names, err := docs.Names()
	if err != nil {
		logger.Warn("initial docs scan failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Available docs",
			slog.String("root", docs.Root()),
			slog.Int("count", len(names)),
			slog.String("names", strings.Join(names, ", ")))
	}

	sessions := session.NewRegistry()
	defer sessions.Close()

	mcp := mcpserver.New(docs,
		mcpserver.WithTools(cfg.Tools.Enabled),
		mcpserver.WithLogger(logger),
		mcpserver.WithSessions(sessions, cfg.Transport.Mode),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)

	if cfg.Docs.Watch {
		g.Go(func() error {
			return watcher.Watch(gCtx, docs.Root(), watcher.DefaultDebounce, logger, func(changed []string) {
				logger.Info("Docs changed", slog.Any("names", changed))
				mcp.NotifyResourcesChanged()
			})
		})
	}

	var httpServer *http.Server
	if cfg.Transport.IsHTTP() {
		httpServer = newHTTPServer(cfg, docs, sessions, mcp)

		g.Go(func() error {
			logger.Info("Starting HTTP server",
				slog.String("address", cfg.App.HTTP.Address()),
				slog.String("transport", cfg.Transport.Mode))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})
	} else {
		g.Go(func() error {
			// EOF on stdin ends the whole application.
			defer cancel()
			logger.Info("Starting stdio server")
			if err := mcp.ServeStdio(gCtx, app.stdin, app.stdout); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdio server error: %w", err)
			}
			return nil
		})
	}

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		if httpServer == nil {
			return nil
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// newHTTPServer builds the HTTP shell with the configured transport mounted.
// Request contexts derive from a base context that is cancelled as soon as
// Shutdown starts, which ends long-lived SSE streams.
func newHTTPServer(cfg *Config, docs *catalog.Catalog, sessions *session.Registry, mcp *mcpserver.Server) *http.Server {
	tc := cfg.Transport

	discovery := api.Discovery{
		Name:      mcpserver.ServerName,
		Version:   mcpserver.ServerVersion,
		Transport: tc.Mode,
		Capabilities: api.Capabilities{
			Resources: true,
			Tools:     mcp.ToolsEnabled(),
		},
	}

	var mounts []api.Mount
	switch tc.Mode {
	case session.TransportSSE:
		sseOpts := []server.SSEOption{
			server.WithBaseURL(strings.TrimSuffix(tc.BaseURL, "/")),
			server.WithSSEEndpoint(tc.SSEEndpoint),
			server.WithMessageEndpoint(tc.MessageEndpoint),
			server.WithSessionIDGenerator(func(context.Context, *http.Request) (string, error) {
				return uuid.NewString(), nil
			}),
		}
		if tc.KeepAlive > 0 {
			sseOpts = append(sseOpts, server.WithKeepAliveInterval(tc.KeepAlive))
		}
		sse := server.NewSSEServer(mcp.MCPServer(), sseOpts...)

		discovery.Endpoints = api.Endpoints{SSE: tc.SSEEndpoint, Message: tc.MessageEndpoint}
		mounts = append(mounts,
			api.Mount{Pattern: tc.SSEEndpoint, Handler: sse.SSEHandler()},
			api.Mount{Pattern: tc.MessageEndpoint, Handler: sse.MessageHandler()},
		)

	case session.TransportHTTP:
		httpOpts := []server.StreamableHTTPOption{
			server.WithEndpointPath(tc.HTTPEndpoint),
			server.WithStateLess(tc.Stateless),
		}
		if tc.KeepAlive > 0 {
			httpOpts = append(httpOpts, server.WithHeartbeatInterval(tc.KeepAlive))
		}
		streamable := server.NewStreamableHTTPServer(mcp.MCPServer(), httpOpts...)

		discovery.Endpoints = api.Endpoints{HTTP: tc.HTTPEndpoint}
		mounts = append(mounts, api.Mount{Pattern: tc.HTTPEndpoint, Handler: streamable})
	}

	h := api.NewHandler(docs, sessions, discovery)
	router := api.NewRouter(h, cfg.CORS.AllowedOrigins, mounts...)

	baseCtx, cancelBase := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)
	return srv
}
