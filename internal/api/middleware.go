// Package api implements the HTTP shell around the MCP transports using chi.
package api

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware returns middleware that answers preflight requests and sets
// CORS headers for browser-based MCP clients. An empty origin list allows
// every origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Last-Event-ID", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders:   []string{"Mcp-Session-Id", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
