package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Mount attaches a transport handler to a path. The handler receives every
// HTTP method on that exact path.
type Mount struct {
	Pattern string
	Handler http.Handler
}

// NewRouter creates a chi router with the health, discovery and document
// routes plus the given transport mounts.
func NewRouter(h *Handler, allowedOrigins []string, mounts ...Mount) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(allowedOrigins))

	r.Get("/health", h.Health)
	r.Get("/.well-known/mcp.json", h.Discovery)

	// Plain HTTP read access to the same documents.
	r.Get("/docs", h.ListDocs)
	r.Get("/docs/{name}", h.GetDoc)

	for _, m := range mounts {
		if m.Pattern == "" || m.Handler == nil {
			continue
		}
		r.Handle(m.Pattern, m.Handler)
	}

	return r
}
