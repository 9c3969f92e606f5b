package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/docsmcp/internal/apperr"
	"github.com/starford/docsmcp/internal/catalog"
	"github.com/starford/docsmcp/internal/session"
)

// Handler holds API route handlers.
type Handler struct {
	docs      catalog.Provider
	sessions  *session.Registry
	discovery Discovery
}

// NewHandler creates a new Handler. sessions may be nil, in which case the
// health check reports zero sessions.
func NewHandler(docs catalog.Provider, sessions *session.Registry, discovery Discovery) *Handler {
	return &Handler{docs: docs, sessions: sessions, discovery: discovery}
}

// Health handles GET /health.
//
//	@Summary		Liveness with the current document names and session count
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	docs, err := h.docs.List()
	if err != nil {
		slog.Error("health: list docs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}

	sessions := 0
	if h.sessions != nil {
		sessions = h.sessions.Count()
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Docs:     names,
		Sessions: sessions,
	})
}

// Discovery handles GET /.well-known/mcp.json.
func (h *Handler) Discovery(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.discovery)
}

// ListDocs handles GET /docs.
//
//	@Summary		List documentation files
//	@Tags			docs
//	@Produce		json
//	@Success		200	{object}	DocumentListResponse
//	@Router			/docs [get]
func (h *Handler) ListDocs(w http.ResponseWriter, _ *http.Request) {
	docs, err := h.docs.List()
	if err != nil {
		slog.Error("list docs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]DocumentItem, len(docs))
	for i, d := range docs {
		items[i] = DocumentItem{Name: d.Name, URI: d.URI}
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Docs: items, Total: len(items)})
}

// GetDoc handles GET /docs/{name} and returns the raw markdown.
//
//	@Summary		Get a documentation file by name
//	@Tags			docs
//	@Produce		text/markdown
//	@Param			name	path		string	true	"Document name without .md"
//	@Success		200		{string}	string
//	@Failure		404		{object}	errResponse
//	@Router			/docs/{name} [get]
func (h *Handler) GetDoc(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	content, err := h.docs.Read(name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("Documentation not found: "+name))
		} else {
			slog.Error("get doc failed", slog.String("name", name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeMarkdown(w, content)
}
