package catalog

import "github.com/starford/docsmcp/internal/models"

// Provider is the read-only document source the protocol layer depends on.
type Provider interface {
	// List returns every document currently in the docs directory.
	List() ([]models.Document, error)
	// Read returns the content of the named document or an error wrapping
	// apperr.ErrNotFound.
	Read(name string) (string, error)
}

// Verify *Catalog satisfies Provider at compile time.
var _ Provider = (*Catalog)(nil)
