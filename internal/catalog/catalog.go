// Package catalog enumerates the markdown documents in the docs directory
// and reads them on demand. Every call re-reads the directory.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starford/docsmcp/internal/apperr"
	"github.com/starford/docsmcp/internal/models"
)

const markdownExt = ".md"

// Catalog is a read-only view over a directory of markdown files.
type Catalog struct {
	root string // absolute path to docs directory
}

// New creates a Catalog rooted at dir. The directory does not have to exist;
// an absent directory is an empty catalog.
func New(dir string) (*Catalog, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: resolve root: %w", err)
	}
	return &Catalog{root: abs}, nil
}

// Root returns the absolute path of the docs directory.
func (c *Catalog) Root() string {
	return c.root
}

// List scans the docs directory (non-recursively) and returns one Document
// per markdown file, sorted by name.
func (c *Catalog) List() ([]models.Document, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Document{}, nil
		}
		return nil, fmt.Errorf("catalog: list: %w", err)
	}

	out := make([]models.Document, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), markdownExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), markdownExt)
		if name == "" {
			continue
		}
		out = append(out, models.Document{
			Name:     name,
			Location: filepath.Join(c.root, e.Name()),
			URI:      models.DocumentURI(name),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Names returns the names of all documents, sorted.
func (c *Catalog) Names() ([]string, error) {
	docs, err := c.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

// Read returns the full content of the named document. Any name that does
// not map to a markdown file directly inside the docs directory yields an
// error wrapping apperr.ErrNotFound.
func (c *Catalog) Read(name string) (string, error) {
	abs, err := c.documentPath(name)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("catalog: %s: %w", name, apperr.ErrNotFound)
		}
		return "", fmt.Errorf("catalog: stat %s: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("catalog: %s is a directory: %w", name, apperr.ErrNotFound)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return string(data), nil
}

// documentPath resolves a document name to its file path and rejects names
// that could address anything but a direct child of the root.
func (c *Catalog) documentPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("catalog: invalid name %q: %w", name, apperr.ErrNotFound)
	}
	abs := filepath.Join(c.root, name+markdownExt)
	if filepath.Dir(abs) != c.root {
		return "", fmt.Errorf("catalog: name escapes docs root %q: %w", name, apperr.ErrNotFound)
	}
	return abs, nil
}
