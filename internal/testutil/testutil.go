// Package testutil provides shared test helpers for setting up docs directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/docsmcp/internal/catalog"
)

// WriteDocs creates a temporary docs directory holding files (name → content)
// and returns its path. Names are written verbatim, so callers add ".md".
func WriteDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// TestCatalog creates a temporary docs directory with files and a Catalog over it.
func TestCatalog(t *testing.T, files map[string]string) (string, *catalog.Catalog) {
	t.Helper()
	dir := WriteDocs(t, files)
	c, err := catalog.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, c
}
