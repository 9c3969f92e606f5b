// Package models defines the domain types for the docs server.
package models

// URIScheme is the prefix of every document URI.
const URIScheme = "docs://"

// MarkdownMIMEType is the media type reported for every document.
const MarkdownMIMEType = "text/markdown"

// Document represents one markdown file in the docs directory.
type Document struct {
	Name     string `json:"name"`
	Location string `json:"-"`
	URI      string `json:"uri"`
}

// DocumentURI returns the resource URI for a document name.
func DocumentURI(name string) string {
	return URIScheme + name
}
