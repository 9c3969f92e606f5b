package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/docsmcp/internal/apperr"
	"github.com/starford/docsmcp/internal/models"
)

const (
	docsTemplateURI  = models.URIScheme + "{name}"
	docsTemplateName = "Documentation File"
	docsTemplateDesc = "Access a specific documentation file by name. Available docs: "

	// escapedScheme carries docs:// names that the public template cannot
	// match. It is registered with the SDK but never listed.
	escapedScheme      = "docs-escaped://"
	escapedTemplateURI = escapedScheme + "{name}"
)

func newEscapedTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(escapedTemplateURI, docsTemplateName,
		mcp.WithTemplateMIMEType(models.MarkdownMIMEType),
	)
}

func newDocsTemplate(names string) mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(docsTemplateURI, docsTemplateName,
		mcp.WithTemplateDescription(docsTemplateDesc+names),
		mcp.WithTemplateMIMEType(models.MarkdownMIMEType),
	)
}

// ListResources returns one resource descriptor per document.
func (s *Server) ListResources() ([]mcp.Resource, error) {
	docs, err := s.docs.List()
	if err != nil {
		return nil, err
	}
	out := make([]mcp.Resource, 0, len(docs))
	for _, d := range docs {
		out = append(out, mcp.NewResource(d.URI, d.Name,
			mcp.WithResourceDescription("Documentation: "+d.Name),
			mcp.WithMIMEType(models.MarkdownMIMEType),
		))
	}
	return out, nil
}

// ResourceTemplates returns the docs://{name} template, its description
// listing the documents present right now.
func (s *Server) ResourceTemplates() ([]mcp.ResourceTemplate, error) {
	docs, err := s.docs.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return []mcp.ResourceTemplate{newDocsTemplate(strings.Join(names, ", "))}, nil
}

// ReadResource returns the content of a docs:// URI. URIs with another
// scheme fail with apperr.ErrUnknownResource, missing documents with
// apperr.ErrNotFound.
func (s *Server) ReadResource(_ context.Context, uri string) ([]mcp.ResourceContents, error) {
	name, ok := strings.CutPrefix(uri, models.URIScheme)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnknownResource, uri)
	}
	content, err := s.docs.Read(name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("documentation %w: %s", apperr.ErrNotFound, name)
		}
		return nil, fmt.Errorf("read documentation %s: %w", name, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: models.MarkdownMIMEType,
			Text:     content,
		},
	}, nil
}

func (s *Server) readResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return s.ReadResource(ctx, req.Params.URI)
}

func (s *Server) readEscapedResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	raw := strings.TrimPrefix(req.Params.URI, escapedScheme)
	name, err := url.PathUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("documentation %w: %s", apperr.ErrNotFound, raw)
	}
	return s.ReadResource(ctx, models.DocumentURI(name))
}

// beforeReadResource routes docs:// URIs the public template regexp rejects
// (spaces, non-ASCII letters, reserved characters) to the escaped template,
// so every listed document stays readable under its listed URI.
func (s *Server) beforeReadResource(_ context.Context, _ any, req *mcp.ReadResourceRequest) {
	name, ok := strings.CutPrefix(req.Params.URI, models.URIScheme)
	if !ok || s.docsTemplate.URITemplate.Regexp().MatchString(req.Params.URI) {
		return
	}
	req.Params.URI = escapedScheme + escapeName(name)
}

// escapeName percent-encodes every byte outside the URI unreserved set.
func escapeName(name string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// afterListResources swaps the SDK's static resource list for a fresh scan.
func (s *Server) afterListResources(_ context.Context, _ any, _ *mcp.ListResourcesRequest, result *mcp.ListResourcesResult) {
	resources, err := s.ListResources()
	if err != nil {
		s.logger.Warn("mcp: list resources failed", slog.String("error", err.Error()))
		return
	}
	result.Resources = resources
	result.NextCursor = ""
}

// afterListResourceTemplates refreshes the template description.
func (s *Server) afterListResourceTemplates(_ context.Context, _ any, _ *mcp.ListResourceTemplatesRequest, result *mcp.ListResourceTemplatesResult) {
	templates, err := s.ResourceTemplates()
	if err != nil {
		s.logger.Warn("mcp: list resource templates failed", slog.String("error", err.Error()))
		return
	}
	result.ResourceTemplates = templates
	result.NextCursor = ""
}
