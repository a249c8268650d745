package config

import (
	"context"
	"path"
	"strings"
)

// Document is a piece of configuration text and its identity. The identity
// is a slash-separated path and is used verbatim in every location that
// refers to the document.
type Document struct {
	URI  string
	Text string
}

// Source resolves include directives.
type Source interface {
	// Include returns the documents that pattern, as written in the document
	// from, refers to. The result is ordered by URI. A pattern that matches
	// nothing returns no documents and no error.
	Include(ctx context.Context, from, pattern string) ([]Document, error)
}

// ResolvePattern anchors a relative pattern at the directory of the
// including document.
func ResolvePattern(from, pattern string) string {
	if path.IsAbs(pattern) || from == "" {
		return path.Clean(pattern)
	}
	return path.Join(path.Dir(from), pattern)
}

// FromFileURI strips a file:// scheme, leaving a plain path.
func FromFileURI(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
