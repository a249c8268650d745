package config

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

// MemorySource is a Source over a fixed set of in-memory documents. Patterns
// are matched with path.Match; a pattern naming a directory includes every
// document directly inside it.
type MemorySource struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemorySource returns a source holding docs, keyed by URI.
func NewMemorySource(docs map[string]string) *MemorySource {
	m := &MemorySource{docs: make(map[string]string, len(docs))}
	for uri, text := range docs {
		m.docs[path.Clean(uri)] = text
	}
	return m
}

// Put adds or replaces a document.
func (m *MemorySource) Put(uri, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[path.Clean(uri)] = text
}

// Remove forgets a document.
func (m *MemorySource) Remove(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, path.Clean(uri))
}

// Get returns the text of a document.
func (m *MemorySource) Get(uri string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.docs[path.Clean(uri)]
	return text, ok
}

// Include implements Source.
func (m *MemorySource) Include(_ context.Context, from, pattern string) ([]Document, error) {
	full := ResolvePattern(from, pattern)
	if _, err := path.Match(full, ""); err != nil {
		return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Document
	for uri, text := range m.docs {
		if matched, _ := path.Match(full, uri); matched || path.Dir(uri) == full {
			out = append(out, Document{URI: uri, Text: text})
		}
	}
	sortDocuments(out)
	return out, nil
}

// Overlay layers documents held open by an editor over another Source. An
// open document shadows the base document with the same URI.
type Overlay struct {
	base Source
	open *MemorySource
}

// NewOverlay returns an overlay over base, which may be nil.
func NewOverlay(base Source) *Overlay {
	return &Overlay{base: base, open: NewMemorySource(nil)}
}

// Open records the editor's current text for uri.
func (o *Overlay) Open(uri, text string) { o.open.Put(uri, text) }

// Close drops the editor's copy of uri so the base is used again.
func (o *Overlay) Close(uri string) { o.open.Remove(uri) }

// Include implements Source.
func (o *Overlay) Include(ctx context.Context, from, pattern string) ([]Document, error) {
	merged := make(map[string]string)
	var baseErr error
	if o.base != nil {
		docs, err := o.base.Include(ctx, from, pattern)
		baseErr = err
		for _, d := range docs {
			merged[d.URI] = d.Text
		}
	}
	open, err := o.open.Include(ctx, from, pattern)
	if err != nil {
		return nil, err
	}
	for _, d := range open {
		merged[d.URI] = d.Text
	}
	if baseErr != nil && len(merged) == 0 {
		return nil, baseErr
	}

	out := make([]Document, 0, len(merged))
	for uri, text := range merged {
		out = append(out, Document{URI: uri, Text: text})
	}
	sortDocuments(out)
	return out, nil
}

func sortDocuments(docs []Document) {
	sort.Slice(docs, func(i, j int) bool { return strings.Compare(docs[i].URI, docs[j].URI) < 0 })
}
