// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
)

// SnippetState tracks where a snippet is in its resolution.
type SnippetState int

const (
	SnippetUnresolved SnippetState = iota
	SnippetResolved
	SnippetFaulted
)

func (s SnippetState) String() string {
	switch s {
	case SnippetResolved:
		return "resolved"
	case SnippetFaulted:
		return "faulted"
	default:
		return "unresolved"
	}
}

// Snippet is a text fragment pulled in by an `@include` directive.
type Snippet struct {
	URI     string
	Content string
	// IncludeRange is the range of the directive, in the includer's document,
	// that pulled this snippet in.
	IncludeRange hcl.Range
	Children     []*Snippet
	// Depth is 1 for snippets included directly by the main document.
	Depth int
	// Circular marks a snippet that is one of its own ancestors. It is never
	// expanded and always faults.
	Circular bool
	// Shared marks a document already expanded elsewhere in the tree. It is
	// kept as a leaf that contributes no content, so every document is merged
	// once.
	Shared   bool
	State    SnippetState
	Resolved string
	// Fault is set when State is SnippetFaulted. Its Subject is the location
	// the fault is reported at in the snippet's own document.
	Fault *hcl.Diagnostic
}

// SortChildren puts direct children into lexical order of their identity.
func (s *Snippet) SortChildren() {
	SortSnippets(s.Children)
}

// SortSnippets orders siblings by identity. Siblings with the same identity
// keep their discovery order.
func SortSnippets(snippets []*Snippet) {
	sort.SliceStable(snippets, func(i, j int) bool {
		return snippets[i].URI < snippets[j].URI
	})
}

// Walk visits the snippet tree in merge order: children first, in their
// current order, then the snippet itself.
func (s *Snippet) Walk(fn func(*Snippet)) {
	for _, child := range s.Children {
		child.Walk(fn)
	}
	fn(s)
}
