// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Configuration, the root aggregate of one editing session.
//
// A Configuration is rebuilt from scratch whenever the main document or one of
// its includes changes. It is not safe for concurrent mutation; the session
// serialises writers and lets readers share a built Configuration.
package model

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Configuration holds everything known about one main document.
type Configuration struct {
	URI  string
	Text string

	Version    Version
	HasVersion bool

	Includes []Include
	Defines  []Define
	Pragmas  []Pragma

	// Snippets are the snippets included directly by the main document, in
	// merge order.
	Snippets []*Snippet

	GlobalOptions []Parameter
	Diagnostics   hcl.Diagnostics

	objects   []*Object
	fragments []Fragment
	snippets  map[string]*Snippet
}

// NewConfiguration returns an empty configuration for the document uri.
func NewConfiguration(uri, text string) *Configuration {
	return &Configuration{
		URI:      uri,
		Text:     text,
		snippets: make(map[string]*Snippet),
	}
}

// AddObject appends a parsed object.
func (c *Configuration) AddObject(o *Object) {
	c.objects = append(c.objects, o)
}

// AddFragment records an unfinished declaration.
func (c *Configuration) AddFragment(f Fragment) {
	c.fragments = append(c.fragments, f)
}

// AddSnippet registers a snippet under its identity. The first registration
// of an identity wins, so a file included twice is looked up consistently.
func (c *Configuration) AddSnippet(s *Snippet) {
	if c.snippets == nil {
		c.snippets = make(map[string]*Snippet)
	}
	if _, ok := c.snippets[s.URI]; !ok {
		c.snippets[s.URI] = s
	}
}

// Snippet looks up a snippet by identity.
func (c *Configuration) Snippet(uri string) (*Snippet, bool) {
	s, ok := c.snippets[uri]
	return s, ok
}

// Objects returns the top-level objects in merge order.
func (c *Configuration) Objects() []*Object { return c.objects }

// Fragments returns unfinished declarations.
func (c *Configuration) Fragments() []Fragment { return c.fragments }

// ObjectsByKind returns the objects of the given kind in merge order.
func (c *Configuration) ObjectsByKind(kind ObjectKind) []*Object {
	var out []*Object
	for _, o := range c.objects {
		if o.Kind() == kind {
			out = append(out, o)
		}
	}
	return out
}

// ObjectAt returns the object whose range contains offset in document uri.
func (c *Configuration) ObjectAt(uri string, offset int) (*Object, bool) {
	for _, o := range c.objects {
		if o.Contains(uri, offset) {
			return o, true
		}
	}
	return nil, false
}

// FragmentAt returns the unfinished declaration containing offset.
func (c *Configuration) FragmentAt(uri string, offset int) (Fragment, bool) {
	for _, f := range c.fragments {
		if f.Contains(uri, offset) {
			return f, true
		}
	}
	return Fragment{}, false
}

// DocumentText returns the text of the main document or of a snippet.
func (c *Configuration) DocumentText(uri string) (string, bool) {
	if uri == c.URI {
		return c.Text, true
	}
	if s, ok := c.snippets[uri]; ok {
		return s.Content, true
	}
	return "", false
}

// Documents lists the identities of the main document and every snippet,
// each once, in merge order.
func (c *Configuration) Documents() []string {
	docs := []string{c.URI}
	seen := map[string]bool{c.URI: true}
	for _, s := range c.Snippets {
		s.Walk(func(s *Snippet) {
			if !seen[s.URI] {
				seen[s.URI] = true
				docs = append(docs, s.URI)
			}
		})
	}
	return docs
}

// ResolvedText is the merged text: every resolved snippet in merge order
// followed by the main document. Faulted snippets contribute nothing.
func (c *Configuration) ResolvedText() string {
	var b strings.Builder
	for _, s := range c.Snippets {
		if s.State == SnippetResolved {
			b.WriteString(s.Resolved)
		}
	}
	b.WriteString(c.Text)
	return b.String()
}
