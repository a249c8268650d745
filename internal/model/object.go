// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Object, a single top-level declaration.
//
// An Object is immutable once built: the parser creates it after the whole
// declaration has been consumed and a re-parse replaces it wholesale. The kind
// and location are therefore unexported and only readable through accessors.
package model

import "github.com/hashicorp/hcl/v2"

// Object is one `<kind> <id>? { <driver>* };` declaration.
type Object struct {
	id       string
	kind     ObjectKind
	drivers  []*Driver
	location *hcl.Range
}

// NewObject builds an object. A nil location is allowed for objects that were
// not parsed from a document.
func NewObject(id string, kind ObjectKind, drivers []*Driver, location *hcl.Range) *Object {
	o := &Object{id: id, kind: kind, drivers: drivers}
	if location != nil {
		loc := *location
		o.location = &loc
	}
	return o
}

// ID returns the identifier, or "" for anonymous objects such as log paths.
func (o *Object) ID() string { return o.id }

func (o *Object) Kind() ObjectKind { return o.kind }

func (o *Object) Drivers() []*Driver { return o.drivers }

// Location returns the range from the first byte of the kind keyword to just
// past the terminating semicolon.
func (o *Object) Location() (hcl.Range, bool) {
	if o.location == nil {
		return hcl.Range{}, false
	}
	return *o.location, true
}

// URI is the identity of the document the object was parsed from.
func (o *Object) URI() string {
	if o.location == nil {
		return ""
	}
	return o.location.Filename
}

// Lines returns the half-open, 1-based line interval the object occupies.
func (o *Object) Lines() (first, end int) {
	if o.location == nil {
		return 0, 0
	}
	return o.location.Start.Line, o.location.End.Line + 1
}

// Contains reports whether the byte offset in document uri falls inside the
// object. Both ends are inclusive so a cursor right after `;` still counts.
func (o *Object) Contains(uri string, offset int) bool {
	if o.location == nil || o.location.Filename != uri {
		return false
	}
	return o.location.Start.Byte <= offset && offset <= o.location.End.Byte
}

// Fragment is a declaration that started with an object keyword but never
// parsed into an Object, typically because the user is still typing it. It is
// kept so that cursor context can be classified inside unfinished blocks.
type Fragment struct {
	Kind  ObjectKind
	Range hcl.Range
}

// Contains reports whether the offset in uri lies inside the fragment.
func (f Fragment) Contains(uri string, offset int) bool {
	return f.Range.Filename == uri && f.Range.Start.Byte <= offset && offset <= f.Range.End.Byte
}
