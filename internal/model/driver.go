// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Parameter is one named option occurrence.
type Parameter struct {
	Name  string
	Value Value
	Range hcl.Range
}

// Equal compares name and value. The source range is not part of identity.
func (p Parameter) Equal(o Parameter) bool {
	return p.Name == o.Name && p.Value.Equal(o.Value)
}

// Compare orders parameters by name, then by value.
func (p Parameter) Compare(o Parameter) int {
	if c := strings.Compare(p.Name, o.Name); c != 0 {
		return c
	}
	return p.Value.Compare(o.Value)
}

// Driver is one call inside an object body, or the payload of an option whose
// body holds more than a single value.
//
// Positional values always precede named options in the source. Braced
// sub-blocks, as found in log paths (`junction { channel { ... }; };`), are
// kept in Body.
type Driver struct {
	Name       string
	Positional []Value
	Options    map[string]Parameter
	Body       []*Driver
	Range      hcl.Range
}

// NewDriver returns an empty driver called name.
func NewDriver(name string) *Driver {
	return &Driver{Name: name, Options: make(map[string]Parameter)}
}

// SetOption stores p, replacing any earlier option with the same name.
func (d *Driver) SetOption(p Parameter) {
	if d.Options == nil {
		d.Options = make(map[string]Parameter)
	}
	d.Options[p.Name] = p
}

// Option returns the named option.
func (d *Driver) Option(name string) (Parameter, bool) {
	p, ok := d.Options[name]
	return p, ok
}

// OptionNames returns the option names in lexical order.
func (d *Driver) OptionNames() []string {
	names := make([]string, 0, len(d.Options))
	for name := range d.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports structural equality, ignoring source ranges.
func (d *Driver) Equal(o *Driver) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Name != o.Name || len(d.Positional) != len(o.Positional) ||
		len(d.Options) != len(o.Options) || len(d.Body) != len(o.Body) {
		return false
	}
	for i := range d.Positional {
		if !d.Positional[i].Equal(o.Positional[i]) {
			return false
		}
	}
	for name, p := range d.Options {
		q, ok := o.Options[name]
		if !ok || !p.Equal(q) {
			return false
		}
	}
	for i := range d.Body {
		if !d.Body[i].Equal(o.Body[i]) {
			return false
		}
	}
	return true
}

// String renders the driver in configuration syntax with options sorted.
func (d *Driver) String() string {
	return d.Name + d.body()
}

func (d *Driver) body() string {
	var b strings.Builder
	if len(d.Body) > 0 {
		b.WriteString(" {")
		for _, child := range d.Body {
			b.WriteString(" ")
			b.WriteString(child.String())
			b.WriteString(";")
		}
		b.WriteString(" }")
		return b.String()
	}
	b.WriteString("(")
	var parts []string
	for _, v := range d.Positional {
		parts = append(parts, v.String())
	}
	for _, name := range d.OptionNames() {
		parts = append(parts, name+"("+d.Options[name].Value.String()+")")
	}
	b.WriteString(strings.Join(parts, " "))
	b.WriteString(")")
	return b.String()
}
