// Package schema provides the grammar database: for every object kind and
// driver, the options it accepts, their declared value types and the nested
// option blocks they open.
//
// The database is built once from its JSON resource and is read-only
// afterwards, so a single *Database is shared by every session without
// locking. It is constructed explicitly and passed to the components that
// need it; there is no package-level instance.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed database.json
var embedded []byte

// ErrInvalidDatabase is wrapped by every error about malformed database
// content.
var ErrInvalidDatabase = errors.New("invalid grammar database")

// rootKeywords are the statements that may open a top-level declaration.
var rootKeywords = []string{"source", "filter", "parser", "rewrite", "destination", "log", "junction"}

// RootKeywords returns the fixed set of top-level keywords.
func RootKeywords() []string {
	out := make([]string, len(rootKeywords))
	copy(out, rootKeywords)
	return out
}

// Option is one option a driver or block accepts.
type Option struct {
	// Name is the canonical name, the first entry of the alias list.
	Name string
	// Aliases are the deprecated names that follow it.
	Aliases []string
	// Hints are the declared value types with surrounding quotes removed.
	Hints []string
}

// Hint joins the declared value types with a single space.
func (o Option) Hint() string {
	return strings.Join(o.Hints, " ")
}

// block is the option set of a driver or of a nested block.
type block struct {
	options []Option
	blocks  map[string]*block
}

// driverSet holds the drivers of one object kind.
type driverSet struct {
	// names are the canonical driver names in lexical order.
	names []string
	// byName is keyed by every alias.
	byName map[string]*block
}

// Database is the read-only grammar database.
type Database struct {
	kinds map[string]*driverSet
}

// Embedded builds the database bundled with the binary.
func Embedded() (*Database, error) {
	return Load(embedded)
}

// LoadFile builds a database from a JSON file on disk.
func LoadFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar database: %w", err)
	}
	db, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// Kinds lists the object kinds described by the database.
func (db *Database) Kinds() []string {
	kinds := make([]string, 0, len(db.kinds))
	for k := range db.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// PossibleObjectNames lists the canonical driver names of kind.
func (db *Database) PossibleObjectNames(kind string) []string {
	set, ok := db.kinds[kind]
	if !ok {
		return nil
	}
	out := make([]string, len(set.names))
	copy(out, set.names)
	return out
}

// HasDriver reports whether kind has a driver called name, aliases included.
func (db *Database) HasDriver(kind, name string) bool {
	_, ok := db.lookup(kind, name, "")
	return ok
}

// Options returns the options of a driver, or of one of its inner blocks
// when block is not empty, sorted by name. A missing kind, driver or block
// yields false.
func (db *Database) Options(kind, driver, block string) ([]Option, bool) {
	b, ok := db.lookup(kind, driver, block)
	if !ok {
		return nil, false
	}
	out := make([]Option, len(b.options))
	copy(out, b.options)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, true
}

// AllOptions maps every canonical option name of a driver, or of one of its
// inner blocks, to its joined type hint.
func (db *Database) AllOptions(kind, driver, block string) (map[string]string, bool) {
	b, ok := db.lookup(kind, driver, block)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(b.options))
	for _, o := range b.options {
		out[o.Name] = o.Hint()
	}
	return out, true
}

// Option finds an option by canonical name or alias.
func (db *Database) Option(kind, driver, block, name string) (Option, bool) {
	b, ok := db.lookup(kind, driver, block)
	if !ok {
		return Option{}, false
	}
	for _, o := range b.options {
		if o.Name == name {
			return o, true
		}
		for _, alias := range o.Aliases {
			if alias == name {
				return o, true
			}
		}
	}
	return Option{}, false
}

// Blocks lists the inner blocks a driver opens.
func (db *Database) Blocks(kind, driver string) []string {
	b, ok := db.lookup(kind, driver, "")
	if !ok {
		return nil
	}
	names := make([]string, 0, len(b.blocks))
	for name := range b.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (db *Database) lookup(kind, driver, blockName string) (*block, bool) {
	set, ok := db.kinds[kind]
	if !ok {
		return nil, false
	}
	b, ok := set.byName[driver]
	if !ok {
		return nil, false
	}
	if blockName == "" {
		return b, true
	}
	inner, ok := b.blocks[blockName]
	return inner, ok
}
