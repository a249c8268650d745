package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Load builds a database from its JSON form:
//
//	{ kind: { driver: { "options": [[names, [hints...]], ...],
//	                    "blocks": { name: { "options": [...], "blocks": {...} } } } } }
//
// Option and driver names may be slash-separated alias lists; the first entry
// is canonical. Hints may carry their own quotes, which are dropped.
func Load(data []byte) (*Database, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDatabase)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidDatabase)
	}

	db := &Database{kinds: make(map[string]*driverSet)}
	var err error
	root.ForEach(func(kind, drivers gjson.Result) bool {
		if !drivers.IsObject() {
			err = fmt.Errorf("%w: kind %q must map driver names to definitions", ErrInvalidDatabase, kind.String())
			return false
		}
		set := &driverSet{byName: make(map[string]*block)}
		drivers.ForEach(func(names, def gjson.Result) bool {
			var b *block
			if b, err = loadBlock(def, kind.String()+"."+names.String()); err != nil {
				return false
			}
			aliases := strings.Split(names.String(), "/")
			set.names = append(set.names, aliases[0])
			for _, alias := range aliases {
				set.byName[alias] = b
			}
			return true
		})
		if err != nil {
			return false
		}
		sort.Strings(set.names)
		db.kinds[kind.String()] = set
		return true
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func loadBlock(def gjson.Result, path string) (*block, error) {
	if !def.IsObject() {
		return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidDatabase, path)
	}
	b := &block{blocks: make(map[string]*block)}

	options := def.Get("options")
	if options.Exists() && !options.IsArray() {
		return nil, fmt.Errorf("%w: %s.options must be an array", ErrInvalidDatabase, path)
	}
	for i, entry := range options.Array() {
		o, err := loadOption(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.options[%d]: %v", ErrInvalidDatabase, path, i, err)
		}
		b.options = append(b.options, o)
	}

	var err error
	def.Get("blocks").ForEach(func(name, sub gjson.Result) bool {
		var inner *block
		if inner, err = loadBlock(sub, path+"."+name.String()); err != nil {
			return false
		}
		b.blocks[name.String()] = inner
		return true
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func loadOption(entry gjson.Result) (Option, error) {
	if !entry.IsArray() {
		return Option{}, fmt.Errorf("expected [names, hints]")
	}
	parts := entry.Array()
	if len(parts) == 0 || parts[0].Type != gjson.String || parts[0].String() == "" {
		return Option{}, fmt.Errorf("missing option name")
	}
	names := strings.Split(parts[0].String(), "/")
	o := Option{Name: names[0], Aliases: names[1:]}
	if len(parts) < 2 {
		return o, nil
	}
	hints := []gjson.Result{parts[1]}
	if parts[1].IsArray() {
		hints = parts[1].Array()
	}
	for _, h := range hints {
		o.Hints = append(o.Hints, strings.Trim(h.String(), `"'`))
	}
	return o, nil
}
