package completion

import "github.com/vk/syslogng-lsp/internal/model"

// Context is the semantic location class of a cursor.
type Context int

const (
	ContextRoot Context = iota
	ContextSource
	ContextDestination
	ContextLog
	ContextFilter
	ContextParser
	ContextRewrite
	ContextTemplate
)

// ContextOf returns the context for objects of kind.
func ContextOf(kind model.ObjectKind) Context {
	return Context(kind) + 1
}

// Kind returns the object kind of a non-root context.
func (c Context) Kind() (model.ObjectKind, bool) {
	if c == ContextRoot {
		return 0, false
	}
	return model.ObjectKind(c - 1), true
}

func (c Context) String() string {
	if kind, ok := c.Kind(); ok {
		return kind.String()
	}
	return "root"
}

// Locate classifies offset in document uri. Objects take priority over
// unfinished declarations. For a non-root context, start is the offset of the
// enclosing declaration's first byte.
func Locate(cfg *model.Configuration, uri string, offset int) (ctx Context, start int) {
	if o, ok := cfg.ObjectAt(uri, offset); ok {
		loc, _ := o.Location()
		return ContextOf(o.Kind()), loc.Start.Byte
	}
	if f, ok := cfg.FragmentAt(uri, offset); ok {
		return ContextOf(f.Kind), f.Range.Start.Byte
	}
	return ContextRoot, offset
}
