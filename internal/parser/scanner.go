package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/syslogng-lsp/internal/model"
)

// syntaxError is a failed attempt to recognise a statement. Offsets are
// relative to the chunk. An incomplete error means the chunk ended before
// the statement did and the attempt should be retried with more input.
type syntaxError struct {
	start, end int
	msg        string
	incomplete bool
}

// statement is a recognised top-level declaration. Offsets are relative to
// the chunk; end points just past the terminating semicolon.
type statement struct {
	keyword string
	kind    model.ObjectKind
	global  bool
	id      string
	drivers []*model.Driver
	start   int
	end     int
}

// scanner recognises one top-level statement at the start of a chunk.
type scanner struct {
	src  string
	pos  int
	base int
	ix   *lineIndex
}

func (s *scanner) eof() bool  { return s.pos >= len(s.src) }
func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

// word consumes a name made of identifier characters.
func (s *scanner) word() string {
	n := wordLength(s.src[s.pos:])
	w := s.src[s.pos : s.pos+n]
	s.pos += n
	return w
}

func wordLength(s string) int {
	if s == "" || !isIdentStart(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && isIdentPart(s[n]) {
		n++
	}
	return n
}

// callName returns the name at the cursor if it is immediately followed by
// an opening parenthesis.
func (s *scanner) callName() string {
	n := wordLength(s.src[s.pos:])
	if n == 0 || s.pos+n >= len(s.src) || s.src[s.pos+n] != '(' {
		return ""
	}
	return s.src[s.pos : s.pos+n]
}

func (s *scanner) peekWord() string {
	n := wordLength(s.src[s.pos:])
	return s.src[s.pos : s.pos+n]
}

func (s *scanner) rng(start, end int) hcl.Range {
	return s.ix.rng(s.base+start, s.base+end)
}

func (s *scanner) more() *syntaxError {
	return &syntaxError{start: len(s.src), end: len(s.src), incomplete: true}
}

func (s *scanner) fail(format string, args ...any) *syntaxError {
	return &syntaxError{start: s.pos, end: s.tokenEnd(), msg: fmt.Sprintf(format, args...)}
}

// tokenEnd is the end of the word at the cursor, or of the single byte there.
func (s *scanner) tokenEnd() int {
	if n := wordLength(s.src[s.pos:]); n > 0 {
		return s.pos + n
	}
	if s.pos < len(s.src) {
		return s.pos + 1
	}
	return len(s.src)
}

// statement parses `<kind> <id>? { <driver>* };` or `options { ... };`. The
// returned statement is non-nil whenever the keyword was recognised, even if
// the rest failed, so callers can still classify the region.
func (s *scanner) statement() (*statement, *syntaxError) {
	s.skipSpace()
	if s.eof() {
		return nil, s.more()
	}
	st := &statement{start: s.pos}
	st.keyword = s.word()
	if st.keyword == "" {
		return nil, s.fail("unexpected %q, expected an object declaration", s.peek())
	}
	if st.keyword == "options" {
		st.global = true
	} else if kind, ok := model.ParseObjectKind(st.keyword); ok {
		st.kind = kind
	} else {
		if s.eof() {
			return nil, s.more()
		}
		return nil, &syntaxError{start: st.start, end: s.pos, msg: fmt.Sprintf("unrecognized object kind %q", st.keyword)}
	}

	s.skipSpace()
	if s.eof() {
		return st, s.more()
	}
	if s.peek() != '{' {
		if st.global {
			return st, s.fail("expected '{' after options")
		}
		st.id = s.word()
		if st.id == "" {
			return st, s.fail("expected an identifier or '{' after %s", st.keyword)
		}
		s.skipSpace()
		if s.eof() {
			return st, s.more()
		}
		if s.peek() != '{' {
			return st, s.fail("expected '{' to open the body of %s %s", st.keyword, st.id)
		}
	}
	s.pos++

	drivers, err := s.body(st.kind == model.KindFilter && !st.global, '}')
	if err != nil {
		return st, err
	}
	s.pos++
	s.skipSpace()
	if s.eof() {
		return st, s.more()
	}
	if s.peek() != ';' {
		return st, s.fail("missing ';' after the closing '}' of %s", st.keyword)
	}
	s.pos++
	st.end = s.pos
	st.drivers = drivers
	return st, nil
}

// body parses drivers up to, but not including, closer. Filter bodies also
// accept boolean connectives and parenthesised groups between calls.
func (s *scanner) body(filter bool, closer byte) ([]*model.Driver, *syntaxError) {
	var drivers []*model.Driver
	for {
		s.skipSpace()
		if s.eof() {
			return nil, s.more()
		}
		c := s.peek()
		if c == closer {
			return drivers, nil
		}
		if c == ';' {
			s.pos++
			continue
		}
		if filter && c == '(' {
			s.pos++
			group, err := s.body(true, ')')
			if err != nil {
				return nil, err
			}
			s.pos++
			drivers = append(drivers, group...)
			if err := s.terminator(filter, closer, "')'"); err != nil {
				return nil, err
			}
			continue
		}

		start := s.pos
		name := s.word()
		if name == "" {
			return nil, s.fail("unexpected %q", c)
		}
		if filter && (name == "and" || name == "or" || name == "not") {
			continue
		}
		s.skipSpace()
		if s.eof() {
			return nil, s.more()
		}
		var d *model.Driver
		switch s.peek() {
		case '(':
			s.pos++
			var err *syntaxError
			if d, err = s.args(name); err != nil {
				return nil, err
			}
		case '{':
			s.pos++
			children, err := s.body(name == "filter", '}')
			if err != nil {
				return nil, err
			}
			s.pos++
			d = model.NewDriver(name)
			d.Body = children
		default:
			s.pos = start
			return nil, s.fail("expected '(' after %q", name)
		}
		d.Range = s.rng(start, s.pos)
		drivers = append(drivers, d)
		if err := s.terminator(filter, closer, name+"(...)"); err != nil {
			return nil, err
		}
	}
}

// terminator consumes the semicolon after a call. Inside filter expressions
// the semicolon may be replaced by a connective or the end of a group.
func (s *scanner) terminator(filter bool, closer byte, after string) *syntaxError {
	s.skipSpace()
	if s.eof() {
		return s.more()
	}
	if s.peek() == ';' {
		s.pos++
		return nil
	}
	if filter {
		if s.peek() == closer && closer == ')' {
			return nil
		}
		switch s.peekWord() {
		case "and", "or":
			return nil
		}
	}
	return s.fail("missing ';' after %s", after)
}

// args parses the inside of a call after its opening parenthesis and
// consumes the closing one. Positional values must precede named options.
func (s *scanner) args(name string) (*model.Driver, *syntaxError) {
	d := model.NewDriver(name)
	named := false
	for {
		s.skipSpace()
		if s.eof() {
			return nil, s.more()
		}
		c := s.peek()
		if c == ',' {
			s.pos++
			continue
		}
		if c == ')' {
			s.pos++
			return d, nil
		}
		start := s.pos
		if opt := s.callName(); opt != "" {
			s.pos += len(opt) + 1
			inner, err := s.args(opt)
			if err != nil {
				return nil, err
			}
			d.SetOption(model.Parameter{Name: opt, Value: collapse(inner), Range: s.rng(start, s.pos)})
			named = true
			continue
		}
		rest, v, ok := ParseValue(s.src[s.pos:])
		if !ok {
			if (c == '"' || c == '\'') && unterminatedQuote(s.src[s.pos:]) {
				return nil, s.more()
			}
			return nil, s.fail("unexpected %q in %s(...)", s.src[start:s.tokenEnd()], name)
		}
		if named {
			return nil, s.fail("positional value after named options in %s(...)", name)
		}
		d.Positional = append(d.Positional, v)
		s.pos = len(s.src) - len(rest)
	}
}

// collapse turns a parsed option body into a value: nothing is Empty, a lone
// positional is that value and anything richer is an inner block.
func collapse(d *model.Driver) model.Value {
	switch {
	case len(d.Options) == 0 && len(d.Positional) == 0:
		return model.Empty()
	case len(d.Options) == 0 && len(d.Positional) == 1:
		return d.Positional[0]
	default:
		return model.InnerBlock(d)
	}
}

func unterminatedQuote(s string) bool {
	q := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return false
		}
	}
	return true
}

// terminatorIndex finds the semicolon ending the first statement in chunk:
// the first one outside quotes at brace depth zero or below. It returns the
// offset just past it.
func terminatorIndex(chunk string) (int, bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(chunk); i++ {
		c := chunk[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
		case c == ';' && depth <= 0:
			return i + 1, true
		}
	}
	return 0, false
}
