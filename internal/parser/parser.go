package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/syslogng-lsp/internal/ctxlog"
	"github.com/vk/syslogng-lsp/internal/model"
)

// Result is everything parsed out of one document.
type Result struct {
	URI           string
	Version       *model.Version
	Includes      []model.Include
	Defines       []model.Define
	Pragmas       []model.Pragma
	GlobalOptions []model.Parameter
	Objects       []*model.Object
	Fragments     []model.Fragment
	Diagnostics   hcl.Diagnostics
}

// ApplyTo merges the result into cfg. Objects are appended, so results must
// be applied in merge order. The version is only taken if cfg has none yet.
func (r *Result) ApplyTo(cfg *model.Configuration) {
	if r.Version != nil && !cfg.HasVersion {
		cfg.Version = *r.Version
		cfg.HasVersion = true
	}
	cfg.Includes = append(cfg.Includes, r.Includes...)
	cfg.Defines = append(cfg.Defines, r.Defines...)
	cfg.Pragmas = append(cfg.Pragmas, r.Pragmas...)
	cfg.GlobalOptions = append(cfg.GlobalOptions, r.GlobalOptions...)
	for _, o := range r.Objects {
		cfg.AddObject(o)
	}
	for _, f := range r.Fragments {
		cfg.AddFragment(f)
	}
	cfg.Diagnostics = append(cfg.Diagnostics, r.Diagnostics...)
}

// docParser holds the accumulator state while one document is parsed.
type docParser struct {
	ix  *lineIndex
	res *Result

	// buf is the pending chunk and base the document offset of buf[0].
	buf  string
	base int
	// quote is the quote left open by the previous line, 0 if none.
	quote byte
	// pending is the latest failure of the pending chunk, reported only once
	// the chunk is known to be complete.
	pending    *syntaxError
	pendingKey *statement
}

// Parse parses the document text identified by uri. It never fails: every
// problem is reported as a diagnostic in the result.
func Parse(ctx context.Context, uri, text string) *Result {
	logger := ctxlog.FromContext(ctx)
	p := &docParser{ix: newLineIndex(uri, text), res: &Result{URI: uri}}

	for lineStart := 0; lineStart < len(text); {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		next := len(text)
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
			next = lineEnd + 1
		}
		inQuote := p.quote != 0
		var line string
		line, p.quote = StripComment(text[lineStart:lineEnd], p.quote)

		if !inQuote && strings.TrimSpace(p.buf) != "" && startsDeclaration(line) {
			p.flush()
		}
		if strings.TrimSpace(p.buf) == "" {
			p.buf, p.base = "", lineStart
		}
		p.buf += line + text[lineEnd:next]
		p.consume()
		lineStart = next
	}
	if strings.TrimSpace(p.buf) != "" {
		p.flush()
	}

	logger.Debug("Parsed document.",
		"uri", uri,
		"objects", len(p.res.Objects),
		"includes", len(p.res.Includes),
		"diagnostics", len(p.res.Diagnostics),
	)
	return p.res
}

// consume recognises as many statements at the start of the chunk as it can.
func (p *docParser) consume() {
	for {
		trimmed := strings.TrimLeft(p.buf, " \t\r\n")
		p.advance(len(p.buf) - len(trimmed))
		if p.buf == "" {
			return
		}
		if p.buf[0] == '@' {
			p.advance(p.annotation())
			continue
		}

		sc := &scanner{src: p.buf, base: p.base, ix: p.ix}
		st, err := sc.statement()
		if err == nil {
			p.emit(st)
			p.advance(st.end)
			continue
		}
		if err.incomplete {
			p.pending, p.pendingKey = nil, st
			return
		}
		end, ok := terminatorIndex(p.buf)
		if !ok {
			p.pending, p.pendingKey = err, st
			return
		}
		p.report(err)
		p.fragment(st, end)
		p.advance(end)
	}
}

// flush gives up on the pending chunk, reporting why it never parsed.
func (p *docParser) flush() {
	content := strings.TrimRight(p.buf, " \t\r\n")
	switch {
	case p.pending != nil:
		p.report(p.pending)
	case p.pendingKey == nil && wordLength(content) > 0:
		kw := content[:wordLength(content)]
		p.errorf(p.ix.rng(p.base, p.base+len(kw)), fmt.Sprintf("unrecognized object kind %q", kw), "")
	default:
		rng := p.ix.rng(p.base, p.base+len(content))
		p.errorf(rng, "unterminated declaration", "the declaration is missing a closing '}' or ';'")
	}
	// Trailing blank lines stay inside the fragment so a cursor on them is
	// still classified as part of the unfinished declaration.
	p.fragment(p.pendingKey, len(p.buf))
	p.buf, p.pending, p.pendingKey = "", nil, nil
}

func (p *docParser) advance(n int) {
	p.buf = p.buf[n:]
	p.base += n
}

func (p *docParser) emit(st *statement) {
	if st.global {
		for _, d := range st.drivers {
			p.res.GlobalOptions = append(p.res.GlobalOptions, model.Parameter{
				Name:  d.Name,
				Value: collapse(d),
				Range: d.Range,
			})
		}
		return
	}
	rng := p.ix.rng(p.base+st.start, p.base+st.end)
	p.res.Objects = append(p.res.Objects, model.NewObject(st.id, st.kind, st.drivers, &rng))
}

func (p *docParser) fragment(st *statement, end int) {
	if st == nil || st.global {
		return
	}
	p.res.Fragments = append(p.res.Fragments, model.Fragment{
		Kind:  st.kind,
		Range: p.ix.rng(p.base+st.start, p.base+end),
	})
}

func (p *docParser) report(err *syntaxError) {
	p.errorf(p.ix.rng(p.base+err.start, p.base+err.end), err.msg, "")
}

func (p *docParser) errorf(rng hcl.Range, summary, detail string) {
	p.res.Diagnostics = append(p.res.Diagnostics, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  &rng,
	})
}

// startsDeclaration reports whether an unindented line opens a new top-level
// statement. A chunk still pending when such a line arrives is abandoned so
// one unfinished block cannot swallow the rest of the file.
func startsDeclaration(line string) bool {
	if line == "" {
		return false
	}
	if line[0] == '@' {
		return true
	}
	n := wordLength(line)
	if n == 0 {
		return false
	}
	kw := line[:n]
	if _, ok := model.ParseObjectKind(kw); !ok && kw != "options" {
		return false
	}
	rest := strings.TrimLeft(line[n:], " \t")
	return strings.HasPrefix(rest, "{") || wordLength(rest) > 0 && n < len(line) && (line[n] == ' ' || line[n] == '\t')
}
