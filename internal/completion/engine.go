package completion

import (
	"context"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/vk/syslogng-lsp/internal/ctxlog"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/protocol"
	"github.com/vk/syslogng-lsp/internal/schema"
)

// logKeywords may appear at the top level of a log path body.
var logKeywords = []string{"source", "destination", "filter", "parser", "rewrite", "log", "junction", "flags"}

// logFlags are the values accepted by flags() in a log path.
var logFlags = []string{"catchall", "drop-unmatched", "fallback", "final", "flow-control"}

// filterConnectives open groups in filter expressions without naming a
// driver.
var filterConnectives = map[string]bool{"": true, "and": true, "or": true, "not": true}

// Engine produces completion candidates from a configuration and the grammar
// database. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	db *schema.Database
}

// New returns an engine backed by db.
func New(db *schema.Database) *Engine {
	return &Engine{db: db}
}

// candidate pairs an item with the word it is matched on.
type candidate struct {
	word string
	item protocol.CompletionItem
}

// Complete returns the candidates at the byte offset in document uri. Root
// context always yields the top-level keywords; lookup misses yield nothing.
func (e *Engine) Complete(ctx context.Context, cfg *model.Configuration, uri string, offset int) []protocol.CompletionItem {
	logger := ctxlog.FromContext(ctx)

	text, ok := cfg.DocumentText(uri)
	if !ok {
		return nil
	}
	if offset > len(text) {
		offset = len(text)
	}

	where, start := Locate(cfg, uri, offset)
	var cur cursor
	if where != ContextRoot {
		cur = scan(text[start:offset])
		if cur.quiet {
			return nil
		}
		if len(cur.braces) == 0 {
			// Before the opening brace or after the closing one.
			where = ContextRoot
		}
	}
	if where == ContextRoot {
		cur.prefix = rootPrefix(text[:offset])
	}

	cands := e.candidates(cfg, where, cur)
	items := rank(cands, cur.prefix)
	logger.Debug("Completion resolved.",
		"uri", uri,
		"context", where.String(),
		"parens", cur.parens,
		"prefix", cur.prefix,
		"items", len(items),
	)
	return items
}

func (e *Engine) candidates(cfg *model.Configuration, where Context, cur cursor) []candidate {
	kind, ok := where.Kind()
	if !ok {
		return keywords(schema.RootKeywords())
	}

	if kind == model.KindLog {
		// An inline object inside a log path switches to that object's kind.
		for _, name := range cur.braces[1:] {
			if k, ok := model.ParseObjectKind(name); ok {
				kind = k
			}
		}
		if kind == model.KindLog {
			return logCandidates(cfg, cur.parens)
		}
	}

	parens := cur.parens
	if kind == model.KindFilter {
		parens = parens[:0:0]
		for _, p := range cur.parens {
			if !filterConnectives[p] {
				parens = append(parens, p)
			}
		}
	}
	if e.db == nil {
		return nil
	}

	if len(parens) == 0 {
		var out []candidate
		for _, name := range e.db.PossibleObjectNames(kind.String()) {
			out = append(out, candidate{word: name, item: protocol.CompletionItem{
				Label:  name,
				Detail: kind.String() + " driver",
				Kind:   protocol.CompletionKindModule,
			}})
		}
		return out
	}

	driver, block := parens[0], ""
	if len(parens) > 1 {
		block = parens[len(parens)-1]
	}
	options, ok := e.db.Options(kind.String(), driver, block)
	if !ok {
		return nil
	}
	out := make([]candidate, 0, len(options))
	for _, o := range options {
		hint := o.Hint()
		out = append(out, candidate{word: o.Name, item: protocol.CompletionItem{
			Label:  o.Name + "(" + hint + ")",
			Detail: hint,
			Kind:   protocol.CompletionKindProperty,
		}})
	}
	return out
}

// logCandidates completes inside a log path: keywords at body level, the ids
// of defined objects inside a reference such as source(...).
func logCandidates(cfg *model.Configuration, parens []string) []candidate {
	switch {
	case len(parens) == 0:
		return keywords(logKeywords)
	case len(parens) > 1:
		return nil
	case parens[0] == "flags":
		return keywords(logFlags)
	}

	kind, ok := model.ParseObjectKind(parens[0])
	if !ok || kind == model.KindLog || kind == model.KindTemplate {
		return nil
	}
	var out []candidate
	for _, o := range cfg.ObjectsByKind(kind) {
		if o.ID() == "" {
			continue
		}
		out = append(out, candidate{word: o.ID(), item: protocol.CompletionItem{
			Label:  o.ID(),
			Detail: kind.String(),
			Kind:   protocol.CompletionKindReference,
		}})
	}
	return out
}

func keywords(words []string) []candidate {
	out := make([]candidate, len(words))
	for i, w := range words {
		out[i] = candidate{word: w, item: protocol.CompletionItem{Label: w, Detail: w, Kind: protocol.CompletionKindKeyword}}
	}
	return out
}

// rootPrefix is the word being typed at the top level. Only a word that
// starts its line counts.
func rootPrefix(before string) string {
	k := len(before)
	for k > 0 && isWordByte(before[k-1]) {
		k--
	}
	line := before[:k]
	for i := len(line) - 1; i >= 0 && line[i] != '\n'; i-- {
		if line[i] != ' ' && line[i] != '\t' {
			return ""
		}
	}
	return before[k:]
}

// rank keeps the candidates whose word fuzzily matches prefix, closest
// first. Without a prefix the candidates are returned in their given order.
func rank(cands []candidate, prefix string) []protocol.CompletionItem {
	if prefix == "" {
		out := make([]protocol.CompletionItem, len(cands))
		for i, c := range cands {
			out[i] = c.item
		}
		return out
	}

	words := make([]string, len(cands))
	for i, c := range cands {
		words[i] = c.word
	}
	ranks := fuzzy.RankFindFold(prefix, words)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]protocol.CompletionItem, len(ranks))
	for i, r := range ranks {
		out[i] = cands[r.OriginalIndex].item
	}
	return out
}
