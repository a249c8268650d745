package include

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/syslogng-lsp/internal/config"
	"github.com/vk/syslogng-lsp/internal/ctxlog"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/parser"
)

// Resolver assembles configurations, fetching included text from a Source.
type Resolver struct {
	src config.Source
}

// NewResolver returns a resolver reading includes from src. A nil src
// leaves every include unresolved.
func NewResolver(src config.Source) *Resolver {
	return &Resolver{src: src}
}

// Load parses doc as a main document together with everything it includes
// and returns the assembled configuration. All problems end up in the
// configuration's diagnostics.
func (r *Resolver) Load(ctx context.Context, doc config.Document) *model.Configuration {
	logger := ctxlog.FromContext(ctx).With("uri", doc.URI)
	cfg := model.NewConfiguration(doc.URI, doc.Text)

	root := parser.Parse(ctx, doc.URI, doc.Text)
	w := &walk{
		cfg:       cfg,
		results:   make(map[*model.Snippet]*parser.Result),
		expanded:  map[string]bool{doc.URI: true},
		ancestors: map[string]bool{doc.URI: true},
	}
	cfg.Snippets = r.discover(ctx, w, doc.URI, root.Includes, 1)
	model.SortSnippets(cfg.Snippets)

	for _, s := range cfg.Snippets {
		causes := Resolve(s)
		cfg.Diagnostics = append(cfg.Diagnostics, causes...)
		if s.State == model.SnippetFaulted {
			cfg.Diagnostics = append(cfg.Diagnostics, IncludedWithErrors(s))
			logger.Debug("Included snippet faulted.", "snippet", s.URI, "cause", causes)
		}
	}

	for _, top := range cfg.Snippets {
		resolved := top.State == model.SnippetResolved
		top.Walk(func(s *model.Snippet) {
			res, ok := w.results[s]
			if !ok {
				// Circular and shared leaves are never parsed.
				return
			}
			if resolved {
				res.ApplyTo(cfg)
			} else {
				cfg.Diagnostics = append(cfg.Diagnostics, res.Diagnostics...)
			}
		})
	}
	root.ApplyTo(cfg)

	if root.Version == nil {
		start := hcl.Pos{Line: 1, Column: 1, Byte: 0}
		cfg.Diagnostics = append(cfg.Diagnostics, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "missing @version annotation",
			Detail:   "the main configuration file should start with @version: <major>.<minor>",
			Subject:  &hcl.Range{Filename: doc.URI, Start: start, End: start},
		})
	}

	logger.Debug("Configuration assembled.",
		"objects", len(cfg.Objects()),
		"snippets", len(cfg.Snippets),
		"diagnostics", len(cfg.Diagnostics),
	)
	return cfg
}

// walk is the state of one discovery pass.
type walk struct {
	cfg     *model.Configuration
	results map[*model.Snippet]*parser.Result
	// expanded holds every document parsed so far, ancestors the documents
	// on the current include path.
	expanded  map[string]bool
	ancestors map[string]bool
}

// discover fetches and parses the documents named by includes, recursing
// into each one until depth passes MaxDepth. A snippet beyond the ceiling is
// kept, so that resolution can fault it, but not expanded. Each document is
// parsed and expanded at most once; later occurrences become shared leaves,
// and one that is its own ancestor becomes a circular leaf.
func (r *Resolver) discover(
	ctx context.Context,
	w *walk,
	from string,
	includes []model.Include,
	depth int,
) []*model.Snippet {
	if r.src == nil {
		return nil
	}
	cfg := w.cfg
	var out []*model.Snippet
	for _, inc := range includes {
		rng := inc.Range
		docs, err := r.src.Include(ctx, from, inc.Pattern)
		if err != nil {
			cfg.Diagnostics = append(cfg.Diagnostics, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("failed to resolve @include %q", inc.Pattern),
				Detail:   err.Error(),
				Subject:  &rng,
			})
			continue
		}
		if len(docs) == 0 && !strings.ContainsAny(inc.Pattern, "*?[") {
			cfg.Diagnostics = append(cfg.Diagnostics, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  fmt.Sprintf("no configuration file matches @include %q", inc.Pattern),
				Subject:  &rng,
			})
		}
		for _, d := range docs {
			s := &model.Snippet{URI: d.URI, Content: d.Text, IncludeRange: rng, Depth: depth}
			out = append(out, s)
			switch {
			case w.ancestors[d.URI]:
				s.Circular = true
				continue
			case w.expanded[d.URI]:
				s.Shared = true
				continue
			}
			w.expanded[d.URI] = true
			res := parser.Parse(ctx, d.URI, d.Text)
			w.results[s] = res
			cfg.AddSnippet(s)
			if depth <= MaxDepth {
				w.ancestors[d.URI] = true
				s.Children = r.discover(ctx, w, d.URI, res.Includes, depth+1)
				delete(w.ancestors, d.URI)
			}
		}
	}
	return out
}
