package include

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/parser"
)

// MaxDepth is the deepest a snippet may be nested. Snippets included by the
// main document are at depth 1.
const MaxDepth = 15

// Resolve merges s and its descendants bottom-up. On success s.State is
// SnippetResolved and s.Resolved holds the children's merged content, in
// lexical order of identity, followed by s's own content.
//
// A circular snippet, one nested deeper than MaxDepth, or one declaring
// `@version` is faulted. A shared snippet resolves to nothing. A faulted child faults its parent, whose Fault then points at the
// include directive that pulled the child in. The returned diagnostics are
// the root causes found in the subtree.
func Resolve(s *model.Snippet) hcl.Diagnostics {
	if s.Circular {
		rng := s.IncludeRange
		return fault(s, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Circular @include of %q", s.URI),
			Detail:   "the file is already being included by one of its ancestors",
			Subject:  &rng,
		})
	}
	if s.Shared {
		s.State = model.SnippetResolved
		s.Resolved = ""
		s.Fault = nil
		return nil
	}
	if s.Depth > MaxDepth {
		return fault(s, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary: fmt.Sprintf("Include limit (%d) has been reached, diagnostics might be unreliable. "+
				"Make sure there are no circular @include directives", MaxDepth),
			Subject: contentRange(s.URI, s.Content),
		})
	}
	if rng, ok := versionLine(s.URI, s.Content); ok {
		return fault(s, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Snippets can not contain @version",
			Subject:  rng,
		})
	}

	s.SortChildren()
	var b strings.Builder
	for _, child := range s.Children {
		causes := Resolve(child)
		if child.State == model.SnippetFaulted {
			fault(s, IncludedWithErrors(child))
			return causes
		}
		b.WriteString(child.Resolved)
	}
	b.WriteString(s.Content)
	s.Resolved = b.String()
	s.State = model.SnippetResolved
	s.Fault = nil
	return nil
}

// IncludedWithErrors is the fault reported at the directive that included a
// faulted snippet.
func IncludedWithErrors(child *model.Snippet) *hcl.Diagnostic {
	rng := child.IncludeRange
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Included file %q has errors in it", child.URI),
		Subject:  &rng,
	}
}

func fault(s *model.Snippet, d *hcl.Diagnostic) hcl.Diagnostics {
	s.State = model.SnippetFaulted
	s.Resolved = ""
	s.Fault = d
	return hcl.Diagnostics{d}
}

// versionLine finds the first line declaring `@version`, ignoring comments.
func versionLine(uri, content string) (*hcl.Range, bool) {
	offset := 0
	var quote byte
	for i, line := range strings.SplitAfter(content, "\n") {
		body := strings.TrimRight(line, "\r\n")
		inQuote := quote != 0
		var stripped string
		stripped, quote = parser.StripComment(body, quote)
		if !inQuote && strings.Contains(stripped, "@version") {
			return &hcl.Range{
				Filename: uri,
				Start:    hcl.Pos{Line: i + 1, Column: 1, Byte: offset},
				End:      hcl.Pos{Line: i + 1, Column: utf8.RuneCountInString(body) + 1, Byte: offset + len(body)},
			}, true
		}
		offset += len(line)
	}
	return nil, false
}

// contentRange covers a whole document.
func contentRange(uri, content string) *hcl.Range {
	line := strings.Count(content, "\n") + 1
	last := content[strings.LastIndexByte(content, '\n')+1:]
	return &hcl.Range{
		Filename: uri,
		Start:    hcl.Pos{Line: 1, Column: 1, Byte: 0},
		End:      hcl.Pos{Line: line, Column: utf8.RuneCountInString(last) + 1, Byte: len(content)},
	}
}
