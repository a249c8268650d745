package protocol

// Position is a 0-based line and a 0-based UTF-16 column.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is half-open: End points just past the last character.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

// Contains reports whether p lies in r, both ends included.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && !r.End.Before(p)
}

// DiagnosticSeverity follows the editor protocol numbering.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is one problem reported against a document.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// CompletionItemKind follows the editor protocol numbering. Only the kinds
// produced here are named.
type CompletionItemKind int

const (
	CompletionKindModule    CompletionItemKind = 9
	CompletionKindProperty  CompletionItemKind = 10
	CompletionKindKeyword   CompletionItemKind = 14
	CompletionKindReference CompletionItemKind = 18
)

// CompletionItem is one candidate offered at a cursor.
type CompletionItem struct {
	Label  string             `json:"label"`
	Detail string             `json:"detail,omitempty"`
	Kind   CompletionItemKind `json:"kind,omitempty"`
}

// TextDocumentContentChangeEvent is one edit. A nil Range replaces the whole
// document.
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}
