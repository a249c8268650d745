package protocol

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
)

// DiagnosticSource tags every diagnostic this server publishes.
const DiagnosticSource = "syslog-ng LSP server"

// FromHCL converts d, whose subject lies in the document text. A diagnostic
// without a subject is placed at the start of the document.
func FromHCL(pc *PositionConverter, d *hcl.Diagnostic) Diagnostic {
	out := Diagnostic{
		Severity: SeverityError,
		Source:   DiagnosticSource,
		Message:  d.Summary,
	}
	if d.Severity == hcl.DiagWarning {
		out.Severity = SeverityWarning
	}
	if d.Detail != "" {
		out.Message += ": " + d.Detail
	}
	if d.Subject != nil {
		out.Range = pc.ByteOffsetsToRange(d.Subject.Start.Byte, d.Subject.End.Byte)
	}
	return out
}

// Format renders d as `path:line:col: severity: message` with 1-based line
// and column.
func Format(path string, d Diagnostic) string {
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		path, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Message)
}

// SortDiagnostics orders diagnostics by position, then errors before
// warnings.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Range.Start, diags[j].Range.Start
		if a != b {
			return a.Before(b)
		}
		return diags[i].Severity < diags[j].Severity
	})
}
