package protocol

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
)

func TestFromHCL(t *testing.T) {
	text := "@version: 4.2\nsource s { bogus(); };\n"
	pc := NewPositionConverter(text)
	d := &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  "unknown driver",
		Detail:   "bogus is not a source driver",
		Subject: &hcl.Range{
			Filename: "/etc/main.conf",
			Start:    hcl.Pos{Line: 2, Column: 12, Byte: 25},
			End:      hcl.Pos{Line: 2, Column: 19, Byte: 32},
		},
	}

	got := FromHCL(pc, d)
	assert.Equal(t, Diagnostic{
		Range:    Range{Start: Position{1, 11}, End: Position{1, 18}},
		Severity: SeverityWarning,
		Source:   "syslog-ng LSP server",
		Message:  "unknown driver: bogus is not a source driver",
	}, got)
	assert.Equal(t, "/etc/main.conf:2:12: warning: unknown driver: bogus is not a source driver", Format("/etc/main.conf", got))

	bare := FromHCL(pc, &hcl.Diagnostic{Severity: hcl.DiagError, Summary: "boom"})
	assert.Equal(t, SeverityError, bare.Severity)
	assert.Equal(t, Range{}, bare.Range)
}

func TestSortDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		{Range: Range{Start: Position{4, 0}}, Severity: SeverityError, Message: "c"},
		{Range: Range{Start: Position{1, 2}}, Severity: SeverityWarning, Message: "b"},
		{Range: Range{Start: Position{1, 2}}, Severity: SeverityError, Message: "a"},
	}
	SortDiagnostics(diags)
	var got []string
	for _, d := range diags {
		got = append(got, d.Message)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
