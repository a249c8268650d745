package validate

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/parser"
	"github.com/vk/syslogng-lsp/internal/testutil"
)

const testURI = "/etc/syslog-ng/syslog-ng.conf"

func check(t *testing.T, text string) hcl.Diagnostics {
	t.Helper()
	cfg := model.NewConfiguration(testURI, text)
	res := parser.Parse(context.Background(), testURI, text)
	require.Empty(t, res.Diagnostics, "fixture must parse cleanly")
	res.ApplyTo(cfg)
	return Options(cfg, testutil.Database(t))
}

func TestOptions_Clean(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"known options", `source s { network(ip("10.0.0.1") port(514) transport("udp") keep-alive(yes)); };`},
		{"alias and underscore", `source s { network(localip("10.0.0.1") keep_alive(no)); };`},
		{"port written as 1", `source s { network(port(1)); };`},
		{"inner block", `source s { network(tls(key-file("/k") peer-verify("required-trusted"))); };`},
		{"template with colons", `destination d { file("/x" template("${HOST}: ${MSG}\n")); };`},
		{"single column", `parser p { csv-parser(columns("a")); };`},
		{"unknown driver", `source s { bogus(whatever(1)); };`},
		{"log path", `log { source(s); destination(d); };`},
		{"empty value", `source s { network(ip()); };`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, check(t, tt.text))
		})
	}
}

func TestOptions_Findings(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		summary string
		detail  string
	}{
		{
			name:    "unknown option with suggestion",
			text:    `source s { network(tranport("udp")); };`,
			summary: `unknown option "tranport" for source driver "network"`,
			detail:  `did you mean "transport"?`,
		},
		{
			name:    "unknown option in a block",
			text:    `source s { network(tls(key-file("/k") bogus(yes))); };`,
			summary: `unknown option "bogus" for tls() block of source driver "network"`,
		},
		{
			name:    "number expected",
			text:    `source s { network(port(abc)); };`,
			summary: `option "port" expects <positive-integer>, got identifier`,
		},
		{
			name:    "boolean expected",
			text:    `destination d { file("/x" create-dirs(5)); };`,
			summary: `option "create-dirs" expects <yesno>, got positive-integer`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := check(t, tt.text)
			require.Len(t, diags, 1)
			d := diags[0]
			assert.Equal(t, hcl.DiagWarning, d.Severity)
			assert.Equal(t, tt.summary, d.Summary)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, d.Detail)
			}
			require.NotNil(t, d.Subject)
			assert.Equal(t, testURI, d.Subject.Filename)
		})
	}
}
