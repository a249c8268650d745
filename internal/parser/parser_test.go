package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/syslogng-lsp/internal/model"
)

const testURI = "/etc/syslog-ng/syslog-ng.conf"

var ignoreRanges = cmp.Options{
	cmpopts.IgnoreFields(model.Driver{}, "Range"),
	cmpopts.IgnoreFields(model.Parameter{}, "Range"),
	cmpopts.EquateEmpty(),
}

func parse(t *testing.T, text string) *Result {
	t.Helper()
	return Parse(context.Background(), testURI, text)
}

func summaries(diags hcl.Diagnostics) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Summary)
	}
	return out
}

func TestParse_EndToEnd(t *testing.T) {
	// Arrange
	text := `source s_network_mine { network( ip("localhost") transport("udp") ); };
destination d_local { file("/var/log/messages"); };
log { source(s_local); destination(d_local); };
`

	// Act
	res := parse(t, text)

	// Assert
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Objects, 3)

	src, dst, logPath := res.Objects[0], res.Objects[1], res.Objects[2]
	assert.Equal(t, model.KindSource, src.Kind())
	assert.Equal(t, "s_network_mine", src.ID())
	assert.Equal(t, model.KindDestination, dst.Kind())
	assert.Equal(t, model.KindLog, logPath.Kind())
	assert.Equal(t, "", logPath.ID())

	network := src.Drivers()[0]
	assert.Equal(t, "network", network.Name)
	assert.Empty(t, network.Positional)
	ip, ok := network.Option("ip")
	require.True(t, ok)
	assert.True(t, ip.Value.Equal(model.String("localhost")))
	transport, ok := network.Option("transport")
	require.True(t, ok)
	assert.True(t, transport.Value.Equal(model.String("udp")))

	file := dst.Drivers()[0]
	assert.Equal(t, "file", file.Name)
	require.Len(t, file.Positional, 1)
	assert.True(t, file.Positional[0].Equal(model.String("/var/log/messages")))
	assert.Empty(t, file.Options)

	lines := strings.Split(text, "\n")
	for i, obj := range res.Objects {
		first, end := obj.Lines()
		assert.Equal(t, i+1, first, "object %d", i)
		assert.Equal(t, i+2, end, "object %d", i)

		loc, ok := obj.Location()
		require.True(t, ok)
		assert.Equal(t, testURI, loc.Filename)
		assert.Equal(t, 1, loc.Start.Column)
		assert.Equal(t, len(lines[i]), loc.End.Column-1)
	}
}

func TestParse_MultiLineObject(t *testing.T) {
	text := `@version: 4.2

source s_net {
    network(
        ip("0.0.0.0")
        port(514)
        tls(
            key-file("/etc/syslog-ng/key.pem")
            peer-verify(required-trusted)
        )
    );
};
`
	res := parse(t, text)
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Objects, 1)

	first, end := res.Objects[0].Lines()
	assert.Equal(t, 3, first)
	assert.Equal(t, 13, end)

	tls := model.NewDriver("tls")
	tls.SetOption(model.Parameter{Name: "key-file", Value: model.String("/etc/syslog-ng/key.pem")})
	tls.SetOption(model.Parameter{Name: "peer-verify", Value: model.Identifier("required-trusted")})
	want := model.NewDriver("network")
	want.SetOption(model.Parameter{Name: "ip", Value: model.String("0.0.0.0")})
	want.SetOption(model.Parameter{Name: "port", Value: model.PositiveInteger(514)})
	want.SetOption(model.Parameter{Name: "tls", Value: model.InnerBlock(tls)})

	if diff := cmp.Diff(want, res.Objects[0].Drivers()[0], ignoreRanges); diff != "" {
		t.Errorf("network driver mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RepeatedOptionLastWins(t *testing.T) {
	res := parse(t, `destination d { network("10.0.0.1" port(514), port(601)); };`)
	require.Empty(t, res.Diagnostics)

	d := res.Objects[0].Drivers()[0]
	require.Len(t, d.Positional, 1)
	assert.True(t, d.Positional[0].Equal(model.String("10.0.0.1")))
	port, ok := d.Option("port")
	require.True(t, ok)
	assert.True(t, port.Value.Equal(model.PositiveInteger(601)))
}

func TestParse_SeveralObjectsOnOneLine(t *testing.T) {
	res := parse(t, `source a { file("/a"); }; source b { file("/b"); };`)
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Objects, 2)
	assert.Equal(t, "a", res.Objects[0].ID())
	assert.Equal(t, "b", res.Objects[1].ID())

	second, _ := res.Objects[1].Location()
	assert.Equal(t, 1, second.Start.Line)
	assert.Equal(t, 27, second.Start.Column)
}

func TestParse_Comments(t *testing.T) {
	text := `# leading comment
source s { # trailing comment
    file("/var/log/#not-a-comment"); # another
};
`
	res := parse(t, text)
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Objects, 1)

	first, end := res.Objects[0].Lines()
	assert.Equal(t, 2, first)
	assert.Equal(t, 5, end)
	pos := res.Objects[0].Drivers()[0].Positional
	require.Len(t, pos, 1)
	assert.True(t, pos[0].Equal(model.String("/var/log/#not-a-comment")))

	t.Run("hash in a string spanning lines", func(t *testing.T) {
		text := "destination d { file(\"/var/log/x\" template(\"a\n# not a comment\nsource b\")); };\n"
		res := parse(t, text)
		require.Empty(t, res.Diagnostics)
		require.Len(t, res.Objects, 1)

		template, ok := res.Objects[0].Drivers()[0].Option("template")
		require.True(t, ok)
		assert.True(t, template.Value.Equal(model.String("a\n# not a comment\nsource b")), template.Value.String())
	})
}

func TestParse_BareStringList(t *testing.T) {
	res := parse(t, "source s { network(tags(a:b)); };")
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Objects, 1)

	tags, ok := res.Objects[0].Drivers()[0].Option("tags")
	require.True(t, ok)
	assert.True(t, tags.Value.Equal(model.StringList("a", "b")), tags.Value.String())
}

func TestParse_FilterExpression(t *testing.T) {
	res := parse(t, `filter f_err { level(err..emerg) and not program("cron") or (facility(mail) and level(info)); };`)
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Objects, 1)

	var names []string
	for _, d := range res.Objects[0].Drivers() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"level", "program", "facility", "level"}, names)
}

func TestParse_LogPathWithNestedBlocks(t *testing.T) {
	text := `log {
    source(s_a);
    junction {
        channel { filter(f_x); destination(d_y); flags(final); };
    };
    flags(flow-control);
};
`
	res := parse(t, text)
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Objects, 1)

	drivers := res.Objects[0].Drivers()
	require.Len(t, drivers, 3)
	assert.Equal(t, "junction", drivers[1].Name)
	require.Len(t, drivers[1].Body, 1)
	channel := drivers[1].Body[0]
	assert.Equal(t, "channel", channel.Name)
	assert.Len(t, channel.Body, 3)
	assert.True(t, drivers[2].Positional[0].Equal(model.Identifier("flow-control")))
}

func TestParse_GlobalOptions(t *testing.T) {
	res := parse(t, `options { keep-hostname(yes); log-fifo-size(1000); };`)
	require.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Objects)

	want := []model.Parameter{
		{Name: "keep-hostname", Value: model.YesNo(true)},
		{Name: "log-fifo-size", Value: model.PositiveInteger(1000)},
	}
	if diff := cmp.Diff(want, res.GlobalOptions, ignoreRanges); diff != "" {
		t.Errorf("global options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Annotations(t *testing.T) {
	text := `@version: 4.2
@include "scl.conf"
@define allow-config-dups 1
@module confgen
@bogus
`
	res := parse(t, text)

	require.NotNil(t, res.Version)
	assert.Equal(t, "4.2", res.Version.String())
	assert.Equal(t, 1, res.Version.Range.Start.Line)

	require.Len(t, res.Includes, 1)
	assert.Equal(t, "scl.conf", res.Includes[0].Pattern)
	assert.Equal(t, 2, res.Includes[0].Range.Start.Line)

	require.Len(t, res.Defines, 1)
	assert.Equal(t, "allow-config-dups", res.Defines[0].Name)
	assert.Equal(t, "1", res.Defines[0].Value)

	require.Len(t, res.Pragmas, 1)
	assert.Equal(t, "module", res.Pragmas[0].Name)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, hcl.DiagWarning, res.Diagnostics[0].Severity)
	assert.Equal(t, `unknown annotation "@bogus"`, res.Diagnostics[0].Summary)
	assert.Equal(t, 5, res.Diagnostics[0].Subject.Start.Line)
}

func TestParse_VersionFaults(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want string
	}{
		{name: "missing colon", text: "@version 4.2\n", want: "malformed @version annotation"},
		{name: "missing minor", text: "@version: 4\n", want: "malformed @version annotation"},
		{name: "non digits", text: "@version: 4.x\n", want: `invalid @version component "x"`},
		{name: "overflow", text: "@version: 300.1\n", want: `invalid @version component "300"`},
		{name: "duplicate", text: "@version: 4.2\n@version: 4.3\n", want: "duplicate @version annotation"},
		{name: "bad include", text: "@include scl.conf\n", want: "malformed @include annotation"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := parse(t, tc.text)
			require.Len(t, res.Diagnostics, 1)
			assert.Equal(t, hcl.DiagError, res.Diagnostics[0].Severity)
			assert.Equal(t, tc.want, res.Diagnostics[0].Summary)
		})
	}
}

func TestParse_SyntaxFaults(t *testing.T) {
	testCases := []struct {
		name        string
		text        string
		wantSummary string
		wantLine    int
		wantObjects int
	}{
		{
			name:        "unknown kind is skipped",
			text:        "foo bar { x(); };\nsource s { file(\"/a\"); };\n",
			wantSummary: `unrecognized object kind "foo"`,
			wantLine:    1,
			wantObjects: 1,
		},
		{
			name:        "missing semicolon after driver",
			text:        "source s { file(\"/a\") };\ndestination d { file(\"/b\"); };\n",
			wantSummary: "missing ';' after file(...)",
			wantLine:    1,
			wantObjects: 1,
		},
		{
			name:        "positional after named option",
			text:        "destination d { file(template(\"x\") \"/tmp/a\"); };\n",
			wantSummary: "positional value after named options in file(...)",
			wantLine:    1,
		},
		{
			name:        "unterminated at end of input",
			text:        "source s {\n    file(\"/a\");\n",
			wantSummary: "unterminated declaration",
			wantLine:    1,
		},
		{
			name:        "unterminated block abandoned at next declaration",
			text:        "source s {\n    file(\"/a\");\ndestination d { file(\"/b\"); };\n",
			wantSummary: "unterminated declaration",
			wantLine:    1,
			wantObjects: 1,
		},
		{
			name:        "unknown word at end of input",
			text:        "sourc",
			wantSummary: `unrecognized object kind "sourc"`,
			wantLine:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := parse(t, tc.text)
			require.Len(t, res.Diagnostics, 1, "diagnostics: %v", summaries(res.Diagnostics))
			d := res.Diagnostics[0]
			assert.Equal(t, hcl.DiagError, d.Severity)
			assert.Equal(t, tc.wantSummary, d.Summary)
			assert.Equal(t, tc.wantLine, d.Subject.Start.Line)
			assert.Equal(t, testURI, d.Subject.Filename)
			assert.Len(t, res.Objects, tc.wantObjects)
		})
	}
}

func TestParse_FragmentsForUnfinishedObjects(t *testing.T) {
	text := "source s_net {\n    network(\n        \n"
	res := parse(t, text)

	require.Len(t, res.Fragments, 1)
	f := res.Fragments[0]
	assert.Equal(t, model.KindSource, f.Kind)
	assert.Equal(t, 1, f.Range.Start.Line)
	assert.True(t, f.Contains(testURI, strings.Index(text, "network(")+8))
	assert.True(t, f.Contains(testURI, len(text)-1), "trailing blank line")
}
