package workspace

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/syslogng-lsp/internal/config"
	"github.com/vk/syslogng-lsp/internal/include"
	"github.com/vk/syslogng-lsp/internal/testutil"
)

func uris(docs []config.Document) []string {
	var out []string
	for _, d := range docs {
		out = append(out, d.URI)
	}
	return out
}

func TestFileSource_Include(t *testing.T) {
	ctx := context.Background()
	root := testutil.WriteFiles(t, map[string]string{
		"etc/syslog-ng.conf":     "@version: 4.2\n",
		"etc/conf.d/b.conf":      "source s_b { internal(); };\n",
		"etc/conf.d/a.conf":      "source s_a { internal(); };\n",
		"etc/conf.d/.a.conf.swp": "junk",
		"scl/scl.conf":           "# scl\n",
	})
	etc := filepath.ToSlash(filepath.Join(root, "etc"))
	scl := filepath.Join(root, "scl")
	from := etc + "/syslog-ng.conf"
	src := NewFileSource(scl)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"single file", "conf.d/a.conf", []string{etc + "/conf.d/a.conf"}},
		{"glob", "conf.d/*.conf", []string{etc + "/conf.d/a.conf", etc + "/conf.d/b.conf"}},
		{"directory", "conf.d", []string{etc + "/conf.d/a.conf", etc + "/conf.d/b.conf"}},
		{"include path", "scl.conf", []string{filepath.ToSlash(filepath.Join(scl, "scl.conf"))}},
		{"absolute", etc + "/conf.d/b.conf", []string{etc + "/conf.d/b.conf"}},
		{"missing", "nope.conf", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := src.Include(ctx, from, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, uris(docs))
		})
	}

	_, err := src.Include(ctx, from, "conf.d/[")
	assert.Error(t, err)
}

func TestFileSource_ReadAndResolve(t *testing.T) {
	ctx := context.Background()
	root := testutil.WriteFiles(t, map[string]string{
		"syslog-ng.conf": "@version: 4.2\n@include \"conf.d\"\nlog { source(s_a); };\n",
		"conf.d/a.conf":  "source s_a { internal(); };\n",
		"conf.d/b.conf":  "@include \"../deep/c.conf\"\n",
		"deep/c.conf":    "destination d_c { file(\"/var/log/c\"); };\n",
	})
	src := NewFileSource()

	doc, err := src.Read(ctx, "file://"+filepath.ToSlash(filepath.Join(root, "syslog-ng.conf")))
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(root, "syslog-ng.conf")), doc.URI)

	cfg := include.NewResolver(src).Load(ctx, doc)
	require.Empty(t, cfg.Diagnostics)
	var ids []string
	for _, o := range cfg.Objects() {
		ids = append(ids, o.ID())
	}
	assert.Equal(t, []string{"s_a", "d_c", ""}, ids)

	_, err = src.Read(ctx, filepath.Join(root, "missing.conf"))
	assert.Error(t, err)
}
