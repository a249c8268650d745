package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uris(docs []Document) []string {
	var out []string
	for _, d := range docs {
		out = append(out, d.URI)
	}
	return out
}

func TestMemorySource_Include(t *testing.T) {
	src := NewMemorySource(map[string]string{
		"/etc/syslog-ng/syslog-ng.conf":    "@version: 4.2\n",
		"/etc/syslog-ng/scl.conf":          "# scl\n",
		"/etc/syslog-ng/conf.d/b.conf":     "b",
		"/etc/syslog-ng/conf.d/a.conf":     "a",
		"/etc/syslog-ng/conf.d/sub/c.conf": "c",
	})
	ctx := context.Background()
	from := "/etc/syslog-ng/syslog-ng.conf"

	testCases := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "relative file", pattern: "scl.conf", want: []string{"/etc/syslog-ng/scl.conf"}},
		{name: "glob is sorted", pattern: "conf.d/*.conf", want: []string{"/etc/syslog-ng/conf.d/a.conf", "/etc/syslog-ng/conf.d/b.conf"}},
		{name: "directory", pattern: "conf.d", want: []string{"/etc/syslog-ng/conf.d/a.conf", "/etc/syslog-ng/conf.d/b.conf"}},
		{name: "absolute", pattern: "/etc/syslog-ng/conf.d/sub/c.conf", want: []string{"/etc/syslog-ng/conf.d/sub/c.conf"}},
		{name: "no match", pattern: "missing.conf"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			docs, err := src.Include(ctx, from, tc.pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.want, uris(docs))
		})
	}

	_, err := src.Include(ctx, from, "[")
	assert.Error(t, err)
}

type failingSource struct{ err error }

func (f failingSource) Include(context.Context, string, string) ([]Document, error) {
	return nil, f.err
}

func TestOverlay(t *testing.T) {
	ctx := context.Background()
	base := NewMemorySource(map[string]string{
		"/etc/a.conf": "disk a",
		"/etc/b.conf": "disk b",
	})
	o := NewOverlay(base)
	o.Open("/etc/a.conf", "editor a")
	o.Open("/etc/c.conf", "editor c")

	docs, err := o.Include(ctx, "/etc/main.conf", "*.conf")
	require.NoError(t, err)
	assert.Equal(t, []Document{
		{URI: "/etc/a.conf", Text: "editor a"},
		{URI: "/etc/b.conf", Text: "disk b"},
		{URI: "/etc/c.conf", Text: "editor c"},
	}, docs)

	o.Close("/etc/a.conf")
	docs, err = o.Include(ctx, "/etc/main.conf", "a.conf")
	require.NoError(t, err)
	assert.Equal(t, []Document{{URI: "/etc/a.conf", Text: "disk a"}}, docs)

	boom := errors.New("boom")
	failing := NewOverlay(failingSource{err: boom})
	_, err = failing.Include(ctx, "/etc/main.conf", "x.conf")
	assert.ErrorIs(t, err, boom)

	failing.Open("/etc/x.conf", "open")
	docs, err = failing.Include(ctx, "/etc/main.conf", "x.conf")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestResolvePattern(t *testing.T) {
	assert.Equal(t, "/etc/syslog-ng/conf.d/*.conf", ResolvePattern("/etc/syslog-ng/syslog-ng.conf", "conf.d/*.conf"))
	assert.Equal(t, "/opt/x.conf", ResolvePattern("/etc/syslog-ng/syslog-ng.conf", "/opt/x.conf"))
	assert.Equal(t, "x.conf", ResolvePattern("", "x.conf"))
	assert.Equal(t, "/etc/a.conf", FromFileURI("file:///etc/a.conf"))
}
