package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/syslogng-lsp/internal/testutil"
)

func TestShouldTrigger(t *testing.T) {
	tests := []struct {
		name string
		evt  fsnotify.Event
		want bool
	}{
		{"empty name", fsnotify.Event{Name: "", Op: fsnotify.Write}, false},
		{"unsupported op", fsnotify.Event{Name: "/tmp/a.conf", Op: fsnotify.Chmod}, false},
		{"dot file", fsnotify.Event{Name: "/tmp/.a.conf.swp", Op: fsnotify.Write}, false},
		{"backup file", fsnotify.Event{Name: "/tmp/a.conf~", Op: fsnotify.Create}, false},
		{"write", fsnotify.Event{Name: "/tmp/a.conf", Op: fsnotify.Write}, true},
		{"remove", fsnotify.Event{Name: "/tmp/a.conf", Op: fsnotify.Remove}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldTrigger(tt.evt))
		})
	}
}

func TestWatcher_Add(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"syslog-ng.conf":  "@version: 4.2\n",
		"conf.d/net.conf": "",
		"empty.d/.keep":   "",
	})

	w, err := NewWatcher(time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add(
		filepath.ToSlash(filepath.Join(root, "syslog-ng.conf")),
		filepath.Join(root, "conf.d", "net.conf"),
		filepath.Join(root, "empty.d"),
	))
	assert.Equal(t, []string{
		root,
		filepath.Join(root, "conf.d"),
		filepath.Join(root, "empty.d"),
	}, w.Dirs())
}

func TestWatcher_CoalescesWrites(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"syslog-ng.conf": "@version: 4.2\n"})
	path := filepath.Join(root, "syslog-ng.conf")

	w, err := NewWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(path, path))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			got <- changed
		})
	}()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("@version: 4.3\n"), 0o644))
	}

	select {
	case changed := <-got:
		assert.Equal(t, []string{filepath.ToSlash(path)}, changed)
	case <-ctx.Done():
		t.Fatal("no change reported")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
