package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/syslogng-lsp/internal/ctxlog"
	"github.com/vk/syslogng-lsp/internal/fsutil"
)

// Watcher reports changes to configuration files, coalescing bursts of
// events into one notification per debounce window.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	dirs     map[string]bool
}

// Dirs lists the watched directories, sorted.
func (w *Watcher) Dirs() []string {
	dirs := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// NewWatcher creates a watcher with the given debounce window.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fs: fw, debounce: debounce, dirs: make(map[string]bool)}, nil
}

// Add watches the directories holding the given files. Editors often replace
// files by renaming, so the directory is watched rather than the file. A
// path naming a directory, such as a directory include, is watched itself.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		dir := filepath.FromSlash(p)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers changes to onChange until ctx is done or the watcher is
// closed. Each call carries the sorted, slash-form paths changed during one
// debounce window.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	logger := ctxlog.FromContext(ctx)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	pending := make(map[string]bool)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
		timerC = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			onChange(ctx, changed)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		case evt, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !shouldTrigger(evt) {
				continue
			}
			logger.Debug("File changed.", "path", evt.Name, "op", evt.Op.String())
			pending[filepath.ToSlash(evt.Name)] = true
			resetTimer()
		}
	}
}

func shouldTrigger(evt fsnotify.Event) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return fsutil.Includable(evt.Name)
}
