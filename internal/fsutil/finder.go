// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Includable reports whether a file name is picked up when its directory is
// included: hidden files and editor backups are not.
func Includable(name string) bool {
	base := filepath.Base(name)
	return base != "" && !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}

// IncludableFiles lists the includable regular files directly inside dir,
// sorted by name.
func IncludableFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !Includable(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Glob expands pattern to the includable regular files it matches, sorted.
func Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
	}
	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() || !Includable(m) {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
