// Package workspace reads configuration documents from disk and watches them
// for changes.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/syslogng-lsp/internal/config"
	"github.com/vk/syslogng-lsp/internal/ctxlog"
	"github.com/vk/syslogng-lsp/internal/fsutil"
)

// FileSource is a config.Source over the local file system. Relative include
// patterns are tried against the including document's directory first and
// then against each include path, the first location with matches winning.
// A pattern naming a directory includes the includable files inside it.
type FileSource struct {
	includePaths []string
}

// NewFileSource returns a source that also searches includePaths.
func NewFileSource(includePaths ...string) *FileSource {
	return &FileSource{includePaths: includePaths}
}

// Read loads the document at path. Its identity is the cleaned absolute
// path in slash form.
func (f *FileSource) Read(ctx context.Context, path string) (config.Document, error) {
	abs, err := filepath.Abs(filepath.FromSlash(config.FromFileURI(path)))
	if err != nil {
		return config.Document{}, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return config.Document{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Read configuration file.", "path", abs, "bytes", len(data))
	return config.Document{URI: filepath.ToSlash(abs), Text: string(data)}, nil
}

// Include implements config.Source.
func (f *FileSource) Include(ctx context.Context, from, pattern string) ([]config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	for _, candidate := range f.candidates(from, pattern) {
		files, err := expand(filepath.FromSlash(candidate))
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}
		docs := make([]config.Document, 0, len(files))
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read included file: %w", err)
			}
			docs = append(docs, config.Document{URI: filepath.ToSlash(file), Text: string(data)})
		}
		logger.Debug("Resolved include.", "from", from, "pattern", pattern, "files", len(docs))
		return docs, nil
	}
	return nil, nil
}

func (f *FileSource) candidates(from, pattern string) []string {
	pattern = filepath.ToSlash(pattern)
	if filepath.IsAbs(filepath.FromSlash(pattern)) {
		return []string{pattern}
	}
	out := []string{config.ResolvePattern(from, pattern)}
	for _, dir := range f.includePaths {
		out = append(out, filepath.ToSlash(filepath.Join(dir, pattern)))
	}
	return out
}

// expand turns one candidate into files: a directory yields its includable
// files, a glob its matches, a plain path itself when it exists.
func expand(candidate string) ([]string, error) {
	if strings.ContainsAny(candidate, "*?[") {
		return fsutil.Glob(candidate)
	}
	info, err := os.Stat(candidate)
	if err != nil {
		return nil, nil
	}
	if info.IsDir() {
		return fsutil.IncludableFiles(candidate)
	}
	return []string{candidate}, nil
}
