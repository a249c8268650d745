package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/syslogng-lsp/internal/config"
	"github.com/vk/syslogng-lsp/internal/ctxlog"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/protocol"
	"github.com/vk/syslogng-lsp/internal/workspace"
)

// CheckFunc receives the result of every check Watch performs.
type CheckFunc func(cfg *model.Configuration, diags map[string][]protocol.Diagnostic)

// Watch checks path, then re-checks whenever the main file or one of its
// includes changes, until ctx is cancelled.
func (a *App) Watch(ctx context.Context, path string, onCheck CheckFunc) error {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)

	cfg, diags, err := a.Check(ctx, path)
	if err != nil {
		return err
	}
	onCheck(cfg, diags)

	w, err := workspace.NewWatcher(a.settings.WatchDebounce)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(watchTargets(cfg)...); err != nil {
		return err
	}
	logger.Info("Watching configuration.", "path", cfg.URI, "documents", len(cfg.Documents()))

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		logger.Debug("Re-checking after change.", "changed", changed)
		cfg, diags, err := a.Check(ctx, path)
		if err != nil {
			logger.Error("Re-check failed.", "error", err)
			return
		}
		if err := w.Add(watchTargets(cfg)...); err != nil {
			logger.Warn("Failed to watch new includes.", "error", err)
		}
		onCheck(cfg, diags)
	})
}

// watchTargets lists every document of cfg plus the directories named by its
// directory includes, so files added to an empty directory are noticed.
func watchTargets(cfg *model.Configuration) []string {
	targets := cfg.Documents()
	for _, inc := range cfg.Includes {
		if strings.ContainsAny(inc.Pattern, "*?[") {
			continue
		}
		dir := filepath.FromSlash(config.ResolvePattern(inc.Range.Filename, inc.Pattern))
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			targets = append(targets, dir)
		}
	}
	return targets
}
