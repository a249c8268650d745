package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/syslogng-lsp/internal/ctxlog"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/protocol"
	"github.com/vk/syslogng-lsp/internal/schema"
	"github.com/vk/syslogng-lsp/internal/session"
	"github.com/vk/syslogng-lsp/internal/workspace"
)

// App encapsulates the application's dependencies and settings.
type App struct {
	settings *Settings
	logger   *slog.Logger
	db       *schema.Database
	source   *workspace.FileSource
	session  *session.Session
}

// New builds an App. Logs go to logW. The grammar database is loaded once
// here and shared by everything the App creates.
func New(logW io.Writer, settings *Settings) (*App, error) {
	logger := newLogger(settings, logW)

	db, err := loadDatabase(settings)
	if err != nil {
		return nil, err
	}
	source := workspace.NewFileSource(settings.IncludePaths...)
	sess := session.New(db, source)
	logger.Debug("Application initialised.",
		"session", sess.ID().String(),
		"grammar_kinds", db.Kinds(),
		"include_paths", settings.IncludePaths,
	)

	return &App{
		settings: settings,
		logger:   logger,
		db:       db,
		source:   source,
		session:  sess,
	}, nil
}

func loadDatabase(s *Settings) (*schema.Database, error) {
	if s.GrammarDatabase != "" {
		return schema.LoadFile(s.GrammarDatabase)
	}
	return schema.Embedded()
}

// Context attaches the App's logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Session returns the App's session.
func (a *App) Session() *session.Session { return a.session }

// Settings returns the settings the App was built with.
func (a *App) Settings() *Settings { return a.settings }

// Load reads the main configuration file at path, together with its
// includes, into the session.
func (a *App) Load(ctx context.Context, path string) (*model.Configuration, error) {
	ctx = a.Context(ctx)
	doc, err := a.source.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := a.session.ApplyText(ctx, doc.URI, doc.Text); err != nil {
		return nil, err
	}
	return a.session.Configuration()
}

// Check loads path and returns its diagnostics grouped by document.
func (a *App) Check(ctx context.Context, path string) (*model.Configuration, map[string][]protocol.Diagnostic, error) {
	cfg, err := a.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	diags, err := a.session.Diagnostics()
	if err != nil {
		return nil, nil, err
	}
	a.logger.Info("Configuration checked.", "path", cfg.URI, "documents", len(diags), "diagnostics", len(cfg.Diagnostics))
	return cfg, diags, nil
}

// Complete loads path and completes at the 0-based position in document,
// the path of one of its includes. An empty document means the main one.
func (a *App) Complete(ctx context.Context, path, document string, pos protocol.Position) ([]protocol.CompletionItem, error) {
	cfg, err := a.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	uri := cfg.URI
	if document != "" {
		abs, err := filepath.Abs(document)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", document, err)
		}
		uri = filepath.ToSlash(abs)
	}
	items, err := a.session.Completions(a.Context(ctx), uri, pos)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	return items, nil
}
