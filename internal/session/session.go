// Package session holds the per-editor-session aggregate: the assembled
// configuration of one main document, the documents the editor has open,
// and the services that answer queries against them.
//
// One reader/writer lock guards the aggregate. Applying text takes the write
// lock for the whole re-parse; completion and diagnostics queries share the
// read lock. A panic while mutating poisons the session: every later call
// fails with ErrPoisoned until Reset is called.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/syslogng-lsp/internal/completion"
	"github.com/vk/syslogng-lsp/internal/config"
	"github.com/vk/syslogng-lsp/internal/ctxlog"
	"github.com/vk/syslogng-lsp/internal/include"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/protocol"
	"github.com/vk/syslogng-lsp/internal/schema"
	"github.com/vk/syslogng-lsp/internal/validate"
)

var (
	// ErrPoisoned is returned once a mutation has panicked.
	ErrPoisoned = errors.New("session is poisoned by an earlier failure")
	// ErrUnknownDocument is returned for a document the session never saw.
	ErrUnknownDocument = errors.New("unknown document")
)

// Session is safe for concurrent use.
type Session struct {
	id uuid.UUID
	db *schema.Database

	overlay  *config.Overlay
	resolver *include.Resolver
	engine   *completion.Engine

	mu       sync.RWMutex
	mainURI  string
	texts    map[string]string
	cfg      *model.Configuration
	poisoned error

	// build assembles the configuration; replaced in tests.
	build func(ctx context.Context, doc config.Document) *model.Configuration
}

// New returns an empty session. Includes are read from base, shadowed by the
// documents applied to the session. base may be nil.
func New(db *schema.Database, base config.Source) *Session {
	overlay := config.NewOverlay(base)
	s := &Session{
		id:       uuid.New(),
		db:       db,
		overlay:  overlay,
		resolver: include.NewResolver(overlay),
		engine:   completion.New(db),
		texts:    make(map[string]string),
	}
	s.build = s.assemble
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// ApplyText records the full text of document uri and re-assembles the
// configuration. The first document applied becomes the main document, as
// does any document that is not part of the current configuration. Applying
// an included document re-assembles the main one around it.
func (s *Session) ApplyText(ctx context.Context, uri, text string) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		s.apply(ctx, uri, text)
		return nil
	})
}

// ApplyChanges applies editor changes to an already applied document.
func (s *Session) ApplyChanges(ctx context.Context, uri string, changes []protocol.TextDocumentContentChangeEvent) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		text, ok := s.texts[uri]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
		}
		s.apply(ctx, uri, protocol.ApplyChanges(text, changes))
		return nil
	})
}

// Close forgets the editor's copy of uri. Closing the main document clears
// the configuration.
func (s *Session) Close(ctx context.Context, uri string) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		if _, ok := s.texts[uri]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
		}
		delete(s.texts, uri)
		s.overlay.Close(uri)
		if uri == s.mainURI {
			s.mainURI, s.cfg = "", nil
			return nil
		}
		s.rebuild(ctx)
		return nil
	})
}

// Refresh re-assembles the configuration, picking up included documents
// that changed in the underlying source.
func (s *Session) Refresh(ctx context.Context) error {
	return s.mutate(ctx, func(ctx context.Context) error {
		s.rebuild(ctx)
		return nil
	})
}

// Reset clears the poisoned state along with everything the session holds.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for uri := range s.texts {
		s.overlay.Close(uri)
	}
	s.texts = make(map[string]string)
	s.mainURI, s.cfg, s.poisoned = "", nil, nil
	ctxlog.FromContext(ctx).Info("Session reset.", "session", s.id.String())
}

// Configuration returns the current configuration. The value is replaced,
// never mutated, on every change, so it may be read without the lock.
func (s *Session) Configuration() (*model.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.poisoned != nil {
		return nil, s.poisoned
	}
	if s.cfg == nil {
		return nil, ErrUnknownDocument
	}
	return s.cfg, nil
}

// Completions answers a completion request at pos in document uri, which
// must be the main document or one of its includes.
func (s *Session) Completions(ctx context.Context, uri string, pos protocol.Position) (items []protocol.CompletionItem, err error) {
	logger := ctxlog.FromContext(ctx).With("session", s.id.String())

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.poisoned != nil {
		return nil, s.poisoned
	}
	if s.cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}
	text, ok := s.cfg.DocumentText(uri)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Completion panicked.", "uri", uri, "panic", r)
			items, err = nil, nil
		}
	}()
	offset := protocol.NewPositionConverter(text).PositionToByteOffset(pos)
	return s.engine.Complete(ctxlog.WithLogger(ctx, logger), s.cfg, uri, offset), nil
}

// Diagnostics returns the current diagnostics grouped by document. Every
// document of the configuration has an entry, empty when it is clean.
func (s *Session) Diagnostics() (map[string][]protocol.Diagnostic, error) {
	cfg, err := s.Configuration()
	if err != nil {
		return nil, err
	}
	return Convert(cfg), nil
}

// Convert groups the diagnostics of cfg by document and converts them to
// editor positions.
func Convert(cfg *model.Configuration) map[string][]protocol.Diagnostic {
	out := make(map[string][]protocol.Diagnostic)
	converters := make(map[string]*protocol.PositionConverter)
	for _, uri := range cfg.Documents() {
		out[uri] = []protocol.Diagnostic{}
	}
	for _, d := range cfg.Diagnostics {
		uri := cfg.URI
		if d.Subject != nil && d.Subject.Filename != "" {
			uri = d.Subject.Filename
		}
		pc, ok := converters[uri]
		if !ok {
			text, _ := cfg.DocumentText(uri)
			pc = protocol.NewPositionConverter(text)
			converters[uri] = pc
		}
		out[uri] = append(out[uri], protocol.FromHCL(pc, d))
	}
	for _, diags := range out {
		protocol.SortDiagnostics(diags)
	}
	return out
}

// apply must be called with the write lock held.
func (s *Session) apply(ctx context.Context, uri, text string) {
	s.texts[uri] = text
	s.overlay.Open(uri, text)
	if s.mainURI == "" || !s.contains(uri) {
		s.mainURI = uri
	}
	s.rebuild(ctx)
}

func (s *Session) contains(uri string) bool {
	if s.cfg == nil {
		return false
	}
	_, ok := s.cfg.DocumentText(uri)
	return ok
}

func (s *Session) rebuild(ctx context.Context) {
	if s.mainURI == "" {
		return
	}
	s.cfg = s.build(ctx, config.Document{URI: s.mainURI, Text: s.texts[s.mainURI]})
}

// assemble parses the main document with its includes and validates the
// result.
func (s *Session) assemble(ctx context.Context, doc config.Document) *model.Configuration {
	cfg := s.resolver.Load(ctx, doc)
	if s.db != nil {
		cfg.Diagnostics = append(cfg.Diagnostics, validate.Options(cfg, s.db)...)
	}
	ctxlog.FromContext(ctx).Debug("Configuration rebuilt.", "main", doc.URI, "diagnostics", len(cfg.Diagnostics))
	return cfg
}

// mutate runs fn under the write lock, turning a panic into ErrPoisoned.
func (s *Session) mutate(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx = ctxlog.With(ctx, "session", s.id.String())
	logger := ctxlog.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned != nil {
		return s.poisoned
	}
	defer func() {
		if r := recover(); r != nil {
			s.poisoned = fmt.Errorf("%w: %v", ErrPoisoned, r)
			logger.Error("Session mutation panicked, session poisoned.", "panic", r)
			err = s.poisoned
		}
	}()
	return fn(ctx)
}
