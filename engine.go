package fuzzyruby

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lspuri "go.lsp.dev/uri"

	"github.com/GMGilson/fuzzy-ruby-server/internal/extract"
	"github.com/GMGilson/fuzzy-ruby-server/internal/fileid"
	"github.com/GMGilson/fuzzy-ruby-server/internal/index"
	"github.com/GMGilson/fuzzy-ruby-server/internal/logging"
	"github.com/GMGilson/fuzzy-ruby-server/internal/resolve"
	"github.com/GMGilson/fuzzy-ruby-server/internal/rubyparse"
	"github.com/GMGilson/fuzzy-ruby-server/internal/symbol"
)

// Engine orchestrates the fuzzyruby pipeline: parse, extract, index, and
// resolve, wired behind the six lifecycle operations a transport layer
// drives. A single mutex is held for the entire body of every exported
// method except IndexWorkspace, which takes it once per file through Open —
// handlers run to completion before the next one starts, matching the
// single-writer discipline the in-memory index depends on.
type Engine struct {
	mu        sync.Mutex
	store     *index.Store
	resolver  *resolve.Resolver
	workspace fileid.Workspace
	logger    *slog.Logger

	resolverOpts []resolve.Option
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkspaceRoot sets the filesystem path used to relativize document
// URIs before computing their file_id. Without it, URIs are relativized
// against the empty root (their filesystem path is used as-is).
func WithWorkspaceRoot(root string) Option {
	return func(e *Engine) {
		e.workspace = fileid.NewWorkspace(root)
	}
}

// SetWorkspaceRoot updates the workspace root after construction, for a
// transport (internal/lspserver) that only learns the root URI once the
// client sends initialize.
func (e *Engine) SetWorkspaceRoot(root string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workspace = fileid.NewWorkspace(root)
}

// WithLogger overrides the Engine's logger (default: a no-op logger).
// cmd/fuzzyrubyserver wires this to internal/logging.New(cfg.LogLevel).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithTopKDefinition overrides the go-to-definition result cap (default
// resolve.DefaultTopKDefinition).
func WithTopKDefinition(topK int) Option {
	return func(e *Engine) {
		e.resolverOpts = append(e.resolverOpts, resolve.WithTopKDefinition(topK))
	}
}

// WithTopKHighlight overrides the document-highlight result cap (default
// resolve.DefaultTopKHighlight).
func WithTopKHighlight(topK int) Option {
	return func(e *Engine) {
		e.resolverOpts = append(e.resolverOpts, resolve.WithTopKHighlight(topK))
	}
}

// New creates an Engine backed by a fresh in-memory index.
func New(opts ...Option) (*Engine, error) {
	store, err := index.New()
	if err != nil {
		return nil, fmt.Errorf("fuzzyruby: create index: %w", err)
	}

	e := &Engine{store: store, logger: logging.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = resolve.New(store, e.resolverOpts...)
	return e, nil
}

// Close releases the Engine's index resources.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Close()
}

// Open indexes a document for the first time (textDocument/didOpen).
func (e *Engine) Open(uri, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reindex(uri, text)
}

// Change re-indexes a document after a full-text resync
// (textDocument/didChange, TextDocumentSyncKind.Full).
func (e *Engine) Change(uri, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reindex(uri, text)
}

// Save re-indexes a document's saved content (textDocument/didSave). Since
// didChange already keeps the index current with the editor's buffer, this
// is the same operation as Change — it exists as its own method because the
// transport layer dispatches it from a distinct LSP notification, and a
// client that only sends didSave (no didChange) must still stay indexed.
func (e *Engine) Save(uri, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reindex(uri, text)
}

// CloseDocument purges a document's records when the editor stops tracking
// it (textDocument/didClose). Named CloseDocument rather than Close — which
// already means "release the Engine's own resources," the teacher's
// convention for New/Close pairs — to avoid a method defined twice with
// different signatures. Required so a long-running session doesn't
// accumulate stale records for documents the client no longer owns.
func (e *Engine) CloseDocument(uri string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.fileID(uri)
	e.store.Purge(id)
	if err := e.store.Commit(); err != nil {
		return fmt.Errorf("fuzzyruby: close %s: commit: %w", uri, err)
	}
	return nil
}

// GotoDefinition answers textDocument/definition for the symbol at
// (line, col) in the document identified by uri.
func (e *Engine) GotoDefinition(uri string, line, col int) ([]Location, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	locs, err := e.resolver.GotoDefinition(e.fileID(uri), line, col)
	if err != nil {
		return nil, fmt.Errorf("fuzzyruby: goto definition %s:%d:%d: %w", uri, line, col, err)
	}
	return locs, nil
}

// DocumentHighlight answers textDocument/documentHighlight for the symbol
// at (line, col) in the document identified by uri.
func (e *Engine) DocumentHighlight(uri string, line, col int) ([]HighlightedRange, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ranges, err := e.resolver.DocumentHighlight(e.fileID(uri), line, col)
	if err != nil {
		return nil, fmt.Errorf("fuzzyruby: document highlight %s:%d:%d: %w", uri, line, col, err)
	}
	return ranges, nil
}

// reindex purges a document's existing records and re-extracts it from
// text, as one purge+add+commit transaction (internal/index.Store's Purge
// only affects already-committed state, so the new records survive a
// same-transaction purge of the old ones). A parse failure purges the file
// to an empty record set rather than returning an error — per spec, an
// unparseable file simply has nothing indexed, not a broken session.
func (e *Engine) reindex(uri, text string) error {
	id := e.fileID(uri)
	pathParts := fileid.PathParts(e.relativePath(uri))

	e.store.Purge(id)

	root, ok, err := rubyparse.Parse(context.Background(), []byte(text))
	if err != nil {
		return fmt.Errorf("fuzzyruby: reindex %s: parse: %w", uri, err)
	}
	if !ok {
		e.logger.Warn("syntax error, indexing as empty", "uri", uri)
	} else {
		for _, rec := range extract.Extract(root, id, pathParts) {
			e.store.Add(rec)
		}
	}

	if err := e.store.Commit(); err != nil {
		return fmt.Errorf("fuzzyruby: reindex %s: commit: %w", uri, err)
	}
	return nil
}

func (e *Engine) relativePath(uri string) string {
	path := lspuri.URI(uri).Filename()
	if path == "" {
		path = uri
	}
	return e.workspace.Relativize(path)
}

func (e *Engine) fileID(uri string) symbol.FileID {
	return fileid.Of(e.relativePath(uri))
}

// skipDirs mirrors the teacher's IndexDirectory skip-list.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
}

// IndexWorkspace walks root and Opens every .rb file found, per the
// opt-in workspace sweep documented in SPEC_FULL.md §4.4. Errors on
// individual files are collected but do not stop the walk.
func (e *Engine) IndexWorkspace(ctx context.Context, root string) error {
	var errs []error
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".rb") {
			return nil
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, readErr))
			return nil
		}
		if openErr := e.Open(string(lspuri.File(path)), string(content)); openErr != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", path, openErr))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("fuzzyruby: index workspace %s: %w", root, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("fuzzyruby: index workspace had %d error(s): %w", len(errs), errs[0])
	}
	return nil
}
