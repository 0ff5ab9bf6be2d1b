// Package lspserver binds an Engine to the Language Server Protocol over
// JSON-RPC 2.0, per SPEC_FULL.md §6: initialize, the four document-sync
// notifications, and the two read-only queries the core answers. Grounded
// on original_source/src/main.rs's Backend — the same method set, the same
// capability set, translated from tower_lsp's async trait into a single
// method-name switch over go.lsp.dev/jsonrpc2 requests.
package lspserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	lspuri "go.lsp.dev/uri"

	fuzzyruby "github.com/GMGilson/fuzzy-ruby-server"
	"github.com/GMGilson/fuzzy-ruby-server/internal/logging"
)

// Server dispatches JSON-RPC requests from an LSP client to an Engine.
type Server struct {
	engine        *fuzzyruby.Engine
	logger        *slog.Logger
	conn          jsonrpc2.Conn
	workspaceRoot string
}

// New builds a Server over engine. A nil logger is replaced with one that
// discards everything.
func New(engine *fuzzyruby.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{engine: engine, logger: logger}
}

// Serve runs the server over rwc (typically stdio) until the connection
// closes, returning the connection's terminal error, if any.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewStream(rwc)
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn
	conn.Go(ctx, s.handle)
	<-conn.Done()
	return conn.Err()
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case "initialize":
		return s.initialize(ctx, reply, req)
	case "initialized", "shutdown", "exit":
		return reply(ctx, nil, nil)
	case "textDocument/didOpen":
		return s.didOpen(ctx, reply, req)
	case "textDocument/didChange":
		return s.didChange(ctx, reply, req)
	case "textDocument/didSave":
		return s.didSave(ctx, reply, req)
	case "textDocument/didClose":
		return s.didClose(ctx, reply, req)
	case "textDocument/definition":
		return s.definition(ctx, reply, req)
	case "textDocument/documentHighlight":
		return s.documentHighlight(ctx, reply, req)
	default:
		if req.IsNotify() {
			return nil
		}
		return reply(ctx, nil, fmt.Errorf("lspserver: unhandled method %q", req.Method()))
	}
}

func unmarshal(req jsonrpc2.Request, v interface{}) error {
	params := req.Params()
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("lspserver: decode %s params: %w", req.Method(), err)
	}
	return nil
}

// initialize captures the workspace root and advertises the capability set
// original_source/src/main.rs declares: full-document sync with
// save.include_text, definition and document-highlight providers, no
// incremental sync, no will-save hooks.
func (s *Server) initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := unmarshal(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	if root := lspuri.URI(params.RootURI).Filename(); root != "" {
		s.workspaceRoot = root
		s.engine.SetWorkspaceRoot(root)
	}

	result := &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save:      &protocol.SaveOptions{IncludeText: true},
			},
			DefinitionProvider:        true,
			DocumentHighlightProvider: true,
		},
	}
	return reply(ctx, result, nil)
}

func (s *Server) didOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := unmarshal(req, &params); err != nil {
		return reply(ctx, nil, err)
	}
	err := s.engine.Open(string(params.TextDocument.URI), params.TextDocument.Text)
	return reply(ctx, nil, logging.WrapErr(s.logger, "didOpen", err))
}

func (s *Server) didChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := unmarshal(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	uri := string(params.TextDocument.URI)
	text := lastChangeText(params.ContentChanges)
	err := s.engine.Change(uri, text)
	logging.WrapErr(s.logger, "didChange", err)
	s.publishEmptyDiagnostics(ctx, uri, params.TextDocument.Version)
	return reply(ctx, nil, nil)
}

// lastChangeText returns the full document text from a full-sync change
// notification: TextDocumentSyncKindFull guarantees exactly one element
// carrying the entire buffer, but take the last defensively.
func lastChangeText(changes []protocol.TextDocumentContentChangeEvent) string {
	if len(changes) == 0 {
		return ""
	}
	return changes[len(changes)-1].Text
}

func (s *Server) didSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := unmarshal(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	uri := string(params.TextDocument.URI)
	text := ""
	if params.Text != nil {
		text = *params.Text
	}
	err := s.engine.Save(uri, text)
	logging.WrapErr(s.logger, "didSave", err)
	s.publishEmptyDiagnostics(ctx, uri, 0)
	return reply(ctx, nil, nil)
}

func (s *Server) didClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := unmarshal(req, &params); err != nil {
		return reply(ctx, nil, err)
	}
	err := s.engine.CloseDocument(string(params.TextDocument.URI))
	return reply(ctx, nil, logging.WrapErr(s.logger, "didClose", err))
}

func (s *Server) definition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DefinitionParams
	if err := unmarshal(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	locs, err := s.engine.GotoDefinition(
		string(params.TextDocument.URI),
		int(params.Position.Line),
		int(params.Position.Character),
	)
	if err != nil {
		logging.WrapErr(s.logger, "definition", err)
		return reply(ctx, []protocol.Location{}, nil)
	}
	return reply(ctx, s.toProtocolLocations(locs), nil)
}

func (s *Server) documentHighlight(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentHighlightParams
	if err := unmarshal(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	ranges, err := s.engine.DocumentHighlight(
		string(params.TextDocument.URI),
		int(params.Position.Line),
		int(params.Position.Character),
	)
	if err != nil {
		logging.WrapErr(s.logger, "documentHighlight", err)
		return reply(ctx, []protocol.DocumentHighlight{}, nil)
	}
	return reply(ctx, toProtocolHighlights(ranges), nil)
}

// publishEmptyDiagnostics mirrors original_source/src/main.rs's did_change
// handler, which always publishes a (currently empty) diagnostics vector
// after reindexing: clears any stale diagnostics from a prior session
// without this repository claiming to extract new ones (see DESIGN.md
// Open Question decision 1).
func (s *Server) publishEmptyDiagnostics(ctx context.Context, uri string, version int32) {
	if s.conn == nil {
		return
	}
	params := &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Version:     uint32(version),
		Diagnostics: []protocol.Diagnostic{},
	}
	if err := s.conn.Notify(ctx, "textDocument/publishDiagnostics", params); err != nil {
		s.logger.Warn("publish diagnostics failed", "error", err)
	}
}

func (s *Server) locationURI(parts []string) protocol.DocumentURI {
	rel := filepath.FromSlash(strings.Join(parts, "/"))
	if s.workspaceRoot == "" {
		return protocol.DocumentURI(lspuri.File(rel))
	}
	return protocol.DocumentURI(lspuri.File(filepath.Join(s.workspaceRoot, rel)))
}

func (s *Server) toProtocolLocations(locs []fuzzyruby.Location) []protocol.Location {
	out := make([]protocol.Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, protocol.Location{
			URI:   s.locationURI(l.FilePathParts),
			Range: toProtocolRange(l),
		})
	}
	return out
}

func toProtocolHighlights(ranges []fuzzyruby.HighlightedRange) []protocol.DocumentHighlight {
	out := make([]protocol.DocumentHighlight, 0, len(ranges))
	for _, r := range ranges {
		kind := protocol.DocumentHighlightKindRead
		if r.Kind == fuzzyruby.HighlightWrite {
			kind = protocol.DocumentHighlightKindWrite
		}
		out = append(out, protocol.DocumentHighlight{
			Range: toProtocolRange(r.Location),
			Kind:  kind,
		})
	}
	return out
}

func toProtocolRange(loc fuzzyruby.Location) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(loc.Line), Character: uint32(loc.StartColumn)},
		End:   protocol.Position{Line: uint32(loc.Line), Character: uint32(loc.EndColumn)},
	}
}
