// Package fuzzyruby provides a language-server backend for a Ruby-like
// source tongue: go-to-definition and document-highlight over an in-memory
// full-text boolean-query index built from AST-extracted symbol records.
//
// # Pipeline
//
// fuzzyruby operates in three stages, wired together by the Engine:
//
//  1. Parse: internal/rubyparse turns Ruby source text into an internal/ast
//     tree via tree-sitter.
//  2. Extract: internal/extract walks that tree into a flat stream of
//     symbol.Record values — a pure, deterministic function with no I/O.
//  3. Index: internal/index stores those records in an in-memory bleve
//     index; internal/resolve answers go-to-definition and
//     document-highlight queries against it.
//
// # Usage
//
//	e, err := fuzzyruby.New()
//	if err != nil { ... }
//	defer e.Close()
//
//	err = e.Open("file:///repo/greeter.rb", source)
//	locs, err := e.GotoDefinition("file:///repo/greeter.rb", 1, 5)
//	ranges, err := e.DocumentHighlight("file:///repo/greeter.rb", 1, 5)
//
// There is no on-disk persistence: every symbol record lives only in the
// Engine's in-memory index for the lifetime of the process, rebuilt from
// whatever documents have been Opened.
package fuzzyruby
