// Package extract implements the extractor: a pure, deterministic, total
// function from a parsed AST to a flat stream of symbol records. It never
// touches a file, a clock, or the index store — every input it needs
// arrives as an argument, and it cannot fail.
package extract

import (
	"github.com/GMGilson/fuzzy-ruby-server/internal/ast"
	"github.com/GMGilson/fuzzy-ruby-server/internal/symbol"
)

// Extract walks root and returns every symbol record it contains, in
// traversal order. A nil root (e.g. because the source failed to parse)
// yields an empty, non-nil slice — the caller still purges the file's
// stale records even though there is nothing to insert.
func Extract(root *ast.Node, fileID symbol.FileID, filePathParts []string) []symbol.Record {
	w := &walker{
		fileID:        fileID,
		filePathParts: filePathParts,
		records:       []symbol.Record{},
	}
	w.visit(root)
	return w.records
}

// walker threads the mutable scope stack through a single extraction call.
// Never shared across calls; the extractor is stateless between files.
type walker struct {
	fileID        symbol.FileID
	filePathParts []string
	scope         []string
	records       []symbol.Record
}

func (w *walker) push(name string) { w.scope = append(w.scope, name) }

func (w *walker) pop() { w.scope = w.scope[:len(w.scope)-1] }

func (w *walker) top() (string, bool) {
	if len(w.scope) == 0 {
		return "", false
	}
	return w.scope[len(w.scope)-1], true
}

// emit appends a record carrying a snapshot of the scope stack as it
// stands right now — callers control push/pop timing to get pre- or
// post-push scope per node kind.
func (w *walker) emit(category symbol.Category, name string, nodeType symbol.NodeType, span ast.Span) {
	scope := append([]string(nil), w.scope...)

	start, end := span.StartColumn, span.EndColumn
	columns := make([]int, 0, end-start+1)
	for c := start; c <= end; c++ {
		columns = append(columns, c)
	}

	w.records = append(w.records, symbol.Record{
		FileID:        w.fileID,
		FilePathParts: w.filePathParts,
		Category:      category,
		Scope:         scope,
		Name:          name,
		NodeType:      nodeType,
		Line:          span.Line,
		StartColumn:   start,
		EndColumn:     end,
		Columns:       columns,
	})
}

func (w *walker) visitChildren(n *ast.Node) {
	for _, c := range n.Children {
		w.visit(c)
	}
}

// nameSpan returns a node's dedicated name-location span when the parser
// adapter supplied one, falling back to the node's own span for kinds that
// never distinguish the two (e.g. Lvasgn's name_l is the whole LHS anyway
// in practice for single-token names).
func nameSpan(n *ast.Node) ast.Span {
	if n.NameSpan != nil {
		return *n.NameSpan
	}
	return n.Span
}

func (w *walker) visit(n *ast.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case ast.KindClass:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeClass, nameSpan(n))
		w.push(n.Name)
		defer w.pop()
		w.visitChildren(n)

	case ast.KindModule:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeModule, nameSpan(n))
		w.push(n.Name)
		defer w.pop()
		w.visitChildren(n)

	case ast.KindDef:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeDef, nameSpan(n))
		w.push(n.Name)
		defer w.pop()
		w.visitChildren(n)

	case ast.KindDefs:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeDefs, nameSpan(n))
		w.push("self." + n.Name)
		defer w.pop()
		w.visitChildren(n)

	case ast.KindCasgn:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeCasgn, nameSpan(n))
		w.visitChildren(n)

	case ast.KindLvasgn:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeLvasgn, nameSpan(n))
		w.visitChildren(n)

	case ast.KindIvasgn:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeIvasgn, nameSpan(n))
		w.visitChildren(n)

	case ast.KindCvasgn:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeCvasgn, nameSpan(n))
		w.visitChildren(n)

	case ast.KindGvasgn:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeGvasgn, nameSpan(n))
		w.visitChildren(n)

	case ast.KindArg:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeArg, nameSpan(n))

	case ast.KindKwarg:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeKwarg, nameSpan(n))

	case ast.KindKwoptarg:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeKwoptarg, nameSpan(n))
		w.visitChildren(n) // default-value expression

	case ast.KindKwrestarg:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeKwrestarg, nameSpan(n))

	case ast.KindOptarg:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeOptarg, nameSpan(n))
		w.visitChildren(n) // default-value expression

	case ast.KindRestarg:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeRestarg, nameSpan(n))

	case ast.KindShadowarg:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeShadowarg, nameSpan(n))

	case ast.KindMatchVar:
		w.emit(symbol.CategoryAssignment, n.Name, symbol.NodeTypeMatchVar, nameSpan(n))

	case ast.KindAlias:
		// Only a literal symbol on either side produces a record; anything
		// else (a method-name expression, a variable) is left alone, same
		// as the grammar this was ported from.
		if target := childAt(n, 0); target != nil && target.Kind == ast.KindSym {
			w.emit(symbol.CategoryAssignment, target.Name, symbol.NodeTypeAlias, target.Span)
		}
		if source := childAt(n, 1); source != nil && source.Kind == ast.KindSym {
			w.emit(symbol.CategoryUsage, source.Name, symbol.NodeTypeAlias, source.Span)
		}

	case ast.KindConst:
		w.emit(symbol.CategoryUsage, n.Name, symbol.NodeTypeConst, nameSpan(n))
		w.visitChildren(n) // optional explicit scope child (A::B)

	case ast.KindLvar:
		w.emit(symbol.CategoryUsage, n.Name, symbol.NodeTypeLvar, n.Span)

	case ast.KindIvar:
		w.emit(symbol.CategoryUsage, n.Name, symbol.NodeTypeIvar, n.Span)

	case ast.KindCvar:
		w.emit(symbol.CategoryUsage, n.Name, symbol.NodeTypeCvar, n.Span)

	case ast.KindGvar:
		w.emit(symbol.CategoryUsage, n.Name, symbol.NodeTypeGvar, n.Span)

	case ast.KindSend:
		if n.NameSpan != nil {
			w.emit(symbol.CategoryUsage, n.Name, symbol.NodeTypeSend, *n.NameSpan)
		}
		w.visitChildren(n) // receiver + arguments

	case ast.KindCSend:
		if n.NameSpan != nil {
			w.emit(symbol.CategoryUsage, n.Name, symbol.NodeTypeCSend, *n.NameSpan)
		}
		w.visitChildren(n)

	case ast.KindSuper:
		if top, ok := w.top(); ok {
			w.emit(symbol.CategoryUsage, top, symbol.NodeTypeSuper, n.Span)
		}
		w.visitChildren(n) // explicit arguments, if any

	case ast.KindZSuper:
		if top, ok := w.top(); ok {
			w.emit(symbol.CategoryUsage, top, symbol.NodeTypeZSuper, n.Span)
		}

	default:
		// Every other kind — the ~70 compound/control-flow/literal shapes —
		// contributes no record of its own; only its children matter.
		w.visitChildren(n)
	}
}

func childAt(n *ast.Node, i int) *ast.Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}
