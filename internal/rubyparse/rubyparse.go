// Package rubyparse adapts github.com/smacker/go-tree-sitter's Ruby grammar
// into the internal/ast contract internal/extract walks. It owns the only
// real parsing and the only byte-offset bookkeeping in the repository;
// everything downstream of Parse works in terms of internal/ast.Node.
//
// The adapter is deliberately honest about its coverage: it recognizes the
// constructs the extractor's node-type table cares about (classes, modules,
// methods, variable reads/writes, constants, calls, parameters, alias,
// super) plus enough structural shapes to keep a tree walkable, and falls
// back to a generic "preserve this node's CST type, recurse into its named
// children" rule for everything else — exactly the behavior internal/ast's
// own closed taxonomy specifies for unrecognized kinds, so a construct this
// adapter doesn't special-case is never silently dropped, only its
// identifier content (if any) goes unindexed.
package rubyparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/GMGilson/fuzzy-ruby-server/internal/ast"
)

// Parse parses source as Ruby. ok is false when the parse tree contains a
// syntax error, matching spec.md's "parse failure ⇒ extractor produces an
// empty sequence" — callers should treat a false ok the same as a nil tree
// from Extract's point of view (purge still runs; nothing gets inserted).
func Parse(ctx context.Context, source []byte) (root *ast.Node, ok bool, err error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(ruby.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, false, fmt.Errorf("rubyparse: parse: %w", err)
	}
	defer tree.Close()

	cstRoot := tree.RootNode()
	if cstRoot.HasError() {
		return nil, false, nil
	}

	c := &converter{source: source}
	return c.convert(cstRoot), true, nil
}

type converter struct {
	source []byte
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.source)
}

// span translates a tree-sitter point range directly into an ast.Span.
// Tree-sitter's Column is already a 0-based byte offset within the line and
// EndPoint already sits one byte past the node's last byte — the same
// half-open convention ast.Span documents — so no adjustment is needed. A
// node spanning multiple lines (a multi-line string, a heredoc) is
// collapsed to a one-byte span at its start; none of the extractor's
// record-producing kinds are ever multi-line tokens in practice.
func (c *converter) span(n *sitter.Node) ast.Span {
	start, end := n.StartPoint(), n.EndPoint()
	if start.Row != end.Row {
		return ast.Span{Line: int(start.Row), StartColumn: int(start.Column), EndColumn: int(start.Column) + 1}
	}
	return ast.Span{Line: int(start.Row), StartColumn: int(start.Column), EndColumn: int(end.Column)}
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, n.NamedChild(i))
	}
	return children
}

func firstNamedChildOfType(n *sitter.Node, kind string) *sitter.Node {
	for _, child := range namedChildren(n) {
		if child.Type() == kind {
			return child
		}
	}
	return nil
}

func (c *converter) convertAll(nodes []*sitter.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, c.convert(n))
	}
	return out
}

func (c *converter) namedChildrenConverted(n *sitter.Node) []*ast.Node {
	return c.convertAll(namedChildren(n))
}

// argChildren converts the arguments of a call. argumentList is nil for a
// call with no parenthesized argument list at all.
func (c *converter) argChildren(argumentList *sitter.Node) []*ast.Node {
	if argumentList == nil {
		return nil
	}
	return c.namedChildrenConverted(argumentList)
}

func (c *converter) convert(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "class":
		return c.convertClassLike(n, ast.KindClass)
	case "module":
		return c.convertClassLike(n, ast.KindModule)
	case "method":
		return c.convertMethodLike(n, ast.KindDef)
	case "singleton_method":
		return c.convertMethodLike(n, ast.KindDefs)
	case "identifier":
		return &ast.Node{Kind: ast.KindLvar, Name: c.text(n), Span: c.span(n)}
	case "constant":
		return &ast.Node{Kind: ast.KindConst, Name: c.text(n), Span: c.span(n)}
	case "scope_resolution":
		return c.convertScopeResolution(n)
	case "instance_variable":
		return &ast.Node{Kind: ast.KindIvar, Name: c.text(n), Span: c.span(n)}
	case "class_variable":
		return &ast.Node{Kind: ast.KindCvar, Name: c.text(n), Span: c.span(n)}
	case "global_variable":
		return &ast.Node{Kind: ast.KindGvar, Name: c.text(n), Span: c.span(n)}
	case "symbol", "simple_symbol", "bare_symbol":
		return &ast.Node{Kind: ast.KindSym, Name: strings.TrimPrefix(c.text(n), ":"), Span: c.span(n)}
	case "assignment":
		return c.convertAssignment(n)
	case "call", "method_call", "command", "command_call":
		return c.convertCall(n)
	case "alias":
		return c.convertAlias(n)
	case "super":
		return c.convertSuper(n)
	case "method_parameters", "block_parameters", "lambda_parameters":
		return &ast.Node{Kind: ast.Kind(n.Type()), Span: c.span(n), Children: c.convertParameters(n)}
	default:
		return &ast.Node{Kind: ast.Kind(n.Type()), Span: c.span(n), Children: c.namedChildrenConverted(n)}
	}
}

func (c *converter) convertClassLike(n *sitter.Node, kind ast.Kind) *ast.Node {
	nameField := n.ChildByFieldName("name")
	if nameField == nil {
		// `class << self` (singleton_class) lands here only if the grammar
		// ever routes it through "class" without a name field; treat it as
		// a structural pass-through rather than guessing a name.
		return &ast.Node{Kind: ast.Kind(n.Type()), Span: c.span(n), Children: c.namedChildrenConverted(n)}
	}

	var children []*ast.Node
	if superclass := n.ChildByFieldName("superclass"); superclass != nil {
		children = append(children, c.convert(superclass))
	}
	if body := n.ChildByFieldName("body"); body != nil {
		children = append(children, c.namedChildrenConverted(body)...)
	}

	return &ast.Node{
		Kind:     kind,
		Name:     nameText(c, nameField),
		Span:     c.span(nameField),
		Children: children,
	}
}

// nameText handles a class/module name field that may be a bare constant or
// a scope_resolution (A::B) — the extractor wants just the final segment's
// text as Name, per spec.md's node-type table ("emitted at the construct's
// name span").
func nameText(c *converter, nameField *sitter.Node) string {
	if nameField.Type() == "scope_resolution" {
		if name := nameField.ChildByFieldName("name"); name != nil {
			return c.text(name)
		}
	}
	return c.text(nameField)
}

func (c *converter) convertMethodLike(n *sitter.Node, kind ast.Kind) *ast.Node {
	nameField := n.ChildByFieldName("name")

	var children []*ast.Node
	if params := n.ChildByFieldName("parameters"); params != nil {
		children = append(children, c.convertParameters(params)...)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		children = append(children, c.namedChildrenConverted(body)...)
	}

	return &ast.Node{
		Kind:     kind,
		Name:     c.text(nameField),
		Span:     c.span(nameField),
		Children: children,
	}
}

func (c *converter) convertParameters(paramList *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, child := range namedChildren(paramList) {
		if p := c.convertParameter(child); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (c *converter) convertParameter(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "identifier":
		return &ast.Node{Kind: ast.KindArg, Name: c.text(n), Span: c.span(n)}
	case "optional_parameter":
		name := n.ChildByFieldName("name")
		value := n.ChildByFieldName("value")
		var children []*ast.Node
		if value != nil {
			children = []*ast.Node{c.convert(value)}
		}
		return &ast.Node{Kind: ast.KindOptarg, Name: c.text(name), Span: c.span(name), Children: children}
	case "keyword_parameter":
		name := n.ChildByFieldName("name")
		value := n.ChildByFieldName("value")
		if value != nil {
			return &ast.Node{Kind: ast.KindKwoptarg, Name: c.text(name), Span: c.span(name), Children: []*ast.Node{c.convert(value)}}
		}
		return &ast.Node{Kind: ast.KindKwarg, Name: c.text(name), Span: c.span(name)}
	case "splat_parameter":
		name := n.ChildByFieldName("name")
		if name == nil {
			return nil // anonymous `*`, nothing to bind
		}
		return &ast.Node{Kind: ast.KindRestarg, Name: c.text(name), Span: c.span(name)}
	case "hash_splat_parameter":
		name := n.ChildByFieldName("name")
		if name == nil {
			return nil // anonymous `**`, nothing to bind
		}
		return &ast.Node{Kind: ast.KindKwrestarg, Name: c.text(name), Span: c.span(name)}
	case "block_parameter":
		name := n.ChildByFieldName("name")
		if name == nil {
			return nil
		}
		return &ast.Node{Kind: ast.KindBlockarg, Name: c.text(name), Span: c.span(name)}
	default:
		return c.convert(n)
	}
}

func (c *converter) convertScopeResolution(n *sitter.Node) *ast.Node {
	nameField := n.ChildByFieldName("name")
	if nameField == nil {
		return &ast.Node{Kind: ast.Kind(n.Type()), Span: c.span(n), Children: c.namedChildrenConverted(n)}
	}
	var children []*ast.Node
	if scope := n.ChildByFieldName("scope"); scope != nil {
		children = append(children, c.convert(scope))
	}
	return &ast.Node{Kind: ast.KindConst, Name: c.text(nameField), Span: c.span(nameField), Children: children}
}

func (c *converter) convertAssignment(n *sitter.Node) *ast.Node {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")

	var rhs []*ast.Node
	if right != nil {
		rhs = []*ast.Node{c.convert(right)}
	}

	var kind ast.Kind
	var name string
	var span ast.Span
	switch {
	case left == nil:
		return &ast.Node{Kind: ast.Kind(n.Type()), Span: c.span(n), Children: rhs}
	case left.Type() == "identifier":
		kind, name, span = ast.KindLvasgn, c.text(left), c.span(left)
	case left.Type() == "instance_variable":
		kind, name, span = ast.KindIvasgn, c.text(left), c.span(left)
	case left.Type() == "class_variable":
		kind, name, span = ast.KindCvasgn, c.text(left), c.span(left)
	case left.Type() == "global_variable":
		kind, name, span = ast.KindGvasgn, c.text(left), c.span(left)
	case left.Type() == "constant":
		kind, name, span = ast.KindCasgn, c.text(left), c.span(left)
	case left.Type() == "scope_resolution":
		if nameField := left.ChildByFieldName("name"); nameField != nil {
			kind, name, span = ast.KindCasgn, c.text(nameField), c.span(nameField)
			break
		}
		fallthrough
	default:
		// Destructuring / index / attribute-writer targets: no single
		// binding name to record, but the operands may still contain
		// identifiers worth visiting.
		return &ast.Node{Kind: ast.Kind(n.Type()), Span: c.span(n), Children: append([]*ast.Node{c.convert(left)}, rhs...)}
	}

	return &ast.Node{Kind: kind, Name: name, Span: span, Children: rhs}
}

func (c *converter) convertCall(n *sitter.Node) *ast.Node {
	receiver := n.ChildByFieldName("receiver")
	methodField := n.ChildByFieldName("method")
	arguments := n.ChildByFieldName("arguments")
	block := n.ChildByFieldName("block")
	operator := n.ChildByFieldName("operator")

	// "command"/"command_call" are the parenless call forms (`puts n`,
	// `obj.tap n`): the grammar has no argument_list to point "arguments"
	// at, so bare argument expressions show up as ordinary named children
	// alongside receiver/method/block. Collect whatever is left over, and
	// fall back to the first remaining identifier/constant as the method
	// name if the grammar didn't tag one with a field.
	isCommand := n.Type() == "command" || n.Type() == "command_call"
	var bareArgs []*sitter.Node
	if isCommand {
		for _, child := range namedChildren(n) {
			if child == receiver || child == methodField || child == block {
				continue
			}
			if methodField == nil && (child.Type() == "identifier" || child.Type() == "constant") {
				methodField = child
				continue
			}
			bareArgs = append(bareArgs, child)
		}
	}

	if methodField == nil {
		return &ast.Node{Kind: ast.Kind(n.Type()), Span: c.span(n), Children: c.namedChildrenConverted(n)}
	}

	switch methodField.Type() {
	case "identifier", "constant", "operator":
		kind := ast.KindSend
		if operator != nil && c.text(operator) == "&." {
			kind = ast.KindCSend
		}
		nameSpan := c.span(methodField)

		var children []*ast.Node
		if receiver != nil {
			children = append(children, c.convert(receiver))
		}
		children = append(children, c.argChildren(arguments)...)
		children = append(children, c.convertAll(bareArgs)...)
		if block != nil {
			children = append(children, c.convert(block))
		}

		return &ast.Node{Kind: kind, Name: c.text(methodField), Span: c.span(n), NameSpan: &nameSpan, Children: children}
	default:
		// Chained call (`a.b.c`): the method field is itself a call
		// expression already carrying its own selector. Convert it and
		// graft this node's receiver/arguments/block onto it instead of
		// inventing a second selector span the grammar doesn't expose.
		inner := c.convert(methodField)
		if receiver != nil {
			inner.Children = append(inner.Children, c.convert(receiver))
		}
		inner.Children = append(inner.Children, c.argChildren(arguments)...)
		if block != nil {
			inner.Children = append(inner.Children, c.convert(block))
		}
		return inner
	}
}

func (c *converter) convertAlias(n *sitter.Node) *ast.Node {
	operands := namedChildren(n)
	children := make([]*ast.Node, 0, len(operands))
	for _, operand := range operands {
		children = append(children, &ast.Node{
			Kind: ast.KindSym,
			Name: strings.TrimPrefix(c.text(operand), ":"),
			Span: c.span(operand),
		})
	}
	return &ast.Node{Kind: ast.KindAlias, Span: c.span(n), Children: children}
}

func (c *converter) convertSuper(n *sitter.Node) *ast.Node {
	if args := firstNamedChildOfType(n, "argument_list"); args != nil {
		return &ast.Node{Kind: ast.KindSuper, Span: c.span(n), Children: c.argChildren(args)}
	}
	return &ast.Node{Kind: ast.KindZSuper, Span: c.span(n)}
}
