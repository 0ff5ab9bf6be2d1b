package resolve

import "github.com/GMGilson/fuzzy-ruby-server/internal/ast"

// astTestNode is a thin wrapper that lets test cases assemble small AST
// fixtures without repeating &ast.Node{...} literals everywhere.
type astTestNode struct {
	n *ast.Node
}

func (t *astTestNode) toNode() *ast.Node { return t.n }

func leaf(kind ast.Kind, name string, line, start, end int) *astTestNode {
	return &astTestNode{n: &ast.Node{
		Kind: kind,
		Name: name,
		Span: ast.Span{Line: line, StartColumn: start, EndColumn: end},
	}}
}

func seq(nodes ...*astTestNode) *astTestNode {
	children := make([]*ast.Node, len(nodes))
	for i, node := range nodes {
		children[i] = node.toNode()
	}
	return &astTestNode{n: &ast.Node{Kind: ast.KindBegin, Children: children}}
}

func defNode(name string, line, start, end int, children ...*astTestNode) *astTestNode {
	cs := make([]*ast.Node, len(children))
	for i, c := range children {
		cs[i] = c.toNode()
	}
	nameSpan := ast.Span{Line: line, StartColumn: start + 4, EndColumn: start + 4 + len(name)}
	return &astTestNode{n: &ast.Node{
		Kind:     ast.KindDef,
		Name:     name,
		Span:     ast.Span{Line: line, StartColumn: start, EndColumn: end},
		NameSpan: &nameSpan,
		Children: cs,
	}}
}
