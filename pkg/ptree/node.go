package ptree

import (
	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/source"
)

// Node is a handle to one node of a Tree. The zero Node belongs to no tree;
// its accessors return zero values.
type Node struct {
	tree *Tree
	id   int32
}

// IsZero reports whether n is the zero Node.
func (n Node) IsZero() bool {
	return n.tree == nil
}

func (n Node) rec() *record {
	return &n.tree.nodes[n.id]
}

// Tree returns the tree n belongs to.
func (n Node) Tree() *Tree {
	return n.tree
}

// Rule returns the grammar rule that produced n, or grammar.RuleInvalid
// for the zero Node.
func (n Node) Rule() grammar.Rule {
	if n.IsZero() {
		return grammar.RuleInvalid
	}

	return n.rec().rule
}

// Name returns the rule name, e.g. "fence_defn".
func (n Node) Name() string {
	if n.IsZero() {
		return ""
	}

	return n.rec().rule.String()
}

// Span returns the byte range n covers.
func (n Node) Span() source.Span {
	if n.IsZero() {
		return source.Span{}
	}

	return n.rec().span
}

// Text returns the exact input covered by n.
func (n Node) Text() string {
	if n.IsZero() {
		return ""
	}

	return n.tree.file.Text(n.rec().span)
}

// Position returns the 1-based line and column where n starts.
func (n Node) Position() source.Position {
	if n.IsZero() {
		return source.Position{}
	}

	return n.tree.file.PositionAt(n.rec().span.Start)
}

// Children returns the direct children in source order.
func (n Node) Children() []Node {
	if n.IsZero() {
		return nil
	}

	return n.tree.handles(n.rec().children)
}

// ChildCount returns the number of direct children.
func (n Node) ChildCount() int {
	if n.IsZero() {
		return 0
	}

	return len(n.rec().children)
}

// Child returns the i-th direct child.
func (n Node) Child(i int) (Node, bool) {
	if n.IsZero() || i < 0 || i >= len(n.rec().children) {
		return Node{}, false
	}

	return Node{tree: n.tree, id: n.rec().children[i]}, true
}

// Parent returns the enclosing node, or false for a root.
func (n Node) Parent() (Node, bool) {
	if n.IsZero() || n.rec().parent == noParent {
		return Node{}, false
	}

	return Node{tree: n.tree, id: n.rec().parent}, true
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return n.ChildCount() == 0
}

// HasChildren reports whether n has at least one child.
func (n Node) HasChildren() bool {
	return n.ChildCount() > 0
}

// Equal reports whether n and other are the same node of the same tree.
func (n Node) Equal(other Node) bool {
	return n.tree == other.tree && n.id == other.id
}
