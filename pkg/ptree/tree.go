// Package ptree turns a grammar.Result into a navigable parse tree.
//
// A Tree owns every node of one parse in a flat arena. Node values are small
// handles into that arena: copying a Node is free and every Node of a Tree
// stays valid for as long as the Tree is reachable.
//
// # Querying
//
// Each node lazily builds an index from rule to the node's direct children
// with that rule, so GetRules, FindRule, HowMany and HasRule are map lookups
// after the first query on a node. Lookup follows a path of rules through
// that index, one level per rule.
//
// # Lossless view
//
// Rule leaves alone do not cover the input: silent rules and literal syntax
// ("<", "```", newlines) produce no nodes. Segments fills those gaps with
// syntax segments attributed to the innermost enclosing rule, so the
// concatenated segments of a node always reproduce its text exactly.
//
// # Thread Safety
//
// Indexes are built on first query, so a Tree must not be queried from
// several goroutines at once. Separate parses share nothing.
package ptree

import (
	"errors"
	"fmt"

	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/source"
)

var (
	// ErrEmptyResult means the parse matched but produced no nodes, which
	// happens when the start rule is silent.
	ErrEmptyResult = errors.New("parse produced no root node")

	// ErrMultipleRoots means the parse produced more than one top-level
	// node.
	ErrMultipleRoots = errors.New("parse produced more than one root node")
)

// StructuralError reports a parse result that cannot be viewed through a
// single root node.
type StructuralError struct {
	Rule  grammar.Rule
	Roots int
	Err   error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("parse %s: %v (%d roots)", e.Rule, e.Err, e.Roots)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

const noParent = -1

type record struct {
	rule     grammar.Rule
	span     source.Span
	parent   int32
	children []int32

	// Built on first query.
	indexed bool
	byRule  map[grammar.Rule][]int32
	order   []grammar.Rule
}

// Tree is the node arena of one parse.
type Tree struct {
	file  *source.File
	rule  grammar.Rule
	nodes []record
	roots []int32
}

// New builds a tree from a parse result. Records are stored in pre-order.
func New(res *grammar.Result) *Tree {
	tree := &Tree{
		file:  source.NewFile("", res.Input),
		rule:  res.Rule,
		nodes: make([]record, 0, len(res.Events)/2),
	}

	open := make([]int32, 0, 16)

	for _, event := range res.Events {
		switch event.Kind {
		case grammar.EventStart:
			id := int32(len(tree.nodes))
			parent := int32(noParent)

			if len(open) > 0 {
				parent = open[len(open)-1]
				tree.nodes[parent].children = append(tree.nodes[parent].children, id)
			} else {
				tree.roots = append(tree.roots, id)
			}

			tree.nodes = append(tree.nodes, record{
				rule:   event.Rule,
				span:   source.Span{Start: event.Pos, End: event.Pos},
				parent: parent,
			})
			open = append(open, id)
		case grammar.EventEnd:
			id := open[len(open)-1]
			open = open[:len(open)-1]
			tree.nodes[id].span.End = event.Pos
		}
	}

	return tree
}

// WithPath records where the parsed content came from. Positions and
// reports use it; navigation does not.
func (t *Tree) WithPath(path string) *Tree {
	t.file.Path = path
	return t
}

// Parse runs rule over input and returns the single root node.
func Parse(rule grammar.Rule, input string, opts ...grammar.Option) (Node, error) {
	res, err := grammar.Parse(rule, input, opts...)
	if err != nil {
		return Node{}, err
	}

	return New(res).Root()
}

// Root returns the only top-level node.
func (t *Tree) Root() (Node, error) {
	switch len(t.roots) {
	case 1:
		return Node{tree: t, id: t.roots[0]}, nil
	case 0:
		return Node{}, &StructuralError{Rule: t.rule, Roots: 0, Err: ErrEmptyResult}
	default:
		return Node{}, &StructuralError{Rule: t.rule, Roots: len(t.roots), Err: ErrMultipleRoots}
	}
}

// Roots returns every top-level node in source order.
func (t *Tree) Roots() []Node {
	return t.handles(t.roots)
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Rule returns the rule the parse started from.
func (t *Tree) Rule() grammar.Rule {
	return t.rule
}

// File returns the parsed content and its line table.
func (t *Tree) File() *source.File {
	return t.file
}

// Source returns the parsed content.
func (t *Tree) Source() string {
	return t.file.Content
}

func (t *Tree) handles(ids []int32) []Node {
	if len(ids) == 0 {
		return nil
	}

	out := make([]Node, len(ids))
	for idx, id := range ids {
		out[idx] = Node{tree: t, id: id}
	}

	return out
}
