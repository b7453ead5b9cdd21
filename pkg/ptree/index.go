package ptree

import (
	"strings"

	"github.com/yaklabco/parkdown/pkg/grammar"
)

// index returns the rule index of n's direct children, building it on
// first use. Returned slices are shared; callers must not mutate them.
func (n Node) index() *record {
	rec := n.rec()
	if rec.indexed {
		return rec
	}

	rec.byRule = make(map[grammar.Rule][]int32, len(rec.children))

	for _, child := range rec.children {
		rule := n.tree.nodes[child].rule
		if _, seen := rec.byRule[rule]; !seen {
			rec.order = append(rec.order, rule)
		}

		rec.byRule[rule] = append(rec.byRule[rule], child)
	}

	rec.indexed = true

	return rec
}

// ChildRules returns the distinct rules among n's direct children in order
// of first appearance.
func (n Node) ChildRules() []grammar.Rule {
	if n.IsZero() {
		return nil
	}

	order := n.index().order

	return append([]grammar.Rule(nil), order...)
}

// GetRules returns every direct child produced by rule, in source order.
func (n Node) GetRules(rule grammar.Rule) []Node {
	if n.IsZero() {
		return nil
	}

	return n.tree.handles(n.index().byRule[rule])
}

// FindRule returns the first direct child produced by rule.
func (n Node) FindRule(rule grammar.Rule) (Node, bool) {
	if n.IsZero() {
		return Node{}, false
	}

	ids := n.index().byRule[rule]
	if len(ids) == 0 {
		return Node{}, false
	}

	return Node{tree: n.tree, id: ids[0]}, true
}

// HasRule reports whether any direct child was produced by rule.
func (n Node) HasRule(rule grammar.Rule) bool {
	_, ok := n.FindRule(rule)
	return ok
}

// HowMany returns the number of direct children produced by rule.
func (n Node) HowMany(rule grammar.Rule) int {
	if n.IsZero() {
		return 0
	}

	return len(n.index().byRule[rule])
}

// GetRuleText concatenates the text of every direct child produced by rule,
// in source order. It returns "" when there is none.
func (n Node) GetRuleText(rule grammar.Rule) string {
	if n.IsZero() {
		return ""
	}

	ids := n.index().byRule[rule]

	switch len(ids) {
	case 0:
		return ""
	case 1:
		return n.tree.file.Text(n.tree.nodes[ids[0]].span)
	}

	var text strings.Builder
	for _, id := range ids {
		text.WriteString(n.tree.file.Text(n.tree.nodes[id].span))
	}

	return text.String()
}

// Lookup follows path one level at a time, taking the first child with
// each rule. An empty path returns n.
func (n Node) Lookup(path ...grammar.Rule) (Node, bool) {
	cur := n

	for _, rule := range path {
		next, ok := cur.FindRule(rule)
		if !ok {
			return Node{}, false
		}

		cur = next
	}

	return cur, !cur.IsZero()
}

// LookupText is Lookup followed by Text, returning "" when the path does
// not resolve.
func (n Node) LookupText(path ...grammar.Rule) string {
	found, ok := n.Lookup(path...)
	if !ok {
		return ""
	}

	return found.Text()
}

// LookupName resolves a dotted path of rule names such as
// "fence_defn.lang.identifier".
func (n Node) LookupName(path string) (Node, bool) {
	if path == "" {
		return n, !n.IsZero()
	}

	parts := strings.Split(path, ".")
	rules := make([]grammar.Rule, 0, len(parts))

	for _, part := range parts {
		rule, err := grammar.ParseRule(part)
		if err != nil {
			return Node{}, false
		}

		rules = append(rules, rule)
	}

	return n.Lookup(rules...)
}

// FindDescendant returns the first node produced by rule in a pre-order
// walk below n. n itself is not considered.
func (n Node) FindDescendant(rule grammar.Rule) (Node, bool) {
	var found Node

	for _, child := range n.Children() {
		_ = Walk(child, func(node Node) error {
			if node.Rule() == rule {
				found = node
				return errStopWalk
			}

			return nil
		})

		if !found.IsZero() {
			return found, true
		}
	}

	return Node{}, false
}

// Descendants returns every node produced by rule below n, in pre-order.
func (n Node) Descendants(rule grammar.Rule) []Node {
	var out []Node

	for _, child := range n.Children() {
		out = append(out, FindAll(child, func(node Node) bool {
			return node.Rule() == rule
		})...)
	}

	return out
}
