package render

import (
	"strings"

	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/ptree"
)

// Heading is the data of a heading node.
type Heading struct {
	Level int
	Text  string
	Node  ptree.Node
}

// HeadingOf reads a heading or h1-h6 node. A closing sequence of '#'
// characters is dropped from the text.
func HeadingOf(n ptree.Node) (Heading, bool) {
	if n.Rule() == grammar.RuleHeading {
		n, _ = n.Child(0)
	}

	level := n.Rule().HeadingLevel()
	if level == 0 {
		return Heading{}, false
	}

	return Heading{
		Level: level,
		Text:  trimClosingHashes(n.GetRuleText(grammar.RuleHeadingText)),
		Node:  n,
	}, true
}

func trimClosingHashes(text string) string {
	text = strings.TrimRight(text, " \t")

	stripped := strings.TrimRight(text, "#")
	if stripped == text {
		return text
	}

	if stripped == "" {
		return ""
	}

	if last := stripped[len(stripped)-1]; last == ' ' || last == '\t' {
		return strings.TrimRight(stripped, " \t")
	}

	return text
}

// Attr is one key/value pair from a tag or fence line.
type Attr struct {
	Key   string
	Value string
}

// AttrsOf reads the attributes of an attrs, tag or block_tag node in source
// order. Quoted values are unescaped.
func AttrsOf(n ptree.Node) []Attr {
	if n.Rule() != grammar.RuleAttrs {
		var ok bool
		if n, ok = n.FindRule(grammar.RuleAttrs); !ok {
			return nil
		}
	}

	attrs := make([]Attr, 0, n.HowMany(grammar.RuleAttr))
	for _, attr := range n.GetRules(grammar.RuleAttr) {
		attrs = append(attrs, Attr{
			Key:   attr.GetRuleText(grammar.RuleAttrKey),
			Value: unescape(attr.LookupText(grammar.RuleQuoted, grammar.RuleString)),
		})
	}

	return attrs
}

// Tag is the data of a tag or block_tag node.
type Tag struct {
	Name        string
	Attrs       []Attr
	SelfClosing bool

	// Content is the tag_content node of a block tag; zero for
	// self-closing tags.
	Content ptree.Node
}

// TagOf reads a tag, block_tag or html_block node.
func TagOf(n ptree.Node) (Tag, bool) {
	if n.Rule() == grammar.RuleHTMLBlock {
		n, _ = n.Child(0)
	}

	switch n.Rule() {
	case grammar.RuleTag:
		return Tag{
			Name:        n.GetRuleText(grammar.RuleTagName),
			Attrs:       AttrsOf(n),
			SelfClosing: true,
		}, true
	case grammar.RuleBlockTag:
		content, _ := n.FindRule(grammar.RuleTagContent)

		return Tag{
			Name:    n.GetRuleText(grammar.RuleTagName),
			Attrs:   AttrsOf(n),
			Content: content,
		}, true
	default:
		return Tag{}, false
	}
}

// Fence is the data of a fence or fence_defn node.
type Fence struct {
	// Lang is the language as written on the fence line.
	Lang string

	// Attrs are the {key: value} entries in source order.
	Attrs []Attr

	// Junk is unrecognised text after the recognised part of the fence line.
	Junk string

	// Body is the raw code. Empty when read from a bare fence_defn.
	Body string

	Defn ptree.Node
}

// FenceOf reads a fence or fence_defn node.
func FenceOf(n ptree.Node) (Fence, bool) {
	var fence Fence

	switch n.Rule() {
	case grammar.RuleFence:
		defn, ok := n.FindRule(grammar.RuleFenceDefn)
		if !ok {
			return Fence{}, false
		}

		fence.Defn = defn
		fence.Body = n.GetRuleText(grammar.RuleFenceBody)
	case grammar.RuleFenceDefn:
		fence.Defn = n
	default:
		return Fence{}, false
	}

	fence.Lang = fence.Defn.GetRuleText(grammar.RuleLang)
	fence.Junk = fence.Defn.GetRuleText(grammar.RuleFenceJunk)

	if dict, ok := fence.Defn.FindRule(grammar.RuleFenceAttrs); ok {
		for _, entry := range dict.GetRules(grammar.RuleDictEntry) {
			key, _ := entry.FindRule(grammar.RuleDictKey)
			value, _ := entry.FindRule(grammar.RuleDictValue)

			fence.Attrs = append(fence.Attrs, Attr{Key: scalar(key), Value: scalar(value)})
		}
	}

	return fence, true
}

// scalar returns the value of a dict_key or dict_value node, unquoting
// quoted strings.
func scalar(n ptree.Node) string {
	if n.HasRule(grammar.RuleQuoted) {
		return unescape(n.LookupText(grammar.RuleQuoted, grammar.RuleString))
	}

	return n.Text()
}

// unescape resolves backslash escapes inside a quoted string.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	for idx := 0; idx < len(s); idx++ {
		if s[idx] == '\\' && idx+1 < len(s) {
			idx++
		}

		out.WriteByte(s[idx])
	}

	return out.String()
}
