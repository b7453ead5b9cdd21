// Package grammar defines the parkdown Markdown grammar and the PEG engine
// that runs it. Parsing yields a flat, balanced stream of start/end events
// that pkg/ptree turns into a navigable tree.
package grammar

import (
	"fmt"
	"strings"
)

// Rule identifies a named grammar rule. Every node in a parse tree is
// labelled with exactly one Rule.
type Rule uint16

// Grammar rules in declaration order.
const (
	RuleFile Rule = iota
	RuleBlock
	RuleHeading
	RuleH1
	RuleH2
	RuleH3
	RuleH4
	RuleH5
	RuleH6
	RuleHeadingText
	RuleThematicBreak
	RuleHTMLBlock
	RuleTag
	RuleBlockTag
	RuleTagName
	RuleTagContent
	RuleTagText
	RuleAttrs
	RuleAttr
	RuleAttrKey
	RuleQuoted
	RuleString
	RuleFence
	RuleFenceDefn
	RuleLang
	RuleIdentifier
	RuleFenceAttrs
	RuleDictEntry
	RuleDictKey
	RuleDictValue
	RuleNumber
	RuleBoolean
	RuleFenceJunk
	RuleFenceBody
	RuleFenceClose
	RuleTextBlock
	RuleTextLine
	RuleTextRun

	ruleCount
)

// RuleInvalid names no rule. It is what a zero ptree node reports.
const RuleInvalid = ruleCount

var ruleNames = [ruleCount]string{
	RuleFile:          "file",
	RuleBlock:         "block",
	RuleHeading:       "heading",
	RuleH1:            "h1",
	RuleH2:            "h2",
	RuleH3:            "h3",
	RuleH4:            "h4",
	RuleH5:            "h5",
	RuleH6:            "h6",
	RuleHeadingText:   "heading_text",
	RuleThematicBreak: "thematic_break",
	RuleHTMLBlock:     "html_block",
	RuleTag:           "tag",
	RuleBlockTag:      "block_tag",
	RuleTagName:       "tag_name",
	RuleTagContent:    "tag_content",
	RuleTagText:       "tag_text",
	RuleAttrs:         "attrs",
	RuleAttr:          "attr",
	RuleAttrKey:       "attr_key",
	RuleQuoted:        "quoted",
	RuleString:        "string",
	RuleFence:         "fence",
	RuleFenceDefn:     "fence_defn",
	RuleLang:          "lang",
	RuleIdentifier:    "identifier",
	RuleFenceAttrs:    "fence_attrs",
	RuleDictEntry:     "dict_entry",
	RuleDictKey:       "dict_key",
	RuleDictValue:     "dict_value",
	RuleNumber:        "number",
	RuleBoolean:       "boolean",
	RuleFenceJunk:     "fence_junk",
	RuleFenceBody:     "fence_body",
	RuleFenceClose:    "fence_close",
	RuleTextBlock:     "text_block",
	RuleTextLine:      "text_line",
	RuleTextRun:       "text_run",
}

var ruleDescriptions = [ruleCount]string{
	RuleFile:          "A whole document: blank lines and blocks up to end of input",
	RuleBlock:         "Any block-level construct (silent)",
	RuleHeading:       "An ATX heading of any level",
	RuleH1:            "Level 1 heading",
	RuleH2:            "Level 2 heading",
	RuleH3:            "Level 3 heading",
	RuleH4:            "Level 4 heading",
	RuleH5:            "Level 5 heading",
	RuleH6:            "Level 6 heading",
	RuleHeadingText:   "Heading text after the markers",
	RuleThematicBreak: "A line of three or more -, * or _ characters",
	RuleHTMLBlock:     "A line holding a single tag or balanced tag pair",
	RuleTag:           "A self-closing tag such as <br />",
	RuleBlockTag:      "An open tag, its content and the matching close tag",
	RuleTagName:       "A tag name",
	RuleTagContent:    "Content between an open and close tag",
	RuleTagText:       "Text inside a tag pair",
	RuleAttrs:         "Whitespace separated tag attributes",
	RuleAttr:          "One key=\"value\" attribute",
	RuleAttrKey:       "Attribute key",
	RuleQuoted:        "A double-quoted string",
	RuleString:        "The inside of a quoted string",
	RuleFence:         "A fenced code block",
	RuleFenceDefn:     "The opening fence line: marker, language, attributes",
	RuleLang:          "Fence language",
	RuleIdentifier:    "A bare identifier",
	RuleFenceAttrs:    "A {key: value} dictionary on the fence line",
	RuleDictEntry:     "One key: value entry",
	RuleDictKey:       "Dictionary key",
	RuleDictValue:     "Dictionary value",
	RuleNumber:        "A numeric literal",
	RuleBoolean:       "true or false",
	RuleFenceJunk:     "Unrecognised trailing text on the fence line",
	RuleFenceBody:     "Raw lines inside a fence",
	RuleFenceClose:    "The closing fence line",
	RuleTextBlock:     "Consecutive lines of paragraph text",
	RuleTextLine:      "One line of paragraph text",
	RuleTextRun:       "Plain text between inline tags",
}

// String returns the rule's grammar name, e.g. "fence_defn".
func (r Rule) String() string {
	if r < ruleCount {
		return ruleNames[r]
	}

	return fmt.Sprintf("Rule(%d)", uint16(r))
}

// Description returns a one-line human description of the rule.
func (r Rule) Description() string {
	if r < ruleCount {
		return ruleDescriptions[r]
	}

	return ""
}

// Valid reports whether r names a declared rule.
func (r Rule) Valid() bool {
	return r < ruleCount
}

// HeadingLevel returns 1-6 for the h1-h6 rules and 0 otherwise.
func (r Rule) HeadingLevel() int {
	if r >= RuleH1 && r <= RuleH6 {
		return int(r-RuleH1) + 1
	}

	return 0
}

// HeadingRule returns the hN rule for a level in 1-6.
func HeadingRule(level int) (Rule, bool) {
	if level < 1 || level > 6 {
		return RuleInvalid, false
	}

	return RuleH1 + Rule(level-1), true
}

// ParseRule resolves a rule by grammar name. Matching is case-insensitive.
func ParseRule(name string) (Rule, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for r := range ruleCount {
		if ruleNames[r] == key {
			return r, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// Rules returns every declared rule in declaration order.
func Rules() []Rule {
	rules := make([]Rule, 0, ruleCount)
	for r := range ruleCount {
		rules = append(rules, r)
	}

	return rules
}
