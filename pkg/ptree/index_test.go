package ptree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parkdown/pkg/grammar"
)

func TestNode_RuleIndex(t *testing.T) {
	t.Parallel()

	tag := mustParse(t, grammar.RuleTag, `<test class="foo bar" style="color: red" />`)

	assert.Equal(t, "test", tag.GetRuleText(grammar.RuleTagName))
	assert.Equal(t, []grammar.Rule{grammar.RuleTagName, grammar.RuleAttrs}, tag.ChildRules())
	assert.False(t, tag.HasRule(grammar.RuleTagContent))
	assert.Empty(t, tag.GetRuleText(grammar.RuleTagContent))

	attrs, ok := tag.FindRule(grammar.RuleAttrs)
	require.True(t, ok)
	assert.Equal(t, 2, attrs.HowMany(grammar.RuleAttr))

	all := attrs.GetRules(grammar.RuleAttr)
	require.Len(t, all, 2)
	assert.Equal(t, "class", all[0].GetRuleText(grammar.RuleAttrKey))
	assert.Equal(t, "style", all[1].GetRuleText(grammar.RuleAttrKey))
	assert.Equal(t, "color: red", all[1].LookupText(grammar.RuleQuoted, grammar.RuleString))

	assert.Equal(t, "foo bar", tag.LookupText(grammar.RuleAttrs, grammar.RuleAttr, grammar.RuleQuoted, grammar.RuleString))
	assert.Empty(t, tag.LookupText(grammar.RuleAttrs, grammar.RuleTagName))

	self, ok := tag.Lookup()
	require.True(t, ok)
	assert.True(t, self.Equal(tag))

	key, ok := tag.LookupName("attrs.attr.attr_key")
	require.True(t, ok)
	assert.Equal(t, "class", key.Text())

	_, ok = tag.LookupName("attrs.nonsense")
	assert.False(t, ok)
}

func TestNode_HowManyMatchesGetRules(t *testing.T) {
	t.Parallel()

	root := mustParse(t, grammar.RuleFile, breakDoc)

	for _, rule := range grammar.Rules() {
		assert.Len(t, root.GetRules(rule), root.HowMany(rule), rule.String())
		assert.Equal(t, root.HowMany(rule) > 0, root.HasRule(rule), rule.String())
	}
}

func TestNode_Descendants(t *testing.T) {
	t.Parallel()

	tag := mustParse(t, grammar.RuleTag, `<test class="foo bar" style="color: red" />`)

	str, ok := tag.FindDescendant(grammar.RuleString)
	require.True(t, ok)
	assert.Equal(t, "foo bar", str.Text())

	_, ok = tag.FindDescendant(grammar.RuleTag)
	assert.False(t, ok, "the node itself is not a descendant")

	keys := tag.Descendants(grammar.RuleAttrKey)
	assert.Equal(t, []string{"class", "style"}, []string{keys[0].Text(), keys[1].Text()})
}

func TestNode_FenceDefnLookups(t *testing.T) {
	t.Parallel()

	defn := mustParse(t, grammar.RuleFenceDefn, "```ts { foo: \"bar\", bar: \"baz\" } bad-juju")

	assert.Equal(t, "ts", defn.LookupText(grammar.RuleLang, grammar.RuleIdentifier))
	assert.Equal(t, "bad-juju", defn.GetRuleText(grammar.RuleFenceJunk))

	attrs, ok := defn.FindRule(grammar.RuleFenceAttrs)
	require.True(t, ok)

	entries := attrs.GetRules(grammar.RuleDictEntry)
	require.Len(t, entries, 2)
	assert.Equal(t, "foo", entries[0].LookupText(grammar.RuleDictKey, grammar.RuleIdentifier))
	assert.Equal(t, "bar", entries[0].LookupText(grammar.RuleDictValue, grammar.RuleQuoted, grammar.RuleString))
	assert.Equal(t, "bar", entries[1].LookupText(grammar.RuleDictKey, grammar.RuleIdentifier))
	assert.Equal(t, "baz", entries[1].LookupText(grammar.RuleDictValue, grammar.RuleQuoted, grammar.RuleString))
}

func TestNode_GetRuleTextConcatenates(t *testing.T) {
	t.Parallel()

	line := mustParse(t, grammar.RuleTextLine, "a <b/> c <d/> e")

	assert.Equal(t, "a  c  e", line.GetRuleText(grammar.RuleTextRun))
	assert.Equal(t, "<b/><d/>", line.GetRuleText(grammar.RuleTag))
	assert.Equal(t, 3, line.HowMany(grammar.RuleTextRun))
}
