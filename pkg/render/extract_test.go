package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/ptree"
	"github.com/yaklabco/parkdown/pkg/render"
)

func parse(t *testing.T, rule grammar.Rule, input string) ptree.Node {
	t.Helper()

	root, err := ptree.Parse(rule, input)
	require.NoError(t, err)

	return root
}

func TestHeadingOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  grammar.Rule
		input string
		level int
		text  string
	}{
		{name: "h1", rule: grammar.RuleHeading, input: "# Foobar\n", level: 1, text: "Foobar"},
		{name: "indented h6", rule: grammar.RuleH6, input: "  ###### Foobar\n", level: 6, text: "Foobar"},
		{name: "closing hashes", rule: grammar.RuleHeading, input: "### Title ###  \n", level: 3, text: "Title"},
		{name: "hash inside word", rule: grammar.RuleHeading, input: "## C#\n", level: 2, text: "C#"},
		{name: "only hashes", rule: grammar.RuleHeading, input: "## ##\n", level: 2, text: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			heading, ok := render.HeadingOf(parse(t, testCase.rule, testCase.input))
			require.True(t, ok)
			assert.Equal(t, testCase.level, heading.Level)
			assert.Equal(t, testCase.text, heading.Text)
		})
	}

	_, ok := render.HeadingOf(parse(t, grammar.RuleThematicBreak, "---"))
	assert.False(t, ok)
}

func TestAttrsOf_WhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	want := []render.Attr{{Key: "class", Value: "foo bar"}, {Key: "style", Value: "color: red"}}

	inputs := []string{
		`class="foo bar" style="color: red"`,
		`  class = "foo bar"   style=  "color: red"  `,
		"class=\"foo bar\"\tstyle=\"color: red\"",
	}

	for _, input := range inputs {
		assert.Equal(t, want, render.AttrsOf(parse(t, grammar.RuleAttrs, input)), input)
	}
}

func TestAttrsOf_Unescapes(t *testing.T) {
	t.Parallel()

	attrs := render.AttrsOf(parse(t, grammar.RuleAttrs, `title="a \"b\" \\ c"`))
	assert.Equal(t, []render.Attr{{Key: "title", Value: `a "b" \ c`}}, attrs)
}

func TestTagOf(t *testing.T) {
	t.Parallel()

	t.Run("self-closing", func(t *testing.T) {
		t.Parallel()

		tag, ok := render.TagOf(parse(t, grammar.RuleTag, `<test class="foo bar" style="color: red" />`))
		require.True(t, ok)
		assert.Equal(t, "test", tag.Name)
		assert.True(t, tag.SelfClosing)
		assert.True(t, tag.Content.IsZero())
		assert.Equal(t, []render.Attr{{Key: "class", Value: "foo bar"}, {Key: "style", Value: "color: red"}}, tag.Attrs)
	})

	t.Run("block tag", func(t *testing.T) {
		t.Parallel()

		tag, ok := render.TagOf(parse(t, grammar.RuleBlockTag, `<foo-bar class="foo bar">hello world</foo-bar>`))
		require.True(t, ok)
		assert.Equal(t, "foo-bar", tag.Name)
		assert.False(t, tag.SelfClosing)
		assert.Equal(t, "hello world", tag.Content.Text())
		assert.Equal(t, []render.Attr{{Key: "class", Value: "foo bar"}}, tag.Attrs)
	})

	t.Run("html block without attributes", func(t *testing.T) {
		t.Parallel()

		tag, ok := render.TagOf(parse(t, grammar.RuleHTMLBlock, "<br/>\n"))
		require.True(t, ok)
		assert.Equal(t, "br", tag.Name)
		assert.Empty(t, tag.Attrs)
	})

	_, ok := render.TagOf(parse(t, grammar.RuleAttrs, `a="b"`))
	assert.False(t, ok)
}

func TestFenceOf(t *testing.T) {
	t.Parallel()

	t.Run("definition with junk", func(t *testing.T) {
		t.Parallel()

		fence, ok := render.FenceOf(parse(t, grammar.RuleFenceDefn, "```ts { foo: \"bar\", bar: \"baz\" } bad-juju"))
		require.True(t, ok)
		assert.Equal(t, "ts", fence.Lang)
		assert.Equal(t, "bad-juju", fence.Junk)
		assert.Empty(t, fence.Body)
		assert.Equal(t, []render.Attr{{Key: "foo", Value: "bar"}, {Key: "bar", Value: "baz"}}, fence.Attrs)
	})

	t.Run("whole fence", func(t *testing.T) {
		t.Parallel()

		fence, ok := render.FenceOf(parse(t, grammar.RuleFence, "```go {\"tab width\": 4, hl: true}\nx := 1\n\ny := 2\n```"))
		require.True(t, ok)
		assert.Equal(t, "go", fence.Lang)
		assert.Empty(t, fence.Junk)
		assert.Equal(t, "x := 1\n\ny := 2\n", fence.Body)
		assert.Equal(t, []render.Attr{{Key: "tab width", Value: "4"}, {Key: "hl", Value: "true"}}, fence.Attrs)
		assert.Equal(t, grammar.RuleFenceDefn, fence.Defn.Rule())
	})

	t.Run("bare fence", func(t *testing.T) {
		t.Parallel()

		fence, ok := render.FenceOf(parse(t, grammar.RuleFenceDefn, "```"))
		require.True(t, ok)
		assert.Empty(t, fence.Lang)
		assert.Empty(t, fence.Attrs)
	})

	_, ok := render.FenceOf(parse(t, grammar.RuleHeading, "# x"))
	assert.False(t, ok)
}
