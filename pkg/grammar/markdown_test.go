package grammar_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parkdown/pkg/grammar"
)

func TestMarkdown_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  grammar.Rule
		input string
		want  string
	}{
		{
			name:  "h1",
			rule:  grammar.RuleH1,
			input: "# Foobar\n",
			want:  "h1(heading_text)",
		},
		{
			name:  "h6 with indent",
			rule:  grammar.RuleH6,
			input: "  ###### Foobar\n",
			want:  "h6(heading_text)",
		},
		{
			name:  "heading picks the level",
			rule:  grammar.RuleHeading,
			input: " #### Foobar\n",
			want:  "heading(h4(heading_text))",
		},
		{
			name:  "attrs",
			rule:  grammar.RuleAttrs,
			input: `class="foo bar" style="color: red"`,
			want:  "attrs(attr(attr_key quoted(string)) attr(attr_key quoted(string)))",
		},
		{
			name:  "self-closing tag",
			rule:  grammar.RuleTag,
			input: `<test class="foo bar" style="color: red" />`,
			want:  "tag(tag_name attrs(attr(attr_key quoted(string)) attr(attr_key quoted(string))))",
		},
		{
			name:  "block tag",
			rule:  grammar.RuleBlockTag,
			input: `<foo-bar class="foo bar">hello world</foo-bar>`,
			want:  "block_tag(tag_name attrs(attr(attr_key quoted(string))) tag_content(tag_text))",
		},
		{
			name:  "nested block tags",
			rule:  grammar.RuleBlockTag,
			input: `<a><b>x</b></a>`,
			want:  "block_tag(tag_name tag_content(block_tag(tag_name tag_content(tag_text))))",
		},
		{
			name:  "empty block tag",
			rule:  grammar.RuleBlockTag,
			input: `<a></a>`,
			want:  "block_tag(tag_name tag_content)",
		},
		{
			name:  "fence definition with attributes and junk",
			rule:  grammar.RuleFenceDefn,
			input: "```ts { foo: \"bar\", bar: \"baz\" } bad-juju",
			want: "fence_defn(lang(identifier) fence_attrs(" +
				"dict_entry(dict_key(identifier) dict_value(quoted(string))) " +
				"dict_entry(dict_key(identifier) dict_value(quoted(string)))) fence_junk)",
		},
		{
			name:  "fence attribute value kinds",
			rule:  grammar.RuleFenceAttrs,
			input: `{ n: -1.5, ok: true, "k": v, }`,
			want: "fence_attrs(" +
				"dict_entry(dict_key(identifier) dict_value(number)) " +
				"dict_entry(dict_key(identifier) dict_value(boolean)) " +
				"dict_entry(dict_key(quoted(string)) dict_value(identifier)))",
		},
		{
			name:  "fenced code block",
			rule:  grammar.RuleFence,
			input: "```go\nfmt.Println()\n```\n",
			want:  "fence(fence_defn(lang(identifier)) fence_body fence_close)",
		},
		{
			name:  "thematic break between paragraphs",
			rule:  grammar.RuleFile,
			input: "\n# Foobar\n\nsomething\n---\nsomething else\n        ",
			want: "file(heading(h1(heading_text)) text_block(text_line(text_run)) " +
				"thematic_break text_block(text_line(text_run)))",
		},
		{
			name:  "paragraph lines join",
			rule:  grammar.RuleFile,
			input: "one\ntwo\n",
			want:  "file(text_block(text_line(text_run) text_line(text_run)))",
		},
		{
			name:  "inline tag inside text",
			rule:  grammar.RuleFile,
			input: "see <b>this</b> now",
			want:  "file(text_block(text_line(text_run block_tag(tag_name tag_content(tag_text)) text_run)))",
		},
		{
			name:  "html block",
			rule:  grammar.RuleFile,
			input: "<div>\nhi\n</div>\n",
			want:  "file(html_block(block_tag(tag_name tag_content(tag_text))))",
		},
		{
			name:  "unclosed fence falls back to text",
			rule:  grammar.RuleFile,
			input: "```go\ncode",
			want:  "file(text_block(text_line(text_run) text_line(text_run)))",
		},
		{
			name:  "empty file",
			rule:  grammar.RuleFile,
			input: "",
			want:  "file",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			res, err := grammar.Parse(testCase.rule, testCase.input)
			require.NoError(t, err)

			checkBalanced(t, res)
			assert.Equal(t, testCase.want, shape(res))
		})
	}
}

func TestMarkdown_FileConsumesEverything(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain",
		"# a\n## b\n\n---\n***\n",
		"```\nunterminated",
		"<x y=\"1\">\n<<<\n",
		"\r\n# crlf\r\ntext\r\n",
		"####### seven\n",
		"   \t\n",
	}

	for _, input := range inputs {
		res, err := grammar.Parse(grammar.RuleFile, input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, len(input), res.End, "input %q", input)
		checkBalanced(t, res)
	}
}

func TestMarkdown_HeadingLevels(t *testing.T) {
	t.Parallel()

	for level := 1; level <= 6; level++ {
		t.Run(fmt.Sprintf("h%d", level), func(t *testing.T) {
			t.Parallel()

			rule, ok := grammar.HeadingRule(level)
			require.True(t, ok)

			input := strings.Repeat("#", level) + " title\n"
			res, err := grammar.Parse(rule, input)
			require.NoError(t, err)
			assert.Equal(t, len(input), res.End)
			assert.Equal(t, level, res.Events[0].Rule.HeadingLevel())

			res, err = grammar.Parse(grammar.RuleHeading, input)
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("heading(h%d(heading_text))", level), shape(res))

			for marks := 1; marks <= 7; marks++ {
				if marks == level {
					continue
				}

				_, err := grammar.Parse(rule, strings.Repeat("#", marks)+" title\n")
				require.ErrorIs(t, err, grammar.ErrNoMatch, "%d marks", marks)
			}
		})
	}

	t.Run("seven marks is text", func(t *testing.T) {
		t.Parallel()

		_, err := grammar.Parse(grammar.RuleHeading, "####### x\n")
		require.ErrorIs(t, err, grammar.ErrNoMatch)

		res, err := grammar.Parse(grammar.RuleFile, "####### x\n")
		require.NoError(t, err)
		assert.Equal(t, "file(text_block(text_line(text_run)))", shape(res))
	})
}

func TestMarkdown_UnclosedTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		blocks int
	}{
		{
			name:   "void tags in paragraphs",
			input:  strings.Repeat("line <br> more\n\n", 200),
			blocks: 200,
		},
		{
			name:   "openers before a single close",
			input:  strings.Repeat("<a> x\n", 40) + "</a>\n",
			blocks: 1,
		},
		{
			name:   "line starting with an open tag",
			input:  strings.Repeat("<p>text\n\n", 100),
			blocks: 100,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			start := time.Now()
			res, err := grammar.Parse(grammar.RuleFile, testCase.input)
			elapsed := time.Since(start)

			require.NoError(t, err)
			assert.Less(t, elapsed, 2*time.Second)
			assert.Equal(t, len(testCase.input), res.End)
			checkBalanced(t, res)

			blocks := 0
			for _, event := range res.Events {
				if event.Kind == grammar.EventStart && event.Rule == grammar.RuleTextBlock {
					blocks++
				}
			}
			assert.Equal(t, testCase.blocks, blocks)
		})
	}
}

func TestMarkdown_PrefixMatch(t *testing.T) {
	t.Parallel()

	res, err := grammar.Parse(grammar.RuleH1, "# a\nrest")
	require.NoError(t, err)
	assert.Equal(t, 4, res.End)
}

func TestMarkdown_Deterministic(t *testing.T) {
	t.Parallel()

	input := "# T\n\n<a b=\"c\">d</a>\n```js {x: 1}\ny\n```\n"

	first, err := grammar.Parse(grammar.RuleFile, input)
	require.NoError(t, err)

	second, err := grammar.Parse(grammar.RuleFile, input)
	require.NoError(t, err)

	assert.Equal(t, first.Events, second.Events)
}

func TestMarkdown_Errors(t *testing.T) {
	t.Parallel()

	t.Run("rule name reported when nothing matched", func(t *testing.T) {
		t.Parallel()

		_, err := grammar.Parse(grammar.RuleH1, "## x")
		require.Error(t, err)
		require.ErrorIs(t, err, grammar.ErrNoMatch)

		var gerr *grammar.GrammarError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, grammar.RuleH1, gerr.Rule)
		assert.Equal(t, 0, gerr.Offset)
		assert.Equal(t, []string{"h1"}, gerr.Expected)
		assert.Equal(t, "parse h1 failed at 1:1: expected h1", gerr.Error())
	})

	t.Run("farthest failure wins", func(t *testing.T) {
		t.Parallel()

		_, err := grammar.Parse(grammar.RuleH1, "# ")

		var gerr *grammar.GrammarError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, 2, gerr.Offset)
		assert.Equal(t, 1, gerr.Position.Line)
		assert.Equal(t, 3, gerr.Position.Column)
		assert.Contains(t, gerr.Expected, "heading_text")
	})

	t.Run("mismatched close tag", func(t *testing.T) {
		t.Parallel()

		_, err := grammar.Parse(grammar.RuleBlockTag, "<foo>x</bar>")
		require.ErrorIs(t, err, grammar.ErrNoMatch)
	})

	t.Run("unclosed fence", func(t *testing.T) {
		t.Parallel()

		_, err := grammar.Parse(grammar.RuleFence, "```go\ncode\n")
		require.ErrorIs(t, err, grammar.ErrNoMatch)
	})

	t.Run("rule name at start of input", func(t *testing.T) {
		t.Parallel()

		_, err := grammar.Parse(grammar.RuleFenceDefn, "\n```")

		var gerr *grammar.GrammarError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, 0, gerr.Offset)
		assert.Equal(t, []string{"fence_defn"}, gerr.Expected)
	})

	t.Run("unknown rule", func(t *testing.T) {
		t.Parallel()

		_, err := grammar.Parse(grammar.Rule(999), "")
		require.ErrorIs(t, err, grammar.ErrUnknownRule)
	})
}

func TestMarkdown_DepthLimit(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("<a>", 300) + "</a>"

	_, err := grammar.Parse(grammar.RuleFile, input, grammar.WithMaxDepth(32))

	var gerr *grammar.GrammarError
	require.ErrorAs(t, err, &gerr)
	assert.Contains(t, gerr.Reason, "depth limit 32")
	assert.False(t, errors.Is(err, grammar.ErrUnknownRule))

	res, err := grammar.Parse(grammar.RuleBlockTag, "<a><a><a>x</a></a></a>")
	require.NoError(t, err)
	checkBalanced(t, res)
}
