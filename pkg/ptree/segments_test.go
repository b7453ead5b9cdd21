package ptree_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/ptree"
	"github.com/yaklabco/parkdown/pkg/source"
)

func TestSegments_BlockTag(t *testing.T) {
	t.Parallel()

	root := mustParse(t, grammar.RuleBlockTag, `<a b="c">d</a>`)
	segs := ptree.Segments(root)

	type piece struct {
		rule   string
		text   string
		syntax bool
	}

	got := make([]piece, len(segs))
	for idx, seg := range segs {
		got[idx] = piece{rule: seg.Rule.String(), text: seg.Text, syntax: seg.Syntax}
	}

	assert.Equal(t, []piece{
		{"block_tag", "<", true},
		{"tag_name", "a", false},
		{"block_tag", " ", true},
		{"attr_key", "b", false},
		{"attr", "=", true},
		{"quoted", `"`, true},
		{"string", "c", false},
		{"quoted", `"`, true},
		{"block_tag", ">", true},
		{"tag_text", "d", false},
		{"block_tag", "</a>", true},
	}, got)
}

func TestSegments_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		breakDoc,
		"# T\n\n<div class=\"x\">\n<b>hi</b>\n</div>\n",
		"```ts { foo: \"bar\", bar: \"baz\" } bad-juju\nconst x = 1;\n```\n",
		"a <br/> b\r\nc\r\n",
		"  ###### deep\n***\n<x a=\"1\" />\n",
		"<<< >>> \"\n",
	}

	for _, input := range inputs {
		root := mustParse(t, grammar.RuleFile, input)

		err := ptree.Walk(root, func(node ptree.Node) error {
			segs := ptree.Segments(node)

			var joined strings.Builder
			for _, seg := range segs {
				joined.WriteString(seg.Text)
			}

			assert.Equal(t, node.Text(), joined.String(), "node %s of %q", node.Name(), input)
			assert.True(t, ptree.ValidateSegments(segs, node.Span()), "node %s of %q", node.Name(), input)

			return nil
		})
		require.NoError(t, err)
	}
}

func TestSegments_LeavesMatchLeafNodes(t *testing.T) {
	t.Parallel()

	root := mustParse(t, grammar.RuleFile, breakDoc)

	var leaves []string

	for _, seg := range ptree.Segments(root) {
		if !seg.Syntax {
			leaves = append(leaves, seg.Text)
		}
	}

	assert.Equal(t, []string{"Foobar", "something", "---\n", "something else"}, leaves)
}

func TestValidateSegments(t *testing.T) {
	t.Parallel()

	span := source.Span{Start: 0, End: 4}

	assert.True(t, ptree.ValidateSegments(nil, source.Span{Start: 3, End: 3}))
	assert.False(t, ptree.ValidateSegments(nil, span))
	assert.True(t, ptree.ValidateSegments([]ptree.Segment{
		{Span: source.Span{Start: 0, End: 1}},
		{Span: source.Span{Start: 1, End: 4}},
	}, span))
	assert.False(t, ptree.ValidateSegments([]ptree.Segment{
		{Span: source.Span{Start: 0, End: 1}},
		{Span: source.Span{Start: 2, End: 4}},
	}, span))
	assert.False(t, ptree.ValidateSegments([]ptree.Segment{
		{Span: source.Span{Start: 0, End: 3}},
	}, span))
}
