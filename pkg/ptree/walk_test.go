package ptree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/ptree"
)

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	root := mustParse(t, grammar.RuleHeading, "## Hi\n")

	var visited []string

	err := ptree.Walk(root, func(node ptree.Node) error {
		visited = append(visited, node.Name())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"heading", "h2", "heading_text"}, visited)
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	root := mustParse(t, grammar.RuleHeading, "## Hi\n")

	var events []string

	err := ptree.WalkWithContext(root,
		func(node ptree.Node) error {
			events = append(events, "enter "+node.Name())
			return nil
		},
		func(node ptree.Node) error {
			events = append(events, "leave "+node.Name())
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"enter heading", "enter h2", "enter heading_text",
		"leave heading_text", "leave h2", "leave heading",
	}, events)

	require.NoError(t, ptree.WalkWithContext(root, nil, nil))
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	root := mustParse(t, grammar.RuleFile, breakDoc)
	stop := errors.New("stop")
	count := 0

	err := ptree.Walk(root, func(node ptree.Node) error {
		count++
		if node.Rule() == grammar.RuleThematicBreak {
			return stop
		}

		return nil
	})
	require.ErrorIs(t, err, stop)

	// file, heading, h1, heading_text, text_block, text_line, text_run, thematic_break
	assert.Equal(t, 8, count)
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	root := mustParse(t, grammar.RuleFile, breakDoc)

	runs := ptree.FindAll(root, func(node ptree.Node) bool {
		return node.Rule() == grammar.RuleTextRun
	})
	require.Len(t, runs, 2)
	assert.Equal(t, "something else", runs[1].Text())
}
