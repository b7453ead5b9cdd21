package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parkdown/pkg/grammar"
)

func TestParseRule(t *testing.T) {
	t.Parallel()

	for _, rule := range grammar.Rules() {
		parsed, err := grammar.ParseRule(rule.String())
		require.NoError(t, err)
		assert.Equal(t, rule, parsed)
		assert.NotEmpty(t, rule.Description(), rule.String())
		assert.True(t, grammar.Markdown.Defines(rule), rule.String())
	}

	parsed, err := grammar.ParseRule(" Fence_Defn ")
	require.NoError(t, err)
	assert.Equal(t, grammar.RuleFenceDefn, parsed)

	_, err = grammar.ParseRule("paragraph")
	require.ErrorIs(t, err, grammar.ErrUnknownRule)
}

func TestRule_HeadingLevel(t *testing.T) {
	t.Parallel()

	for level := 1; level <= 6; level++ {
		rule, ok := grammar.HeadingRule(level)
		require.True(t, ok)
		assert.Equal(t, level, rule.HeadingLevel())
	}

	rule, ok := grammar.HeadingRule(7)
	assert.False(t, ok)
	assert.Equal(t, grammar.RuleInvalid, rule)
	assert.False(t, grammar.RuleInvalid.Valid())
	assert.Equal(t, 0, grammar.RuleHeading.HeadingLevel())
	assert.Equal(t, "Rule(999)", grammar.Rule(999).String())
}
