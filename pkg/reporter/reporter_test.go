package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/ptree"
	"github.com/yaklabco/parkdown/pkg/reporter"
)

func mustDocument(t *testing.T, rule grammar.Rule, input string) *reporter.Document {
	t.Helper()

	root, err := ptree.Parse(rule, input)
	require.NoError(t, err)

	return &reporter.Document{Path: "doc.md", Root: root}
}

func report(t *testing.T, opts reporter.Options, doc *reporter.Document) string {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	require.NoError(t, rep.Report(context.Background(), doc))

	return buf.String()
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to tree", input: "", want: reporter.FormatTree},
		{name: "tree", input: "tree", want: reporter.FormatTree},
		{name: "tokens", input: "tokens", want: reporter.FormatTokens},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "html", input: "html", want: reporter.FormatHTML},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid formats")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestReport_NoDocument(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{reporter.FormatTree, reporter.FormatTokens, reporter.FormatJSON, reporter.FormatHTML} {
		rep, err := reporter.New(reporter.Options{Format: format, Writer: &bytes.Buffer{}})
		require.NoError(t, err)

		require.ErrorIs(t, rep.Report(context.Background(), nil), reporter.ErrNoDocument, format.String())
		require.ErrorIs(t, rep.Report(context.Background(), &reporter.Document{}), reporter.ErrNoDocument, format.String())
	}
}

func TestReport_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	require.ErrorIs(t, rep.Report(ctx, mustDocument(t, grammar.RuleHeading, "# a\n")), context.Canceled)
}

func TestTreeReporter(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, grammar.RuleFile, "# Foobar\n---\n")

	got := report(t, reporter.Options{}, doc)
	assert.Equal(t, "file\n"+
		"  heading > h1 > heading_text [\"Foobar\"]\n"+
		"  thematic_break [\"---\\n\"]\n", got)
}

func TestTreeReporter_MaxText(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, grammar.RuleHeading, "# Foobar\n")

	got := report(t, reporter.Options{Format: reporter.FormatTree, MaxText: 3}, doc)
	assert.Contains(t, got, "Foo")
	assert.NotContains(t, got, "Foobar")
}

func TestTokensReporter(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, grammar.RuleFile, "# Foobar\n---\n")

	got := report(t, reporter.Options{Format: reporter.FormatTokens}, doc)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.NotEmpty(t, lines)

	var sawText, sawBreak bool
	for _, line := range lines {
		fields := strings.Fields(line)
		require.GreaterOrEqual(t, len(fields), 3, line)

		switch fields[1] {
		case "heading_text":
			sawText = true
			assert.Equal(t, "1:3", fields[0])
			assert.Equal(t, `"Foobar"`, fields[2])
		case "thematic_break":
			sawBreak = true
			assert.Equal(t, "2:1", fields[0])
		}
	}
	assert.True(t, sawText, got)
	assert.True(t, sawBreak, got)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, grammar.RuleFile, "# Foobar\n---\n")

	got := report(t, reporter.Options{Format: reporter.FormatJSON}, doc)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))

	assert.Equal(t, "1.0.0", out.Version)
	assert.Equal(t, "doc.md", out.Path)
	assert.Equal(t, "file", out.Rule)
	assert.Equal(t, "file", out.Root.Rule)
	assert.Equal(t, 0, out.Root.Start)
	assert.Equal(t, 13, out.Root.End)
	assert.Nil(t, out.Root.Text)
	require.Len(t, out.Root.Children, 2)

	brk := out.Root.Children[1]
	assert.Equal(t, "thematic_break", brk.Rule)
	assert.Equal(t, 2, brk.Line)
	assert.Equal(t, 1, brk.Column)
	require.NotNil(t, brk.Text)
	assert.Equal(t, "---\n", *brk.Text)

	text := out.Root.Children[0].Children[0].Children[0]
	assert.Equal(t, "heading_text", text.Rule)
	assert.Equal(t, 1, text.Line)
	assert.Equal(t, 3, text.Column)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, grammar.RuleHeading, "# a\n")

	got := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, doc)
	assert.Equal(t, 1, strings.Count(got, "\n"))
	assert.True(t, json.Valid([]byte(got)))
}

func TestHTMLReporter(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, grammar.RuleHeading, "# a\n")
	doc.HTML = "<h1>a</h1>"

	got := report(t, reporter.Options{Format: reporter.FormatHTML}, doc)
	assert.Equal(t, "<h1>a</h1>\n", got)

	doc.HTML = "<hr>\n"
	got = report(t, reporter.Options{Format: reporter.FormatHTML}, doc)
	assert.Equal(t, "<hr>\n", got)
}
