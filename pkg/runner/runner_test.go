package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/parkdown/pkg/grammar"
)

func TestRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.md":     "# Alpha\n",
		"b.md":     "plain text\n",
		"sub/c.md": "# Gamma\n---\n",
	})

	result, err := Run(context.Background(), Options{WorkingDir: root, Jobs: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesParsed)
	assert.Zero(t, result.Stats.FilesFailed)
	assert.Positive(t, result.Stats.Nodes)
	assert.False(t, result.HasFailures())

	require.Len(t, result.Files, 3)
	assert.Equal(t, []string{"a.md", "b.md", "sub/c.md"}, relPaths(t, root, []string{
		result.Files[0].Path, result.Files[1].Path, result.Files[2].Path,
	}))
	assert.Equal(t, "# Alpha\n", result.Files[0].Content)
}

func TestRun_GrammarFailures(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"good.md": "# Title\n",
		"bad.md":  "no heading here\n",
	})

	result, err := Run(context.Background(), Options{
		WorkingDir: root,
		Rule:       grammar.RuleH1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesParsed)
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.Zero(t, result.Stats.FilesErrored)
	assert.True(t, result.HasFailures())

	bad := result.Files[0]
	assert.Equal(t, "bad.md", filepath.Base(bad.Path))
	gerr, ok := bad.GrammarError()
	require.True(t, ok)
	assert.Equal(t, grammar.RuleH1, gerr.Rule)
	assert.Equal(t, "no heading here\n", bad.Content)

	_, ok = result.Files[1].GrammarError()
	assert.False(t, ok)
}

func TestRun_UnreadableFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"ok.md": "ok\n"})
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin.md"), []byte{0xff, 0xfe, 0x00}, 0o644))

	result, err := Run(context.Background(), Options{WorkingDir: root})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesParsed)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasFailures())
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	result, err := Run(context.Background(), Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasFailures())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.md": "a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestHasFailures_Nil(t *testing.T) {
	t.Parallel()

	var r *Result
	assert.False(t, r.HasFailures())
}
