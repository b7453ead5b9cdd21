package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parkdown/internal/configloader"
	"github.com/yaklabco/parkdown/internal/logging"
	"github.com/yaklabco/parkdown/internal/ui/pretty"
	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/runner"
	"github.com/yaklabco/parkdown/pkg/source"
)

type checkFlags struct {
	rule           string
	maxDepth       int
	exclude        []string
	extensions     []string
	jobs           int
	followSymlinks bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [PATH...]",
		Short: "Check that Markdown files parse",
		Long: `Parse every Markdown file under the given paths and report grammar failures.

Directories are searched recursively; hidden entries are skipped. With no
PATH the current directory is checked. The exit status is 1 when any file
fails to parse.

Examples:
  parkdown check                          # Every .md file below here
  parkdown check docs README.md           # Specific paths
  parkdown check --exclude 'vendor/**'    # Skip a tree
  parkdown check -r heading notes/        # Each file must start with a heading`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.rule, "rule", "r", "", "grammar rule each file must match (default from config)")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", grammar.DefaultMaxDepth, "maximum grammar rule nesting")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", runner.DefaultExtensions(), "file extensions to check")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "parallel workers (0 = number of CPUs)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")

	return cmd
}

func (f *checkFlags) overrides(cmd *cobra.Command) *configloader.Overrides {
	o := &configloader.Overrides{}

	if cmd.Flags().Changed("rule") {
		o.Rule = &f.rule
	}
	if cmd.Flags().Changed("max-depth") {
		o.MaxDepth = &f.maxDepth
	}
	if cmd.Flags().Changed("color") {
		color, _ := cmd.Flags().GetString("color")
		o.Color = &color
	}

	return o
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	cfg, err := loadConfig(ctx, cmd, flags.overrides(cmd))
	if err != nil {
		return err
	}

	rule, err := grammar.ParseRule(cfg.Rule)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	result, err := runner.Run(ctx, runner.Options{
		Paths:          args,
		Extensions:     flags.extensions,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
		Rule:           rule,
		MaxDepth:       cfg.MaxDepth,
	})
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	errStyles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, stderr))

	for _, outcome := range result.Files {
		if outcome.Error == nil {
			continue
		}

		gerr, ok := outcome.GrammarError()
		if !ok {
			logger.Error("check failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			continue
		}

		line := source.NewFile(outcome.Path, outcome.Content).LineContent(gerr.Position.Line)
		if _, werr := io.WriteString(stderr, errStyles.FormatGrammarError(outcome.Path, gerr, line)); werr != nil {
			return fmt.Errorf("write error report: %w", werr)
		}
	}

	stdout := cmd.OutOrStdout()
	if err := writeCheckSummary(stdout, pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, stdout)), result.Stats); err != nil {
		return err
	}

	if result.HasFailures() {
		return fmt.Errorf("%w: %d of %d files", ErrParseFailed,
			result.Stats.FilesFailed+result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}

	return nil
}

func writeCheckSummary(w io.Writer, styles *pretty.Styles, stats runner.Stats) error {
	var summary string

	switch {
	case stats.FilesDiscovered == 0:
		summary = styles.Dim.Render("No Markdown files found")
	case stats.FilesFailed+stats.FilesErrored == 0:
		summary = fmt.Sprintf("%s %s",
			styles.Bold.Render(plural(stats.FilesParsed, "file")),
			styles.Dim.Render(fmt.Sprintf("parsed (%d nodes)", stats.Nodes)))
	default:
		summary = fmt.Sprintf("%s %s",
			styles.Error.Render(fmt.Sprintf("%d of %s", stats.FilesFailed+stats.FilesErrored,
				plural(stats.FilesDiscovered, "file"))),
			styles.Dim.Render("failed"))
	}

	if _, err := fmt.Fprintln(w, summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
