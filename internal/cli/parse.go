package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/parkdown/internal/configloader"
	"github.com/yaklabco/parkdown/internal/logging"
	"github.com/yaklabco/parkdown/internal/ui/pretty"
	"github.com/yaklabco/parkdown/pkg/config"
	"github.com/yaklabco/parkdown/pkg/fsutil"
	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/pipeline"
	"github.com/yaklabco/parkdown/pkg/render"
	"github.com/yaklabco/parkdown/pkg/reporter"
	"github.com/yaklabco/parkdown/pkg/source"
)

type parseFlags struct {
	transform  bool
	rule       string
	format     string
	output     string
	maxText    int
	maxDepth   int
	flavor     string
	safe       bool
	detectLang bool
	compact    bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Parse a Markdown file and print its parse tree",
		Long:  parseLongDescription,
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse a Markdown file with the parkdown grammar.

With no FILE, or when FILE is "-", the input is read from stdin. By
default the parse tree is printed as an indented outline; use --format to
choose another view or --transform to render HTML.

Examples:
  parkdown parse README.md                 # Outline of the parse tree
  parkdown parse -f tokens README.md       # Lossless token listing
  parkdown parse -f json README.md         # Tree as JSON
  parkdown parse -t -o out.html README.md  # Render to a file
  echo '# Hi' | parkdown parse -r heading  # Parse stdin as one rule`

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().BoolVarP(&flags.transform, "transform", "t", false, "render the document to HTML")
	cmd.Flags().StringVarP(&flags.rule, "rule", "r", config.DefaultRule, "grammar rule to parse the input as")
	cmd.Flags().StringVarP(&flags.format, "format", "f", config.DefaultFormat, "output format: "+formatList())
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().IntVar(&flags.maxText, "max-text", 0, "truncate leaf text in tree output (0 = no limit)")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", grammar.DefaultMaxDepth, "maximum grammar rule nesting")
	cmd.Flags().StringVar(&flags.flavor, "flavor", config.DefaultFlavor, "Markdown flavor for text blocks: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.safe, "safe", false, "escape HTML tags instead of passing them through")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "guess the language of fences that name none")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
}

// overrides collects the flags the user actually set.
func (f *parseFlags) overrides(cmd *cobra.Command) *configloader.Overrides {
	changed := cmd.Flags().Changed
	o := &configloader.Overrides{}

	if changed("rule") {
		o.Rule = &f.rule
	}
	if changed("format") {
		o.Format = &f.format
	}
	if changed("transform") {
		o.Transform = &f.transform
	}
	if changed("max-depth") {
		o.MaxDepth = &f.maxDepth
	}
	if changed("flavor") {
		o.Flavor = &f.flavor
	}
	if changed("safe") {
		unsafe := !f.safe
		o.Unsafe = &unsafe
	}
	if changed("detect-lang") {
		o.DetectLanguage = &f.detectLang
	}
	if changed("max-text") {
		o.MaxText = &f.maxText
	}
	if changed("output") {
		o.Output = &f.output
	}
	if changed("color") {
		color, _ := cmd.Flags().GetString("color")
		o.Color = &color
	}

	return o
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
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

	format, err := reporter.ParseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if cfg.Transform && format != reporter.FormatHTML {
		if format != reporter.FormatTree {
			logger.Warn("transform writes HTML; ignoring format", logging.FieldFormat, format)
		}
		format = reporter.FormatHTML
	}

	opts := []pipeline.Option{pipeline.WithRule(rule), pipeline.WithMaxDepth(cfg.MaxDepth)}

	pipe, err := openInput(ctx, cmd, args, opts)
	if err != nil {
		return err
	}

	target := cfg.Output
	if target == "" {
		target = "stdout"
	}
	logger.Debug(fmt.Sprintf("Parsing %s [%d chars, to %s]",
		displayName(pipe.Path()), utf8.RuneCountInString(pipe.Content()), target))

	if err := pipe.Parse(ctx); err != nil {
		return reportParseError(cmd, cfg, pipe, err)
	}

	doc := &reporter.Document{Path: pipe.Path()}
	if doc.Root, err = pipe.Root(); err != nil {
		return err
	}

	if format == reporter.FormatHTML {
		html, err := transform(ctx, pipe, cfg)
		if err != nil {
			return err
		}
		doc.HTML = html
	}

	return writeReport(ctx, cmd, cfg, reporter.Options{Format: format, Compact: flags.compact}, doc)
}

func loadConfig(ctx context.Context, cmd *cobra.Command, overrides *configloader.Overrides) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger := logging.FromContext(ctx)
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	return result.Config, nil
}

// openInput reads FILE, or stdin when no file is given and stdin is not a
// terminal.
func openInput(ctx context.Context, cmd *cobra.Command, args []string, opts []pipeline.Option) (*pipeline.Pipeline, error) {
	if len(args) == 1 && args[0] != "-" {
		return pipeline.FromFile(ctx, args[0], opts...)
	}

	stdin := cmd.InOrStdin()
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("%w: no input file given and stdin is a terminal", ErrUsage)
	}

	content, err := fsutil.ReadAll(ctx, stdin)
	if err != nil {
		return nil, err
	}

	return pipeline.New(content, opts...), nil
}

func transform(ctx context.Context, pipe *pipeline.Pipeline, cfg *config.Config) (string, error) {
	flavor, err := render.ParseFlavor(cfg.HTML.Flavor)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	renderer := render.New(render.Options{
		Flavor:         flavor,
		Unsafe:         cfg.HTML.Unsafe,
		DetectLanguage: cfg.HTML.DetectLanguage,
	})

	if err := pipe.Transform(ctx, renderer); err != nil {
		return "", err
	}

	return pipe.Output()
}

// reportParseError prints a grammar failure with its source line and
// returns ErrParseFailed. Nothing is written to the output.
func reportParseError(cmd *cobra.Command, cfg *config.Config, pipe *pipeline.Pipeline, err error) error {
	var gerr *grammar.GrammarError
	if !errors.As(err, &gerr) {
		logging.Default().Error("parse failed", logging.FieldPath, pipe.Path(), logging.FieldError, err)
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	stderr := cmd.ErrOrStderr()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, stderr))
	line := source.NewFile(pipe.Path(), pipe.Content()).LineContent(gerr.Position.Line)

	if _, werr := io.WriteString(stderr, styles.FormatGrammarError(pipe.Path(), gerr, line)); werr != nil {
		return fmt.Errorf("write error report: %w", werr)
	}

	return fmt.Errorf("%w: %w", ErrParseFailed, err)
}

// writeReport formats doc and writes it to stdout or, atomically, to the
// output file.
func writeReport(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	opts reporter.Options,
	doc *reporter.Document,
) error {
	var buf bytes.Buffer

	opts.Writer = cmd.OutOrStdout()
	if cfg.Output != "" {
		opts.Writer = &buf
	}
	opts.Color = cfg.Color
	opts.MaxText = cfg.Describe.MaxText

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(ctx, doc); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if cfg.Output == "" {
		return nil
	}

	changed, err := fsutil.WriteIfChanged(ctx, cfg.Output, buf.Bytes(), fsutil.DefaultFileMode)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("wrote output",
		logging.FieldOutput, cfg.Output,
		logging.FieldBytes, buf.Len(),
		logging.FieldChanged, changed)

	return nil
}

func formatList() string {
	names := make([]string, 0, len(reporter.Formats()))
	for _, format := range reporter.Formats() {
		names = append(names, format.String())
	}
	return strings.Join(names, ", ")
}

func displayName(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
