package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/parkdown/internal/ui/pretty"
	"github.com/yaklabco/parkdown/pkg/ptree"
)

// TreeReporter writes the indented rule outline of a document.
type TreeReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	return &TreeReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(ctx context.Context, doc *Document) (err error) {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}

	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := ptree.DescribeTo(r.bw, doc.Root, ptree.DescribeOptions{MaxText: r.opts.MaxText}); err != nil {
		return fmt.Errorf("describe: %w", err)
	}

	return nil
}

// TokensReporter writes the lossless segment listing of a document, one
// segment per line:
//
//	1:1  h1*           "# "
//	1:3  heading_text  "Foobar"
//
// Syntax segments are marked with a trailing asterisk on the rule name.
type TokensReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTokensReporter creates a new tokens reporter.
func NewTokensReporter(opts Options) *TokensReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TokensReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TokensReporter) Report(ctx context.Context, doc *Document) (err error) {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}

	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	file := doc.Root.Tree().File()
	segments := ptree.Segments(doc.Root)

	var locWidth, ruleWidth int
	locs := make([]string, len(segments))
	names := make([]string, len(segments))
	for i, seg := range segments {
		locs[i] = file.PositionAt(seg.Span.Start).String()
		names[i] = seg.Rule.String()
		if seg.Syntax {
			names[i] += "*"
		}
		locWidth = max(locWidth, len(locs[i]))
		ruleWidth = max(ruleWidth, len(names[i]))
	}

	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return err
		}

		text := r.styles.Text.Render(strconv.Quote(seg.Text))
		if seg.Syntax {
			text = r.styles.Syntax.Render(strconv.Quote(seg.Text))
		}

		if _, err := fmt.Fprintf(r.bw, "%s  %s  %s\n",
			r.styles.Location.Render(fmt.Sprintf("%-*s", locWidth, locs[i])),
			r.styles.RuleName.Render(fmt.Sprintf("%-*s", ruleWidth, names[i])),
			text,
		); err != nil {
			return fmt.Errorf("write token: %w", err)
		}
	}

	return nil
}
