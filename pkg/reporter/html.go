package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// HTMLReporter writes the rendered HTML of a document.
type HTMLReporter struct {
	bw *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		bw: bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The document must already be transformed.
func (r *HTMLReporter) Report(ctx context.Context, doc *Document) (err error) {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}

	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if _, err := io.WriteString(r.bw, doc.HTML); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	if doc.HTML != "" && !strings.HasSuffix(doc.HTML, "\n") {
		if err := r.bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write HTML: %w", err)
		}
	}

	return nil
}
