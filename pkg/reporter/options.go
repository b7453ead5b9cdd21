package reporter

import (
	"io"
	"os"
)

// Output is buffered in chunks of this size.
const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	// Writer receives the report. Nil means os.Stdout.
	Writer io.Writer

	// Format selects the output. Empty means FormatTree.
	Format Format

	// Color is "auto", "always" or "never" and styles the tokens format.
	Color string

	// Compact disables JSON indentation.
	Compact bool

	// MaxText truncates leaf text in tree output. Zero means no limit.
	MaxText int
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	if o.Writer == nil {
		o.Writer = os.Stdout
	}
	if o.Format == "" {
		o.Format = FormatTree
	}
	if o.Color == "" {
		o.Color = "auto"
	}
	return o
}
