// Package reporter writes a parsed document in one of several output formats.
package reporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/parkdown/pkg/ptree"
)

// ErrNoDocument is returned when Report is called without a parsed root.
var ErrNoDocument = errors.New("no document to report")

// Document is the input to a Reporter.
type Document struct {
	// Path is the source file path; empty for stdin.
	Path string

	// Root is the parsed root node.
	Root ptree.Node

	// HTML holds the rendered output. Only the html format reads it.
	HTML string
}

// Reporter writes a document to its configured writer.
type Reporter interface {
	Report(ctx context.Context, doc *Document) error
}

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	opts = opts.withDefaults()

	switch opts.Format {
	case FormatTree:
		return NewTreeReporter(opts), nil
	case FormatTokens:
		return NewTokensReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func checkDocument(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil || doc.Root.IsZero() {
		return ErrNoDocument
	}
	return nil
}
