package ptree

import (
	"io"
	"strconv"
	"strings"
)

// DescribeOptions tunes Describe output.
type DescribeOptions struct {
	// Indent is repeated once per depth level. Defaults to two spaces.
	Indent string

	// MaxText truncates leaf text to this many bytes. Zero means no limit.
	MaxText int
}

// Describe renders n as an indented outline. A chain of nodes that each have
// exactly one child collapses onto one line joined by " > ". Leaves show
// their text quoted:
//
//	file
//	  heading > h1 > heading_text ["Foobar"]
//	  thematic_break ["---\n"]
func Describe(n Node) string {
	var out strings.Builder

	//nolint:errcheck // strings.Builder does not fail
	DescribeTo(&out, n, DescribeOptions{})

	return out.String()
}

// DescribeTo writes the outline of n to w.
func DescribeTo(w io.Writer, n Node, opts DescribeOptions) error {
	if n.IsZero() {
		return nil
	}

	if opts.Indent == "" {
		opts.Indent = "  "
	}

	d := describer{w: w, opts: opts}
	d.node(n, 0)

	return d.err
}

type describer struct {
	w    io.Writer
	opts DescribeOptions
	line strings.Builder
	err  error
}

func (d *describer) node(n Node, depth int) {
	d.line.Reset()

	for range depth {
		d.line.WriteString(d.opts.Indent)
	}

	// Follow the single-child chain.
	d.line.WriteString(n.Name())

	for n.ChildCount() == 1 {
		n, _ = n.Child(0)

		d.line.WriteString(" > ")
		d.line.WriteString(n.Name())
	}

	if n.IsLeaf() {
		d.line.WriteString(" [")
		d.line.WriteString(strconv.Quote(d.truncate(n.Text())))
		d.line.WriteString("]")
	}

	d.line.WriteString("\n")
	d.write(d.line.String())

	for _, child := range n.Children() {
		d.node(child, depth+1)
	}
}

func (d *describer) truncate(text string) string {
	if d.opts.MaxText <= 0 || len(text) <= d.opts.MaxText {
		return text
	}

	cut := d.opts.MaxText
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + "…"
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func (d *describer) write(s string) {
	if d.err != nil {
		return
	}

	_, d.err = io.WriteString(d.w, s)
}
