package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/parkdown/pkg/ptree"
)

// jsonVersion is bumped when the JSON shape changes.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string   `json:"version"`
	Path    string   `json:"path,omitempty"`
	Rule    string   `json:"rule"`
	Root    JSONNode `json:"root"`
}

// JSONNode is one parse-tree node. Text is set on leaves only.
type JSONNode struct {
	Rule     string     `json:"rule"`
	Start    int        `json:"start"`
	End      int        `json:"end"`
	Line     int        `json:"line"`
	Column   int        `json:"column"`
	Text     *string    `json:"text,omitempty"`
	Children []JSONNode `json:"children,omitempty"`
}

// JSONReporter formats documents as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, doc *Document) (err error) {
	if err := checkDocument(ctx, doc); err != nil {
		return err
	}

	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := &JSONOutput{
		Version: jsonVersion,
		Path:    doc.Path,
		Rule:    doc.Root.Tree().Rule().String(),
		Root:    BuildJSONNode(doc.Root),
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

// BuildJSONNode converts n and its subtree.
func BuildJSONNode(n ptree.Node) JSONNode {
	span := n.Span()
	pos := n.Position()

	out := JSONNode{
		Rule:   n.Name(),
		Start:  span.Start,
		End:    span.End,
		Line:   pos.Line,
		Column: pos.Column,
	}

	if n.IsLeaf() {
		text := n.Text()
		out.Text = &text
		return out
	}

	children := n.Children()
	out.Children = make([]JSONNode, 0, len(children))
	for _, child := range children {
		out.Children = append(out.Children, BuildJSONNode(child))
	}

	return out
}
