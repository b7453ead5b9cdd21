package ptree

import (
	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/source"
)

// Segment is one piece of the lossless view of a node.
type Segment struct {
	// Rule is the leaf rule, or for syntax segments the innermost rule
	// whose own syntax the bytes are.
	Rule grammar.Rule

	Span source.Span
	Text string

	// Syntax is true for bytes matched by the rule itself rather than by
	// any child, such as tag brackets, fence markers and newlines.
	Syntax bool
}

// Segments splits n into leaves and syntax gaps. The segments are
// contiguous, cover n's span and concatenate to n.Text().
// Zero-width leaves are omitted.
func Segments(n Node) []Segment {
	if n.IsZero() {
		return nil
	}

	seg := segmenter{file: n.tree.file}
	seg.visit(n)

	return seg.out
}

type segmenter struct {
	file *source.File
	out  []Segment
}

func (s *segmenter) visit(n Node) {
	span := n.Span()

	if n.IsLeaf() {
		s.emit(n.Rule(), span, false)
		return
	}

	cur := span.Start

	for _, child := range n.Children() {
		s.emit(n.Rule(), source.Span{Start: cur, End: child.Span().Start}, true)
		s.visit(child)
		cur = child.Span().End
	}

	s.emit(n.Rule(), source.Span{Start: cur, End: span.End}, true)
}

func (s *segmenter) emit(rule grammar.Rule, span source.Span, syntax bool) {
	if span.IsEmpty() {
		return
	}

	s.out = append(s.out, Segment{
		Rule:   rule,
		Span:   span,
		Text:   s.file.Text(span),
		Syntax: syntax,
	})
}

// ValidateSegments reports whether segs are contiguous and exactly cover
// span.
func ValidateSegments(segs []Segment, span source.Span) bool {
	if len(segs) == 0 {
		return span.IsEmpty()
	}

	if segs[0].Span.Start != span.Start || segs[len(segs)-1].Span.End != span.End {
		return false
	}

	for idx := 1; idx < len(segs); idx++ {
		if segs[idx].Span.Start != segs[idx-1].Span.End {
			return false
		}
	}

	return true
}
