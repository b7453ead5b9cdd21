// Package source holds the byte-level view of parsed input: spans over the
// content and the line table used to turn offsets into positions.
package source

import "fmt"

// Span is a half-open byte range [Start, End) into the parsed content.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Encloses reports whether other lies entirely within s.
func (s Span) Encloses(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Slice returns the bytes of content covered by the span.
// Out-of-range spans are clamped to the content.
func (s Span) Slice(content string) string {
	start := min(max(s.Start, 0), len(content))
	end := min(max(s.End, start), len(content))

	return content[start:end]
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether the position carries positive coordinates.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
