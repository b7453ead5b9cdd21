package source

import (
	"sort"
	"strings"
)

// LineInfo describes one line of the content.
type LineInfo struct {
	// StartOffset is the byte index of the first byte on the line.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins,
	// or the end of content for an unterminated last line.
	NewlineStart int

	// EndOffset is the byte index just past the terminator.
	EndOffset int
}

// File is parsed content together with its line table.
type File struct {
	// Path is where the content came from. Empty for in-memory input.
	Path string

	// Content is the full input. Spans index into it.
	Content string

	// Lines holds one entry per line, LF and CRLF terminated alike.
	Lines []LineInfo
}

// NewFile builds a File and its line table.
func NewFile(path, content string) *File {
	return &File{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata for content.
func BuildLines(content string) []LineInfo {
	if content == "" {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, strings.Count(content, "\n")+1)
	lineStart := 0

	for idx := range len(content) {
		if content[idx] != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// PositionAt converts a byte offset into a 1-based position.
// Offsets at or past the end map onto the last line.
// A negative offset yields the zero Position.
func (f *File) PositionAt(offset int) Position {
	if offset < 0 {
		return Position{}
	}

	if len(f.Lines) == 0 {
		return Position{Line: 1, Column: 1}
	}

	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return Position{Line: len(f.Lines), Column: offset - last.StartOffset + 1}
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}

	return Position{Line: idx + 1, Column: offset - f.Lines[idx].StartOffset + 1}
}

// LineContent returns a 1-based line without its terminator.
// Out-of-range lines return the empty string.
func (f *File) LineContent(line int) string {
	if line < 1 || line > len(f.Lines) {
		return ""
	}

	info := f.Lines[line-1]

	return f.Content[info.StartOffset:info.NewlineStart]
}

// Text returns the content covered by span.
func (f *File) Text(span Span) string {
	return span.Slice(f.Content)
}
