package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/parkdown/pkg/grammar"
)

const sourceIndent = "    "

// FormatGrammarError renders a failed parse as
//
//	path:line:col: error: parse <rule> failed: expected a, b or c
//	    <source line>
//	    ^
//
// sourceLine is the text of the failing line without its newline; when
// empty, the source context is omitted.
func (s *Styles) FormatGrammarError(path string, gerr *grammar.GrammarError, sourceLine string) string {
	var builder strings.Builder

	if path == "" {
		path = "<stdin>"
	}
	builder.WriteString(s.FilePath.Render(path))
	if gerr.Position.IsValid() {
		builder.WriteString(s.Location.Render(fmt.Sprintf(":%d:%d", gerr.Position.Line, gerr.Position.Column)))
	}
	builder.WriteString(": ")
	builder.WriteString(s.Error.Render("error"))
	builder.WriteString(": ")
	builder.WriteString(s.Message.Render("parse "))
	builder.WriteString(s.RuleName.Render(gerr.Rule.String()))
	builder.WriteString(s.Message.Render(" failed"))

	switch {
	case gerr.Reason != "":
		builder.WriteString(s.Message.Render(": " + gerr.Reason))
	case len(gerr.Expected) > 0:
		builder.WriteString(s.Message.Render(": expected "))
		builder.WriteString(s.Expected.Render(gerr.ExpectedString()))
	}
	builder.WriteString("\n")

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, gerr.Position.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker under the
// given 1-based byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		// Columns count bytes; pad by runes so the caret lines up.
		prefix := line
		if column-1 < len(line) {
			prefix = line[:column-1]
		}
		pad := strings.Map(func(r rune) rune {
			if r == '\t' {
				return '\t'
			}
			return ' '
		}, prefix)
		if column-1 > len(line) {
			pad += strings.Repeat(" ", column-1-len(line))
		}
		builder.WriteString(sourceIndent + pad + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}
