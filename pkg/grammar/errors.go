package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/parkdown/pkg/source"
)

var (
	// ErrNoMatch is wrapped by every GrammarError.
	ErrNoMatch = errors.New("input does not match grammar")

	// ErrUnknownRule is returned for rule names or values the grammar
	// does not define.
	ErrUnknownRule = errors.New("unknown rule")
)

// GrammarError describes where and why a parse failed.
type GrammarError struct {
	// Rule is the rule the parse started from.
	Rule Rule

	// Offset is the farthest byte offset any alternative reached.
	Offset int

	// Position is Offset as a 1-based line and column.
	Position source.Position

	// Expected lists what would have allowed the parse to continue at
	// Offset, sorted and de-duplicated.
	Expected []string

	// Reason is set for failures that are not a plain mismatch, such as
	// exceeding the depth limit.
	Reason string
}

func newGrammarError(rule Rule, input string, offset int, expected []string, reason string) *GrammarError {
	file := source.NewFile("", input)

	return &GrammarError{
		Rule:     rule,
		Offset:   offset,
		Position: file.PositionAt(offset),
		Expected: expected,
		Reason:   reason,
	}
}

func (e *GrammarError) Error() string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "parse %s failed at %s", e.Rule, e.Position)

	switch {
	case e.Reason != "":
		msg.WriteString(": ")
		msg.WriteString(e.Reason)
	case len(e.Expected) > 0:
		msg.WriteString(": expected ")
		msg.WriteString(e.ExpectedString())
	}

	return msg.String()
}

// ExpectedString joins the expected set for display.
func (e *GrammarError) ExpectedString() string {
	switch len(e.Expected) {
	case 0:
		return ""
	case 1:
		return e.Expected[0]
	default:
		return strings.Join(e.Expected[:len(e.Expected)-1], ", ") + " or " + e.Expected[len(e.Expected)-1]
	}
}

func (e *GrammarError) Unwrap() error {
	return ErrNoMatch
}
