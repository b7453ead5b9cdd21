package grammar_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/parkdown/pkg/grammar"
)

// shape renders the event stream as nested rule names, leaves bare:
// "h1(heading_text)".
func shape(res *grammar.Result) string {
	var out strings.Builder

	for idx, event := range res.Events {
		switch event.Kind {
		case grammar.EventStart:
			if idx > 0 && res.Events[idx-1].Kind == grammar.EventEnd {
				out.WriteString(" ")
			}

			out.WriteString(event.Rule.String())

			if event.Pair != idx+1 {
				out.WriteString("(")
			}
		case grammar.EventEnd:
			if event.Pair != idx-1 {
				out.WriteString(")")
			}
		}
	}

	return out.String()
}

// checkBalanced fails the test when events are not properly paired and
// nested, or when child spans escape their parent.
func checkBalanced(t *testing.T, res *grammar.Result) {
	t.Helper()

	var stack []int

	for idx, event := range res.Events {
		switch event.Kind {
		case grammar.EventStart:
			if len(stack) > 0 {
				parent := res.Events[stack[len(stack)-1]]
				if event.Pos < parent.Pos {
					t.Fatalf("event %d starts before its parent", idx)
				}
			}

			stack = append(stack, idx)
		case grammar.EventEnd:
			if len(stack) == 0 {
				t.Fatalf("event %d closes nothing", idx)
			}

			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if event.Pair != open || res.Events[open].Pair != idx {
				t.Fatalf("event %d pairs with %d, want %d", idx, event.Pair, open)
			}

			if event.Rule != res.Events[open].Rule {
				t.Fatalf("event %d closes %s but %s is open", idx, event.Rule, res.Events[open].Rule)
			}

			if event.Pos < res.Events[open].Pos {
				t.Fatalf("event %d ends before it starts", idx)
			}
		}
	}

	if len(stack) != 0 {
		t.Fatalf("%d events left open", len(stack))
	}
}
