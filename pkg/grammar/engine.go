package grammar

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultMaxDepth bounds rule nesting during a parse.
const DefaultMaxDepth = 512

// Kind controls how a rule appears in the event stream.
type Kind uint8

const (
	// KindNormal rules emit a node and report their own failures.
	KindNormal Kind = iota

	// KindSilent rules match but emit no node; their children attach to
	// the enclosing rule.
	KindSilent

	// KindAtomic rules emit a single leaf node. Inner rules emit nothing
	// and inner failures are reported as a failure of the rule itself.
	KindAtomic

	// KindCompound rules emit a node with children but report inner
	// failures as a failure of the rule itself.
	KindCompound
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindSilent:
		return "silent"
	case KindAtomic:
		return "atomic"
	case KindCompound:
		return "compound"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Definition binds an expression to a rule.
type Definition struct {
	Rule Rule
	Kind Kind
	Expr Expr
}

// Grammar is a complete set of rule definitions.
type Grammar struct {
	defs [ruleCount]*Definition
}

// New builds a grammar from definitions. Each rule may be defined once.
func New(defs ...Definition) (*Grammar, error) {
	g := &Grammar{}

	for idx := range defs {
		def := defs[idx]
		if !def.Rule.Valid() {
			return nil, fmt.Errorf("grammar: definition %d: %w: %d", idx, ErrUnknownRule, def.Rule)
		}

		if def.Expr == nil {
			return nil, fmt.Errorf("grammar: rule %s has no expression", def.Rule)
		}

		if g.defs[def.Rule] != nil {
			return nil, fmt.Errorf("grammar: rule %s defined twice", def.Rule)
		}

		g.defs[def.Rule] = &def
	}

	return g, nil
}

// Kind returns how rule is emitted, and false when the grammar does not
// define it.
func (g *Grammar) Kind(rule Rule) (Kind, bool) {
	if !rule.Valid() || g.defs[rule] == nil {
		return 0, false
	}

	return g.defs[rule].Kind, true
}

// Defines reports whether the grammar has a definition for rule.
func (g *Grammar) Defines(rule Rule) bool {
	_, ok := g.Kind(rule)
	return ok
}

// EventKind tells start events from end events.
type EventKind uint8

const (
	// EventStart opens a node at Pos.
	EventStart EventKind = iota

	// EventEnd closes the node opened by the event at Pair.
	EventEnd
)

// Event is one entry of the flat parse result.
type Event struct {
	Kind EventKind
	Rule Rule

	// Pos is the start offset for EventStart and the end offset for EventEnd.
	Pos int

	// Pair is the index of the matching event.
	Pair int
}

// Result is the outcome of a successful parse.
type Result struct {
	// Rule is the rule the parse started from.
	Rule Rule

	// Input is the parsed content. Event offsets index into it.
	Input string

	// End is the offset just past the matched prefix.
	End int

	// Events is balanced: every start has exactly one later end and pairs
	// nest properly.
	Events []Event
}

// Option configures a parse.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth bounds rule nesting. Values below 1 select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Parse runs rule against input using the Markdown grammar. The rule must
// match a prefix of input starting at offset zero; rules that need the
// whole input say so with EOI, as file does.
func Parse(rule Rule, input string, opts ...Option) (*Result, error) {
	return Markdown.Parse(rule, input, opts...)
}

// Parse runs rule against input.
func (g *Grammar) Parse(rule Rule, input string, opts ...Option) (*Result, error) {
	cfg := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.maxDepth < 1 {
		cfg.maxDepth = DefaultMaxDepth
	}

	if !g.Defines(rule) {
		return nil, fmt.Errorf("grammar: %w: %s", ErrUnknownRule, rule)
	}

	p := &parser{
		grammar:  g,
		input:    input,
		maxDepth: cfg.maxDepth,
		farthest: -1,
		failed:   make(map[attempt]struct{}),
		frames:   make(map[frame]*frame),
		closers:  make(map[string]int),
	}

	end, ok := p.call(rule, 0)

	if p.overflow {
		return nil, newGrammarError(rule, input, p.overflowAt, nil,
			fmt.Sprintf("rule nesting exceeds depth limit %d", cfg.maxDepth))
	}

	if !ok {
		offset := max(p.farthest, 0)
		return nil, newGrammarError(rule, input, offset, p.expectedLabels(), "")
	}

	return &Result{
		Rule:   rule,
		Input:  input,
		End:    end,
		Events: p.events,
	}, nil
}

type checkpoint struct {
	events int
	stack  *frame
}

type parser struct {
	grammar  *Grammar
	input    string
	events   []Event
	stack    *frame
	depth    int
	maxDepth int

	// quiet > 0 inside lookahead; atomic > 0 inside atomic or compound rules.
	quiet  int
	atomic int

	farthest int
	expected []string

	overflow   bool
	overflowAt int

	// failed holds rule attempts known to fail. Capture frames are interned
	// so equal stacks share a pointer and the key stays exact.
	failed  map[attempt]struct{}
	frames  map[frame]*frame
	closers map[string]int
}

// attempt identifies one rule call. The outcome of a rule depends only on
// these fields; reporting separates quiet attempts from ones that record
// expectations.
type attempt struct {
	rule      Rule
	pos       int
	stack     *frame
	reporting bool
}

func (p *parser) mark() checkpoint {
	return checkpoint{events: len(p.events), stack: p.stack}
}

func (p *parser) reset(c checkpoint) {
	p.events = p.events[:c.events]
	p.stack = c.stack
}

// expect records that label was wanted at pos. Only the farthest
// position is kept.
func (p *parser) expect(pos int, label string) {
	if p.quiet > 0 || p.atomic > 0 {
		return
	}

	switch {
	case pos > p.farthest:
		p.farthest = pos
		p.expected = append(p.expected[:0], label)
	case pos == p.farthest:
		p.expected = append(p.expected, label)
	}
}

func (p *parser) expectedLabels() []string {
	labels := slices.Clone(p.expected)
	slices.Sort(labels)

	return slices.Compact(labels)
}

// pushFrame returns the interned frame for text on top of the current stack.
func (p *parser) pushFrame(text string) *frame {
	key := frame{text: text, next: p.stack}
	if f, ok := p.frames[key]; ok {
		return f
	}

	f := &frame{text: text, next: p.stack}
	p.frames[key] = f

	return f
}

// lastIndex is strings.LastIndex over the input, cached per needle.
func (p *parser) lastIndex(needle string) int {
	if at, ok := p.closers[needle]; ok {
		return at
	}

	at := strings.LastIndex(p.input, needle)
	p.closers[needle] = at

	return at
}

func (p *parser) call(rule Rule, pos int) (int, bool) {
	if p.overflow {
		return pos, false
	}

	def := p.grammar.defs[rule]
	if def == nil {
		p.expect(pos, rule.String())
		return pos, false
	}

	key := attempt{rule: rule, pos: pos, stack: p.stack, reporting: p.quiet == 0 && p.atomic == 0}
	if _, seen := p.failed[key]; seen {
		if def.Kind != KindSilent && p.farthest <= pos {
			p.expect(pos, rule.String())
		}

		return pos, false
	}

	end, ok := p.apply(def, pos)
	if !ok && !p.overflow {
		p.failed[key] = struct{}{}
	}

	return end, ok
}

func (p *parser) apply(def *Definition, pos int) (int, bool) {
	rule := def.Rule

	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.maxDepth {
		p.overflow = true
		p.overflowAt = pos

		return pos, false
	}

	if def.Kind == KindSilent {
		return def.Expr.match(p, pos)
	}

	farBefore, expectedBefore := p.farthest, len(p.expected)
	open := len(p.events)
	p.events = append(p.events, Event{Kind: EventStart, Rule: rule, Pos: pos})

	if def.Kind != KindNormal {
		p.atomic++
	}

	end, ok := def.Expr.match(p, pos)

	if def.Kind != KindNormal {
		p.atomic--
	}

	if !ok {
		p.events = p.events[:open]

		// Nothing got past the rule's own start: report the rule by name
		// instead of the terminals it tried first.
		if p.farthest <= pos {
			if farBefore == pos {
				p.expected = p.expected[:expectedBefore]
			} else if p.farthest == pos {
				p.expected = p.expected[:0]
			}

			p.expect(pos, rule.String())
		}

		return pos, false
	}

	if def.Kind == KindAtomic {
		p.events = p.events[:open+1]
	}

	p.events[open].Pair = len(p.events)
	p.events = append(p.events, Event{Kind: EventEnd, Rule: rule, Pos: end, Pair: open})

	return end, true
}
