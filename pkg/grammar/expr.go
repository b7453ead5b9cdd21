package grammar

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr is a parsing expression. Expressions are built with the
// constructors in this file and bound to rules through a Grammar.
type Expr interface {
	// match tries the expression at pos and returns the end offset.
	// A failed match leaves the parser state as it found it.
	match(p *parser, pos int) (int, bool)
}

type literal struct {
	text  string
	label string
}

// Lit matches text exactly.
func Lit(text string) Expr {
	return literal{text: text, label: strconv.Quote(text)}
}

func (e literal) match(p *parser, pos int) (int, bool) {
	if strings.HasPrefix(p.input[pos:], e.text) {
		return pos + len(e.text), true
	}

	p.expect(pos, e.label)

	return pos, false
}

type class struct {
	label string
	test  func(b byte) bool
}

// Class matches one byte accepted by test. The label names the class in
// error messages.
func Class(label string, test func(b byte) bool) Expr {
	return class{label: label, test: test}
}

// Set matches any one byte of chars.
func Set(chars string) Expr {
	return class{
		label: "one of " + strconv.Quote(chars),
		test:  func(b byte) bool { return strings.IndexByte(chars, b) >= 0 },
	}
}

// Range matches one byte in [lo, hi].
func Range(lo, hi byte) Expr {
	return class{
		label: strconv.QuoteRune(rune(lo)) + ".." + strconv.QuoteRune(rune(hi)),
		test:  func(b byte) bool { return b >= lo && b <= hi },
	}
}

func (e class) match(p *parser, pos int) (int, bool) {
	if pos < len(p.input) && e.test(p.input[pos]) {
		return pos + 1, true
	}

	p.expect(pos, e.label)

	return pos, false
}

type anyChar struct{}

// Any matches a single UTF-8 encoded character.
func Any() Expr { return anyChar{} }

func (anyChar) match(p *parser, pos int) (int, bool) {
	if pos >= len(p.input) {
		p.expect(pos, "any character")
		return pos, false
	}

	_, size := utf8.DecodeRuneInString(p.input[pos:])

	return pos + size, true
}

type startOfInput struct{}

// SOI matches only at offset zero.
func SOI() Expr { return startOfInput{} }

func (startOfInput) match(p *parser, pos int) (int, bool) {
	if pos == 0 {
		return pos, true
	}

	p.expect(pos, "start of input")

	return pos, false
}

type endOfInput struct{}

// EOI matches only at the end of the input.
func EOI() Expr { return endOfInput{} }

func (endOfInput) match(p *parser, pos int) (int, bool) {
	if pos == len(p.input) {
		return pos, true
	}

	p.expect(pos, "end of input")

	return pos, false
}

type sequence []Expr

// Seq matches each expression in order.
func Seq(items ...Expr) Expr { return sequence(items) }

func (e sequence) match(p *parser, pos int) (int, bool) {
	saved := p.mark()
	cur := pos

	for _, item := range e {
		next, ok := item.match(p, cur)
		if !ok {
			p.reset(saved)
			return pos, false
		}

		cur = next
	}

	return cur, true
}

type choice []Expr

// Choice tries each alternative in order and commits to the first match.
func Choice(alts ...Expr) Expr { return choice(alts) }

func (e choice) match(p *parser, pos int) (int, bool) {
	saved := p.mark()

	for _, alt := range e {
		if next, ok := alt.match(p, pos); ok {
			return next, true
		}

		p.reset(saved)
	}

	return pos, false
}

type repeat struct {
	expr Expr
	min  int
	max  int
}

// Repeat matches expr between minCount and maxCount times. A negative
// maxCount means unbounded. Iteration stops early on a zero-width match.
func Repeat(expr Expr, minCount, maxCount int) Expr {
	return repeat{expr: expr, min: minCount, max: maxCount}
}

// Opt matches expr zero or one time.
func Opt(expr Expr) Expr { return repeat{expr: expr, min: 0, max: 1} }

// Star matches expr zero or more times.
func Star(expr Expr) Expr { return repeat{expr: expr, min: 0, max: -1} }

// Plus matches expr one or more times.
func Plus(expr Expr) Expr { return repeat{expr: expr, min: 1, max: -1} }

func (e repeat) match(p *parser, pos int) (int, bool) {
	start := p.mark()
	cur := pos
	count := 0

	for e.max < 0 || count < e.max {
		saved := p.mark()

		next, ok := e.expr.match(p, cur)
		if !ok {
			p.reset(saved)
			break
		}

		count++

		if next == cur {
			break
		}

		cur = next
	}

	if count < e.min {
		p.reset(start)
		return pos, false
	}

	return cur, true
}

type lookahead struct {
	expr   Expr
	negate bool
}

// Not succeeds without consuming input when expr does not match here.
// Failures inside the lookahead are not reported.
func Not(expr Expr) Expr { return lookahead{expr: expr, negate: true} }

// And succeeds without consuming input when expr matches here.
func And(expr Expr) Expr { return lookahead{expr: expr} }

func (e lookahead) match(p *parser, pos int) (int, bool) {
	saved := p.mark()

	p.quiet++
	_, ok := e.expr.match(p, pos)
	p.quiet--

	p.reset(saved)

	return pos, ok != e.negate
}

type ref Rule

// Ref calls another rule of the grammar.
func Ref(rule Rule) Expr { return ref(rule) }

func (e ref) match(p *parser, pos int) (int, bool) {
	return p.call(Rule(e), pos)
}

type push struct{ expr Expr }

// Push matches expr and pushes the matched text onto the capture stack.
func Push(expr Expr) Expr { return push{expr: expr} }

func (e push) match(p *parser, pos int) (int, bool) {
	next, ok := e.expr.match(p, pos)
	if !ok {
		return pos, false
	}

	p.stack = p.pushFrame(p.input[pos:next])

	return next, true
}

type peek struct{ pop bool }

// Peek matches the text on top of the capture stack.
func Peek() Expr { return peek{} }

// Pop matches the text on top of the capture stack and removes it.
func Pop() Expr { return peek{pop: true} }

func (e peek) match(p *parser, pos int) (int, bool) {
	top := p.stack
	if top == nil {
		p.expect(pos, "captured text")
		return pos, false
	}

	if !strings.HasPrefix(p.input[pos:], top.text) {
		p.expect(pos, strconv.Quote(top.text))
		return pos, false
	}

	if e.pop {
		p.stack = top.next
	}

	return pos + len(top.text), true
}

type ahead struct{ prefix string }

// Ahead succeeds without consuming input when prefix followed by the text
// on top of the capture stack occurs anywhere at or after pos.
func Ahead(prefix string) Expr { return ahead{prefix: prefix} }

func (e ahead) match(p *parser, pos int) (int, bool) {
	top := p.stack
	if top == nil {
		p.expect(pos, "captured text")
		return pos, false
	}

	needle := e.prefix + top.text
	if p.lastIndex(needle) >= pos {
		return pos, true
	}

	p.expect(pos, strconv.Quote(needle))

	return pos, false
}

// frame is one entry of the immutable capture stack. Sharing tails makes
// saving and restoring the stack a pointer copy.
type frame struct {
	text string
	next *frame
}
