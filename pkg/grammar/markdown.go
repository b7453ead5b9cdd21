package grammar

import "strings"

// Markdown is the parkdown grammar.
var Markdown = mustNew(markdownRules()...)

func mustNew(defs ...Definition) *Grammar {
	g, err := New(defs...)
	if err != nil {
		panic(err)
	}

	return g
}

func isAlpha(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }

// Unnamed building blocks. They never show up as nodes.
var (
	ws        = Set(" \t")
	nl        = Choice(Lit("\r\n"), Lit("\n"))
	lineEnd   = Choice(nl, EOI())
	indent    = Repeat(Lit(" "), 0, 3)
	notNL     = Seq(Not(nl), Any())
	alpha     = Class("letter", isAlpha)
	digit     = Class("digit", isDigit)
	alnum     = Class("letter or digit", isAlnum)
	blankLine = Choice(Seq(Star(ws), nl), Seq(Plus(ws), EOI()))
	fence3    = Lit("```")

	identChar = Choice(alnum, Set("-_+."))
)

func heading(level int) Expr {
	return Seq(
		indent,
		Lit(strings.Repeat("#", level)),
		Not(Lit("#")),
		Plus(ws),
		Ref(RuleHeadingText),
		lineEnd,
	)
}

func breakOf(marker string) Expr {
	return Seq(Lit(marker), Repeat(Seq(Star(ws), Lit(marker)), 2, -1))
}

func markdownRules() []Definition {
	closeTag := Seq(Lit("</"), Peek(), Star(ws), Lit(">"))
	notTagOrNL := Seq(Not(Choice(Lit("<"), nl)), Any())
	tagAttrs := Opt(Seq(Plus(ws), Ref(RuleAttrs)))

	return []Definition{
		{RuleFile, KindNormal, Seq(SOI(), Star(Choice(blankLine, Ref(RuleBlock))), EOI())},
		{RuleBlock, KindSilent, Choice(
			Ref(RuleFence),
			Ref(RuleHeading),
			Ref(RuleThematicBreak),
			Ref(RuleHTMLBlock),
			Ref(RuleTextBlock),
		)},

		{RuleHeading, KindNormal, Choice(
			Ref(RuleH1), Ref(RuleH2), Ref(RuleH3),
			Ref(RuleH4), Ref(RuleH5), Ref(RuleH6),
		)},
		{RuleH1, KindNormal, heading(1)},
		{RuleH2, KindNormal, heading(2)},
		{RuleH3, KindNormal, heading(3)},
		{RuleH4, KindNormal, heading(4)},
		{RuleH5, KindNormal, heading(5)},
		{RuleH6, KindNormal, heading(6)},
		{RuleHeadingText, KindAtomic, Plus(notNL)},

		{RuleThematicBreak, KindNormal, Seq(
			indent,
			Choice(breakOf("-"), breakOf("*"), breakOf("_")),
			Star(ws),
			lineEnd,
		)},

		{RuleHTMLBlock, KindNormal, Seq(indent, Choice(Ref(RuleBlockTag), Ref(RuleTag)), Star(ws), lineEnd)},
		{RuleTag, KindNormal, Seq(Lit("<"), Ref(RuleTagName), tagAttrs, Star(ws), Lit("/>"))},
		{RuleBlockTag, KindNormal, Seq(
			Lit("<"), Push(Ref(RuleTagName)), tagAttrs, Star(ws), Lit(">"),
			Ahead("</"),
			Ref(RuleTagContent),
			Lit("</"), Pop(), Star(ws), Lit(">"),
		)},
		{RuleTagName, KindAtomic, Seq(alpha, Star(Choice(alnum, Set("-_:"))))},
		{RuleTagContent, KindNormal, Star(Seq(
			Not(closeTag),
			Choice(Ref(RuleBlockTag), Ref(RuleTag), Ref(RuleTagText)),
		))},
		{RuleTagText, KindAtomic, Choice(Plus(Seq(Not(Lit("<")), Any())), Lit("<"))},

		{RuleAttrs, KindNormal, Seq(Star(ws), Ref(RuleAttr), Star(Seq(Plus(ws), Ref(RuleAttr))), Star(ws))},
		{RuleAttr, KindNormal, Seq(Ref(RuleAttrKey), Star(ws), Lit("="), Star(ws), Ref(RuleQuoted))},
		{RuleAttrKey, KindAtomic, Seq(alpha, Star(Choice(alnum, Set("-_:"))))},
		{RuleQuoted, KindCompound, Seq(Lit(`"`), Ref(RuleString), Lit(`"`))},
		{RuleString, KindAtomic, Star(Choice(Seq(Lit(`\`), Any()), Seq(Not(Lit(`"`)), Any())))},

		{RuleFence, KindNormal, Seq(indent, Ref(RuleFenceDefn), nl, Ref(RuleFenceBody), Ref(RuleFenceClose))},
		{RuleFenceDefn, KindNormal, Seq(
			fence3,
			Star(ws), Opt(Ref(RuleLang)),
			Star(ws), Opt(Ref(RuleFenceAttrs)),
			Star(ws), Opt(Ref(RuleFenceJunk)),
		)},
		{RuleLang, KindNormal, Ref(RuleIdentifier)},
		{RuleIdentifier, KindAtomic, Seq(alpha, Star(identChar))},
		{RuleFenceAttrs, KindNormal, Seq(
			Lit("{"), Star(ws),
			Opt(Seq(Ref(RuleDictEntry), Star(Seq(Star(ws), Lit(","), Star(ws), Ref(RuleDictEntry))))),
			Star(ws), Opt(Lit(",")), Star(ws),
			Lit("}"),
		)},
		{RuleDictEntry, KindNormal, Seq(Ref(RuleDictKey), Star(ws), Lit(":"), Star(ws), Ref(RuleDictValue))},
		{RuleDictKey, KindNormal, Choice(Ref(RuleIdentifier), Ref(RuleQuoted))},
		{RuleDictValue, KindNormal, Choice(Ref(RuleQuoted), Ref(RuleNumber), Ref(RuleBoolean), Ref(RuleIdentifier))},
		{RuleNumber, KindAtomic, Seq(
			Opt(Lit("-")), Plus(digit), Opt(Seq(Lit("."), Plus(digit))), Not(identChar),
		)},
		{RuleBoolean, KindAtomic, Seq(Choice(Lit("true"), Lit("false")), Not(identChar))},
		{RuleFenceJunk, KindAtomic, Plus(notNL)},
		{RuleFenceBody, KindAtomic, Star(Seq(Not(Ref(RuleFenceClose)), Star(notNL), nl))},
		{RuleFenceClose, KindNormal, Seq(indent, fence3, Star(ws), lineEnd)},

		{RuleTextBlock, KindNormal, Seq(
			Ref(RuleTextLine),
			Star(Seq(nl, Not(interrupt()), Ref(RuleTextLine))),
			lineEnd,
		)},
		{RuleTextLine, KindCompound, Plus(Choice(Ref(RuleBlockTag), Ref(RuleTag), Ref(RuleTextRun)))},
		{RuleTextRun, KindAtomic, Choice(
			Seq(Lit("<"), Star(notTagOrNL)),
			Plus(notTagOrNL),
		)},
	}
}

// interrupt matches the start of anything that ends a paragraph.
func interrupt() Expr {
	return Choice(
		blankLine,
		Ref(RuleFence),
		Ref(RuleHeading),
		Ref(RuleThematicBreak),
		Ref(RuleHTMLBlock),
	)
}
