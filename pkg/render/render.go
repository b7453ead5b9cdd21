// Package render turns parkdown parse trees into HTML.
//
// Structure the grammar recognises (headings, breaks, tags, fences) is
// rendered directly from the tree. Paragraph text is handed to goldmark so
// emphasis, links and the rest of inline Markdown come out as expected.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/parkdown/internal/logging"
	"github.com/yaklabco/parkdown/pkg/grammar"
	"github.com/yaklabco/parkdown/pkg/langdetect"
	"github.com/yaklabco/parkdown/pkg/pipeline"
	"github.com/yaklabco/parkdown/pkg/ptree"
)

// Flavor selects the Markdown dialect used for paragraph text.
type Flavor string

const (
	// FlavorCommonMark renders paragraph text as strict CommonMark.
	FlavorCommonMark Flavor = "commonmark"

	// FlavorGFM adds the GitHub extensions: tables, strikethrough,
	// autolinks and task lists.
	FlavorGFM Flavor = "gfm"
)

// ParseFlavor resolves a flavor name. The empty string means CommonMark.
func ParseFlavor(name string) (Flavor, error) {
	switch Flavor(strings.ToLower(strings.TrimSpace(name))) {
	case "", FlavorCommonMark:
		return FlavorCommonMark, nil
	case FlavorGFM:
		return FlavorGFM, nil
	default:
		return "", fmt.Errorf("unknown flavor %q (want commonmark or gfm)", name)
	}
}

// Options configures an HTML renderer.
type Options struct {
	Flavor Flavor

	// Unsafe emits tags as HTML and lets goldmark pass raw HTML through.
	// When false tags are rendered as escaped source text and goldmark
	// omits raw HTML in paragraphs.
	Unsafe bool

	// DetectLanguage guesses a language for fences that do not name one.
	DetectLanguage bool
}

// HTML renders parse trees to HTML.
type HTML struct {
	opts Options
	md   goldmark.Markdown
}

var _ pipeline.Renderer = (*HTML)(nil)

// New creates an HTML renderer.
func New(opts Options) *HTML {
	var mdOpts []goldmark.Option

	if opts.Flavor == FlavorGFM {
		mdOpts = append(mdOpts, goldmark.WithExtensions(extension.GFM))
	}

	if opts.Unsafe {
		mdOpts = append(mdOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	return &HTML{opts: opts, md: goldmark.New(mdOpts...)}
}

// Render renders root and everything below it.
func (h *HTML) Render(ctx context.Context, root ptree.Node) (string, error) {
	var buf bytes.Buffer

	if err := h.node(ctx, &buf, root); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (h *HTML) node(ctx context.Context, buf *bytes.Buffer, n ptree.Node) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	rule := n.Rule()

	switch {
	case rule == grammar.RuleFile:
		for _, child := range n.Children() {
			if err := h.node(ctx, buf, child); err != nil {
				return err
			}
		}
	case rule == grammar.RuleHeading || rule.HeadingLevel() > 0:
		heading, _ := HeadingOf(n)
		fmt.Fprintf(buf, "<h%d>%s</h%d>\n", heading.Level, util.EscapeHTML([]byte(heading.Text)), heading.Level)
	case rule == grammar.RuleThematicBreak:
		buf.WriteString("<hr>\n")
	case rule == grammar.RuleHTMLBlock:
		child, _ := n.Child(0)
		h.tag(buf, child)
		buf.WriteString("\n")
	case rule == grammar.RuleTag || rule == grammar.RuleBlockTag:
		h.tag(buf, n)
	case rule == grammar.RuleFence || rule == grammar.RuleFenceDefn:
		h.fence(ctx, buf, n)
	case rule == grammar.RuleTextBlock:
		if err := h.md.Convert([]byte(n.Text()), buf); err != nil {
			return fmt.Errorf("render text at %s: %w", n.Position(), err)
		}
	case rule == grammar.RuleTextLine:
		h.inline(buf, n)
	default:
		buf.Write(util.EscapeHTML([]byte(n.Text())))
	}

	return nil
}

// inline renders a text line without paragraph wrapping.
func (h *HTML) inline(buf *bytes.Buffer, n ptree.Node) {
	for _, child := range n.Children() {
		switch child.Rule() {
		case grammar.RuleTag, grammar.RuleBlockTag:
			h.tag(buf, child)
		default:
			buf.Write(util.EscapeHTML([]byte(child.Text())))
		}
	}
}

func (h *HTML) tag(buf *bytes.Buffer, n ptree.Node) {
	tag, ok := TagOf(n)
	if !ok {
		return
	}

	if !h.opts.Unsafe {
		buf.Write(util.EscapeHTML([]byte(n.Text())))
		return
	}

	buf.WriteString("<")
	buf.WriteString(tag.Name)

	for _, attr := range tag.Attrs {
		fmt.Fprintf(buf, ` %s="%s"`, attr.Key, util.EscapeHTML([]byte(attr.Value)))
	}

	if tag.SelfClosing {
		buf.WriteString(" />")
		return
	}

	buf.WriteString(">")

	for _, child := range tag.Content.Children() {
		if child.Rule() == grammar.RuleTagText {
			buf.WriteString(child.Text())
			continue
		}

		h.tag(buf, child)
	}

	buf.WriteString("</")
	buf.WriteString(tag.Name)
	buf.WriteString(">")
}

var dataKeyJunk = regexp.MustCompile(`[^a-z0-9_-]+`)

func (h *HTML) fence(ctx context.Context, buf *bytes.Buffer, n ptree.Node) {
	fence, _ := FenceOf(n)

	lang := langdetect.Normalize(fence.Lang)
	if lang == "" && h.opts.DetectLanguage && fence.Body != "" {
		if detected := langdetect.Detect([]byte(fence.Body)); detected != langdetect.Text {
			lang = detected
			logging.FromContext(ctx).Debug("detected fence language",
				logging.FieldLang, lang,
				logging.FieldOffset, n.Span().Start)
		}
	}

	buf.WriteString("<pre")

	for _, attr := range fence.Attrs {
		key := dataKeyJunk.ReplaceAllString(strings.ToLower(attr.Key), "-")
		fmt.Fprintf(buf, ` data-%s="%s"`, key, util.EscapeHTML([]byte(attr.Value)))
	}

	buf.WriteString("><code")

	if lang != "" {
		fmt.Fprintf(buf, ` class="language-%s"`, util.EscapeHTML([]byte(lang)))
	}

	buf.WriteString(">")
	buf.Write(util.EscapeHTML([]byte(fence.Body)))
	buf.WriteString("</code></pre>\n")
}
