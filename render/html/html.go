// Package html is an illustrative (not bit-exact) HTML backend for emmm,
// built entirely on the render package's public RendererConfiguration API —
// the same way a host modifier vocabulary (builtin/*) is expected to supply
// its own renderers rather than the core special-casing any particular
// output format.
package html

import (
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/render"
)

// Writer accumulates HTML output into a strings.Builder, the role go-org's
// orgWriter.builder plays for its HTMLWriter.
type Writer struct {
	strings.Builder
}

// NewConfiguration returns a RendererConfiguration wired for leaf node kinds
// (text, escapes, paragraphs, preformatted blocks) using x/net/html for
// escaping. Modifier-specific renderers (builtin/styles, builtin/quote,
// builtin/notes) register themselves on top of this via Add.
func NewConfiguration() *render.RendererConfiguration[Writer] {
	rc := render.NewRendererConfiguration[Writer]()
	rc.RenderText = func(w *Writer, node *emmm.TextNode) {
		w.WriteString(xhtml.EscapeString(node.Content))
	}
	rc.RenderEscaped = func(w *Writer, node *emmm.EscapedNode) {
		w.WriteString(xhtml.EscapeString(node.Content))
	}
	rc.RenderParagraph = func(w *Writer, node *emmm.ParagraphNode, cxt *emmm.ParseContext, state *render.RenderState[Writer]) {
		w.WriteString("<p>")
		render.RenderInlines(w, node.Content, cxt, state)
		w.WriteString("</p>\n")
	}
	rc.RenderPreformatted = func(w *Writer, node *emmm.PreformattedNode) {
		w.WriteString("<pre>")
		w.WriteString(xhtml.EscapeString(node.Content.Text))
		w.WriteString("</pre>\n")
	}
	rc.InvalidBlock = func(w *Writer, node emmm.BlockEntity, cxt *emmm.ParseContext, state *render.RenderState[Writer]) {
		if n, ok := node.(*emmm.BlockModifierNode); ok {
			render.RenderBlocks(w, fallbackBlocks(n), cxt, state)
		}
	}
	rc.InvalidInline = func(w *Writer, node emmm.InlineEntity, cxt *emmm.ParseContext, state *render.RenderState[Writer]) {
		if n, ok := node.(*emmm.InlineModifierNode); ok {
			render.RenderInlines(w, fallbackInlines(n), cxt, state)
		}
	}
	return rc
}

// fallbackBlocks/fallbackInlines implement the same "expansion, or original
// content" rule Document.ToStripped uses (emmm/document.go), so a modifier
// with no registered HTML renderer still renders its children transparently
// instead of disappearing.
func fallbackBlocks(n *emmm.BlockModifierNode) []emmm.BlockEntity {
	if n.HasExpansion() && n.Expansion != nil {
		return n.Expansion
	}
	return n.Content
}

func fallbackInlines(n *emmm.InlineModifierNode) []emmm.InlineEntity {
	if n.HasExpansion() && n.Expansion != nil {
		return n.Expansion
	}
	return n.Content
}

// Render renders a parsed Document's root content to an HTML string.
func Render(doc *emmm.Document, cxt *emmm.ParseContext, config *render.RendererConfiguration[Writer]) string {
	var w Writer
	state := render.NewRenderState(config)
	render.RenderBlocks(&w, doc.Root.Content, cxt, state)
	return w.String()
}
