// Package styles is a concrete inline modifier family: emphasis, strong,
// code, and strikethrough, plus the two canonical shorthands from spec
// scenario texts (`*bold*`, `` `code` ``). Grounded on go-org's Emphasis
// node (inline.go), which carries a Kind discriminator ("*", "/", "_", "~",
// "=", "+") distinguishing otherwise-identical wrapped-inline-content nodes;
// EMMM has no single Node type to discriminate, so the same idea becomes
// four distinct ModifierDefinitions sharing one render helper shape instead
// of one Node type switching on a Kind string.
package styles

import (
	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/render"
	"github.com/emmm-lang/emmm/render/html"
)

// Definitions returns the four style modifiers: emphasis, strong, code, and
// strikethrough. Each is an ordinary inline modifier with a normal content
// slot and no Expand (no rewrite; rendered from Content directly).
func Definitions() (emph, strong, code, strike *emmm.ModifierDefinition) {
	emph = &emmm.ModifierDefinition{Name: "emph", Kind: emmm.KindInline, SlotType: emmm.SlotNormal}
	strong = &emmm.ModifierDefinition{Name: "strong", Kind: emmm.KindInline, SlotType: emmm.SlotNormal}
	code = &emmm.ModifierDefinition{Name: "code", Kind: emmm.KindInline, SlotType: emmm.SlotNormal}
	strike = &emmm.ModifierDefinition{Name: "strike", Kind: emmm.KindInline, SlotType: emmm.SlotNormal}
	return
}

// Shorthands returns the `*bold*` and `` `code` `` shorthands bound to
// strong/code respectively, for registration into a Configuration's
// InlineShorthands set.
func Shorthands(strong, code *emmm.ModifierDefinition) (boldSh, codeSh emmm.Shorthand) {
	boldSh = emmm.Shorthand{Name: "*", Postfix: "*", Mod: strong}
	codeSh = emmm.Shorthand{Name: "`", Postfix: "`", Mod: code}
	return
}

// RegisterHTML wires HTML tags for all four style modifiers into rc.
func RegisterHTML(rc *render.RendererConfiguration[html.Writer], emph, strong, code, strike *emmm.ModifierDefinition) {
	wrap := func(tag string, def *emmm.ModifierDefinition) {
		rc.Add(render.RendererDefinition[html.Writer]{
			Mod: def,
			RenderInline: func(w *html.Writer, node emmm.InlineEntity, cxt *emmm.ParseContext, state *render.RenderState[html.Writer]) {
				n := node.(*emmm.InlineModifierNode)
				w.WriteString("<" + tag + ">")
				render.RenderInlines(w, n.Content, cxt, state)
				w.WriteString("</" + tag + ">")
			},
		})
	}
	wrap("em", emph)
	wrap("strong", strong)
	wrap("code", code)
	wrap("s", strike)
}
