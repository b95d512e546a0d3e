// Package print is a concrete inline modifier built only on the C4/C5/C7
// public API: `[/print ARG]` expands to ARG's own fully-resolved text,
// proving that an argument threaded through `$x`/`$(x)` interpolation
// (emmm/interp.go) reaches an ordinary modifier's Expand the same way any
// other argument does — the built-in spec §8 scenario 3 names directly.
package print

import (
	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/render"
	"github.com/emmm-lang/emmm/render/html"
)

// Definition returns the `print` modifier: a marker (no content slot) that
// takes exactly one argument and expands to its resolved text.
func Definition() *emmm.ModifierDefinition {
	return &emmm.ModifierDefinition{
		Name:     "print",
		Kind:     emmm.KindInline,
		SlotType: emmm.SlotNone,
		Expand: func(node emmm.Node, cxt *emmm.ParseContext, immediate bool) (any, bool) {
			n := node.(*emmm.InlineModifierNode)
			if len(n.Arguments) == 0 {
				return []emmm.InlineEntity{}, true
			}
			text := emmm.ExpandArgument(&n.Arguments[0], cxt)
			return []emmm.InlineEntity{&emmm.TextNode{Loc: n.Loc, Content: text}}, true
		},
	}
}

// RegisterHTML wires `print`'s HTML renderer into rc. Expand already
// computed the resolved text as the sole entity of its expansion, so
// rendering is just rendering that expansion.
func RegisterHTML(rc *render.RendererConfiguration[html.Writer], def *emmm.ModifierDefinition) {
	rc.Add(render.RendererDefinition[html.Writer]{
		Mod: def,
		RenderInline: func(w *html.Writer, node emmm.InlineEntity, cxt *emmm.ParseContext, state *render.RenderState[html.Writer]) {
			n := node.(*emmm.InlineModifierNode)
			render.RenderInlines(w, n.Expansion, cxt, state)
		},
	})
}
