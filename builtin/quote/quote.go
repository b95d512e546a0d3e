// Package quote is a concrete block modifier built only on the C4/C5/C6
// public API: a block quote whose content slot nests arbitrary further
// blocks, the EMMM analog of go-org's List/ListItem recursive block
// handling (list.go), minus any notion of list markers or ordering — just
// the "a block modifier's content is itself a full block sequence" nesting
// the grammar already gives for free.
package quote

import (
	"fmt"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/render"
	"github.com/emmm-lang/emmm/render/html"
)

// Definition returns the `.quote` modifier. It has no Expand: its content
// slot is rendered as-is, the same "no rewrite, keep Content" case
// Document.ToStripped already falls back to for any modifier whose Expand
// never runs or declines.
func Definition() *emmm.ModifierDefinition {
	return &emmm.ModifierDefinition{
		Name:     "quote",
		Kind:     emmm.KindBlock,
		SlotType: emmm.SlotNormal,
	}
}

// RegisterHTML wires the `.quote` HTML renderer into rc. An optional first
// argument is rendered as a trailing <cite>.
func RegisterHTML(rc *render.RendererConfiguration[html.Writer], def *emmm.ModifierDefinition) {
	rc.Add(render.RendererDefinition[html.Writer]{
		Mod: def,
		RenderBlock: func(w *html.Writer, node emmm.BlockEntity, cxt *emmm.ParseContext, state *render.RenderState[html.Writer]) {
			n := node.(*emmm.BlockModifierNode)
			w.WriteString("<blockquote>")
			render.RenderBlocks(w, n.Content, cxt, state)
			if len(n.Arguments) > 0 {
				cite := emmm.ExpandArgument(&n.Arguments[0], cxt)
				if cite != "" {
					fmt.Fprintf(w, "<cite>%s</cite>", cite)
				}
			}
			w.WriteString("</blockquote>\n")
		},
	})
}
