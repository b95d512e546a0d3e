// Package notes is a concrete, non-core modifier family proving the C4/C5/C6
// public API is sufficient for a real feature: a block `.note` definition
// collects its body out of the main document flow, and an inline `/note`
// reference renders a link back to it — the same definition/reference split
// go-org's footnote.go implements with FootnoteDefinition/FootnoteLink,
// generalized here to run entirely on top of emmm's typed context store
// (C4) instead of a field baked into the Document type.
package notes

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/render"
	"github.com/emmm-lang/emmm/render/html"
)

// Note is one collected `.note` body, keyed by the name given at its
// definition site.
type Note struct {
	ID      string
	Name    string
	Content []emmm.BlockEntity
}

// Collection accumulates notes across a single parse, addressable both in
// definition order (for a closing "notes" section) and by name (for
// resolving /note references).
type Collection struct {
	Notes  []*Note
	byName map[string]*Note
}

var collectionToken = emmm.NewToken[*Collection]()

// CollectionFor returns the Collection accumulated on cxt so far, creating
// an empty one on first use — the same lazily-initialized-on-first-write
// shape go-org's Document.Footnotes map has, but store-scoped instead of a
// dedicated Document field.
func CollectionFor(cxt *emmm.ParseContext) *Collection {
	col, ok := emmm.Get(cxt, collectionToken)
	if !ok {
		col = &Collection{byName: map[string]*Note{}}
		emmm.Init(cxt, collectionToken, col)
	}
	return col
}

// BlockDefinition returns the `.note` modifier definition. Its expansion is
// always empty: the body is collected into the Collection and rendered
// later, out of line, by RenderNotesSection — the note never appears twice.
func BlockDefinition() *emmm.ModifierDefinition {
	return &emmm.ModifierDefinition{
		Name:     "note",
		Kind:     emmm.KindBlock,
		SlotType: emmm.SlotNormal,
		Expand: func(node emmm.Node, cxt *emmm.ParseContext, immediate bool) (any, bool) {
			n := node.(*emmm.BlockModifierNode)
			name := argText(n.Arguments, cxt)
			col := CollectionFor(cxt)
			note := &Note{ID: "note-" + uuid.NewString(), Name: name, Content: n.Content}
			col.Notes = append(col.Notes, note)
			if name != "" {
				col.byName[name] = note
			}
			return []emmm.BlockEntity{}, true
		},
	}
}

// InlineDefinition returns the `/note` reference modifier: a marker with one
// argument, the referenced note's name.
func InlineDefinition() *emmm.ModifierDefinition {
	return &emmm.ModifierDefinition{
		Name:     "note",
		Kind:     emmm.KindInline,
		SlotType: emmm.SlotNone,
	}
}

func argText(args []emmm.ModifierArgument, cxt *emmm.ParseContext) string {
	if len(args) == 0 {
		return ""
	}
	return emmm.ExpandArgument(&args[0], cxt)
}

// RegisterHTML wires both definitions' HTML renderers into rc. The block
// definition renders to nothing in place (its content surfaces only via
// RenderNotesSection); the inline reference renders an anchor pointing at
// the note's collected id.
func RegisterHTML(rc *render.RendererConfiguration[html.Writer], blockDef, inlineDef *emmm.ModifierDefinition) {
	rc.Add(render.RendererDefinition[html.Writer]{
		Mod:         blockDef,
		RenderBlock: func(w *html.Writer, node emmm.BlockEntity, cxt *emmm.ParseContext, state *render.RenderState[html.Writer]) {},
	})
	rc.Add(render.RendererDefinition[html.Writer]{
		Mod: inlineDef,
		RenderInline: func(w *html.Writer, node emmm.InlineEntity, cxt *emmm.ParseContext, state *render.RenderState[html.Writer]) {
			n := node.(*emmm.InlineModifierNode)
			name := argText(n.Arguments, cxt)
			col := CollectionFor(cxt)
			note, ok := col.byName[name]
			if !ok {
				fmt.Fprintf(w, `<sup class="note-ref-broken">%s</sup>`, name)
				return
			}
			fmt.Fprintf(w, `<sup><a href="#%s">%s</a></sup>`, note.ID, name)
		},
	})
}

// RenderNotesSection renders every collected note, in definition order, as a
// trailing section — the home for `.note` bodies that RegisterHTML's block
// renderer deliberately skips in place.
func RenderNotesSection(w *html.Writer, cxt *emmm.ParseContext, rc *render.RendererConfiguration[html.Writer]) {
	col := CollectionFor(cxt)
	if len(col.Notes) == 0 {
		return
	}
	state := render.NewRenderState(rc)
	w.WriteString(`<ol class="notes">`)
	for _, note := range col.Notes {
		fmt.Fprintf(w, `<li id="%s">`, note.ID)
		render.RenderBlocks(w, note.Content, cxt, state)
		w.WriteString(`</li>`)
	}
	w.WriteString(`</ol>`)
}
