package emmm

import "strings"

// sourceTextOf re-serializes a content tree back to plain text by
// concatenating leaf text, discarding modifier structure. Used to bind a
// shorthand/define content slot's captured body to a $(name) interpolator
// value (emmm/define.go) — lossy for nested modifiers, which is an accepted
// simplification: a content slot's bound value is its textual reading, not
// a re-render of its structure.
func sourceTextOf(blocks []BlockEntity, inlines []InlineEntity) string {
	var b strings.Builder
	for _, bl := range blocks {
		writeBlockText(&b, bl)
	}
	for _, il := range inlines {
		writeInlineText(&b, il)
	}
	return b.String()
}

func writeBlockText(b *strings.Builder, e BlockEntity) {
	switch n := e.(type) {
	case *ParagraphNode:
		for _, il := range n.Content {
			writeInlineText(b, il)
		}
	case *PreformattedNode:
		b.WriteString(n.Content.Text)
	case *BlockModifierNode:
		for _, bl := range n.Content {
			writeBlockText(b, bl)
		}
	case *SystemModifierNode:
		// system modifiers carry no renderable text
	}
}

func writeInlineText(b *strings.Builder, e InlineEntity) {
	switch n := e.(type) {
	case *TextNode:
		b.WriteString(n.Content)
	case *EscapedNode:
		b.WriteString(n.Content)
	case *InlineModifierNode:
		for _, il := range n.Content {
			writeInlineText(b, il)
		}
	}
}
