// Package render implements spec.md §4.6 (C6): a pluggable renderer
// framework over emmm's Node sum type, generalizing go-org's Writer
// interface (Before(d)/WriteNodes(w, nodes...)/After(d)/w.String()) from one
// fixed grammar to a registry keyed by modifier-definition identity, the
// same way emmm's own parser is keyed by definition rather than by a fixed
// switch over node kinds.
package render

import "github.com/emmm-lang/emmm"

// BlockRenderFunc renders one block entity. Implementations that need to
// recurse into nested content call RenderBlocks/RenderInlines again with
// the same state.
type BlockRenderFunc[T any] func(w *T, node emmm.BlockEntity, cxt *emmm.ParseContext, state *RenderState[T])

// InlineRenderFunc renders one inline entity.
type InlineRenderFunc[T any] func(w *T, node emmm.InlineEntity, cxt *emmm.ParseContext, state *RenderState[T])

// RendererDefinition pairs a modifier definition with the function that
// renders nodes built from it. Dispatch is by *emmm.ModifierDefinition
// identity (pointer equality) rather than by Go type, mirroring how the
// parser itself treats modifiers as data rather than as Go types.
type RendererDefinition[T any] struct {
	Mod         *emmm.ModifierDefinition
	RenderBlock BlockRenderFunc[T]
	// RenderInline is used when Mod.Kind is emmm.KindInline.
	RenderInline InlineRenderFunc[T]
}

// RendererConfiguration holds the registered renderers plus the fallback
// for a modifier with no renderer registered (go-org's WriterFunctions map
// falls back to a generic default; here such a modifier's expansion is
// rendered in its place when it has one, and InvalidBlock/InvalidInline
// handle the rest, so an unrendered custom modifier degrades gracefully
// instead of vanishing silently).
type RendererConfiguration[T any] struct {
	blockByMod  map[*emmm.ModifierDefinition]BlockRenderFunc[T]
	inlineByMod map[*emmm.ModifierDefinition]InlineRenderFunc[T]

	RenderText         func(w *T, node *emmm.TextNode)
	RenderEscaped      func(w *T, node *emmm.EscapedNode)
	RenderParagraph    func(w *T, node *emmm.ParagraphNode, cxt *emmm.ParseContext, state *RenderState[T])
	RenderPreformatted func(w *T, node *emmm.PreformattedNode)

	// InvalidBlock/InvalidInline render a modifier node that has neither a
	// registered renderer nor an expansion (render/html's versions render
	// the node's original Content in its place).
	InvalidBlock  BlockRenderFunc[T]
	InvalidInline InlineRenderFunc[T]
}

// NewRendererConfiguration returns an empty configuration; callers register
// RendererDefinitions with Add.
func NewRendererConfiguration[T any]() *RendererConfiguration[T] {
	return &RendererConfiguration[T]{
		blockByMod:  map[*emmm.ModifierDefinition]BlockRenderFunc[T]{},
		inlineByMod: map[*emmm.ModifierDefinition]InlineRenderFunc[T]{},
	}
}

// Add registers a RendererDefinition.
func (rc *RendererConfiguration[T]) Add(def RendererDefinition[T]) {
	if def.RenderBlock != nil {
		rc.blockByMod[def.Mod] = def.RenderBlock
	}
	if def.RenderInline != nil {
		rc.inlineByMod[def.Mod] = def.RenderInline
	}
}

// RenderState is exclusively owned by one render invocation (spec.md §5's
// ownership discipline, carried over from ParseContext to the render side),
// holding whatever per-render bookkeeping a renderer family needs (e.g.
// builtin/notes' collected footnote list) without reaching for a package
// global the way go-org's single orgWriterMutex-guarded writer does.
type RenderState[T any] struct {
	Config *RendererConfiguration[T]
	Extra  map[string]any
}

// NewRenderState creates a RenderState for one render pass.
func NewRenderState[T any](config *RendererConfiguration[T]) *RenderState[T] {
	return &RenderState[T]{Config: config, Extra: map[string]any{}}
}

// RenderBlocks renders a sequence of block entities in order, dispatching
// each modifier node to its registered renderer; a node with none has its
// expansion rendered in its place, or, lacking one, goes to InvalidBlock.
func RenderBlocks[T any](w *T, nodes []emmm.BlockEntity, cxt *emmm.ParseContext, state *RenderState[T]) {
	for _, n := range nodes {
		RenderBlock(w, n, cxt, state)
	}
}

// RenderBlock renders one block entity.
func RenderBlock[T any](w *T, node emmm.BlockEntity, cxt *emmm.ParseContext, state *RenderState[T]) {
	switch n := node.(type) {
	case *emmm.ParagraphNode:
		if state.Config.RenderParagraph != nil {
			state.Config.RenderParagraph(w, n, cxt, state)
		}
	case *emmm.PreformattedNode:
		if state.Config.RenderPreformatted != nil {
			state.Config.RenderPreformatted(w, n)
		}
	case *emmm.BlockModifierNode:
		if fn, ok := state.Config.blockByMod[n.Mod]; ok {
			fn(w, n, cxt, state)
		} else if n.HasExpansion() && n.Expansion != nil {
			RenderBlocks(w, n.Expansion, cxt, state)
		} else if state.Config.InvalidBlock != nil {
			state.Config.InvalidBlock(w, n, cxt, state)
		}
	case *emmm.SystemModifierNode:
		// system modifiers are never rendered.
	}
}

// RenderInlines renders a sequence of inline entities in order.
func RenderInlines[T any](w *T, nodes []emmm.InlineEntity, cxt *emmm.ParseContext, state *RenderState[T]) {
	for _, n := range nodes {
		RenderInline(w, n, cxt, state)
	}
}

// RenderInline renders one inline entity.
func RenderInline[T any](w *T, node emmm.InlineEntity, cxt *emmm.ParseContext, state *RenderState[T]) {
	switch n := node.(type) {
	case *emmm.TextNode:
		if state.Config.RenderText != nil {
			state.Config.RenderText(w, n)
		}
	case *emmm.EscapedNode:
		if state.Config.RenderEscaped != nil {
			state.Config.RenderEscaped(w, n)
		}
	case *emmm.InlineModifierNode:
		if fn, ok := state.Config.inlineByMod[n.Mod]; ok {
			fn(w, n, cxt, state)
		} else if n.HasExpansion() && n.Expansion != nil {
			RenderInlines(w, n.Expansion, cxt, state)
		} else if state.Config.InvalidInline != nil {
			state.Config.InvalidInline(w, n, cxt, state)
		}
	}
}
