package emmm

// expand.go implements spec.md §4.3's expand/reparse loop: once a modifier
// node's own content has been parsed, its definition gets one chance to
// rewrite it (Expand), and that rewrite is itself walked for further
// modifier nodes to expand, bounded by Configuration.ReparseDepthLimit.
//
// depth counts expansion generations, not tree nesting: it starts at 0 for
// every node expanded as a direct consequence of ordinary parsing, and only
// increases when reparse walks into a just-computed Expansion (chasing a
// modifier whose expansion itself invokes modifiers, spec.md §8 "self
// referential expansion"). A node's own Content, parsed by the ordinary
// grammar, already had expand attempted on each of its modifier children in
// post-order as parsing went — unless that parse happened under an
// enclosing DelayContentExpansion ancestor, in which case those children are
// deliberately left unexpanded (their Expansion stays unset, equivalent to
// "keep Content" per spec.md §9) until a compiled definition (emmm/define.go)
// later copies and reparses that captured content at a fresh depth.

func runHook(h HookFunc, node Node, cxt *ParseContext) {
	if h == nil {
		return
	}
	for _, m := range h(node, cxt) {
		cxt.AddMessage(m)
	}
}

func expandBlockModifier(node *BlockModifierNode, cxt *ParseContext, depth int) bool {
	if node.HasExpansion() {
		return true
	}
	if cxt.DelayDepth() > 0 && !node.Mod.AlwaysTryExpand {
		return true
	}
	runHook(node.Mod.PrepareExpand, node, cxt)
	if node.Mod.Expand == nil {
		return true
	}
	result, ok := node.Mod.Expand(node, cxt, depth == 0)
	if !ok {
		return true
	}
	blocks, _ := result.([]BlockEntity)
	node.SetExpansion(blocks)

	runHook(node.Mod.BeforeProcessExpansion, node, cxt)
	cxt.pushReferral(node.Range())
	ok2 := reparseBlocks(blocks, cxt, depth+1)
	cxt.popReferral()
	runHook(node.Mod.AfterProcessExpansion, node, cxt)

	if !ok2 && depth == 0 {
		cxt.AddMessage(Message{
			Severity: Error,
			Location: node.Range(),
			Info:     "expansion did not terminate within the configured reparse depth limit",
			Code:     CodeReachedReparseLimit,
		})
	}
	return ok2
}

func expandInlineModifier(node *InlineModifierNode, cxt *ParseContext, depth int) bool {
	if node.HasExpansion() {
		return true
	}
	if cxt.DelayDepth() > 0 && !node.Mod.AlwaysTryExpand {
		return true
	}
	runHook(node.Mod.PrepareExpand, node, cxt)
	if node.Mod.Expand == nil {
		return true
	}
	result, ok := node.Mod.Expand(node, cxt, depth == 0)
	if !ok {
		return true
	}
	entities, _ := result.([]InlineEntity)
	node.SetExpansion(entities)

	runHook(node.Mod.BeforeProcessExpansion, node, cxt)
	cxt.pushReferral(node.Range())
	ok2 := reparseInlines(entities, cxt, depth+1)
	cxt.popReferral()
	runHook(node.Mod.AfterProcessExpansion, node, cxt)

	if !ok2 && depth == 0 {
		cxt.AddMessage(Message{
			Severity: Error,
			Location: node.Range(),
			Info:     "expansion did not terminate within the configured reparse depth limit",
			Code:     CodeReachedReparseLimit,
		})
	}
	return ok2
}

// expandSystemModifier runs a system modifier's side effect (typically
// mutating cxt.Config, see emmm/define.go). System modifiers never produce
// renderable content: Expand's returned entities, if any, are discarded.
func expandSystemModifier(node *SystemModifierNode, cxt *ParseContext, depth int) bool {
	runHook(node.Mod.PrepareExpand, node, cxt)
	if node.Mod.Expand == nil {
		return true
	}
	_, ok := node.Mod.Expand(node, cxt, depth == 0)
	runHook(node.Mod.AfterProcessExpansion, node, cxt)
	return ok || true
}

func reparseBlocks(blocks []BlockEntity, cxt *ParseContext, depth int) bool {
	if depth > cxt.Config.ReparseDepthLimit {
		return false
	}
	ok := true
	for _, b := range blocks {
		switch n := b.(type) {
		case *BlockModifierNode:
			if !expandBlockModifier(n, cxt, depth) {
				ok = false
			}
		case *SystemModifierNode:
			expandSystemModifier(n, cxt, depth)
		case *ParagraphNode:
			if !reparseInlines(n.Content, cxt, depth) {
				ok = false
			}
		}
	}
	return ok
}

func reparseInlines(entities []InlineEntity, cxt *ParseContext, depth int) bool {
	if depth > cxt.Config.ReparseDepthLimit {
		return false
	}
	ok := true
	for _, e := range entities {
		if n, isMod := e.(*InlineModifierNode); isMod {
			if !expandInlineModifier(n, cxt, depth) {
				ok = false
			}
		}
	}
	return ok
}
