package emmm

// shorthand.go implements spec.md §4.3's shorthand recognition: a textual
// pattern `name arg0 parts[0] arg1 parts[1] ... argK-1 [postfix content
// postfix]` compiled, once matched, into a synthetic modifier invocation
// bound to the shorthand's Mod (emmm/define.go builds these definitions).

func (p *Parser) tryBlockShorthand() (BlockEntity, bool) {
	start := p.s.Position()
	reg := p.cxt.Config.BlockShorthands()
	for _, name := range reg.names() {
		entries := reg.Entries()
		sh := entries[name]
		node, ok := p.matchShorthand(start, sh, true)
		if ok {
			return node.(BlockEntity), true
		}
	}
	return nil, false
}

func (p *Parser) tryInlineShorthand() (InlineEntity, bool) {
	start := p.s.Position()
	reg := p.cxt.Config.InlineShorthands()
	for _, name := range reg.names() {
		entries := reg.Entries()
		sh := entries[name]
		node, ok := p.matchShorthand(start, sh, false)
		if ok {
			return node.(InlineEntity), true
		}
	}
	return nil, false
}

// matchShorthand attempts sh at the current position (already saved as
// start). On any failure the scanner is rewound to start and ok is false.
func (p *Parser) matchShorthand(start int, sh Shorthand, block bool) (Node, bool) {
	if !p.s.peek(sh.Name) {
		return nil, false
	}
	p.s.accept(sh.Name)

	var args []ModifierArgument
	for _, part := range sh.Parts {
		text, found := p.s.acceptUntil(part)
		if !found {
			p.s.rewind(start)
			return nil, false
		}
		p.s.accept(part)
		args = append(args, ModifierArgument{
			Loc:      NewRange(p.src(), start, p.s.Position()),
			Entities: []ArgumentEntity{&ArgText{Loc: NewRange(p.src(), start, p.s.Position()), Content: text}},
		})
	}

	if !sh.HasContentSlot() {
		head := ModifierHead{Loc: NewRange(p.src(), start, p.s.Position())}
		if block {
			node := &BlockModifierNode{Loc: head.Loc, Mod: sh.Mod, Head: head, Arguments: args}
			p.finishShorthandNode(node)
			return node, true
		}
		node := &InlineModifierNode{Loc: head.Loc, Mod: sh.Mod, Head: head, Arguments: args}
		p.finishInlineShorthandNode(node)
		return node, true
	}

	raw, found := p.s.acceptUntil(sh.Postfix)
	if !found {
		p.s.rewind(start)
		return nil, false
	}
	p.s.accept(sh.Postfix)
	head := ModifierHead{Loc: NewRange(p.src(), start, p.s.Position())}

	if block {
		inner := &Parser{s: NewScanner(p.src(), raw), cxt: p.cxt}
		content := inner.parseBlockSequence(func() bool { return false })
		node := &BlockModifierNode{Loc: head.Loc, Mod: sh.Mod, Head: head, Arguments: args, Content: content}
		p.finishShorthandNode(node)
		return node, true
	}

	inner := &Parser{s: NewScanner(p.src(), raw), cxt: p.cxt}
	content := inner.parseInlineRunToEOF()
	node := &InlineModifierNode{Loc: head.Loc, Mod: sh.Mod, Head: head, Arguments: args, Content: content}
	p.finishInlineShorthandNode(node)
	return node, true
}

// parseInlineRunToEOF parses a whole, self-contained inline run (used for a
// shorthand's captured content slot, which has no closing "[;]" of its own).
func (p *Parser) parseInlineRunToEOF() []InlineEntity {
	var content []InlineEntity
	for !p.s.IsEOF() {
		if p.s.peek("[/") {
			estart := p.s.Position()
			p.s.accept("[/")
			content = append(content, p.parseInlineModifierOrBareInterpolation(estart))
			continue
		}
		if p.s.peek("\\") {
			estart := p.s.Position()
			p.s.accept("\\")
			if p.s.IsEOF() {
				break
			}
			ch := p.s.acceptChar()
			content = append(content, &EscapedNode{Loc: NewRange(p.src(), estart, p.s.Position()), Content: ch})
			continue
		}
		if node, ok := p.tryInlineShorthand(); ok {
			content = append(content, node)
			continue
		}
		start := p.s.Position()
		var text []rune
		for !p.s.IsEOF() && !p.s.peek("[/") && !p.s.peek("\\") {
			if _, ok := p.tryInlineShorthandPeek(); ok {
				break
			}
			text = append(text, []rune(p.s.acceptChar())...)
		}
		if len(text) > 0 {
			content = append(content, &TextNode{Loc: NewRange(p.src(), start, p.s.Position()), Content: string(text)})
		}
	}
	return content
}

// tryInlineShorthandPeek reports whether a shorthand would match here
// without consuming it, to stop a plain-text run one character early.
func (p *Parser) tryInlineShorthandPeek() (Node, bool) {
	pos := p.s.Position()
	reg := p.cxt.Config.InlineShorthands()
	for _, name := range reg.names() {
		if p.s.peek(name) {
			p.s.rewind(pos)
			return nil, true
		}
	}
	p.s.rewind(pos)
	return nil, false
}

func (p *Parser) finishShorthandNode(node *BlockModifierNode) {
	if p.cxt.DelayDepth() == 0 || node.Mod.AlwaysTryExpand {
		expandBlockModifier(node, p.cxt, 0)
	}
}

func (p *Parser) finishInlineShorthandNode(node *InlineModifierNode) {
	if p.cxt.DelayDepth() == 0 || node.Mod.AlwaysTryExpand {
		expandInlineModifier(node, p.cxt, 0)
	}
}
