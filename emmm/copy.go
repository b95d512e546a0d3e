package emmm

// copyBlocks/copyInlines deep-copy a content tree. A compiled define-*/
// shorthand definition (emmm/define.go) hands out a fresh copy of its
// captured template on every invocation so that reparsing one invocation's
// expansion (which mutates Expansion/expanded in place) never contaminates
// another invocation sharing the same template.

func copyBlocks(in []BlockEntity) []BlockEntity {
	if in == nil {
		return nil
	}
	out := make([]BlockEntity, len(in))
	for i, b := range in {
		out[i] = copyBlock(b)
	}
	return out
}

func copyBlock(b BlockEntity) BlockEntity {
	switch n := b.(type) {
	case *ParagraphNode:
		return &ParagraphNode{Loc: n.Loc, Content: copyInlines(n.Content)}
	case *PreformattedNode:
		cp := *n
		return &cp
	case *BlockModifierNode:
		return &BlockModifierNode{
			Loc:       n.Loc,
			Mod:       n.Mod,
			Head:      n.Head,
			Arguments: copyArguments(n.Arguments),
			State:     n.State,
			Content:   copyBlocks(n.Content),
		}
	case *SystemModifierNode:
		return &SystemModifierNode{
			Loc:       n.Loc,
			Mod:       n.Mod,
			Head:      n.Head,
			Arguments: copyArguments(n.Arguments),
			State:     n.State,
			Content:   copyBlocks(n.Content),
		}
	default:
		return b
	}
}

func copyInlines(in []InlineEntity) []InlineEntity {
	if in == nil {
		return nil
	}
	out := make([]InlineEntity, len(in))
	for i, e := range in {
		out[i] = copyInline(e)
	}
	return out
}

func copyInline(e InlineEntity) InlineEntity {
	switch n := e.(type) {
	case *TextNode:
		cp := *n
		return &cp
	case *EscapedNode:
		cp := *n
		return &cp
	case *InlineModifierNode:
		return &InlineModifierNode{
			Loc:       n.Loc,
			Mod:       n.Mod,
			Head:      n.Head,
			Arguments: copyArguments(n.Arguments),
			State:     n.State,
			Content:   copyInlines(n.Content),
		}
	default:
		return e
	}
}

func copyArguments(in []ModifierArgument) []ModifierArgument {
	if in == nil {
		return nil
	}
	out := make([]ModifierArgument, len(in))
	for i, a := range in {
		out[i] = ModifierArgument{Loc: a.Loc, Entities: copyArgEntities(a.Entities)}
	}
	return out
}

func copyArgEntities(in []ArgumentEntity) []ArgumentEntity {
	if in == nil {
		return nil
	}
	out := make([]ArgumentEntity, len(in))
	for i, e := range in {
		switch ent := e.(type) {
		case *ArgText:
			cp := *ent
			out[i] = &cp
		case *ArgEscaped:
			cp := *ent
			out[i] = &cp
		case *ArgInterpolation:
			out[i] = &ArgInterpolation{
				Loc:     ent.Loc,
				Name:    ent.Name,
				Content: ModifierArgument{Loc: ent.Content.Loc, Entities: copyArgEntities(ent.Content.Entities)},
			}
		default:
			out[i] = e
		}
	}
	return out
}
