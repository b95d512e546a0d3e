package emmm

// Document is the result of a parse: the root of the AST plus every
// diagnostic accumulated along the way (spec.md §6 "parse(scanner, context)
// → Document").
type Document struct {
	Root     *RootNode
	Messages []AnyMessage
}

// HasErrors reports whether any accumulated message is Error severity.
func (d *Document) HasErrors() bool {
	for _, m := range d.Messages {
		if SeverityOf(m) == Error {
			return true
		}
	}
	return false
}

// MessagesAtOrAbove returns the messages whose severity is >= min, in
// original emission order. This generalizes go-org's
// Document.GetErrorByType/HasErrors/ErrorCount (org/error.go) to EMMM's
// three explicit severities.
func (d *Document) MessagesAtOrAbove(min Severity) []AnyMessage {
	out := make([]AnyMessage, 0, len(d.Messages))
	for _, m := range d.Messages {
		if SeverityOf(m) >= min {
			out = append(out, m)
		}
	}
	return out
}

// ToStripped returns a copy of the document in which every BlockModifier/
// InlineModifier node is replaced by its expansion (or, when expansion is
// undefined — never computed, or computed and deliberately absent — by its
// original Content, per spec.md §9's Open Question resolution, recorded in
// DESIGN.md), and every SystemModifier node is removed outright. This is
// the rendering-ready tree spec.md §6 describes.
func (d *Document) ToStripped() *Document {
	return &Document{
		Root:     stripRoot(d.Root),
		Messages: d.Messages,
	}
}

func stripRoot(n *RootNode) *RootNode {
	return &RootNode{Loc: n.Loc, Content: stripBlocks(n.Content)}
}

func stripBlocks(in []BlockEntity) []BlockEntity {
	out := make([]BlockEntity, 0, len(in))
	for _, b := range in {
		switch node := b.(type) {
		case *SystemModifierNode:
			// dropped entirely, per spec.md §6.
		case *BlockModifierNode:
			entities := blockEntitiesOrContent(node)
			out = append(out, stripBlocks(entities)...)
		case *ParagraphNode:
			out = append(out, &ParagraphNode{Loc: node.Loc, Content: stripInlines(node.Content)})
		case *PreformattedNode:
			out = append(out, node)
		default:
			out = append(out, b)
		}
	}
	return out
}

func stripInlines(in []InlineEntity) []InlineEntity {
	out := make([]InlineEntity, 0, len(in))
	for _, e := range in {
		switch node := e.(type) {
		case *InlineModifierNode:
			entities := inlineEntitiesOrContent(node)
			out = append(out, stripInlines(entities)...)
		default:
			out = append(out, e)
		}
	}
	return out
}

// blockEntitiesOrContent implements the §9 Open Question resolution: once
// expand has run, a nil Expansion means "keep Content", exactly as if
// expand had never run at all. Representing that as one shared helper
// (rather than checking node.expanded at each of the two call sites that
// care) is what keeps the two cases from drifting apart.
func blockEntitiesOrContent(n *BlockModifierNode) []BlockEntity {
	if n.HasExpansion() && n.Expansion != nil {
		return n.Expansion
	}
	return n.Content
}

func inlineEntitiesOrContent(n *InlineModifierNode) []InlineEntity {
	if n.HasExpansion() && n.Expansion != nil {
		return n.Expansion
	}
	return n.Content
}
