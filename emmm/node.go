package emmm

// Node is the closed sum of AST node kinds spec.md §3 defines. Every
// concrete type below implements it via Range (its own LocationRange) and
// the unexported isNode marker; nodes have no Copy or String methods
// (content trees are copied by the functions in copy.go). The sum is
// closed: EMMM's grammar has exactly eight node kinds, and extensibility
// lives entirely in ModifierDefinition, not in new Node implementations.
type Node interface {
	Range() LocationRange
	isNode()
}

// BlockEntity is the subset of Node that may appear as block-level content
// (Root.Content, BlockModifier.Content, SystemModifier.Content).
type BlockEntity interface {
	Node
	isBlockEntity()
}

// InlineEntity is the subset of Node that may appear inside a Paragraph or
// InlineModifier.Content.
type InlineEntity interface {
	Node
	isInlineEntity()
}

// RootNode is the top of a parsed Document's tree.
type RootNode struct {
	Loc     LocationRange
	Content []BlockEntity
}

// ParagraphNode groups a run of inline content between blank lines.
type ParagraphNode struct {
	Loc     LocationRange
	Content []InlineEntity
}

// PreformattedContent is the raw, un-re-parsed text inside a Preformatted
// node, with its own inner range.
type PreformattedContent struct {
	Start int
	End   int
	Text  string
}

// PreformattedNode holds text scanned without inline-modifier recognition,
// produced by a modifier whose SlotType is Preformatted.
type PreformattedNode struct {
	Loc     LocationRange
	Content PreformattedContent
}

// TextNode is a run of plain text.
type TextNode struct {
	Loc     LocationRange
	Content string
}

// EscapedNode is a single character that followed a backslash escape.
type EscapedNode struct {
	Loc     LocationRange
	Content string
}

// ModifierHead carries the "[...]"-introducer range shared by all three
// modifier node kinds.
type ModifierHead struct {
	Loc LocationRange
}

// BlockModifierNode is a `[.name ...]` construct.
type BlockModifierNode struct {
	Loc       LocationRange
	Mod       *ModifierDefinition
	Head      ModifierHead
	Arguments []ModifierArgument
	State     any
	Content   []BlockEntity
	Expansion []BlockEntity
	expanded  bool
}

// InlineModifierNode is a `[/name ...]` construct.
type InlineModifierNode struct {
	Loc       LocationRange
	Mod       *ModifierDefinition
	Head      ModifierHead
	Arguments []ModifierArgument
	State     any
	Content   []InlineEntity
	Expansion []InlineEntity
	expanded  bool
}

// SystemModifierNode is a `[-name ...]` construct. Per spec.md §3,
// SystemModifier.Expansion is always [] (or nil) — system modifiers act by
// mutating the live Configuration, not by producing renderable content —
// and is removed entirely by Document.ToStripped.
type SystemModifierNode struct {
	Loc       LocationRange
	Mod       *ModifierDefinition
	Head      ModifierHead
	Arguments []ModifierArgument
	State     any
	Content   []BlockEntity
}

func (n *RootNode) Range() LocationRange            { return n.Loc }
func (n *ParagraphNode) Range() LocationRange        { return n.Loc }
func (n *PreformattedNode) Range() LocationRange     { return n.Loc }
func (n *TextNode) Range() LocationRange             { return n.Loc }
func (n *EscapedNode) Range() LocationRange          { return n.Loc }
func (n *BlockModifierNode) Range() LocationRange    { return n.Loc }
func (n *InlineModifierNode) Range() LocationRange   { return n.Loc }
func (n *SystemModifierNode) Range() LocationRange   { return n.Loc }

func (n *RootNode) isNode()          {}
func (n *ParagraphNode) isNode()     {}
func (n *PreformattedNode) isNode()  {}
func (n *TextNode) isNode()          {}
func (n *EscapedNode) isNode()       {}
func (n *BlockModifierNode) isNode() {}
func (n *InlineModifierNode) isNode() {}
func (n *SystemModifierNode) isNode() {}

func (n *ParagraphNode) isBlockEntity()      {}
func (n *PreformattedNode) isBlockEntity()   {}
func (n *BlockModifierNode) isBlockEntity()  {}
func (n *SystemModifierNode) isBlockEntity() {}

func (n *TextNode) isInlineEntity()          {}
func (n *EscapedNode) isInlineEntity()       {}
func (n *InlineModifierNode) isInlineEntity() {}

// HasExpansion reports whether expand has run and recorded a (possibly
// empty) expansion for this block modifier. It is distinct from "Expansion
// is non-nil" because a zero-length non-nil slice is a valid "expanded to
// nothing" result.
func (n *BlockModifierNode) HasExpansion() bool { return n.expanded }

// SetExpansion records the result of running Mod.Expand, per spec.md §3:
// nil means "deliberately not rewritten, keep Content".
func (n *BlockModifierNode) SetExpansion(entities []BlockEntity) {
	n.Expansion = entities
	n.expanded = true
}

// HasExpansion reports whether expand has run for this inline modifier.
func (n *InlineModifierNode) HasExpansion() bool { return n.expanded }

// SetExpansion records the result of running Mod.Expand for an inline node.
func (n *InlineModifierNode) SetExpansion(entities []InlineEntity) {
	n.Expansion = entities
	n.expanded = true
}

// ModifierArgument is an ordered sequence of argument entities (spec.md
// §3), with a cached fully-expanded textual value.
type ModifierArgument struct {
	Loc        LocationRange
	Entities   []ArgumentEntity
	expansion  *string
}

// Expansion returns the cached expanded text and whether it has been
// computed yet.
func (a *ModifierArgument) Expansion() (string, bool) {
	if a.expansion == nil {
		return "", false
	}
	return *a.expansion, true
}

// SetExpansion caches the fully-expanded textual value of the argument.
func (a *ModifierArgument) SetExpansion(s string) { a.expansion = &s }

// ArgumentEntity is one piece of a ModifierArgument: plain text, an escaped
// character, or a balanced interpolator match.
type ArgumentEntity interface {
	argRange() LocationRange
	isArgumentEntity()
}

// ArgText is a literal text run inside an argument.
type ArgText struct {
	Loc     LocationRange
	Content string
}

// ArgEscaped is one escaped character inside an argument.
type ArgEscaped struct {
	Loc     LocationRange
	Content string
}

// ArgInterpolation is a matched ArgumentInterpolator occurrence, e.g.
// `$(x)`.
type ArgInterpolation struct {
	Loc       LocationRange
	Name      string
	Content   ModifierArgument
	Expansion *string
}

func (a *ArgText) argRange() LocationRange          { return a.Loc }
func (a *ArgEscaped) argRange() LocationRange       { return a.Loc }
func (a *ArgInterpolation) argRange() LocationRange { return a.Loc }

func (a *ArgText) isArgumentEntity()          {}
func (a *ArgEscaped) isArgumentEntity()       {}
func (a *ArgInterpolation) isArgumentEntity() {}
