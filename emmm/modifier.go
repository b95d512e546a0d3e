package emmm

// SlotType controls how a modifier's content is scanned and whether it has
// a content slot at all (spec.md §3 "slotType").
type SlotType int

const (
	// SlotNormal content is recursively parsed as block or inline entities.
	SlotNormal SlotType = iota
	// SlotPreformatted content is scanned character-by-character with no
	// inline modifier recognition (only the closing tag/blank line ends
	// it).
	SlotPreformatted
	// SlotNone means the modifier is a marker: it never has a content
	// slot (spelled `name ...;]` instead of `name ...] content`).
	SlotNone
)

// ModifierKind distinguishes the three bracket families. A ModifierDefinition
// is only ever registered in the one registry matching its Kind.
type ModifierKind int

const (
	KindBlock ModifierKind = iota
	KindInline
	KindSystem
)

// ExpandFunc computes a modifier's expansion. immediate is true when called
// from the outermost expand() pass (depth == 0 in spec.md §4.3's
// pseudocode); definitions rarely need it but the spec exposes it for
// definitions whose behavior should differ on the first pass (e.g. "only
// warn about unresolved references on the final pass").
type ExpandFunc func(node Node, cxt *ParseContext, immediate bool) (entities any, ok bool)

// HookFunc is the shape shared by all optional lifecycle hooks; each may
// return diagnostics.
type HookFunc func(node Node, cxt *ParseContext) []Message

// ModifierDefinition describes a registered block, inline, or system
// modifier. The three kinds share one struct (differing only in Kind and in
// what entity type Expand is expected to hand back) following the teacher's
// function-type-alias idiom of collapsing "shapes that only differ in one
// dimension" into one struct of function fields rather than an interface
// hierarchy per kind.
type ModifierDefinition struct {
	Name     string
	Kind     ModifierKind
	SlotType SlotType

	// RoleHint is advisory metadata for editors/renderers; the core never
	// inspects it.
	RoleHint string

	// DelayContentExpansion: children parsed inside this node's content are
	// registered but not expanded during their own parse (spec.md §4.3
	// "Delay discipline").
	DelayContentExpansion bool
	// AlwaysTryExpand: even under an enclosing DelayContentExpansion
	// ancestor, this definition's nodes still run expand immediately.
	AlwaysTryExpand bool

	BeforeParseContent      HookFunc
	AfterParseContent       HookFunc
	BeforeProcessExpansion  HookFunc
	AfterProcessExpansion   HookFunc
	PrepareExpand           HookFunc

	// Expand computes the modifier's expansion. Returning ok=false means
	// "no expansion produced" (spec.md §3: expansion stays undefined, keep
	// Content). entities, when ok, is []BlockEntity for KindBlock/KindSystem
	// or []InlineEntity for KindInline.
	Expand ExpandFunc
}

// reservedUnknownBlock/Inline/System are the definitions substituted for an
// unrecognised modifier name, per spec.md §4.3 "Modifier lookup".
var reservedUnknownBlock = &ModifierDefinition{Name: "UNKNOWN", Kind: KindBlock, SlotType: SlotNormal}
var reservedUnknownInline = &ModifierDefinition{Name: "UNKNOWN", Kind: KindInline, SlotType: SlotNormal}
var reservedUnknownSystem = &ModifierDefinition{Name: "UNKNOWN", Kind: KindSystem, SlotType: SlotNormal}

// reservedInterpolation is substituted for a bare "[/$x]"-style interpolator
// used directly as inline content (parser.go's finishBareInterpolation): its
// one argument holds the matched interpolator, and Expand resolves it
// through the ordinary ExpandArgument path, the same lookup nested
// modifiers' own arguments use.
var reservedInterpolation = &ModifierDefinition{
	Name:     "INTERPOLATION",
	Kind:     KindInline,
	SlotType: SlotNone,
	Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
		n := node.(*InlineModifierNode)
		text := ExpandArgument(&n.Arguments[0], cxt)
		return []InlineEntity{&TextNode{Loc: n.Loc, Content: text}}, true
	},
}

// ArgumentInterpolator is a balanced textual construct recognised inside an
// argument, e.g. `$(x)` with Name="$(" Postfix=")".
type ArgumentInterpolator struct {
	Name string
	// Postfix delimits a balanced form like "$(" ... ")". Ignored when Bare
	// is set.
	Postfix string
	// Bare means the content immediately following Name is a run of
	// identifier characters with no closing delimiter, e.g. "$x".
	Bare bool
	// Expand computes the interpolator's replacement text from its raw
	// captured content. Returning ok=false leaves the interpolator
	// unexpanded (written back out verbatim by ExpandArgument).
	Expand func(content string, cxt *ParseContext, immediate bool) (string, bool)
}

// Shorthand is a textual pattern compiled into a block or inline modifier
// invocation (spec.md §3/§4.3).
type Shorthand struct {
	Name    string
	Parts   []string
	Postfix string // empty ("") means a marker shorthand with no content slot
	Mod     *ModifierDefinition
}

// HasContentSlot reports whether this shorthand captures a trailing content
// slot delimited by Postfix.
func (s Shorthand) HasContentSlot() bool { return s.Postfix != "" }
