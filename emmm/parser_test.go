package emmm

import (
	"strings"
	"testing"
)

func parseString(t *testing.T, config *Configuration, src string) *Document {
	t.Helper()
	cxt := NewParseContext(config)
	scanner := NewScanner(SourceDescriptor(t.Name()), src)
	return Parse(scanner, cxt)
}

// paragraphText concatenates a Paragraph's leaf text, ignoring any modifier
// structure, for assertions that only care about the rendered-ish reading.
func paragraphText(p *ParagraphNode) string {
	var b strings.Builder
	for _, e := range p.Content {
		switch n := e.(type) {
		case *TextNode:
			b.WriteString(n.Content)
		case *EscapedNode:
			b.WriteString(n.Content)
		}
	}
	return b.String()
}

// TestUnknownModifier covers spec scenario 5: an unrecognised block modifier
// name is consumed as an opaque bracket and raises CodeUnknownModifier, but
// parsing continues with the rest of the input as an ordinary paragraph.
func TestUnknownModifier(t *testing.T) {
	doc := parseString(t, New(), "[.unknown] hello")

	if len(doc.Root.Content) != 2 {
		t.Fatalf("got %d blocks, want 2 (unknown modifier + paragraph)", len(doc.Root.Content))
	}
	unknown, ok := doc.Root.Content[0].(*BlockModifierNode)
	if !ok || unknown.Mod.Name != "UNKNOWN" {
		t.Fatalf("first block should be the reserved unknown-modifier node, got %#v", doc.Root.Content[0])
	}
	para, ok := doc.Root.Content[1].(*ParagraphNode)
	if !ok || paragraphText(para) != "hello" {
		t.Fatalf("second block should be a paragraph reading \"hello\", got %#v", doc.Root.Content[1])
	}

	found := false
	for _, m := range doc.Messages {
		if msg, ok := m.(Message); ok && msg.Code == CodeUnknownModifier {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CodeUnknownModifier message, got %v", doc.Messages)
	}
}

// TestGroupSplitsParagraphs covers spec scenario 6: a ":--"/"--:" group
// separates the paragraph inside it from the paragraph that follows, with no
// diagnostics.
func TestGroupSplitsParagraphs(t *testing.T) {
	doc := parseString(t, New(), ":--\nhello\n--:\nworld")

	if len(doc.Root.Content) != 2 {
		t.Fatalf("got %d blocks, want 2 paragraphs", len(doc.Root.Content))
	}
	first, ok := doc.Root.Content[0].(*ParagraphNode)
	if !ok || !strings.Contains(paragraphText(first), "hello") {
		t.Fatalf("first paragraph should contain \"hello\", got %#v", doc.Root.Content[0])
	}
	second, ok := doc.Root.Content[1].(*ParagraphNode)
	if !ok || paragraphText(second) != "world" {
		t.Fatalf("second paragraph should read \"world\", got %#v", doc.Root.Content[1])
	}
	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}
}

func TestEscapedCharacter(t *testing.T) {
	doc := parseString(t, New(), `a\*b`)

	para := doc.Root.Content[0].(*ParagraphNode)
	if len(para.Content) != 3 {
		t.Fatalf("got %d inline entities, want 3 (text, escaped, text)", len(para.Content))
	}
	if _, ok := para.Content[1].(*EscapedNode); !ok {
		t.Fatalf("middle entity should be EscapedNode, got %#v", para.Content[1])
	}
	if paragraphText(para) != "a*b" {
		t.Fatalf("got %q, want \"a*b\"", paragraphText(para))
	}
}

// TestVarInterpolation exercises -var (emmm/define.go) end to end: defining
// a fixed-value interpolator and consulting it as a bare "[/$name]" bracket.
func TestVarInterpolation(t *testing.T) {
	doc := parseString(t, DefaultConfiguration(), "[-var:name:Bob;]Hello [/$name]")

	stripped := doc.ToStripped()
	if len(stripped.Root.Content) != 1 {
		t.Fatalf("-var should leave no trace after stripping, got %d blocks", len(stripped.Root.Content))
	}
	para := stripped.Root.Content[0].(*ParagraphNode)
	if got := paragraphText(para); got != "Hello Bob" {
		t.Fatalf("got %q, want \"Hello Bob\"", got)
	}
}

// TestLongestModifierMatch covers the "Longest match" testable property: a
// longer registered name wins over a shorter one that is also a prefix match.
func TestLongestModifierMatch(t *testing.T) {
	config := New()
	short := &ModifierDefinition{Name: "b", Kind: KindBlock, SlotType: SlotNone}
	long := &ModifierDefinition{Name: "bold", Kind: KindBlock, SlotType: SlotNone}
	config.BlockModifiers().Add(short)
	config.BlockModifiers().Add(long)

	doc := parseString(t, config, "[.bold;]")
	node := doc.Root.Content[0].(*BlockModifierNode)
	if node.Mod.Name != "bold" {
		t.Fatalf("got modifier %q, want \"bold\" (longest match)", node.Mod.Name)
	}
}

// TestSelfReferentialExpansionHitsReparseLimit covers spec scenario 7: a
// modifier whose own expansion keeps invoking itself is bounded by
// Configuration.ReparseDepthLimit, reported as exactly one
// CodeReachedReparseLimit message at the originating node, not one per
// generation.
func TestSelfReferentialExpansionHitsReparseLimit(t *testing.T) {
	config := New()
	var loop *ModifierDefinition
	loop = &ModifierDefinition{
		Name:     "loop",
		Kind:     KindInline,
		SlotType: SlotNone,
		Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
			n := node.(*InlineModifierNode)
			return []InlineEntity{&InlineModifierNode{Loc: n.Loc, Mod: loop}}, true
		},
	}
	config.InlineModifiers().Add(loop)

	doc := parseString(t, config, "[/loop;]")

	limitMsgs := 0
	for _, m := range doc.Messages {
		if msg, ok := m.(Message); ok && msg.Code == CodeReachedReparseLimit {
			limitMsgs++
		}
	}
	if limitMsgs != 1 {
		t.Fatalf("got %d CodeReachedReparseLimit messages, want exactly 1 (messages: %v)", limitMsgs, doc.Messages)
	}
}

func TestConfigurationFromIsIndependent(t *testing.T) {
	base := New()
	base.BlockModifiers().Add(&ModifierDefinition{Name: "a", Kind: KindBlock, SlotType: SlotNone})

	clone := From(base)
	clone.BlockModifiers().Add(&ModifierDefinition{Name: "b", Kind: KindBlock, SlotType: SlotNone})

	if base.BlockModifiers().Has("b") {
		t.Fatalf("mutating the clone must not affect the original")
	}
	if !clone.BlockModifiers().Has("a") {
		t.Fatalf("the clone should start with the original's entries")
	}
}
