package emmm

import (
	"testing"

	"github.com/emmm-lang/emmm/builtin/print"
)

func TestParseDefineHeader(t *testing.T) {
	name, params, slot := parseDefineHeader([]string{"greet", "title", "(name)"})
	if name != "greet" || len(params) != 1 || params[0] != "title" || slot != "name" {
		t.Fatalf("got (%q, %v, %q), want (\"greet\", [\"title\"], \"name\")", name, params, slot)
	}

	name, params, slot = parseDefineHeader([]string{"greet"})
	if name != "greet" || len(params) != 0 || slot != "" {
		t.Fatalf("got (%q, %v, %q), want (\"greet\", [], \"\")", name, params, slot)
	}
}

func TestParseShorthandHeader(t *testing.T) {
	trigger, params, parts, slot, postfix := parseShorthandHeader([]string{"p", "x", "p"})
	if trigger != "p" || len(params) != 0 || len(parts) != 0 || slot != "x" || postfix != "p" {
		t.Fatalf("got (%q, %v, %v, %q, %q), want (\"p\", [], [], \"x\", \"p\")", trigger, params, parts, slot, postfix)
	}
}

// TestDefineBlockCompilesIndependentCopies registers a `.greet` block
// modifier via `-define-block` and invokes it twice, checking that each
// invocation's expansion is its own independent copy of the captured
// template (emmm/copy.go) rather than a shared tree.
func TestDefineBlockCompilesIndependentCopies(t *testing.T) {
	src := "[-define-block:greet]Hello\n\n[.greet]\nWorld1\n\n[.greet]\nWorld2"
	doc := parseString(t, DefaultConfiguration(), src)

	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}

	stripped := doc.ToStripped()
	if len(stripped.Root.Content) != 2 {
		t.Fatalf("got %d blocks after stripping, want 2 (one per invocation)", len(stripped.Root.Content))
	}
	for i, b := range stripped.Root.Content {
		para, ok := b.(*ParagraphNode)
		if !ok || paragraphText(para) != "Hello" {
			t.Fatalf("block %d: got %#v, want a paragraph reading \"Hello\"", i, b)
		}
	}
	first := stripped.Root.Content[0].(*ParagraphNode)
	second := stripped.Root.Content[1].(*ParagraphNode)
	if first.Content[0] == second.Content[0] {
		t.Fatalf("each invocation should get its own copy of the template, not a shared node")
	}
}

// TestInlineShorthandMarkerTemplate covers spec scenario 1: a marker
// shorthand (no parts, no postfix, so no content slot of its own) captures
// its template verbatim from the text directly following the defining
// system modifier's "]" — including the leading space, since nothing in the
// grammar trims whitespace there and the no-lost-characters invariant
// (spec §8) requires every source character to be reconstructable from some
// leaf's range.
func TestInlineShorthandMarkerTemplate(t *testing.T) {
	doc := parseString(t, DefaultConfiguration(), "[-inline-shorthand p] 123\n\np")

	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}

	stripped := doc.ToStripped()
	if len(stripped.Root.Content) != 1 {
		t.Fatalf("got %d blocks after stripping, want 1", len(stripped.Root.Content))
	}
	para, ok := stripped.Root.Content[0].(*ParagraphNode)
	if !ok || paragraphText(para) != " 123" {
		t.Fatalf("got %#v, want a paragraph reading \" 123\"", stripped.Root.Content[0])
	}
}

// TestInlineShorthandEmptyBodyViaSemicolonMarker covers spec scenario 2: a
// defining system modifier may close its own body with the ";]" marker
// spelling, the same "no content at all" terminator a SlotNone modifier
// accepts, leaving the compiled shorthand's template empty.
func TestInlineShorthandEmptyBodyViaSemicolonMarker(t *testing.T) {
	doc := parseString(t, DefaultConfiguration(), "[-inline-shorthand p;]\n\np")

	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}

	stripped := doc.ToStripped()
	if len(stripped.Root.Content) != 1 {
		t.Fatalf("got %d blocks after stripping, want 1", len(stripped.Root.Content))
	}
	para, ok := stripped.Root.Content[0].(*ParagraphNode)
	if !ok {
		t.Fatalf("got %#v, want a paragraph", stripped.Root.Content[0])
	}
	if len(para.Content) != 0 {
		t.Fatalf("got %d inline entities, want 0 (empty paragraph)", len(para.Content))
	}
}

// TestInlineShorthandArgumentThroughPrint covers spec scenario 3: a
// shorthand's captured content-slot argument, surfaced as "$(x)", reaches an
// ordinary registered modifier's Expand (builtin/print) exactly like any
// other argument would.
func TestInlineShorthandArgumentThroughPrint(t *testing.T) {
	config := DefaultConfiguration()
	config.InlineModifiers().Add(print.Definition())

	doc := parseString(t, config, "[-inline-shorthand p:x:p][/print $(x)]\n\np1p")

	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}

	stripped := doc.ToStripped()
	if len(stripped.Root.Content) != 1 {
		t.Fatalf("got %d blocks after stripping, want 1", len(stripped.Root.Content))
	}
	para, ok := stripped.Root.Content[0].(*ParagraphNode)
	if !ok || paragraphText(para) != "1" {
		t.Fatalf("got %#v, want a paragraph reading \"1\"", stripped.Root.Content[0])
	}
}

// TestInlineShorthandArgumentAsBareInterpolation covers spec scenario 4: a
// bare "[/$x]" written directly in a shorthand's captured body is not frozen
// into literal text at capture time — it stays a live reference and
// resolves against each invocation's own binding.
func TestInlineShorthandArgumentAsBareInterpolation(t *testing.T) {
	doc := parseString(t, DefaultConfiguration(), "[-inline-shorthand p:x:p][/$x]\n\np1p")

	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}

	stripped := doc.ToStripped()
	if len(stripped.Root.Content) != 1 {
		t.Fatalf("got %d blocks after stripping, want 1", len(stripped.Root.Content))
	}
	para, ok := stripped.Root.Content[0].(*ParagraphNode)
	if !ok || paragraphText(para) != "1" {
		t.Fatalf("got %#v, want a paragraph reading \"1\"", stripped.Root.Content[0])
	}
}
