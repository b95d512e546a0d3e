package notes_test

import (
	"strings"
	"testing"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/builtin/notes"
	"github.com/emmm-lang/emmm/render/html"
)

func TestNoteCollectionAndReferenceLinkMatch(t *testing.T) {
	blockDef := notes.BlockDefinition()
	inlineDef := notes.InlineDefinition()

	config := emmm.New()
	config.BlockModifiers().Add(blockDef)
	config.InlineModifiers().Add(inlineDef)

	cxt := emmm.NewParseContext(config)
	src := "[.note:ref1]This is a footnote.\n\nSee [/note:ref1;] here."
	scanner := emmm.NewScanner(emmm.SourceDescriptor(t.Name()), src)
	doc := emmm.Parse(scanner, cxt)
	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}

	col := notes.CollectionFor(cxt)
	if len(col.Notes) != 1 || col.Notes[0].Name != "ref1" {
		t.Fatalf("got notes %+v, want one note named \"ref1\"", col.Notes)
	}
	noteID := col.Notes[0].ID

	rc := html.NewConfiguration()
	notes.RegisterHTML(rc, blockDef, inlineDef)
	var w html.Writer
	w.WriteString(html.Render(doc, cxt, rc))
	notes.RenderNotesSection(&w, cxt, rc)
	out := w.String()

	if !strings.Contains(out, `href="#`+noteID+`"`) {
		t.Fatalf("reference should link to the collected note's id, got %q", out)
	}
	if !strings.Contains(out, `id="`+noteID+`"`) {
		t.Fatalf("notes section should anchor the note by its id, got %q", out)
	}
	if !strings.Contains(out, "This is a footnote.") {
		t.Fatalf("notes section should render the note's collected body, got %q", out)
	}
}

func TestNoteReferenceToUnknownNameIsMarkedBroken(t *testing.T) {
	inlineDef := notes.InlineDefinition()
	config := emmm.New()
	config.InlineModifiers().Add(inlineDef)

	cxt := emmm.NewParseContext(config)
	src := "See [/note:missing;] here."
	scanner := emmm.NewScanner(emmm.SourceDescriptor(t.Name()), src)
	doc := emmm.Parse(scanner, cxt)

	rc := html.NewConfiguration()
	notes.RegisterHTML(rc, notes.BlockDefinition(), inlineDef)
	out := html.Render(doc, cxt, rc)

	if !strings.Contains(out, "note-ref-broken") {
		t.Fatalf("an unresolved note reference should render with the broken-ref class, got %q", out)
	}
}
