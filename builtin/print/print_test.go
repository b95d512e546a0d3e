package print_test

import (
	"testing"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/builtin/print"
	"github.com/emmm-lang/emmm/render/html"
)

func TestPrintExpandsArgument(t *testing.T) {
	def := print.Definition()
	config := emmm.New()
	config.InlineModifiers().Add(def)

	cxt := emmm.NewParseContext(config)
	scanner := emmm.NewScanner(emmm.SourceDescriptor(t.Name()), "[/print hello]")
	doc := emmm.Parse(scanner, cxt)
	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}

	rc := html.NewConfiguration()
	print.RegisterHTML(rc, def)
	out := html.Render(doc, cxt, rc)
	if out != "<p>hello</p>\n" {
		t.Fatalf("got %q, want %q", out, "<p>hello</p>\n")
	}
}
