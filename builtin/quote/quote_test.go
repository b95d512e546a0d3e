package quote_test

import (
	"strings"
	"testing"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/builtin/quote"
	"github.com/emmm-lang/emmm/render/html"
)

func TestQuoteRendersContentAndCite(t *testing.T) {
	def := quote.Definition()
	config := emmm.New()
	config.BlockModifiers().Add(def)

	cxt := emmm.NewParseContext(config)
	src := "[.quote:Shakespeare]\nTo be or not to be."
	scanner := emmm.NewScanner(emmm.SourceDescriptor(t.Name()), src)
	doc := emmm.Parse(scanner, cxt)
	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages, got %v", doc.Messages)
	}

	rc := html.NewConfiguration()
	quote.RegisterHTML(rc, def)
	out := html.Render(doc, cxt, rc)

	if !strings.Contains(out, "<blockquote>") || !strings.Contains(out, "To be or not to be.") {
		t.Fatalf("expected a blockquote wrapping the content, got %q", out)
	}
	if !strings.Contains(out, "<cite>Shakespeare</cite>") {
		t.Fatalf("expected the first argument rendered as a cite, got %q", out)
	}
}

func TestQuoteWithoutArgumentOmitsCite(t *testing.T) {
	def := quote.Definition()
	config := emmm.New()
	config.BlockModifiers().Add(def)

	cxt := emmm.NewParseContext(config)
	src := "[.quote]\nNo attribution here."
	scanner := emmm.NewScanner(emmm.SourceDescriptor(t.Name()), src)
	doc := emmm.Parse(scanner, cxt)

	rc := html.NewConfiguration()
	quote.RegisterHTML(rc, def)
	out := html.Render(doc, cxt, rc)

	if strings.Contains(out, "<cite>") {
		t.Fatalf("no argument should mean no cite, got %q", out)
	}
}
