package styles_test

import (
	"strings"
	"testing"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/builtin/styles"
	"github.com/emmm-lang/emmm/render/html"
)

func renderStyled(t *testing.T, src string) string {
	t.Helper()
	emph, strong, code, strike := styles.Definitions()
	config := emmm.New()
	config.InlineModifiers().Add(emph)
	config.InlineModifiers().Add(strong)
	config.InlineModifiers().Add(code)
	config.InlineModifiers().Add(strike)
	boldSh, codeSh := styles.Shorthands(strong, code)
	config.InlineShorthands().Add(boldSh)
	config.InlineShorthands().Add(codeSh)

	rc := html.NewConfiguration()
	styles.RegisterHTML(rc, emph, strong, code, strike)

	cxt := emmm.NewParseContext(config)
	scanner := emmm.NewScanner(emmm.SourceDescriptor(t.Name()), src)
	doc := emmm.Parse(scanner, cxt)
	if len(doc.Messages) != 0 {
		t.Fatalf("expected no messages for %q, got %v", src, doc.Messages)
	}
	return html.Render(doc, cxt, rc)
}

func TestBoldShorthandRendersStrong(t *testing.T) {
	out := renderStyled(t, "a *bold* word")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("got %q, want it to contain <strong>bold</strong>", out)
	}
}

func TestCodeShorthandRendersCode(t *testing.T) {
	out := renderStyled(t, "a `snippet` here")
	if !strings.Contains(out, "<code>snippet</code>") {
		t.Fatalf("got %q, want it to contain <code>snippet</code>", out)
	}
}

func TestExplicitInlineModifierForm(t *testing.T) {
	out := renderStyled(t, "[/strike]gone[;] for good")
	if !strings.Contains(out, "<s>gone</s>") {
		t.Fatalf("got %q, want it to contain <s>gone</s>", out)
	}
}
