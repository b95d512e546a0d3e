package html_test

import (
	"strings"
	"testing"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/render/html"
)

func renderSource(t *testing.T, config *emmm.Configuration, src string) string {
	t.Helper()
	cxt := emmm.NewParseContext(config)
	scanner := emmm.NewScanner(emmm.SourceDescriptor(t.Name()), src)
	doc := emmm.Parse(scanner, cxt)
	return html.Render(doc, cxt, html.NewConfiguration())
}

func TestRenderParagraphEscapesText(t *testing.T) {
	got := renderSource(t, emmm.New(), "a < b & c")
	want := "<p>a &lt; b &amp; c</p>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderEscapedCharacterIsLiteral(t *testing.T) {
	got := renderSource(t, emmm.New(), `a\*b`)
	want := "<p>a*b</p>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderUnknownBlockKeepsFollowingText(t *testing.T) {
	got := renderSource(t, emmm.New(), "[.unknown] hello")
	if !strings.Contains(got, "hello") {
		t.Fatalf("the text after an unknown block modifier should still be rendered, got %q", got)
	}
}
