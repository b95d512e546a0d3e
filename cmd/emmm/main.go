// Command emmm is a minimal host for the emmm library: "configuration →
// parse → write", the three-step shape go-org's own package doc comment
// demonstrates (`org.New().Parse(input, "./").Write(org.NewHTMLWriter())`).
// It stands in for the out-of-scope desktop editor shell, just enough to
// prove the library's programmatic interface is sufficient end to end.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/emmm-lang/emmm"
	"github.com/emmm-lang/emmm/builtin/notes"
	"github.com/emmm-lang/emmm/builtin/print"
	"github.com/emmm-lang/emmm/builtin/quote"
	"github.com/emmm-lang/emmm/builtin/styles"
	"github.com/emmm-lang/emmm/render"
	"github.com/emmm-lang/emmm/render/html"
)

func main() {
	diff := flag.Bool("diff", false, "print a unified diff between the normal render and a render of the stripped (fully-expanded) document")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-diff] <file.emmm>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("emmm: %s", err)
	}

	config, mods := buildConfiguration()
	cxt := emmm.NewParseContext(config)
	scanner := emmm.NewScanner(emmm.SourceDescriptor(path), string(src))
	doc := emmm.Parse(scanner, cxt)

	for _, m := range doc.Messages {
		fmt.Fprintln(os.Stderr, m.String())
	}

	rc := buildRenderers(mods)
	out := renderDocument(doc, cxt, rc)
	fmt.Print(out)

	if *diff {
		stripped := renderDocument(doc.ToStripped(), cxt, rc)
		udiff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(out),
			B:        difflib.SplitLines(stripped),
			FromFile: "render",
			ToFile:   "render(ToStripped())",
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(udiff)
		if err != nil {
			log.Fatalf("emmm: %s", err)
		}
		fmt.Fprint(os.Stderr, text)
	}

	if doc.HasErrors() {
		os.Exit(1)
	}
}

// builtinModifiers collects the ModifierDefinition pointers every builtin
// family registers, so the same instances get wired into both the
// Configuration and the renderer (RendererDefinition dispatch is keyed by
// *ModifierDefinition pointer identity, per render/render.go).
type builtinModifiers struct {
	noteBlock, noteInline       *emmm.ModifierDefinition
	quote                      *emmm.ModifierDefinition
	emph, strong, code, strike *emmm.ModifierDefinition
	print                      *emmm.ModifierDefinition
}

func buildConfiguration() (*emmm.Configuration, builtinModifiers) {
	config := emmm.DefaultConfiguration()

	mods := builtinModifiers{
		noteBlock: notes.BlockDefinition(),
		noteInline: notes.InlineDefinition(),
		quote:     quote.Definition(),
		print:     print.Definition(),
	}
	mods.emph, mods.strong, mods.code, mods.strike = styles.Definitions()

	config.BlockModifiers().Add(mods.noteBlock)
	config.InlineModifiers().Add(mods.noteInline)
	config.BlockModifiers().Add(mods.quote)
	config.InlineModifiers().Add(mods.emph)
	config.InlineModifiers().Add(mods.strong)
	config.InlineModifiers().Add(mods.code)
	config.InlineModifiers().Add(mods.strike)
	config.InlineModifiers().Add(mods.print)

	boldSh, codeSh := styles.Shorthands(mods.strong, mods.code)
	config.InlineShorthands().Add(boldSh)
	config.InlineShorthands().Add(codeSh)

	return config, mods
}

func buildRenderers(mods builtinModifiers) *render.RendererConfiguration[html.Writer] {
	rc := html.NewConfiguration()
	notes.RegisterHTML(rc, mods.noteBlock, mods.noteInline)
	quote.RegisterHTML(rc, mods.quote)
	styles.RegisterHTML(rc, mods.emph, mods.strong, mods.code, mods.strike)
	print.RegisterHTML(rc, mods.print)
	return rc
}

func renderDocument(doc *emmm.Document, cxt *emmm.ParseContext, rc *render.RendererConfiguration[html.Writer]) string {
	var w html.Writer
	w.WriteString(html.Render(doc, cxt, rc))
	notes.RenderNotesSection(&w, cxt, rc)
	return w.String()
}
