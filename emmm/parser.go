package emmm

import "strings"

// Parser implements spec.md §4.1-§4.3 (C4/C5): a recursive-descent parser
// over a Scanner, integrated with the expand/reparse engine in expand.go.
// One Parser is exclusively owned by one parse, matching the ParseContext
// it holds (spec.md §5).
type Parser struct {
	s          *Scanner
	cxt        *ParseContext
	groupDepth int
}

// Parse runs a full parse of s under cxt and returns the resulting Document,
// including every diagnostic accumulated along the way. This is spec.md
// §4.1's top-level "parse(scanner, context) -> Document" entry point.
func Parse(s *Scanner, cxt *ParseContext) *Document {
	p := &Parser{s: s, cxt: cxt}
	start := s.Position()
	blocks := p.parseBlockSequence(func() bool { return false })
	root := &RootNode{Loc: NewRange(s.Source(), start, s.Position()), Content: blocks}
	return &Document{Root: root, Messages: cxt.Messages()}
}

func (p *Parser) src() SourceDescriptor { return p.s.Source() }

func (p *Parser) addMessage(sev Severity, code Code, loc LocationRange, info string) {
	p.cxt.AddMessage(Message{Severity: sev, Location: loc, Info: info, Code: code})
}

func (p *Parser) addExpected(what string) {
	pos := p.s.Position()
	p.addMessage(Error, CodeExpected, NewRange(p.src(), pos, pos), "expected "+what)
}

// skipBlankLines consumes runs of whitespace and newlines between blocks.
func (p *Parser) skipBlankLines() {
	for {
		if p.s.IsEOF() {
			return
		}
		if p.s.accept("\n") {
			continue
		}
		if _, ok := p.s.acceptWhitespaceChar(); ok {
			continue
		}
		return
	}
}

func (p *Parser) skipInlineWhitespace() {
	for {
		if _, ok := p.s.acceptWhitespaceChar(); !ok {
			return
		}
	}
}

// parseBlockSequence parses blocks (flattening any `:--`/`--:` groups
// directly into the sequence, since a group has no Node of its own) until
// stop reports true or input is exhausted.
func (p *Parser) parseBlockSequence(stop func() bool) []BlockEntity {
	var out []BlockEntity
	p.skipBlankLines()
	for !p.s.IsEOF() && !stop() {
		if p.s.peek(":--") {
			out = append(out, p.parseGroup()...)
		} else if b := p.parseBlock(); b != nil {
			out = append(out, b)
		}
		p.skipBlankLines()
	}
	return out
}

func (p *Parser) parseGroup() []BlockEntity {
	p.s.accept(":--")
	p.s.accept("\n")
	p.groupDepth++
	blocks := p.parseBlockSequence(func() bool {
		return p.s.atLineStart() && p.s.peek("--:")
	})
	if p.s.IsEOF() {
		p.addExpected(`"--:"`)
	} else {
		p.s.accept("--:")
	}
	p.groupDepth--
	return blocks
}

func (p *Parser) parseBlock() BlockEntity {
	start := p.s.Position()
	if p.s.accept("[.") {
		return p.parseBlockModifier(start)
	}
	if p.s.accept("[-") {
		return p.parseSystemModifier(start)
	}
	if node, ok := p.tryBlockShorthand(); ok {
		return node
	}
	return p.parseParagraph()
}

// matchModifierName tries every registered name, longest first, requiring a
// valid boundary character (or EOF) immediately after the match, per
// spec.md §8 "Longest match".
func (p *Parser) matchModifierName(reg ModifierRegistry) (string, *ModifierDefinition, bool) {
	for _, name := range reg.names() {
		if !p.s.peek(name) {
			continue
		}
		next, ok := p.s.runeAt(len([]rune(name)))
		if ok && !isNameBoundary(next) {
			continue
		}
		def, _ := reg.Get(name)
		p.s.accept(name)
		return name, def, true
	}
	return "", nil, false
}

func isNameBoundary(r rune) bool {
	switch r {
	case ':', ' ', '\t', '\r', '\n', ']', ';':
		return true
	default:
		return false
	}
}

// consumeUnknownBracket is the fallback for an unrecognised modifier name:
// per spec.md §8, the bracket is matched to its closing ']' with no further
// structure, and a CodeUnknownModifier diagnostic is raised.
func (p *Parser) consumeUnknownBracket(start int) {
	if _, found := p.s.acceptUntil("]"); found {
		p.s.accept("]")
	} else {
		p.addExpected(`"]"`)
	}
	p.addMessage(Warning, CodeUnknownModifier, NewRange(p.src(), start, p.s.Position()), "unrecognised modifier name")
}

func (p *Parser) parseBlockModifier(start int) BlockEntity {
	reg := p.cxt.Config.BlockModifiers()
	_, def, ok := p.matchModifierName(reg)
	if !ok {
		p.consumeUnknownBracket(start)
		return &BlockModifierNode{Loc: NewRange(p.src(), start, p.s.Position()), Mod: reservedUnknownBlock}
	}
	headEnd := p.s.Position()
	args := p.parseArguments()

	node := &BlockModifierNode{
		Loc:       NewRange(p.src(), start, p.s.Position()),
		Mod:       def,
		Head:      ModifierHead{Loc: NewRange(p.src(), start, headEnd)},
		Arguments: args,
	}
	p.parseModifierTail(node, node.Mod, func(content []BlockEntity) { node.Content = content })
	node.Loc = NewRange(p.src(), start, p.s.Position())

	if p.cxt.DelayDepth() == 0 || node.Mod.AlwaysTryExpand {
		expandBlockModifier(node, p.cxt, 0)
	}
	return node
}

func (p *Parser) parseSystemModifier(start int) BlockEntity {
	reg := p.cxt.Config.SystemModifiers()
	_, def, ok := p.matchModifierName(reg)
	if !ok {
		p.consumeUnknownBracket(start)
		return &SystemModifierNode{Loc: NewRange(p.src(), start, p.s.Position()), Mod: reservedUnknownSystem}
	}
	headEnd := p.s.Position()
	args := p.parseArguments()

	node := &SystemModifierNode{
		Loc:       NewRange(p.src(), start, p.s.Position()),
		Mod:       def,
		Head:      ModifierHead{Loc: NewRange(p.src(), start, headEnd)},
		Arguments: args,
	}
	p.parseModifierTail(node, node.Mod, func(content []BlockEntity) { node.Content = content })
	node.Loc = NewRange(p.src(), start, p.s.Position())

	if p.cxt.DelayDepth() == 0 || node.Mod.AlwaysTryExpand {
		expandSystemModifier(node, p.cxt, 0)
	}
	return node
}

// parseModifierTail parses a modifier's content per its SlotType, wrapping
// the parse in BeforeParseContent/AfterParseContent hooks and the delay
// discipline spec.md §4.3 describes, and hands the result to assign.
func (p *Parser) parseModifierTail(node Node, def *ModifierDefinition, assign func([]BlockEntity)) {
	if def.SlotType == SlotNone {
		runHook(def.BeforeParseContent, node, p.cxt)
		if !p.s.accept(";]") {
			p.addExpected(`";]"`)
		}
		runHook(def.AfterParseContent, node, p.cxt)
		return
	}
	// A normal or preformatted slot may still be spelled with the marker's
	// ";]" terminator to mean "no content at all", the same empty-body
	// shorthand every SlotNone modifier already accepts.
	if p.s.peek(";]") {
		p.s.accept(";]")
		runHook(def.BeforeParseContent, node, p.cxt)
		assign(nil)
		runHook(def.AfterParseContent, node, p.cxt)
		return
	}
	if !p.s.accept("]") {
		p.addExpected(`"]"`)
	}
	if def.SlotType == SlotPreformatted {
		runHook(def.BeforeParseContent, node, p.cxt)
		pre := p.parsePreformattedContent()
		assign([]BlockEntity{pre})
		runHook(def.AfterParseContent, node, p.cxt)
		return
	}

	p.s.accept("\n")
	if def.DelayContentExpansion {
		p.cxt.enterDelay()
	}
	runHook(def.BeforeParseContent, node, p.cxt)
	var content []BlockEntity
	if p.s.peek(":--") {
		content = p.parseGroup()
	} else if b := p.parseBlock(); b != nil {
		content = []BlockEntity{b}
	}
	assign(content)
	runHook(def.AfterParseContent, node, p.cxt)
	if def.DelayContentExpansion {
		p.cxt.exitDelay()
	}
}

func (p *Parser) parsePreformattedContent() *PreformattedNode {
	start := p.s.Position()
	var b strings.Builder
	for !p.s.atBlankLine() {
		b.WriteString(p.s.acceptChar())
	}
	end := p.s.Position()
	return &PreformattedNode{
		Loc:     NewRange(p.src(), start, end),
		Content: PreformattedContent{Start: start, End: end, Text: b.String()},
	}
}

// parseParagraph reads inline content up to a blank line, EOF, or (inside a
// group) a "--:" at the start of a line.
func (p *Parser) parseParagraph() BlockEntity {
	start := p.s.Position()
	var content []InlineEntity
	var buf strings.Builder
	bufStart := start
	flush := func() {
		if buf.Len() > 0 {
			content = append(content, &TextNode{Loc: NewRange(p.src(), bufStart, p.s.Position()), Content: buf.String()})
			buf.Reset()
		}
	}
	for {
		if p.s.atBlankLine() {
			break
		}
		if p.groupDepth > 0 && p.s.atLineStart() && p.s.peek("--:") {
			break
		}
		if p.s.peek("[/") {
			flush()
			estart := p.s.Position()
			p.s.accept("[/")
			content = append(content, p.parseInlineModifierOrBareInterpolation(estart))
			bufStart = p.s.Position()
			continue
		}
		if p.s.peek("\\") {
			flush()
			estart := p.s.Position()
			p.s.accept("\\")
			if p.s.IsEOF() {
				p.addExpected("escaped character")
				break
			}
			ch := p.s.acceptChar()
			content = append(content, &EscapedNode{Loc: NewRange(p.src(), estart, p.s.Position()), Content: ch})
			bufStart = p.s.Position()
			continue
		}
		if node, ok := p.tryInlineShorthand(); ok {
			flush()
			content = append(content, node)
			bufStart = p.s.Position()
			continue
		}
		if buf.Len() == 0 {
			bufStart = p.s.Position()
		}
		buf.WriteString(p.s.acceptChar())
	}
	flush()
	return &ParagraphNode{Loc: NewRange(p.src(), start, p.s.Position()), Content: content}
}

// parseInlineModifierOrBareInterpolation handles a `[/...]` bracket already
// past its opener. If the name matches a registered inline modifier, it
// parses the full modifier. Otherwise, if the bracket's entire remaining
// content is exactly one interpolator match followed immediately by "]", it
// is wrapped as a synthetic interpolation modifier (see
// finishBareInterpolation) rather than treated as an unknown modifier.
// Anything else falls back to the generic unknown-modifier bracket.
func (p *Parser) parseInlineModifierOrBareInterpolation(start int) InlineEntity {
	reg := p.cxt.Config.InlineModifiers()
	_, def, ok := p.matchModifierName(reg)
	if ok {
		return p.parseInlineModifierFromName(start, def)
	}

	save := p.s.Position()
	if interp, iok := p.matchAndParseInterpolation(); iok {
		if p.s.peek("]") {
			p.s.accept("]")
			return p.finishBareInterpolation(start, interp)
		}
		p.s.rewind(save)
	}

	p.consumeUnknownBracket(start)
	return &InlineModifierNode{Loc: NewRange(p.src(), start, p.s.Position()), Mod: reservedUnknownInline}
}

func (p *Parser) parseInlineModifierFromName(start int, def *ModifierDefinition) InlineEntity {
	headEnd := p.s.Position()
	args := p.parseArguments()

	node := &InlineModifierNode{
		Loc:       NewRange(p.src(), start, p.s.Position()),
		Mod:       def,
		Head:      ModifierHead{Loc: NewRange(p.src(), start, headEnd)},
		Arguments: args,
	}

	if def.SlotType == SlotNone {
		runHook(def.BeforeParseContent, node, p.cxt)
		// A marker has no content slot either way, so a bare "]" closes it
		// just as well as the usual ";]" spelling.
		if !p.s.accept(";]") && !p.s.accept("]") {
			p.addExpected(`";]"`)
		}
		runHook(def.AfterParseContent, node, p.cxt)
	} else {
		if !p.s.accept("]") {
			p.addExpected(`"]"`)
		}
		if def.DelayContentExpansion {
			p.cxt.enterDelay()
		}
		runHook(def.BeforeParseContent, node, p.cxt)
		node.Content = p.parseInlineEntitiesUntilClose()
		runHook(def.AfterParseContent, node, p.cxt)
		if def.DelayContentExpansion {
			p.cxt.exitDelay()
		}
	}
	node.Loc = NewRange(p.src(), start, p.s.Position())

	if p.cxt.DelayDepth() == 0 || def.AlwaysTryExpand {
		expandInlineModifier(node, p.cxt, 0)
	}
	return node
}

// parseInlineEntitiesUntilClose parses inline content for a normal-slot
// inline modifier up to and including its "[;]" closing tag. Nested "[/"
// modifiers consume their own closing tags first; a blank line or EOF before
// "[;]" raises an Expected diagnostic.
func (p *Parser) parseInlineEntitiesUntilClose() []InlineEntity {
	var content []InlineEntity
	var buf strings.Builder
	bufStart := p.s.Position()
	flush := func() {
		if buf.Len() > 0 {
			content = append(content, &TextNode{Loc: NewRange(p.src(), bufStart, p.s.Position()), Content: buf.String()})
			buf.Reset()
		}
	}
	for {
		if p.s.IsEOF() || p.s.atBlankLine() {
			p.addExpected(`"[;]"`)
			break
		}
		if p.s.peek("[;]") {
			flush()
			p.s.accept("[;]")
			return content
		}
		if p.s.peek("[/") {
			flush()
			estart := p.s.Position()
			p.s.accept("[/")
			content = append(content, p.parseInlineModifierOrBareInterpolation(estart))
			bufStart = p.s.Position()
			continue
		}
		if p.s.peek("\\") {
			flush()
			estart := p.s.Position()
			p.s.accept("\\")
			if p.s.IsEOF() {
				p.addExpected("escaped character")
				break
			}
			ch := p.s.acceptChar()
			content = append(content, &EscapedNode{Loc: NewRange(p.src(), estart, p.s.Position()), Content: ch})
			bufStart = p.s.Position()
			continue
		}
		if node, ok := p.tryInlineShorthand(); ok {
			flush()
			content = append(content, node)
			bufStart = p.s.Position()
			continue
		}
		if buf.Len() == 0 {
			bufStart = p.s.Position()
		}
		buf.WriteString(p.s.acceptChar())
	}
	flush()
	return content
}

// parseArguments parses the `ARGS` production: an optional leading ':' or
// run of inline whitespace, then ':'-separated ARGs until the head
// terminates (']' or ';]').
func (p *Parser) parseArguments() []ModifierArgument {
	if !p.s.accept(":") {
		p.skipInlineWhitespace()
	}
	if p.atArgsEnd() {
		return nil
	}
	var args []ModifierArgument
	for {
		args = append(args, p.parseArg())
		if p.s.accept(":") {
			continue
		}
		break
	}
	return args
}

func (p *Parser) atArgsEnd() bool {
	return p.s.IsEOF() || p.s.peek("]") || p.s.peek(";]")
}

func (p *Parser) parseArg() ModifierArgument {
	start := p.s.Position()
	var entities []ArgumentEntity
	var buf strings.Builder
	bufStart := start
	flush := func() {
		if buf.Len() > 0 {
			entities = append(entities, &ArgText{Loc: NewRange(p.src(), bufStart, p.s.Position()), Content: buf.String()})
			buf.Reset()
		}
	}
	for {
		if p.atArgsEnd() || p.s.peek(":") {
			break
		}
		if p.s.peek("\\") {
			flush()
			estart := p.s.Position()
			p.s.accept("\\")
			if p.s.IsEOF() {
				p.addExpected("escaped character")
				break
			}
			ch := p.s.acceptChar()
			entities = append(entities, &ArgEscaped{Loc: NewRange(p.src(), estart, p.s.Position()), Content: ch})
			bufStart = p.s.Position()
			continue
		}
		if interp, ok := p.matchAndParseInterpolation(); ok {
			flush()
			entities = append(entities, interp)
			bufStart = p.s.Position()
			continue
		}
		if buf.Len() == 0 {
			bufStart = p.s.Position()
		}
		buf.WriteString(p.s.acceptChar())
	}
	flush()
	return ModifierArgument{Loc: NewRange(p.src(), start, p.s.Position()), Entities: entities}
}

// matchAndParseInterpolation tries every registered ArgumentInterpolator,
// longest name first, at the current position.
func (p *Parser) matchAndParseInterpolation() (*ArgInterpolation, bool) {
	reg := p.cxt.Config.ArgumentInterpolators()
	start := p.s.Position()
	for _, name := range reg.names() {
		if !p.s.peek(name) {
			continue
		}
		def, _ := reg.Get(name)
		p.s.accept(name)
		content, ok := p.readInterpolatorBody(def)
		if !ok {
			return nil, false
		}
		loc := NewRange(p.src(), start, p.s.Position())
		return &ArgInterpolation{
			Loc:     loc,
			Name:    name,
			Content: ModifierArgument{Loc: loc, Entities: []ArgumentEntity{&ArgText{Loc: loc, Content: content}}},
		}, true
	}
	return nil, false
}

func (p *Parser) readInterpolatorBody(def *ArgumentInterpolator) (string, bool) {
	switch {
	case def.Bare:
		var b strings.Builder
		for {
			r, ok := p.s.runeAt(0)
			if !ok || !isIdentRune(r) {
				break
			}
			b.WriteString(p.s.acceptChar())
		}
		return b.String(), true
	case def.Postfix == "":
		return "", true
	default:
		content, found := p.s.acceptUntil(def.Postfix)
		if !found {
			p.addExpected(`"` + def.Postfix + `"`)
			return content, false
		}
		p.s.accept(def.Postfix)
		return content, true
	}
}

// finishBareInterpolation wraps a bare "[/$x]"-style interpolator match in a
// synthetic inline modifier node carrying the match as its sole argument, so
// resolving it goes through the ordinary expand/reparse pipeline instead of
// evaluating eagerly at parse time. That matters under an enclosing
// DelayContentExpansion ancestor (a define-*/shorthand body being captured,
// emmm/define.go): expandInlineModifier is skipped there just like it is for
// any other nested modifier, so the interpolation is left live in the
// template and only resolves once a later invocation pushes its own binding
// frame and reparses the copy (emmm/interp.go), rather than resolving
// against whatever (if anything) was bound at the defining site and
// freezing into literal text forever.
func (p *Parser) finishBareInterpolation(start int, interp *ArgInterpolation) InlineEntity {
	node := &InlineModifierNode{
		Loc:  NewRange(p.src(), start, p.s.Position()),
		Mod:  reservedInterpolation,
		Head: ModifierHead{Loc: NewRange(p.src(), start, start)},
		Arguments: []ModifierArgument{{
			Loc:      interp.Loc,
			Entities: []ArgumentEntity{interp},
		}},
	}
	if p.cxt.DelayDepth() == 0 || reservedInterpolation.AlwaysTryExpand {
		expandInlineModifier(node, p.cxt, 0)
	}
	return node
}
