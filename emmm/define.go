package emmm

import "strings"

// define.go implements spec.md §4.4 (C7): the system modifiers through
// which a document can register its own block/inline modifiers, shorthands,
// and fixed-value interpolators. All five are registered in the system
// registry (invoked via `[-`), matching the concrete scenarios in spec.md
// §8 (`[-inline-shorthand ...]`, `[-var ...]`).
//
// A compiled definition's captured template is the literal content parsed
// under DelayContentExpansion (so nested modifiers inside it are never
// expanded against the *defining* site's bindings). Each invocation copies
// that template (emmm/copy.go), pushes a binding frame naming its own
// arguments and content slot (emmm/interp.go), reparses the copy — which is
// where nested $x/$(x) interpolators and nested modifier invocations
// finally resolve — and pops the frame once reparsing completes.

// DefaultConfiguration returns a Configuration with the core interpolators
// and the five user-definition system modifiers already registered. Host
// programs typically build their own vocabulary (see builtin/) on top of
// From(DefaultConfiguration()) rather than New().
func DefaultConfiguration() *Configuration {
	c := New()
	registerCoreInterpolators(c)
	c.SystemModifiers().Add(defineBlockDefinition())
	c.SystemModifiers().Add(defineInlineDefinition())
	c.SystemModifiers().Add(blockShorthandDefinition())
	c.SystemModifiers().Add(inlineShorthandDefinition())
	c.SystemModifiers().Add(varDefinition())
	return c
}

func expandArgs(args []ModifierArgument, cxt *ParseContext) []string {
	out := make([]string, len(args))
	for i := range args {
		out[i] = ExpandArgument(&args[i], cxt)
	}
	return out
}

// parseDefineHeader reads `.define-block`/`.define-inline`'s own argument
// shape: name, any number of positional parameter names, and an optional
// final "(slotname)" naming the new modifier's content slot.
func parseDefineHeader(texts []string) (name string, paramNames []string, slotName string) {
	if len(texts) == 0 {
		return "", nil, ""
	}
	name = texts[0]
	rest := texts[1:]
	if len(rest) > 0 {
		last := rest[len(rest)-1]
		if strings.HasPrefix(last, "(") && strings.HasSuffix(last, ")") && len(last) >= 2 {
			slotName = last[1 : len(last)-1]
			paramNames = rest[:len(rest)-1]
			return
		}
	}
	paramNames = rest
	return
}

// parseShorthandHeader reads `-inline-shorthand`/`-block-shorthand`'s
// argument shape: trigger name, then alternating (argName, literal part)
// pairs, ending in a content-slot name and the closing postfix literal —
// e.g. "p:x:p" is trigger "p", zero parts, slot name "x", postfix "p".
func parseShorthandHeader(texts []string) (trigger string, paramNames, parts []string, slotName, postfix string) {
	if len(texts) == 0 {
		return "", nil, nil, "", ""
	}
	trigger = texts[0]
	rest := texts[1:]
	if len(rest) == 0 {
		return
	}
	postfix = rest[len(rest)-1]
	mid := rest[:len(rest)-1]
	for i, v := range mid {
		if i%2 == 0 {
			paramNames = append(paramNames, v)
		} else {
			parts = append(parts, v)
		}
	}
	if len(paramNames) > 0 {
		slotName = paramNames[len(paramNames)-1]
		paramNames = paramNames[:len(paramNames)-1]
	}
	return
}

func bindParams(bindings map[string]string, paramNames []string, args []ModifierArgument, cxt *ParseContext) {
	for i, name := range paramNames {
		if i < len(args) {
			bindings[name] = ExpandArgument(&args[i], cxt)
		}
	}
}

// compileBlockTemplate builds the ModifierDefinition a `.define-block` or
// `-block-shorthand` invocation registers.
func compileBlockTemplate(name string, paramNames []string, slotName string, template []BlockEntity) *ModifierDefinition {
	return &ModifierDefinition{
		Name:     name,
		Kind:     KindBlock,
		SlotType: SlotNormal,
		Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
			inv := node.(*BlockModifierNode)
			bindings := map[string]string{}
			bindParams(bindings, paramNames, inv.Arguments, cxt)
			if slotName != "" {
				bindings[slotName] = sourceTextOf(inv.Content, nil)
			}
			PushBindings(cxt, bindings)
			return copyBlocks(template), true
		},
		AfterProcessExpansion: func(node Node, cxt *ParseContext) []Message {
			PopBindings(cxt)
			return nil
		},
	}
}

// compileInlineTemplate builds the ModifierDefinition a `.define-inline` or
// `-inline-shorthand` invocation registers.
func compileInlineTemplate(name string, paramNames []string, slotName string, template []InlineEntity) *ModifierDefinition {
	return &ModifierDefinition{
		Name:     name,
		Kind:     KindInline,
		SlotType: SlotNormal,
		Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
			inv := node.(*InlineModifierNode)
			bindings := map[string]string{}
			bindParams(bindings, paramNames, inv.Arguments, cxt)
			if slotName != "" {
				bindings[slotName] = sourceTextOf(nil, inv.Content)
			}
			PushBindings(cxt, bindings)
			return copyInlines(template), true
		},
		AfterProcessExpansion: func(node Node, cxt *ParseContext) []Message {
			PopBindings(cxt)
			return nil
		},
	}
}

func alreadyDefinedWarning(loc LocationRange, name string) Message {
	return Message{
		Severity: Warning,
		Location: loc,
		Info:     "\"" + name + "\" is already defined; redefining it",
		Code:     CodeNameAlreadyDefined,
	}
}

func defineBlockDefinition() *ModifierDefinition {
	return &ModifierDefinition{
		Name:                   "define-block",
		Kind:                   KindSystem,
		SlotType:               SlotNormal,
		DelayContentExpansion:  true,
		AlwaysTryExpand:        true,
		PrepareExpand: func(node Node, cxt *ParseContext) []Message {
			n := node.(*SystemModifierNode)
			name, _, _ := parseDefineHeader(expandArgs(n.Arguments, cxt))
			if cxt.Config.BlockModifiers().Has(name) {
				return []Message{alreadyDefinedWarning(n.Range(), name)}
			}
			return nil
		},
		Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
			n := node.(*SystemModifierNode)
			name, paramNames, slotName := parseDefineHeader(expandArgs(n.Arguments, cxt))
			cxt.Config.BlockModifiers().Add(compileBlockTemplate(name, paramNames, slotName, n.Content))
			return nil, false
		},
	}
}

func defineInlineDefinition() *ModifierDefinition {
	return &ModifierDefinition{
		Name:                  "define-inline",
		Kind:                  KindSystem,
		SlotType:              SlotNormal,
		DelayContentExpansion: true,
		AlwaysTryExpand:       true,
		PrepareExpand: func(node Node, cxt *ParseContext) []Message {
			n := node.(*SystemModifierNode)
			name, _, _ := parseDefineHeader(expandArgs(n.Arguments, cxt))
			if cxt.Config.InlineModifiers().Has(name) {
				return []Message{alreadyDefinedWarning(n.Range(), name)}
			}
			return nil
		},
		Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
			n := node.(*SystemModifierNode)
			name, paramNames, slotName := parseDefineHeader(expandArgs(n.Arguments, cxt))
			cxt.Config.InlineModifiers().Add(compileInlineTemplate(name, paramNames, slotName, inlineBodyOf(n.Content)))
			return nil, false
		},
	}
}

// inlineBodyOf unwraps the single paragraph a `.define-inline` body parses
// into (its content slot grammar is BLOCK, same as every system modifier,
// per spec.md §4.1; for an inline template that block is always a
// paragraph).
func inlineBodyOf(content []BlockEntity) []InlineEntity {
	if len(content) == 0 {
		return nil
	}
	if para, ok := content[0].(*ParagraphNode); ok {
		return para.Content
	}
	return nil
}

func blockShorthandDefinition() *ModifierDefinition {
	return &ModifierDefinition{
		Name:                  "block-shorthand",
		Kind:                  KindSystem,
		SlotType:              SlotNormal,
		DelayContentExpansion: true,
		AlwaysTryExpand:       true,
		PrepareExpand: func(node Node, cxt *ParseContext) []Message {
			n := node.(*SystemModifierNode)
			trigger, _, _, _, _ := parseShorthandHeader(expandArgs(n.Arguments, cxt))
			if cxt.Config.BlockShorthands().Has(trigger) {
				return []Message{alreadyDefinedWarning(n.Range(), trigger)}
			}
			return nil
		},
		Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
			n := node.(*SystemModifierNode)
			trigger, paramNames, parts, slotName, postfix := parseShorthandHeader(expandArgs(n.Arguments, cxt))
			def := compileBlockTemplate(trigger, paramNames, slotName, n.Content)
			cxt.Config.BlockShorthands().Add(Shorthand{Name: trigger, Parts: parts, Postfix: postfix, Mod: def})
			return nil, false
		},
	}
}

func inlineShorthandDefinition() *ModifierDefinition {
	return &ModifierDefinition{
		Name:                  "inline-shorthand",
		Kind:                  KindSystem,
		SlotType:              SlotNormal,
		DelayContentExpansion: true,
		AlwaysTryExpand:       true,
		PrepareExpand: func(node Node, cxt *ParseContext) []Message {
			n := node.(*SystemModifierNode)
			trigger, _, _, _, _ := parseShorthandHeader(expandArgs(n.Arguments, cxt))
			if cxt.Config.InlineShorthands().Has(trigger) {
				return []Message{alreadyDefinedWarning(n.Range(), trigger)}
			}
			return nil
		},
		Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
			n := node.(*SystemModifierNode)
			trigger, paramNames, parts, slotName, postfix := parseShorthandHeader(expandArgs(n.Arguments, cxt))
			def := compileInlineTemplate(trigger, paramNames, slotName, inlineBodyOf(n.Content))
			cxt.Config.InlineShorthands().Add(Shorthand{Name: trigger, Parts: parts, Postfix: postfix, Mod: def})
			return nil, false
		},
	}
}

func varDefinition() *ModifierDefinition {
	return &ModifierDefinition{
		Name:     "var",
		Kind:     KindSystem,
		SlotType: SlotNone,
		PrepareExpand: func(node Node, cxt *ParseContext) []Message {
			n := node.(*SystemModifierNode)
			texts := expandArgs(n.Arguments, cxt)
			if len(texts) < 2 {
				return []Message{{Severity: Error, Location: n.Range(), Info: "-var requires a name and a value", Code: CodeArgumentCountMismatch}}
			}
			if cxt.Config.ArgumentInterpolators().Has("$" + texts[0]) {
				return []Message{alreadyDefinedWarning(n.Range(), "$"+texts[0])}
			}
			return nil
		},
		Expand: func(node Node, cxt *ParseContext, immediate bool) (any, bool) {
			n := node.(*SystemModifierNode)
			texts := expandArgs(n.Arguments, cxt)
			if len(texts) < 2 {
				return nil, false
			}
			name, value := texts[0], texts[1]
			cxt.Config.ArgumentInterpolators().Add(&ArgumentInterpolator{
				Name: "$" + name,
				Expand: func(content string, cxt *ParseContext, immediate bool) (string, bool) {
					return value, true
				},
			})
			return nil, false
		},
	}
}
