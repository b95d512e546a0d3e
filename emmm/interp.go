package emmm

import "unicode"

// bindingsToken holds the stack of argument-name -> expanded-text frames
// live while reparsing a compiled define-*/shorthand template (emmm/define.go).
// The two built-in interpolators below consult the top frame; this is how
// "$x"/"$(x)" resolve against *this particular invocation's* arguments even
// though ArgumentInterpolator registrations are global to a Configuration,
// per spec.md §4.5's "argument interpolators as first-class definitions".
var bindingsToken = NewToken[[]map[string]string]()

// PushBindings pushes a new binding frame, consulted by $name/$(name) until
// PopBindings is called. Exported so builtin modifier families that add
// their own templated definitions (not just the core define-* mechanism)
// can reuse the same interpolators.
func PushBindings(cxt *ParseContext, frame map[string]string) {
	stack, _ := Get(cxt, bindingsToken)
	Init(cxt, bindingsToken, append(stack, frame))
}

// PopBindings removes the most recently pushed binding frame.
func PopBindings(cxt *ParseContext) {
	stack, _ := Get(cxt, bindingsToken)
	if len(stack) == 0 {
		return
	}
	Init(cxt, bindingsToken, stack[:len(stack)-1])
}

func lookupBinding(cxt *ParseContext, name string) (string, bool) {
	stack, _ := Get(cxt, bindingsToken)
	for i := len(stack) - 1; i >= 0; i-- {
		if v, ok := stack[i][name]; ok {
			return v, true
		}
	}
	return "", false
}

// registerCoreInterpolators installs the two interpolator forms spec.md
// §4.4/§4.5 names: the balanced `$(name)` form and the bare `$name` form.
// Both resolve against the current binding frame pushed by a compiled
// define-*/shorthand invocation (emmm/define.go); `-var` registers
// additional, separate, fixed-value interpolators alongside these.
func registerCoreInterpolators(c *Configuration) {
	c.ArgumentInterpolators().Add(&ArgumentInterpolator{
		Name:    "$(",
		Postfix: ")",
		Expand: func(content string, cxt *ParseContext, immediate bool) (string, bool) {
			return lookupBinding(cxt, content)
		},
	})
	c.ArgumentInterpolators().Add(&ArgumentInterpolator{
		Name: "$",
		Bare: true,
		Expand: func(content string, cxt *ParseContext, immediate bool) (string, bool) {
			return lookupBinding(cxt, content)
		},
	})
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// ExpandArgument computes (and caches) the fully-expanded textual value of
// arg: each ArgText/ArgEscaped entity contributes its literal content, each
// ArgInterpolation entity contributes its interpolator's expansion, or (if
// the interpolator declined, i.e. the name isn't currently bound) the
// original `name+content+postfix` verbatim, per spec.md §4.5's description
// of unresolved interpolators staying in place.
func ExpandArgument(arg *ModifierArgument, cxt *ParseContext) string {
	if v, ok := arg.Expansion(); ok {
		return v
	}
	var out []byte
	for _, e := range arg.Entities {
		switch ent := e.(type) {
		case *ArgText:
			out = append(out, ent.Content...)
		case *ArgEscaped:
			out = append(out, ent.Content...)
		case *ArgInterpolation:
			if ent.Expansion != nil {
				out = append(out, *ent.Expansion...)
				continue
			}
			def, ok := cxt.Config.ArgumentInterpolators().Get(ent.Name)
			expanded := ""
			resolved := false
			if ok && def.Expand != nil {
				expanded, resolved = def.Expand(ent.Content.raw(), cxt, true)
			}
			if resolved {
				ent.Expansion = &expanded
				out = append(out, expanded...)
			} else {
				out = append(out, ent.Name...)
				out = append(out, ent.Content.raw()...)
				if def != nil && !def.Bare {
					out = append(out, def.Postfix...)
				}
			}
		}
	}
	s := string(out)
	arg.SetExpansion(s)
	return s
}

// raw reconstructs the literal text an argument's entities came from,
// ignoring any interpolation — used as the fallback when an interpolator
// used inside an interpolator's own captured content (itself a
// ModifierArgument, per spec.md §3 "balanced textual constructs") declines
// to resolve.
func (a ModifierArgument) raw() string {
	var out []byte
	for _, e := range a.Entities {
		switch ent := e.(type) {
		case *ArgText:
			out = append(out, ent.Content...)
		case *ArgEscaped:
			out = append(out, ent.Content...)
		case *ArgInterpolation:
			out = append(out, ent.Name...)
			out = append(out, ent.Content.raw()...)
		}
	}
	return string(out)
}
