package emmm

import (
	"io"
	"log"
	"os"
	"sort"
)

// registry is an ordered, name-indexed collection of modifier (or
// interpolator) definitions, following spec.md §3/§4.3: entries are unique
// by name, and a longest-name-first order is maintained for lookup so that
// e.g. a registered "emph" wins over "em" wherever both match (spec.md §8
// "Longest match").
type registry[T any] struct {
	byName map[string]T
	sorted []string // names, longest first
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{byName: map[string]T{}}
}

func (r *registry[T]) rebuild() {
	r.sorted = r.sorted[:0]
	for name := range r.byName {
		r.sorted = append(r.sorted, name)
	}
	sort.Slice(r.sorted, func(i, j int) bool {
		if len(r.sorted[i]) != len(r.sorted[j]) {
			return len(r.sorted[i]) > len(r.sorted[j])
		}
		return r.sorted[i] < r.sorted[j]
	})
}

func (r *registry[T]) add(name string, def T) { r.byName[name] = def; r.rebuild() }
func (r *registry[T]) remove(name string)     { delete(r.byName, name); r.rebuild() }
func (r *registry[T]) has(name string) bool   { _, ok := r.byName[name]; return ok }
func (r *registry[T]) get(name string) (T, bool) {
	v, ok := r.byName[name]
	return v, ok
}
func (r *registry[T]) entries() map[string]T {
	out := make(map[string]T, len(r.byName))
	for k, v := range r.byName {
		out[k] = v
	}
	return out
}
func (r *registry[T]) names() []string { return r.sorted }
func (r *registry[T]) clone() *registry[T] {
	c := newRegistry[T]()
	for k, v := range r.byName {
		c.byName[k] = v
	}
	c.rebuild()
	return c
}

// regLike is implemented by both *registry[T] (used internally, no
// notification) and *notifyingRegistry[T] (used by every registry accessor
// exposed on Configuration, so host mutation through the public API always
// fires onChange).
type regLike[T any] interface {
	add(name string, v T)
	remove(name string)
	has(name string) bool
	get(name string) (T, bool)
	entries() map[string]T
	names() []string
}

// ModifierRegistry exposes add/remove/has/get/entries over a modifier
// registry, per spec.md §6's programmatic interface.
type ModifierRegistry struct{ r regLike[*ModifierDefinition] }

func (m ModifierRegistry) Add(def *ModifierDefinition) { m.r.add(def.Name, def) }
func (m ModifierRegistry) Remove(name string)           { m.r.remove(name) }
func (m ModifierRegistry) Has(name string) bool         { return m.r.has(name) }
func (m ModifierRegistry) Get(name string) (*ModifierDefinition, bool) {
	return m.r.get(name)
}
func (m ModifierRegistry) Entries() map[string]*ModifierDefinition { return m.r.entries() }
func (m ModifierRegistry) names() []string                         { return m.r.names() }

// InterpolatorRegistry is the analogous registry for ArgumentInterpolator.
type InterpolatorRegistry struct{ r regLike[*ArgumentInterpolator] }

func (m InterpolatorRegistry) Add(def *ArgumentInterpolator) { m.r.add(def.Name, def) }
func (m InterpolatorRegistry) Remove(name string)              { m.r.remove(name) }
func (m InterpolatorRegistry) Has(name string) bool            { return m.r.has(name) }
func (m InterpolatorRegistry) Get(name string) (*ArgumentInterpolator, bool) {
	return m.r.get(name)
}
func (m InterpolatorRegistry) Entries() map[string]*ArgumentInterpolator { return m.r.entries() }
func (m InterpolatorRegistry) names() []string                          { return m.r.names() }

// ShorthandSet holds shorthands keyed by their opening literal (Name),
// longest-first, so paragraph scanning can try the longest candidate match
// first (spec.md §4.3 "Shorthand recognition").
type ShorthandSet struct{ r regLike[Shorthand] }

func (s ShorthandSet) Add(sh Shorthand)     { s.r.add(sh.Name, sh) }
func (s ShorthandSet) Has(name string) bool { return s.r.has(name) }
func (s ShorthandSet) Entries() map[string]Shorthand {
	return s.r.entries()
}
func (s ShorthandSet) names() []string { return s.r.names() }

// Configuration holds the four ordered registries plus the shorthand sets
// and reparse depth limit spec.md §3 describes. It follows go-org's
// Configuration shape (one struct of knobs + injected collaborators,
// constructed via New() and configured by chaining) generalized from a
// single grammar to EMMM's extensible one.
//
// Any mutation (Add/Remove on a registry, or a ShorthandSet addition) fires
// onChange, an observer callback rather than a back pointer from
// Configuration to Parser. Each registry also rebuilds its own
// longest-first name order on every mutation, so the parser keeps no
// prefix tables of its own and registers no callback.
type Configuration struct {
	blockModifiers        *registry[*ModifierDefinition]
	inlineModifiers       *registry[*ModifierDefinition]
	systemModifiers       *registry[*ModifierDefinition]
	argumentInterpolators *registry[*ArgumentInterpolator]
	blockShorthands       *registry[Shorthand]
	inlineShorthands      *registry[Shorthand]

	ReparseDepthLimit int

	// Log is a logger carried for host-visible warnings. Nothing in this
	// package writes to it: registry collisions are not logged, and parse
	// diagnostics are always returned as Message values, per spec.md §7.
	Log *log.Logger

	onChange func()
}

// New returns a Configuration with the defaults spec.md §3/§5 call for: an
// empty set of registries and ReparseDepthLimit 10.
func New() *Configuration {
	c := &Configuration{
		blockModifiers:        newRegistry[*ModifierDefinition](),
		inlineModifiers:       newRegistry[*ModifierDefinition](),
		systemModifiers:       newRegistry[*ModifierDefinition](),
		argumentInterpolators: newRegistry[*ArgumentInterpolator](),
		blockShorthands:       newRegistry[Shorthand](),
		inlineShorthands:      newRegistry[Shorthand](),
		ReparseDepthLimit:     10,
		Log:                   log.New(os.Stderr, "emmm: ", 0),
	}
	return c
}

// Silent discards the Log output, matching go-org's
// Configuration.Silent() chaining helper.
func (c *Configuration) Silent() *Configuration {
	c.Log = log.New(io.Discard, "", 0)
	return c
}

// OnChange registers a callback invoked after any registry mutation made
// through the public accessors. Only one callback is kept at a time; a
// second call replaces the first.
func (c *Configuration) OnChange(fn func()) { c.onChange = fn }

func (c *Configuration) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// BlockModifiers exposes the block-modifier registry.
func (c *Configuration) BlockModifiers() ModifierRegistry {
	return ModifierRegistry{&notifyingRegistry[*ModifierDefinition]{c.blockModifiers, c.notify}}
}

// InlineModifiers exposes the inline-modifier registry.
func (c *Configuration) InlineModifiers() ModifierRegistry {
	return ModifierRegistry{&notifyingRegistry[*ModifierDefinition]{c.inlineModifiers, c.notify}}
}

// SystemModifiers exposes the system-modifier registry.
func (c *Configuration) SystemModifiers() ModifierRegistry {
	return ModifierRegistry{&notifyingRegistry[*ModifierDefinition]{c.systemModifiers, c.notify}}
}

// ArgumentInterpolators exposes the interpolator registry.
func (c *Configuration) ArgumentInterpolators() InterpolatorRegistry {
	return InterpolatorRegistry{&notifyingRegistry[*ArgumentInterpolator]{c.argumentInterpolators, c.notify}}
}

// BlockShorthands exposes the block shorthand set.
func (c *Configuration) BlockShorthands() ShorthandSet {
	return ShorthandSet{&notifyingRegistry[Shorthand]{c.blockShorthands, c.notify}}
}

// InlineShorthands exposes the inline shorthand set.
func (c *Configuration) InlineShorthands() ShorthandSet {
	return ShorthandSet{&notifyingRegistry[Shorthand]{c.inlineShorthands, c.notify}}
}

// notifyingRegistry wraps *registry[T] so every Add/Remove through the
// public accessors above also fires Configuration.onChange, without every
// public method on ModifierRegistry/InterpolatorRegistry/ShorthandSet
// needing to know about notification itself.
type notifyingRegistry[T any] struct {
	inner  *registry[T]
	notify func()
}

func (n *notifyingRegistry[T]) rebuild()              { n.inner.rebuild() }
func (n *notifyingRegistry[T]) add(name string, v T)  { n.inner.add(name, v); n.notify() }
func (n *notifyingRegistry[T]) remove(name string)    { n.inner.remove(name); n.notify() }
func (n *notifyingRegistry[T]) has(name string) bool  { return n.inner.has(name) }
func (n *notifyingRegistry[T]) get(name string) (T, bool) { return n.inner.get(name) }
func (n *notifyingRegistry[T]) entries() map[string]T { return n.inner.entries() }
func (n *notifyingRegistry[T]) names() []string       { return n.inner.names() }

// From returns a shallow clone of other: fresh registries with copied
// entries, so subsequent mutation of either Configuration never affects the
// other (spec.md §5, §8 "Idempotent configuration cloning").
func From(other *Configuration) *Configuration {
	c := &Configuration{
		blockModifiers:        other.blockModifiers.clone(),
		inlineModifiers:       other.inlineModifiers.clone(),
		systemModifiers:       other.systemModifiers.clone(),
		argumentInterpolators: other.argumentInterpolators.clone(),
		blockShorthands:       other.blockShorthands.clone(),
		inlineShorthands:      other.inlineShorthands.clone(),
		ReparseDepthLimit:     other.ReparseDepthLimit,
		Log:                   other.Log,
	}
	return c
}

// Token is an opaque, identity-compared key into a ParseContext's typed
// store (spec.md §3/§9). T documents, at the call site, the payload type
// the minter expects to store/retrieve — the store itself is untyped
// (map[*Token]any) since Go generics can't parameterize a heterogeneous
// map, but NewToken/Get/Init give each caller a type-safe wrapper.
type Token[T any] struct{ _ byte }

// NewToken mints a fresh, globally unique Token[T]. Two tokens are the same
// key if and only if they are the same pointer — minting a second Token[T]
// never collides with the first, by construction.
func NewToken[T any]() *Token[T] { return &Token[T]{} }

// ParseContext owns a live Configuration, the delay-depth counter, and the
// typed context store for one parse (spec.md §3/§5: "exclusively owned by
// one Parser instance for the lifetime of a parse").
type ParseContext struct {
	Config     *Configuration
	delayDepth int
	store      map[any]any
	referrals  []LocationRange
	messages   []AnyMessage
}

// NewParseContext creates a ParseContext over the given (already owned)
// Configuration.
func NewParseContext(config *Configuration) *ParseContext {
	return &ParseContext{Config: config, store: map[any]any{}}
}

// Init stores payload under token, the capability-style store.Init API
// spec.md §6/§9 describes. Re-Init of the same token overwrites.
func Init[T any](cxt *ParseContext, token *Token[T], payload T) {
	cxt.store[token] = payload
}

// Get retrieves the payload stored under token, or the zero value of T and
// false if Init was never called for it.
func Get[T any](cxt *ParseContext, token *Token[T]) (T, bool) {
	v, ok := cxt.store[token]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// DelayDepth returns the current delay-depth counter (spec.md §4.3 "Delay
// discipline", §9 "Lazy vs eager expansion").
func (cxt *ParseContext) DelayDepth() int { return cxt.delayDepth }

func (cxt *ParseContext) enterDelay() { cxt.delayDepth++ }
func (cxt *ParseContext) exitDelay()  { cxt.delayDepth-- }

func (cxt *ParseContext) pushReferral(loc LocationRange) {
	cxt.referrals = append(cxt.referrals, loc)
}
func (cxt *ParseContext) popReferral() {
	cxt.referrals = cxt.referrals[:len(cxt.referrals)-1]
}

// AddMessage records m, wrapping it in the current referral chain (so
// diagnostics raised while reparsing generated content point back to the
// expansion site that produced it, per spec.md §7).
func (cxt *ParseContext) AddMessage(m Message) {
	cxt.messages = append(cxt.messages, cxt.wrapReferrals(m))
}

// Messages returns every diagnostic recorded on this context so far.
func (cxt *ParseContext) Messages() []AnyMessage { return cxt.messages }

// wrapReferrals wraps msg in a ReferredMessage for every currently-pushed
// referral frame, outermost first, per spec.md §7 ("messages emitted while
// expanding generated content are wrapped ... for each enclosing expansion
// frame").
func (cxt *ParseContext) wrapReferrals(msg Message) AnyMessage {
	var out AnyMessage = msg
	for i := len(cxt.referrals) - 1; i >= 0; i-- {
		out = Refer(out, cxt.referrals[i])
	}
	return out
}
