// Package emmm implements the EMMM markup language core: a scanner, a
// recursive-descent parser with an integrated modifier-expansion engine, and
// the configuration/diagnostics types that tie them together.
package emmm

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics the way a host should surface them:
// Error > Warning > Info.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Code identifies the kind of diagnostic. New codes may be added by host
// modifier definitions; the core only ever emits the ones listed here.
type Code string

const (
	CodeExpected                   Code = "Expected"
	CodeUnknownModifier             Code = "UnknownModifier"
	CodeUnclosedInlineModifier       Code = "UnclosedInlineModifier"
	CodeUnnecessaryNewline          Code = "UnnecessaryNewline"
	CodeNewBlockShouldBeOnNewline    Code = "NewBlockShouldBeOnNewline"
	CodeContentShouldBeOnNewline     Code = "ContentShouldBeOnNewline"
	CodeInvalidArgument              Code = "InvalidArgument"
	CodeArgumentCountMismatch        Code = "ArgumentCountMismatch"
	CodeNameAlreadyDefined           Code = "NameAlreadyDefined"
	CodeReachedReparseLimit          Code = "ReachedReparseLimit"
	CodeReferred                     Code = "Referred"
)

// SourceDescriptor names a source document (e.g. a filename). Opaque to the
// core; hosts may use any stable string.
type SourceDescriptor string

// LocationRange is a half-open character range [Start, End) inside Source.
//
// ActualEnd, when non-zero, marks the end of a modifier's content excluding
// a trailing closing tag — useful for editors that want to know where to
// place a cursor "inside" the node. Original is a slot for linking a range
// back to the writing that produced it; the parser and expander never set
// it, so it is nil on every range they build. Diagnostics raised inside
// generated content carry their expansion sites as ReferredMessage wrappers
// instead.
type LocationRange struct {
	Source    SourceDescriptor
	Start     int
	End       int
	ActualEnd int
	Original  *LocationRange
}

// NewRange builds a LocationRange with ActualEnd defaulting to End.
func NewRange(source SourceDescriptor, start, end int) LocationRange {
	return LocationRange{Source: source, Start: start, End: end, ActualEnd: end}
}

func (r LocationRange) String() string {
	return fmt.Sprintf("%s[%d:%d)", r.Source, r.Start, r.End)
}

// FixSuggestion is an optional, never-auto-applied edit a host may offer the
// user alongside a Message.
type FixSuggestion struct {
	Description string
	Apply       func(src string, cursor int) (newSrc string, newCursor int)
}

// Message is a single diagnostic. The core never aborts on a Message; every
// parse returns both a structural result and an accumulated []Message.
type Message struct {
	Severity Severity
	Location LocationRange
	Info     string
	Code     Code
	Fixes    []FixSuggestion
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s [%s] (%s)", m.Severity, m.Info, m.Code, m.Location)
}

// ReferredMessage wraps an inner diagnostic (a Message, or another
// ReferredMessage) with the range of the expansion site that produced the
// content the inner message was issued about. Chains of ReferredMessage
// model "this message was raised while expanding that site, which was
// itself expanded from that other site, ...".
type ReferredMessage struct {
	Inner    AnyMessage
	Referral LocationRange
}

// Unwrap returns the wrapped diagnostic, one step down the referral chain.
// ReferredMessage is not a Go error, so errors.As/errors.Is do not walk it.
func (r ReferredMessage) Unwrap() AnyMessage { return r.Inner }

// Flatten returns the innermost Message plus the full chain of referral
// locations from outermost to innermost.
func (r ReferredMessage) Flatten() (Message, []LocationRange) {
	chain := []LocationRange{r.Referral}
	cur := r.Inner
	for {
		rm, ok := cur.(ReferredMessage)
		if !ok {
			break
		}
		chain = append(chain, rm.Referral)
		cur = rm.Inner
	}
	return cur.(Message), chain
}

func (r ReferredMessage) String() string {
	inner, chain := r.Flatten()
	var b strings.Builder
	b.WriteString(inner.String())
	for _, loc := range chain {
		b.WriteString(" (referred from ")
		b.WriteString(loc.String())
		b.WriteString(")")
	}
	return b.String()
}

// AnyMessage is either a Message or a ReferredMessage. The core stores
// diagnostics as a slice of this interface rather than wrapping everything
// in ReferredMessage unconditionally, so the common, non-expanded case pays
// no allocation overhead.
type AnyMessage interface {
	String() string
}

// Refer wraps msg in a ReferredMessage attributing it to the expansion at
// site, chaining through any existing referral.
func Refer(msg AnyMessage, site LocationRange) ReferredMessage {
	switch msg.(type) {
	case Message, ReferredMessage:
		return ReferredMessage{Inner: msg, Referral: site}
	default:
		panic(fmt.Sprintf("emmm: unknown message type %T", msg))
	}
}

// SeverityOf returns the effective severity of any diagnostic value.
func SeverityOf(msg AnyMessage) Severity {
	switch m := msg.(type) {
	case Message:
		return m.Severity
	case ReferredMessage:
		return SeverityOf(m.Inner)
	default:
		return Info
	}
}
