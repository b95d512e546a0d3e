package emmm

import (
	"reflect"
	"testing"
)

func TestReferredMessageFlatten(t *testing.T) {
	inner := Message{Severity: Error, Location: NewRange("doc", 0, 1), Info: "boom", Code: CodeInvalidArgument}
	site := NewRange("doc", 5, 10)
	referred := Refer(inner, site)

	flat, chain := referred.Flatten()
	if !reflect.DeepEqual(flat, inner) {
		t.Fatalf("Flatten lost the inner message: got %#v, want %#v", flat, inner)
	}
	if len(chain) != 1 || chain[0] != site {
		t.Fatalf("got referral chain %v, want [%v]", chain, site)
	}
	if SeverityOf(referred) != Error {
		t.Fatalf("SeverityOf a ReferredMessage should see through to the inner severity")
	}
}

func TestMessagesAtOrAbove(t *testing.T) {
	doc := &Document{Messages: []AnyMessage{
		Message{Severity: Info, Info: "fyi"},
		Message{Severity: Warning, Info: "careful"},
		Message{Severity: Error, Info: "broken"},
	}}

	if got := len(doc.MessagesAtOrAbove(Warning)); got != 2 {
		t.Fatalf("got %d messages at or above Warning, want 2", got)
	}
	if !doc.HasErrors() {
		t.Fatalf("HasErrors should see the Error-severity message")
	}
}

func TestWrapReferralsNesting(t *testing.T) {
	cxt := NewParseContext(New())
	outer := NewRange("doc", 0, 1)
	inner := NewRange("doc", 2, 3)
	cxt.pushReferral(outer)
	cxt.pushReferral(inner)
	cxt.AddMessage(Message{Severity: Error, Info: "deep", Code: CodeExpected})
	cxt.popReferral()
	cxt.popReferral()

	msgs := cxt.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	_, chain := msgs[0].(ReferredMessage).Flatten()
	if len(chain) != 2 || chain[0] != outer || chain[1] != inner {
		t.Fatalf("got chain %v, want outermost-first [%v %v]", chain, outer, inner)
	}
}
