package emmm

import "testing"

func TestTokenStoreIsolatedByIdentity(t *testing.T) {
	cxt := NewParseContext(New())
	a := NewToken[int]()
	b := NewToken[int]()

	Init(cxt, a, 1)
	Init(cxt, b, 2)

	va, ok := Get(cxt, a)
	if !ok || va != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", va, ok)
	}
	vb, ok := Get(cxt, b)
	if !ok || vb != 2 {
		t.Fatalf("got (%d, %v), want (2, true)", vb, ok)
	}
}

func TestTokenGetBeforeInit(t *testing.T) {
	cxt := NewParseContext(New())
	tok := NewToken[string]()
	v, ok := Get(cxt, tok)
	if ok || v != "" {
		t.Fatalf("got (%q, %v), want (\"\", false) before Init", v, ok)
	}
}

func TestDelayDepthCounter(t *testing.T) {
	cxt := NewParseContext(New())
	if cxt.DelayDepth() != 0 {
		t.Fatalf("fresh context should start at delay depth 0")
	}
	cxt.enterDelay()
	cxt.enterDelay()
	if cxt.DelayDepth() != 2 {
		t.Fatalf("got delay depth %d, want 2", cxt.DelayDepth())
	}
	cxt.exitDelay()
	if cxt.DelayDepth() != 1 {
		t.Fatalf("got delay depth %d, want 1", cxt.DelayDepth())
	}
}

func TestRegistryNamesAreLongestFirst(t *testing.T) {
	c := New()
	c.BlockModifiers().Add(&ModifierDefinition{Name: "b", Kind: KindBlock, SlotType: SlotNone})
	c.BlockModifiers().Add(&ModifierDefinition{Name: "bold", Kind: KindBlock, SlotType: SlotNone})
	c.BlockModifiers().Add(&ModifierDefinition{Name: "bo", Kind: KindBlock, SlotType: SlotNone})

	names := c.BlockModifiers().names()
	if len(names) != 3 {
		t.Fatalf("got %d names, want 3", len(names))
	}
	for i := 1; i < len(names); i++ {
		if len(names[i-1]) < len(names[i]) {
			t.Fatalf("names %v are not in descending-length order", names)
		}
	}
}

func TestOnChangeFiresOnMutation(t *testing.T) {
	c := New()
	fired := 0
	c.OnChange(func() { fired++ })
	c.BlockModifiers().Add(&ModifierDefinition{Name: "x", Kind: KindBlock, SlotType: SlotNone})
	if fired != 1 {
		t.Fatalf("got %d OnChange calls, want 1", fired)
	}
	c.BlockModifiers().Remove("x")
	if fired != 2 {
		t.Fatalf("got %d OnChange calls after Remove, want 2", fired)
	}
}
