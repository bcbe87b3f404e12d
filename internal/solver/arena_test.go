package solver

import "testing"

func TestArenaAllocReturnsStableHandles(t *testing.T) {
	a := newArena[string](2)
	h1 := a.alloc("first")
	h2 := a.alloc("second")
	if h1 != 0 || h2 != 1 {
		t.Fatalf("expected sequential handles 0, 1, got %d, %d", h1, h2)
	}
	if *a.get(h1) != "first" || *a.get(h2) != "second" {
		t.Fatalf("get did not return the values stored at their handles")
	}
	if a.len() != 2 {
		t.Fatalf("expected len 2, got %d", a.len())
	}
}

func TestArenaHandleStableAcrossGrowth(t *testing.T) {
	a := newArena[int](1)
	h := a.alloc(42)
	for i := 0; i < 100; i++ {
		a.alloc(i)
	}
	if *a.get(h) != 42 {
		t.Fatalf("value at original handle changed after growth, got %d", *a.get(h))
	}
}
