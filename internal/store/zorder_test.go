package store

import "testing"

func TestZOrder_StrictlyIncreasing(t *testing.T) {
	var z ZOrder
	prev := z.Peek()
	for i := 0; i < 1000; i++ {
		v := z.Next()
		if v <= prev {
			t.Fatalf("call %d: got %d after %d", i, v, prev)
		}
		prev = v
	}
}

func TestZOrder_SeedAboveNeverLowers(t *testing.T) {
	var z ZOrder
	z.SeedAbove(40)
	if got := z.Next(); got != 41 {
		t.Fatalf("expected 41 after seeding 40, got %d", got)
	}
	z.SeedAbove(10)
	if got := z.Next(); got != 42 {
		t.Fatalf("seeding lower must not rewind; got %d", got)
	}
}
