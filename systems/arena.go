package systems

// Arena is a per-tick bump allocator for scratch vectors. The orchestrator
// resets it at the start of every tick; values handed out before the reset
// are garbage afterwards and must not be read across a frame boundary.
type Arena struct {
	buf    []Vec2
	cursor int
}

// NewArena creates an arena with the given initial capacity. The arena grows
// on demand, so steady-state ticks allocate nothing once it has warmed up.
func NewArena(capacity int) *Arena {
	if capacity < 1 {
		capacity = 64
	}
	return &Arena{buf: make([]Vec2, capacity)}
}

// Reset rewinds the cursor in O(1). Existing pointers become invalid.
func (a *Arena) Reset() {
	a.cursor = 0
}

// Alloc returns a zeroed scratch vector valid until the next Reset.
func (a *Arena) Alloc() *Vec2 {
	if a.cursor == len(a.buf) {
		a.buf = append(a.buf, Vec2{})
	}
	v := &a.buf[a.cursor]
	a.cursor++
	v.X, v.Y = 0, 0
	return v
}

// AllocXY returns a scratch vector initialized to (x, y).
func (a *Arena) AllocXY(x, y float32) *Vec2 {
	v := a.Alloc()
	v.X, v.Y = x, y
	return v
}

// InUse reports how many vectors are live since the last Reset.
func (a *Arena) InUse() int {
	return a.cursor
}
