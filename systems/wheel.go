package systems

import "github.com/mlange-42/ark/ecs"

// Wheel is a fixed-slot round-robin update scheduler (time wheel). Each
// inserted entity lives in exactly one slot, `index mod slotCount` by
// default, and fires once per full cycle. Promotion moves an entity into
// the current slot so it fires on this tick, leaving a gap in its natural
// slot for the remainder of the cycle.
type Wheel struct {
	Enabled bool

	slots    [][]ecs.Entity
	resident map[ecs.Entity]int // slot the entity currently lives in
	cursor   int
}

// NewWheel creates a wheel with the given slot count (minimum 1).
func NewWheel(slotCount int) *Wheel {
	if slotCount < 1 {
		slotCount = 1
	}
	return &Wheel{
		slots:    make([][]ecs.Entity, slotCount),
		resident: make(map[ecs.Entity]int),
	}
}

// SlotCount returns the number of slots.
func (w *Wheel) SlotCount() int { return len(w.slots) }

// Len returns the number of scheduled entities.
func (w *Wheel) Len() int { return len(w.resident) }

// Insert places an entity by its stable index. Re-inserting an entity that
// is already scheduled moves it back to its natural slot.
func (w *Wheel) Insert(e ecs.Entity, index int32) {
	if _, ok := w.resident[e]; ok {
		w.Remove(e)
	}
	slot := wrapIndex(int(index), len(w.slots))
	w.slots[slot] = append(w.slots[slot], e)
	w.resident[e] = slot
}

// Tick returns the entities in the current slot, then advances the cursor.
func (w *Wheel) Tick() []ecs.Entity {
	out := w.slots[w.cursor]
	w.cursor = (w.cursor + 1) % len(w.slots)
	return out
}

// IsActiveThisFrame reports whether the entity would fire on the next Tick,
// without advancing the cursor.
func (w *Wheel) IsActiveThisFrame(e ecs.Entity) bool {
	slot, ok := w.resident[e]
	return ok && slot == w.cursor
}

// Promote moves an entity into the current slot so it is returned by this
// tick's Tick call.
func (w *Wheel) Promote(e ecs.Entity) {
	slot, ok := w.resident[e]
	if !ok || slot == w.cursor {
		return
	}
	w.removeFromSlot(e, slot)
	w.slots[w.cursor] = append(w.slots[w.cursor], e)
	w.resident[e] = w.cursor
}

// Remove unschedules an entity. Returns false if it was not scheduled.
func (w *Wheel) Remove(e ecs.Entity) bool {
	slot, ok := w.resident[e]
	if !ok {
		return false
	}
	w.removeFromSlot(e, slot)
	delete(w.resident, e)
	return true
}

// removeFromSlot swap-deletes the entity from its slot bucket. The resident
// map guarantees the entity is present; a miss is an invariant violation.
func (w *Wheel) removeFromSlot(e ecs.Entity, slot int) {
	bucket := w.slots[slot]
	for i, item := range bucket {
		if item == e {
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			w.slots[slot] = bucket[:last]
			return
		}
	}
	panic("wheel: resident entity missing from its slot")
}

// Reset unschedules everything and rewinds the cursor.
func (w *Wheel) Reset() {
	for i := range w.slots {
		w.slots[i] = w.slots[i][:0]
	}
	w.resident = make(map[ecs.Entity]int)
	w.cursor = 0
}
