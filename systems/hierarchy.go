package systems

import "github.com/mlange-42/ark/ecs"

// Scheduler levels, fastest first.
const (
	LevelFast = iota
	LevelMedium
	LevelSlow
	levelCount
)

// Per-level wheel sizes and cascade ratios: the fast wheel ticks every call,
// the medium wheel once per 16 fast ticks, the slow wheel once per 8 medium
// ticks (once per 128 fast ticks).
var (
	levelSlots  = [levelCount]int{16, 8, 4}
	levelRatios = [levelCount]int{1, 16, 8}
)

// Activity is the per-entity record driving promotion/demotion.
type Activity struct {
	Level           int
	AvgSpeed        float32 // exponentially smoothed speed
	StallTicks      int     // consecutive low-activity ticks
	NearInteraction bool
}

// Hierarchy cascades three time wheels of decreasing frequency and migrates
// entities between them based on smoothed activity. An entity always resides
// in exactly one wheel, and its Activity.Level matches that wheel: level
// moves remove from the old wheel before inserting into the new one.
//
// Thresholds are caller-supplied and unvalidated; a zero or negative
// SlowAfter demotes every idle entity straight to the slowest level.
type Hierarchy struct {
	Enabled bool

	// FastSpeed is the smoothed speed at/above which an entity stays fast.
	FastSpeed float32
	// MediumAfter / SlowAfter are stall-tick counts before demotion.
	MediumAfter int
	SlowAfter   int

	wheels   [levelCount]*Wheel
	counters [levelCount]int
	activity map[ecs.Entity]*Activity

	out []ecs.Entity // reused Tick result buffer
}

// NewHierarchy creates a hierarchy with the standard 16/8/4 wheel layout.
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{activity: make(map[ecs.Entity]*Activity)}
	for i := range h.wheels {
		h.wheels[i] = NewWheel(levelSlots[i])
	}
	return h
}

// Len returns the number of scheduled entities.
func (h *Hierarchy) Len() int { return len(h.activity) }

// Insert schedules an entity at the given level.
func (h *Hierarchy) Insert(e ecs.Entity, index int32, level int) {
	if level < LevelFast || level >= levelCount {
		level = LevelFast
	}
	if rec, ok := h.activity[e]; ok {
		h.wheels[rec.Level].Remove(e)
		rec.Level = level
	} else {
		h.activity[e] = &Activity{Level: level}
	}
	h.wheels[level].Insert(e, index)
}

// InsertAll schedules a batch of entities at the given level. The indices
// slice is parallel to items.
func (h *Hierarchy) InsertAll(items []ecs.Entity, indices []int32, level int) {
	for i, e := range items {
		h.Insert(e, indices[i], level)
	}
}

// Remove unschedules an entity from whichever level holds it.
func (h *Hierarchy) Remove(e ecs.Entity) bool {
	rec, ok := h.activity[e]
	if !ok {
		return false
	}
	h.wheels[rec.Level].Remove(e)
	delete(h.activity, e)
	return true
}

// Tick returns the union of entities from every level that fires this call.
// The fast level always fires; a higher level fires only when its feeder
// level has completed its ratio, at which point the feeder counter resets.
func (h *Hierarchy) Tick() []ecs.Entity {
	h.out = h.out[:0]
	h.out = append(h.out, h.wheels[LevelFast].Tick()...)

	h.counters[LevelFast]++
	if h.counters[LevelFast] >= levelRatios[LevelMedium] {
		h.counters[LevelFast] = 0
		h.out = append(h.out, h.wheels[LevelMedium].Tick()...)

		h.counters[LevelMedium]++
		if h.counters[LevelMedium] >= levelRatios[LevelSlow] {
			h.counters[LevelMedium] = 0
			h.out = append(h.out, h.wheels[LevelSlow].Tick()...)
		}
	}
	return h.out
}

// UpdateActivity folds the entity's current speed into its smoothed average,
// recomputes its target level, and migrates it if the target differs.
// nearPointer/nearBlast mark proximity to the two interaction sources; either
// one pins the entity to the fast level.
func (h *Hierarchy) UpdateActivity(e ecs.Entity, index int32, speed float32, nearPointer, nearBlast bool) {
	rec, ok := h.activity[e]
	if !ok {
		return
	}

	rec.AvgSpeed = rec.AvgSpeed*0.9 + speed*0.1
	rec.NearInteraction = nearPointer || nearBlast

	target := rec.Level
	if rec.NearInteraction || rec.AvgSpeed >= h.FastSpeed {
		rec.StallTicks = 0
		target = LevelFast
	} else {
		rec.StallTicks++
		switch {
		case rec.StallTicks >= h.SlowAfter:
			target = LevelSlow
		case rec.StallTicks >= h.MediumAfter:
			target = LevelMedium
		}
	}

	if target != rec.Level {
		h.wheels[rec.Level].Remove(e)
		h.wheels[target].Insert(e, index)
		rec.Level = target
	}
}

// Promote forces immediate placement at the fastest level, firing on this
// tick, and resets the stall counter.
func (h *Hierarchy) Promote(e ecs.Entity, index int32) {
	rec, ok := h.activity[e]
	if !ok {
		return
	}
	rec.StallTicks = 0
	if rec.Level != LevelFast {
		h.wheels[rec.Level].Remove(e)
		h.wheels[LevelFast].Insert(e, index)
		rec.Level = LevelFast
	}
	h.wheels[LevelFast].Promote(e)
}

// Level returns the entity's current level, or -1 if unscheduled.
func (h *Hierarchy) Level(e ecs.Entity) int {
	rec, ok := h.activity[e]
	if !ok {
		return -1
	}
	return rec.Level
}

// HierarchyStats summarizes scheduler occupancy.
type HierarchyStats struct {
	Counts [levelCount]int
	// CapacityMultiplier is the population-weighted mean of each level's
	// effective update-frequency divisor (fast 16, medium 128, slow 512):
	// roughly how many boids fit in the budget of one full-rate boid.
	CapacityMultiplier float64
}

// Stats computes per-level counts and the average capacity multiplier.
func (h *Hierarchy) Stats() HierarchyStats {
	var s HierarchyStats
	divisors := [levelCount]float64{16, 128, 512}

	total := 0
	weighted := 0.0
	for _, rec := range h.activity {
		s.Counts[rec.Level]++
	}
	for level, count := range s.Counts {
		total += count
		weighted += float64(count) * divisors[level]
	}
	if total > 0 {
		s.CapacityMultiplier = weighted / float64(total)
	}
	return s
}

// Reset unschedules everything and rewinds all counters.
func (h *Hierarchy) Reset() {
	for i := range h.wheels {
		h.wheels[i].Reset()
		h.counters[i] = 0
	}
	h.activity = make(map[ecs.Entity]*Activity)
	h.out = h.out[:0]
}
