package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
)

func newTestHierarchy() *Hierarchy {
	h := NewHierarchy()
	h.FastSpeed = 10
	h.MediumAfter = 4
	h.SlowAfter = 16
	return h
}

func TestHierarchy_FastLevelAlwaysTicks(t *testing.T) {
	entities := spawn(t, 16)
	h := newTestHierarchy()
	for i, e := range entities {
		h.Insert(e, int32(i), LevelFast)
	}

	// 16 slots, one index per slot: every tick fires exactly one entity,
	// and a full 16-tick cycle covers all of them.
	seen := map[ecs.Entity]int{}
	for tick := 0; tick < 16; tick++ {
		fired := h.Tick()
		if len(fired) != 1 {
			t.Fatalf("tick %d fired %d entities, want 1", tick, len(fired))
		}
		seen[fired[0]]++
	}
	if len(seen) != 16 {
		t.Errorf("distinct fired = %d, want 16", len(seen))
	}
}

func TestHierarchy_CascadeRatios(t *testing.T) {
	entities := spawn(t, 3)
	h := newTestHierarchy()
	h.Insert(entities[0], 0, LevelFast)
	h.Insert(entities[1], 0, LevelMedium)
	h.Insert(entities[2], 0, LevelSlow)

	var medFires, slowFires int
	for tick := 0; tick < 1024; tick++ {
		for _, e := range h.Tick() {
			switch e {
			case entities[1]:
				medFires++
			case entities[2]:
				slowFires++
			}
		}
	}

	// Medium wheel ticks every 16 fast ticks and has 8 slots: the entity
	// fires once per 128 fast ticks. Slow: once per 512.
	if medFires != 1024/128 {
		t.Errorf("medium entity fired %d times, want %d", medFires, 1024/128)
	}
	if slowFires != 1024/512 {
		t.Errorf("slow entity fired %d times, want %d", slowFires, 1024/512)
	}
}

func TestHierarchy_ActivityDemotesIdleEntities(t *testing.T) {
	entities := spawn(t, 1)
	h := newTestHierarchy()
	h.Insert(entities[0], 0, LevelFast)

	// Sustained low speed walks the entity down the levels.
	for i := 0; i < h.MediumAfter; i++ {
		h.UpdateActivity(entities[0], 0, 0.1, false, false)
	}
	if got := h.Level(entities[0]); got != LevelMedium {
		t.Fatalf("level after %d idle ticks = %d, want medium", h.MediumAfter, got)
	}

	for i := h.MediumAfter; i < h.SlowAfter; i++ {
		h.UpdateActivity(entities[0], 0, 0.1, false, false)
	}
	if got := h.Level(entities[0]); got != LevelSlow {
		t.Fatalf("level after %d idle ticks = %d, want slow", h.SlowAfter, got)
	}
}

func TestHierarchy_HighSpeedPromotesToFast(t *testing.T) {
	entities := spawn(t, 1)
	h := newTestHierarchy()
	h.Insert(entities[0], 0, LevelSlow)

	// A burst of speed lifts the smoothed average past the threshold.
	for i := 0; i < 50; i++ {
		h.UpdateActivity(entities[0], 0, 100, false, false)
	}
	if got := h.Level(entities[0]); got != LevelFast {
		t.Errorf("level after sustained high speed = %d, want fast", got)
	}
}

func TestHierarchy_NearInteractionPinsFast(t *testing.T) {
	entities := spawn(t, 1)
	h := newTestHierarchy()
	h.Insert(entities[0], 0, LevelSlow)

	h.UpdateActivity(entities[0], 0, 0, true, false)
	if got := h.Level(entities[0]); got != LevelFast {
		t.Errorf("level with near-interaction = %d, want fast", got)
	}
}

func TestHierarchy_LevelAlwaysMatchesResidence(t *testing.T) {
	// The recorded level must track the wheel the entity actually lives in:
	// across a demote/promote cycle the entity fires from exactly one wheel.
	entities := spawn(t, 1)
	h := newTestHierarchy()
	h.Insert(entities[0], 0, LevelFast)

	for i := 0; i < h.SlowAfter; i++ {
		h.UpdateActivity(entities[0], 0, 0.1, false, false)
	}
	h.Promote(entities[0], 0)

	fires := 0
	for tick := 0; tick < 512; tick++ {
		for _, e := range h.Tick() {
			if e == entities[0] {
				fires++
			}
		}
	}
	// Promotion placed it in the fast wheel's current slot; with 16 slots it
	// fires 512/16 = 32 times. Duplicate residence would roughly double that.
	if fires != 32 {
		t.Errorf("entity fired %d times over 512 ticks, want 32", fires)
	}
}

func TestHierarchy_ZeroSlowThresholdDemotesEverything(t *testing.T) {
	entities := spawn(t, 1)
	h := newTestHierarchy()
	h.SlowAfter = 0
	h.Insert(entities[0], 0, LevelFast)

	h.UpdateActivity(entities[0], 0, 0.1, false, false)
	if got := h.Level(entities[0]); got != LevelSlow {
		t.Errorf("level with zero slow threshold = %d, want slow", got)
	}
}

func TestHierarchy_Stats(t *testing.T) {
	entities := spawn(t, 4)
	h := newTestHierarchy()
	h.Insert(entities[0], 0, LevelFast)
	h.Insert(entities[1], 1, LevelFast)
	h.Insert(entities[2], 2, LevelMedium)
	h.Insert(entities[3], 3, LevelSlow)

	s := h.Stats()
	if s.Counts[LevelFast] != 2 || s.Counts[LevelMedium] != 1 || s.Counts[LevelSlow] != 1 {
		t.Errorf("counts = %v, want [2 1 1]", s.Counts)
	}

	// (2*16 + 1*128 + 1*512) / 4 = 168
	if s.CapacityMultiplier != 168 {
		t.Errorf("capacity multiplier = %f, want 168", s.CapacityMultiplier)
	}
}

func TestHierarchy_RemoveUnschedules(t *testing.T) {
	entities := spawn(t, 2)
	h := newTestHierarchy()
	h.Insert(entities[0], 0, LevelFast)
	h.Insert(entities[1], 1, LevelFast)

	if !h.Remove(entities[0]) {
		t.Fatal("Remove returned false for a scheduled entity")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
	for tick := 0; tick < 16; tick++ {
		for _, e := range h.Tick() {
			if e == entities[0] {
				t.Error("removed entity still fired")
			}
		}
	}
}
