package telemetry

import (
	"strings"
	"testing"
)

func TestTracker_SnapshotAggregates(t *testing.T) {
	tr := NewTracker(10)
	tr.SetEnabled(DimSpatial, true)

	// Spatial grid examined 40, 60, 50 candidates against a naive 2000.
	tr.Record(DimSpatial, 40, 2000)
	tr.Record(DimSpatial, 60, 2000)
	tr.Record(DimSpatial, 50, 2000)

	snap := tr.Snapshot(300)
	if len(snap) != int(dimCount) {
		t.Fatalf("snapshot has %d rows, want %d", len(snap), dimCount)
	}

	var spatial DimensionStats
	for _, s := range snap {
		if s.Dimension == "spatial" {
			spatial = s
		}
	}

	if spatial.Tick != 300 || !spatial.Enabled || spatial.Calls != 3 {
		t.Errorf("spatial row = %+v", spatial)
	}
	if spatial.MeanValue != 50 {
		t.Errorf("mean value = %f, want 50", spatial.MeanValue)
	}
	if spatial.MeanBaseline != 2000 {
		t.Errorf("mean baseline = %f, want 2000", spatial.MeanBaseline)
	}
	if spatial.SavingsPct < 97 || spatial.SavingsPct > 98 {
		t.Errorf("savings = %f%%, want ~97.5", spatial.SavingsPct)
	}
	if spatial.StdDevValue <= 0 {
		t.Errorf("stddev = %f, want > 0", spatial.StdDevValue)
	}
}

func TestTracker_WindowRolls(t *testing.T) {
	tr := NewTracker(4)
	tr.SetEnabled(DimScheduler, true)

	// Old samples fall out once the window wraps.
	for i := 0; i < 4; i++ {
		tr.Record(DimScheduler, 1000, 1000)
	}
	for i := 0; i < 4; i++ {
		tr.Record(DimScheduler, 250, 1000)
	}

	snap := tr.Snapshot(0)
	var sched DimensionStats
	for _, s := range snap {
		if s.Dimension == "scheduler" {
			sched = s
		}
	}

	if sched.MeanValue != 250 {
		t.Errorf("rolled mean = %f, want 250", sched.MeanValue)
	}
	if sched.Calls != 8 {
		t.Errorf("calls = %d, want 8", sched.Calls)
	}
}

func TestTracker_EmptyAndDisabled(t *testing.T) {
	tr := NewTracker(10)

	snap := tr.Snapshot(0)
	for _, s := range snap {
		if s.MeanValue != 0 || s.SavingsPct != 0 || s.Calls != 0 {
			t.Errorf("empty tracker row not zeroed: %+v", s)
		}
	}

	if got := tr.Impact(DimField); got != "off" {
		t.Errorf("disabled impact = %q, want off", got)
	}
	tr.SetEnabled(DimField, true)
	if got := tr.Impact(DimField); got != "no samples" {
		t.Errorf("sampleless impact = %q, want no samples", got)
	}
}

func TestTracker_ImpactString(t *testing.T) {
	tr := NewTracker(10)
	tr.SetEnabled(DimHierarchy, true)
	tr.Record(DimHierarchy, 125, 2000)

	got := tr.Impact(DimHierarchy)
	if !strings.Contains(got, "125") || !strings.Contains(got, "2000") || !strings.Contains(got, "saved") {
		t.Errorf("impact string = %q", got)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker(10)
	tr.SetEnabled(DimBatching, true)
	tr.Record(DimBatching, 30, 2000)

	tr.Reset()
	snap := tr.Snapshot(0)
	for _, s := range snap {
		if s.Dimension == "batching" {
			if s.Calls != 0 || s.MeanValue != 0 {
				t.Errorf("reset did not clear samples: %+v", s)
			}
			if !s.Enabled {
				t.Error("reset cleared the enabled flag")
			}
		}
	}
}

func TestDimensionID_String(t *testing.T) {
	if DimCacheOrder.String() != "cache_order" {
		t.Errorf("DimCacheOrder = %q", DimCacheOrder.String())
	}
	if DimensionID(99).String() != "unknown" {
		t.Errorf("out-of-range id = %q", DimensionID(99).String())
	}
	if len(Dimensions()) != int(dimCount) {
		t.Errorf("Dimensions() has %d entries", len(Dimensions()))
	}
}
