package telemetry

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// DimensionID identifies one toggleable optimization dimension.
type DimensionID int

const (
	DimSpatial DimensionID = iota
	DimCacheOrder
	DimScheduler
	DimHierarchy
	DimPerception
	DimInfluence
	DimField
	DimBatching
	dimCount
)

var dimNames = [dimCount]string{
	"spatial",
	"cache_order",
	"scheduler",
	"hierarchy",
	"perception",
	"influence",
	"field",
	"batching",
}

func (d DimensionID) String() string {
	if d < 0 || d >= dimCount {
		return "unknown"
	}
	return dimNames[d]
}

// Dimensions lists every dimension in declaration order.
func Dimensions() []DimensionID {
	out := make([]DimensionID, dimCount)
	for i := range out {
		out[i] = DimensionID(i)
	}
	return out
}

// dimWindow keeps rolling per-tick samples for one dimension. The value is
// the dimension's work measure (candidates examined, boids updated, groups
// drawn), the baseline is what the same tick would have cost without the
// optimization.
type dimWindow struct {
	enabled  bool
	value    []float64
	baseline []float64
	write    int
	count    int
	calls    int64
}

func (w *dimWindow) record(value, baseline float64) {
	w.value[w.write] = value
	w.baseline[w.write] = baseline
	w.write = (w.write + 1) % len(w.value)
	if w.count < len(w.value) {
		w.count++
	}
	w.calls++
}

// Tracker accumulates per-dimension impact samples over a rolling window.
type Tracker struct {
	dims [dimCount]dimWindow
}

// NewTracker creates a tracker with the given window size in ticks.
func NewTracker(window int) *Tracker {
	if window < 1 {
		window = 120
	}
	t := &Tracker{}
	for i := range t.dims {
		t.dims[i].value = make([]float64, window)
		t.dims[i].baseline = make([]float64, window)
	}
	return t
}

// SetEnabled records whether the dimension is currently switched on. The
// tracker still accepts samples for disabled dimensions (their baseline
// equals their value then), the flag only annotates the snapshot.
func (t *Tracker) SetEnabled(d DimensionID, on bool) {
	t.dims[d].enabled = on
}

// Record adds one tick's sample for a dimension.
func (t *Tracker) Record(d DimensionID, value, baseline float64) {
	t.dims[d].record(value, baseline)
}

// DimensionStats is one dimension's aggregated window, flat for CSV export.
type DimensionStats struct {
	Tick         int64   `csv:"tick"`
	Dimension    string  `csv:"dimension"`
	Enabled      bool    `csv:"enabled"`
	Calls        int64   `csv:"calls"`
	MeanValue    float64 `csv:"mean_value"`
	StdDevValue  float64 `csv:"stddev_value"`
	MeanBaseline float64 `csv:"mean_baseline"`
	SavingsPct   float64 `csv:"savings_pct"`
}

// Snapshot aggregates every dimension's current window.
func (t *Tracker) Snapshot(tick int64) []DimensionStats {
	out := make([]DimensionStats, 0, dimCount)
	for i := range t.dims {
		w := &t.dims[i]
		s := DimensionStats{
			Tick:      tick,
			Dimension: DimensionID(i).String(),
			Enabled:   w.enabled,
			Calls:     w.calls,
		}
		if w.count > 0 {
			vals := w.value[:w.count]
			base := w.baseline[:w.count]
			s.MeanValue = stat.Mean(vals, nil)
			s.MeanBaseline = stat.Mean(base, nil)
			if w.count > 1 {
				s.StdDevValue = stat.StdDev(vals, nil)
			}
			if s.MeanBaseline > 0 {
				s.SavingsPct = (1 - s.MeanValue/s.MeanBaseline) * 100
			}
		}
		out = append(out, s)
	}
	return out
}

// Impact renders one dimension's current window as a short HUD string.
func (t *Tracker) Impact(d DimensionID) string {
	w := &t.dims[d]
	if !w.enabled {
		return "off"
	}
	if w.count == 0 {
		return "no samples"
	}
	vals := w.value[:w.count]
	base := w.baseline[:w.count]
	mv := stat.Mean(vals, nil)
	mb := stat.Mean(base, nil)
	if mb <= 0 {
		return fmt.Sprintf("%.0f", mv)
	}
	return fmt.Sprintf("%.0f vs %.0f (%.1f%% saved)", mv, mb, (1-mv/mb)*100)
}

// Reset drops all samples and call counts, keeping enabled flags.
func (t *Tracker) Reset() {
	for i := range t.dims {
		w := &t.dims[i]
		w.write, w.count, w.calls = 0, 0, 0
	}
}
