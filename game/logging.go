package game

import (
	"log/slog"

	"github.com/pthm-cable/flock/telemetry"
)

// logOutputError reports a telemetry output failure without stopping the
// simulation; losing a CSV row is not worth a crash.
func logOutputError(action string, err error) {
	slog.Error("telemetry output failed", "action", action, "error", err)
}

// flushTelemetry writes the rolling windows out every report interval.
func (g *Game) flushTelemetry() {
	every := g.cfg.Telemetry.ReportEvery
	if every <= 0 || g.tick == 0 || g.tick%int64(every) != 0 {
		return
	}

	snapshot := g.tracker.Snapshot(g.tick)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		g.logTickStats(perfStats.TicksPerSecond)
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteMetrics(snapshot); err != nil {
			logOutputError("writing metrics", err)
		}
		if err := g.outputManager.WritePerf(perfStats, g.tick); err != nil {
			logOutputError("writing perf", err)
		}
	}
}

// logTickStats emits one structured line summarizing the simulation state.
func (g *Game) logTickStats(ticksPerSec float64) {
	attrs := []any{
		"tick", g.tick,
		"population", len(g.byIndex),
		"ticks_per_sec", int(ticksPerSec),
	}

	if g.mode == schedHierarchy {
		hs := g.hierarchy.Stats()
		attrs = append(attrs,
			"fast", hs.Counts[0],
			"medium", hs.Counts[1],
			"slow", hs.Counts[2],
			"capacity_multiplier", hs.CapacityMultiplier,
		)
	}

	for _, d := range activeDimensionLabels(g) {
		attrs = append(attrs, d.name, d.impact)
	}

	slog.Info("stats", attrs...)
}

type dimensionLabel struct {
	name   string
	impact string
}

// activeDimensionLabels collects impact strings for the enabled dimensions.
func activeDimensionLabels(g *Game) []dimensionLabel {
	var out []dimensionLabel
	for _, id := range g.enabledDimensions() {
		out = append(out, dimensionLabel{name: id.String(), impact: g.tracker.Impact(id)})
	}
	return out
}

// enabledDimensions lists the dimensions that are switched on right now.
func (g *Game) enabledDimensions() []telemetry.DimensionID {
	var out []telemetry.DimensionID
	add := func(id telemetry.DimensionID, on bool) {
		if on {
			out = append(out, id)
		}
	}
	add(telemetry.DimSpatial, g.grid.Enabled)
	add(telemetry.DimCacheOrder, g.cacheOrder.Enabled)
	add(telemetry.DimScheduler, g.mode == schedWheel)
	add(telemetry.DimHierarchy, g.mode == schedHierarchy)
	add(telemetry.DimPerception, g.dirFilter.Enabled)
	add(telemetry.DimInfluence, g.falloff.Enabled)
	add(telemetry.DimField, g.field.Enabled)
	add(telemetry.DimBatching, g.batcher.Enabled)
	return out
}
