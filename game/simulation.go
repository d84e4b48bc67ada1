package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
)

// step runs a single tick of the simulation.
func (g *Game) step() {
	pc := g.perfCollector
	pc.StartTick()

	pc.StartPhase(telemetry.PhaseSync)
	g.arena.Reset()
	g.syncDimensions()

	pc.StartPhase(telemetry.PhaseSchedule)
	active := g.selectActive()

	pc.StartPhase(telemetry.PhaseIndex)
	g.rebuildIndex()

	pc.StartPhase(telemetry.PhaseNeighbors)
	g.gatherNeighbors(active)

	pc.StartPhase(telemetry.PhaseForces)
	g.accumulateForces(active)

	pc.StartPhase(telemetry.PhaseIntegrate)
	g.integrate()

	pc.StartPhase(telemetry.PhaseActivity)
	g.updateActivity(active)

	pc.StartPhase(telemetry.PhaseRenderBatch)
	g.classifyBatches()

	pc.StartPhase(telemetry.PhaseTelemetry)
	g.recordSchedulerMetrics(len(active))
	g.flushTelemetry()
	pc.EndTick()

	if g.blastTicks > 0 {
		g.blastTicks--
	}
	g.tick++
}

// syncDimensions is the single point where configuration reaches the
// dimensions. Each tick reads the toggles exactly once; no dimension
// consults the config on its own.
func (g *Game) syncDimensions() {
	opt := &g.cfg.Optimizations
	d := &g.cfg.Derived

	g.grid.Enabled = opt.Spatial.Enabled
	g.grid.Resize(float32(opt.Spatial.CellSize), d.WorldW32, d.WorldH32)

	// Morton traversal only means anything on top of the grid.
	g.cacheOrder.Enabled = opt.CacheOrder.Enabled && opt.Spatial.Enabled

	// Hierarchy takes precedence over the flat wheel when both are on.
	mode := schedAll
	switch {
	case opt.Hierarchy.Enabled:
		mode = schedHierarchy
	case opt.Scheduler.Enabled:
		mode = schedWheel
	}

	if opt.Scheduler.Slots != g.wheelSlots {
		g.wheelSlots = opt.Scheduler.Slots
		g.wheel = systems.NewWheel(g.wheelSlots)
		if g.mode == schedWheel && mode == schedWheel {
			for i, e := range g.byIndex {
				g.wheel.Insert(e, int32(i))
			}
		}
	}
	g.setMode(mode)

	g.wheel.Enabled = mode == schedWheel
	g.hierarchy.Enabled = mode == schedHierarchy
	g.hierarchy.FastSpeed = float32(opt.Hierarchy.ActivityThreshold)
	g.hierarchy.MediumAfter = opt.Hierarchy.MediumAfter
	g.hierarchy.SlowAfter = opt.Hierarchy.SlowAfter

	g.dirFilter.Enabled = opt.Perception.Enabled
	g.dirFilter.FOV = d.FOVRad
	g.dirFilter.BlindSpot = d.BlindRad

	g.falloff.Enabled = opt.Influence.Enabled
	g.falloff.Steepness = float32(opt.Influence.Steepness)

	if !g.fieldLoaded || opt.Field != g.lastFieldCfg {
		g.rebuildField()
	}
	g.field.Enabled = opt.Field.Enabled

	g.batcher.Enabled = opt.Batching.Enabled

	g.tracker.SetEnabled(telemetry.DimSpatial, g.grid.Enabled)
	g.tracker.SetEnabled(telemetry.DimCacheOrder, g.cacheOrder.Enabled)
	g.tracker.SetEnabled(telemetry.DimScheduler, mode == schedWheel)
	g.tracker.SetEnabled(telemetry.DimHierarchy, mode == schedHierarchy)
	g.tracker.SetEnabled(telemetry.DimPerception, g.dirFilter.Enabled)
	g.tracker.SetEnabled(telemetry.DimInfluence, g.falloff.Enabled)
	g.tracker.SetEnabled(telemetry.DimField, g.field.Enabled)
	g.tracker.SetEnabled(telemetry.DimBatching, g.batcher.Enabled)
}

// setMode hands the population over to a different scheduling structure.
// The old structure is reset, not drained, so toggling is O(n) either way.
func (g *Game) setMode(mode schedMode) {
	if mode == g.mode {
		return
	}

	g.wheel.Reset()
	g.hierarchy.Reset()

	switch mode {
	case schedWheel:
		for i, e := range g.byIndex {
			g.wheel.Insert(e, int32(i))
		}
	case schedHierarchy:
		for i, e := range g.byIndex {
			g.hierarchy.Insert(e, int32(i), systems.LevelFast)
		}
	}
	g.mode = mode
}

// rebuildField replays every configured overlay from a cleared field. Any
// parameter change rebuilds the whole field; overlays are additive, so the
// replay order does not matter.
func (g *Game) rebuildField() {
	fc := &g.cfg.Optimizations.Field
	d := &g.cfg.Derived

	if fc.Cols != g.field.Cols() || fc.Rows != g.field.Rows() {
		g.field = systems.NewForceField(fc.Cols, fc.Rows, d.WorldW32, d.WorldH32)
	}

	g.field.Clear()
	g.field.AddWind(d.WindRad, float32(fc.WindStrength))

	cx, cy := d.WorldW32/2, d.WorldH32/2
	g.field.AddThermal(cx, cy, float32(fc.ThermalRadius), float32(fc.ThermalStrength))
	g.field.AddVortex(cx, cy, float32(fc.VortexRadius), float32(fc.VortexStrength))
	g.field.AddTurbulence(float32(fc.TurbulenceScale), float32(fc.TurbulenceStrength), fc.Seed)

	g.lastFieldCfg = *fc
	g.fieldLoaded = true
}

// selectActive asks the current scheduler which boids get a full update this
// tick and stamps them. Everyone else will only be extrapolated.
func (g *Game) selectActive() []ecs.Entity {
	g.active = g.active[:0]

	switch g.mode {
	case schedHierarchy:
		g.active = append(g.active, g.hierarchy.Tick()...)
	case schedWheel:
		g.active = append(g.active, g.wheel.Tick()...)
	default:
		g.active = append(g.active, g.byIndex...)
	}

	for _, e := range g.active {
		g.boidMap.Get(e).LastTick = g.tick
	}
	return g.active
}

// rebuildIndex refreshes the spatial grid from current positions. Inactive
// boids are inserted too: they drift but must stay visible as neighbors.
func (g *Game) rebuildIndex() {
	if !g.grid.Enabled {
		return
	}

	g.grid.Clear()
	query := g.boidFilter.Query()
	for query.Next() {
		pos, _, _, _ := query.Get()
		g.grid.Insert(query.Entity(), pos.X, pos.Y)
	}

	if g.cacheOrder.Enabled {
		g.cacheOrder.Rebuild(g.grid.Rows(), g.grid.Cols())
	}
}

// gatherNeighbors fills each active boid's neighbor cache. With the grid on,
// candidates come from the 3x3 bucket neighborhood and are confirmed with an
// exact distance test; with Morton order on, boids are visited bucket by
// bucket along the Z-curve instead of in population order.
func (g *Game) gatherNeighbors(active []ecs.Entity) {
	var candTotal, visTotal int
	var weightTotal float64
	tick := g.tick

	if g.cacheOrder.Enabled {
		cells := 0
		g.cacheOrder.Iterate(g.grid.Rows(), g.grid.Cols(), func(row, col int) {
			bucket := g.grid.CellAt(row, col)
			if len(bucket) > 0 {
				cells++
			}
			for _, e := range bucket {
				if g.boidMap.Get(e).LastTick != tick {
					continue
				}
				c, v, w := g.gatherFor(e)
				candTotal += c
				visTotal += v
				weightTotal += w
			}
		})
		g.tracker.Record(telemetry.DimCacheOrder, float64(cells), float64(g.grid.Rows()*g.grid.Cols()))
	} else {
		for _, e := range active {
			c, v, w := g.gatherFor(e)
			candTotal += c
			visTotal += v
			weightTotal += w
		}
	}

	pop := len(g.byIndex)
	if g.grid.Enabled && len(active) > 0 {
		g.tracker.Record(telemetry.DimSpatial,
			float64(candTotal)/float64(len(active)), float64(pop))
	}
	if g.dirFilter.Enabled && candTotal > 0 {
		g.tracker.Record(telemetry.DimPerception, float64(visTotal), float64(candTotal))
	}
	if g.falloff.Enabled && visTotal > 0 {
		g.tracker.Record(telemetry.DimInfluence, weightTotal, float64(visTotal))
	}
}

// gatherFor collects one boid's neighbors. The cached per-neighbor value is
// the effective squared distance: real squared distance divided by the
// combined perception and influence weight, so dim neighbors sort as if they
// were further away.
func (g *Game) gatherFor(e ecs.Entity) (candidates, visible int, weightSum float64) {
	b := g.boidMap.Get(e)
	b.NeighborCount = 0

	pos := g.posMap.Get(e)
	vel := g.velMap.Get(e)
	visionSq := g.cfg.Derived.VisionSq

	consider := func(other ecs.Entity) {
		if other == e {
			return
		}
		candidates++

		opos := g.posMap.Get(other)
		distSq := systems.DistanceSq(pos.X, pos.Y, opos.X, opos.Y)
		if distSq > visionSq {
			return
		}

		weight := float32(1)
		if g.dirFilter.Enabled {
			p := g.dirFilter.Check(pos.X, pos.Y, vel.X, vel.Y, opos.X, opos.Y)
			if !p.Visible {
				return
			}
			weight = p.Weight
		}
		visible++

		if g.falloff.Enabled {
			weight *= g.falloff.WeightSq(distSq, visionSq)
		}
		if weight <= 0 {
			return
		}
		weightSum += float64(weight)

		b.CacheNeighbor(other, distSq/weight)
	}

	if g.grid.Enabled {
		for _, bucket := range g.grid.QueryNearby(pos.X, pos.Y) {
			for _, other := range bucket {
				consider(other)
			}
		}
	} else {
		for _, other := range g.byIndex {
			consider(other)
		}
	}
	return candidates, visible, weightSum
}

// accumulateForces turns each active boid's neighbor cache into steering
// forces, then layers the interaction and environment forces on top.
func (g *Game) accumulateForces(active []ecs.Entity) {
	cfg := g.cfg
	d := &cfg.Derived

	sepRadius := float32(cfg.Flock.SeparationRadius)
	sepSq := sepRadius * sepRadius
	maxForce := float32(cfg.Flock.MaxForce)
	alignW := float32(cfg.Flock.AlignWeight)
	cohW := float32(cfg.Flock.CohesionWeight)
	sepW := float32(cfg.Flock.SeparationWeight)

	pointerRadiusSq := float32(cfg.Interaction.PointerRadius)
	pointerRadiusSq *= pointerRadiusSq
	pointerStrength := float32(cfg.Interaction.PointerStrength)
	blastRadius := float32(cfg.Interaction.ExplosionRadius)
	blastStrength := float32(cfg.Interaction.ExplosionStrength)
	fieldStrength := float32(cfg.Optimizations.Field.Strength)
	smooth := cfg.Optimizations.Field.Smooth

	fieldSamples := 0

	for _, e := range active {
		b := g.boidMap.Get(e)
		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		acc := g.accMap.Get(e)

		align := g.arena.Alloc()
		center := g.arena.Alloc()
		sep := g.arena.Alloc()
		var weightSum float32

		for i := 0; i < b.NeighborCount; i++ {
			ne := b.Neighbors[i]
			if !g.world.Alive(ne) {
				continue
			}
			npos := g.posMap.Get(ne)
			nvel := g.velMap.Get(ne)

			distSq := systems.DistanceSq(pos.X, pos.Y, npos.X, npos.Y)

			// Recover the combined weight from the effective distance.
			w := float32(1)
			if eff := b.NeighborDist[i]; eff > 0 {
				w = distSq / eff
			}

			align.X += nvel.X * w
			align.Y += nvel.Y * w
			center.X += npos.X * w
			center.Y += npos.Y * w
			weightSum += w

			if distSq < sepSq && distSq > 0 {
				dist := systems.Magnitude(pos.X-npos.X, pos.Y-npos.Y)
				push := (1 - dist/sepRadius) / dist
				sep.X += (pos.X - npos.X) * push
				sep.Y += (pos.Y - npos.Y) * push
			}
		}

		var ax, ay float32
		if weightSum > 0 {
			fx, fy := systems.LimitForce(align.X/weightSum-vel.X, align.Y/weightSum-vel.Y, maxForce)
			ax += fx * alignW
			ay += fy * alignW

			fx, fy = systems.LimitForce(center.X/weightSum-pos.X, center.Y/weightSum-pos.Y, maxForce)
			ax += fx * cohW
			ay += fy * cohW
		}
		if sep.X != 0 || sep.Y != 0 {
			fx, fy := systems.LimitForce(sep.X*d.MaxSpeed, sep.Y*d.MaxSpeed, maxForce)
			ax += fx * sepW
			ay += fy * sepW
		}

		if g.pointerActive {
			dx, dy := g.pointerX-pos.X, g.pointerY-pos.Y
			if distSq := dx*dx + dy*dy; distSq < pointerRadiusSq && distSq > 0 {
				dist := systems.Magnitude(dx, dy)
				ax += dx / dist * pointerStrength
				ay += dy / dist * pointerStrength
			}
		}

		if g.blastTicks > 0 {
			dx, dy := pos.X-g.blastX, pos.Y-g.blastY
			dist := systems.Magnitude(dx, dy)
			if dist > 0 && dist < blastRadius {
				// Repulsion fades linearly toward the blast edge.
				push := blastStrength * (1 - dist/blastRadius) / dist
				ax += dx * push
				ay += dy * push
			}
		}

		if g.field.Enabled {
			var fv systems.Vec2
			if smooth {
				fv = g.field.SampleSmooth(pos.X, pos.Y)
			} else {
				fv = g.field.Sample(pos.X, pos.Y)
			}
			ax += fv.X * fieldStrength
			ay += fv.Y * fieldStrength
			fieldSamples++
		}

		acc.X, acc.Y = ax, ay
	}

	if g.field.Enabled {
		g.tracker.Record(telemetry.DimField, float64(fieldSamples), float64(len(g.byIndex)))
	}
}

// integrate advances every boid: full integration for boids stamped this
// tick, pure extrapolation along the last velocity for the rest.
func (g *Game) integrate() {
	d := &g.cfg.Derived
	tick := g.tick

	query := g.boidFilter.Query()
	for query.Next() {
		pos, vel, acc, b := query.Get()

		if b.LastTick == tick {
			systems.Integrate(pos, vel, *acc, d.DT32, d.MinSpeed, d.MaxSpeed, d.Drag)
			acc.X, acc.Y = 0, 0
		} else {
			systems.Extrapolate(pos, *vel, d.DT32)
		}

		if d.Bounce {
			systems.BouncePosition(pos, vel, d.WorldW32, d.WorldH32)
		} else {
			systems.WrapPosition(pos, d.WorldW32, d.WorldH32)
		}
	}
}

// updateActivity feeds post-integration speeds back into the hierarchical
// scheduler so the next tick's promotion and demotion see fresh data.
func (g *Game) updateActivity(active []ecs.Entity) {
	if g.mode != schedHierarchy {
		return
	}

	pointerRadiusSq := float32(g.cfg.Interaction.PointerRadius)
	pointerRadiusSq *= pointerRadiusSq
	blastRadiusSq := float32(g.cfg.Interaction.ExplosionRadius)
	blastRadiusSq *= blastRadiusSq

	for _, e := range active {
		b := g.boidMap.Get(e)
		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)

		speed := systems.Magnitude(vel.X, vel.Y)
		nearPointer := g.pointerActive &&
			systems.DistanceSq(pos.X, pos.Y, g.pointerX, g.pointerY) < pointerRadiusSq
		nearBlast := g.blastTicks > 0 &&
			systems.DistanceSq(pos.X, pos.Y, g.blastX, g.blastY) < blastRadiusSq

		g.hierarchy.UpdateActivity(e, b.Index, speed, nearPointer, nearBlast)
	}
}

// classifyBatches rebuilds the render groups from this tick's state. Stress
// is crowding (neighbor cache fill), speed is the fraction of max speed.
func (g *Game) classifyBatches() {
	g.batcher.Reset()
	if !g.batcher.Enabled {
		return
	}

	maxSpeed := g.cfg.Derived.MaxSpeed

	query := g.boidFilter.Query()
	for query.Next() {
		_, vel, _, b := query.Get()

		stress := float32(b.NeighborCount) / components.NeighborCap
		speedRatio := float32(0)
		if maxSpeed > 0 {
			speedRatio = systems.Magnitude(vel.X, vel.Y) / maxSpeed
		}

		b.BatchKey = systems.ComputeBatchKey(stress, speedRatio)
		g.batcher.Insert(query.Entity(), b.BatchKey)
	}

	g.tracker.Record(telemetry.DimBatching,
		float64(g.batcher.GroupCount()), float64(len(g.byIndex)))
}

// recordSchedulerMetrics logs how many boids got a full update this tick.
func (g *Game) recordSchedulerMetrics(activeCount int) {
	pop := float64(len(g.byIndex))
	switch g.mode {
	case schedWheel:
		g.tracker.Record(telemetry.DimScheduler, float64(activeCount), pop)
	case schedHierarchy:
		g.tracker.Record(telemetry.DimHierarchy, float64(activeCount), pop)
	}
}
